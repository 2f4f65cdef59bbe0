package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
	"liyu1981.xyz/tpms-service/pkg/tpms"
)

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (rs *RestfulServer) GetAlertTypes(c *gin.Context) {
	if rs.Tpms.Catalog == nil {
		writeError(c, tpms.ErrPersistence)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alert_types": rs.Tpms.Catalog.Entries()})
}

type LimiterRequest struct {
	Rate  float64 `json:"rate" zog:"rate"`
	Burst int     `json:"burst" zog:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"Rate":  z.Float64().Required().GT(0),
	"Burst": z.Int().Required().GT(0),
})

// PostLimiter tunes the ingestion rate of one tire the caller owns.
func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	tireID := c.Param("tire_id")

	var req LimiterRequest
	if issues := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); issues != nil {
		writeIssues(c, issues)
		return
	}

	if _, err := rs.Tpms.Tire.GetTire(c.Request.Context(), currentUserID(c), tireID); err != nil {
		writeError(c, err)
		return
	}

	rs.SetLimiter(tireID, req.Rate, req.Burst)

	c.Status(http.StatusOK)
}
