package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
	"liyu1981.xyz/tpms-service/pkg/models"
	"liyu1981.xyz/tpms-service/pkg/tpms"
)

type ReadingRequest struct {
	PressureValue float64 `json:"pressure_value" zog:"pressure_value"`
	PressureUnit  string  `json:"pressure_unit" zog:"pressure_unit"`
}

// pressure_value may arrive as a number or a numeric string
var readingRequestSchema = z.Struct(z.Shape{
	"PressureValue": z.Float64().Required(),
	"PressureUnit":  z.String().Trim().Required(),
})

func (rs *RestfulServer) PostReading(c *gin.Context) {
	tireID := c.Param("tire_id")

	if !rs.CheckTireLimiter(tireID) {
		writeRateLimited(c)
		return
	}

	var req ReadingRequest
	if issues := readingRequestSchema.Parse(zhttp.Request(c.Request), &req); issues != nil {
		writeIssues(c, issues)
		return
	}

	rs.addReading(c, currentUserID(c), &models.ReadingInput{
		TireID:        tireID,
		PressureValue: req.PressureValue,
		PressureUnit:  req.PressureUnit,
	})
}

func (rs *RestfulServer) addReading(c *gin.Context, userID string, input *models.ReadingInput) {
	result, err := rs.Tpms.Reading.AddReading(c.Request.Context(), userID, input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":             "Pressure reading added successfully",
		"reading_id":          result.ReadingID,
		"pressure_value":      result.PressureValue,
		"created_at":          result.CreatedAt,
		"alert_type":          result.AlertType,
		"transitioned":        result.Transitioned,
		"notification_id":     result.NotificationID,
		"notification_failed": result.NotificationFailed,
	})
}

func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &tpms.Error{Kind: tpms.KindValidation, Message: fmt.Sprintf("%s must be an integer", name)}
	}
	return v, nil
}

func (rs *RestfulServer) GetReadings(c *gin.Context) {
	tireID := c.Param("tire_id")

	days, err := queryInt(c, "days", 0)
	if err != nil {
		writeError(c, err)
		return
	}
	if _, ok := c.GetQuery("days"); ok && days == 0 {
		writeError(c, &tpms.Error{Kind: tpms.KindValidation, Message: "Days parameter must be a positive integer"})
		return
	}

	readings, err := rs.Tpms.Reading.GetTireReadings(c.Request.Context(), currentUserID(c), tireID, days)
	if err != nil {
		writeError(c, err)
		return
	}

	timeframe := "all time"
	if days > 0 {
		timeframe = fmt.Sprintf("last %d days", days)
	}
	c.JSON(http.StatusOK, gin.H{
		"tire_id":   tireID,
		"timeframe": timeframe,
		"count":     len(readings),
		"readings":  readings,
	})
}

func (rs *RestfulServer) GetUserNotifications(c *gin.Context) {
	limit, err := queryInt(c, "limit", tpms.DefaultNotificationLimit)
	if err != nil {
		writeError(c, err)
		return
	}
	if limit == 0 {
		writeError(c, &tpms.Error{Kind: tpms.KindValidation, Message: "Limit must be positive"})
		return
	}

	notifications, err := rs.Tpms.Notification.GetUserNotifications(c.Request.Context(), currentUserID(c), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

func (rs *RestfulServer) GetVehicleNotifications(c *gin.Context) {
	limit, err := queryInt(c, "limit", tpms.DefaultNotificationLimit)
	if err != nil {
		writeError(c, err)
		return
	}
	if limit == 0 {
		writeError(c, &tpms.Error{Kind: tpms.KindValidation, Message: "Limit must be positive"})
		return
	}

	notifications, err := rs.Tpms.Notification.GetVehicleNotifications(c.Request.Context(), currentUserID(c), c.Param("vehicle_id"), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}
