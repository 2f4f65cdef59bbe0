package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"liyu1981.xyz/tpms-service/pkg/common"
	"liyu1981.xyz/tpms-service/pkg/tpms"
)

const kindRateLimited = "rate_limited"

var statusByKind = map[tpms.Kind]int{
	tpms.KindValidation:   http.StatusBadRequest,
	tpms.KindUnauthorized: http.StatusUnauthorized,
	tpms.KindForbidden:    http.StatusForbidden,
	tpms.KindNotFound:     http.StatusNotFound,
	tpms.KindConflict:     http.StatusConflict,
	tpms.KindPersistence:  http.StatusInternalServerError,
}

func errorBody(kind, message string) gin.H {
	return gin.H{"error": gin.H{"kind": kind, "message": message}}
}

// writeError maps a tpms error to its status. Internal causes are logged, never
// returned.
func writeError(c *gin.Context, err error) {
	kind := tpms.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError {
		common.GetLoggerWith(common.LoggerNameRestfulServer).Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}

	c.AbortWithStatusJSON(status, errorBody(string(kind), tpms.MessageOf(err)))
}

// writeIssues reports zog validation issues as a validation error.
func writeIssues(c *gin.Context, issues any) {
	body := errorBody(string(tpms.KindValidation), "Invalid request body")
	body["error"].(gin.H)["issues"] = issues
	c.AbortWithStatusJSON(http.StatusBadRequest, body)
}

func writeRateLimited(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, errorBody(kindRateLimited, "Too many readings for this tire"))
}
