package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"liyu1981.xyz/tpms-service/pkg/tpms"
)

const (
	ctxKeyUserID = "user_id"
	ctxKeyRole   = "role"
)

// RequireToken accepts "Authorization: Bearer <jwt>" and stores the user id on
// the context.
func (rs *RestfulServer) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" || rs.Tokens == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				errorBody(string(tpms.KindUnauthorized), "Missing or invalid token"))
			return
		}

		claims, err := rs.Tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				errorBody(string(tpms.KindUnauthorized), "Missing or invalid token"))
			return
		}

		c.Set(ctxKeyUserID, claims.Subject)
		c.Set(ctxKeyRole, claims.Role)
		c.Next()
	}
}

func currentUserID(c *gin.Context) string {
	return c.GetString(ctxKeyUserID)
}
