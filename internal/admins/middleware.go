package admins

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inboxqualify-backend/internal/shared/server/respond"
)

// BasicAuth guards admin routes with HTTP Basic authentication. On success
// the admin username is stored on the context for handlers and audit logs.
func BasicAuth(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			unauthorized(c)
			return
		}
		user, err := svc.Authenticate(c.Request.Context(), username, password)
		if err != nil {
			unauthorized(c)
			return
		}
		c.Set("adminUser", user.Username)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", `Basic realm="admin"`)
	respond.Error(c, http.StatusUnauthorized, "unauthorized", "invalid admin credentials", nil)
}

// AdminFromContext returns the authenticated admin username.
func AdminFromContext(c *gin.Context) string {
	return c.GetString("adminUser")
}
