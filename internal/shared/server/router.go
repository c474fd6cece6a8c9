// Package server assembles the HTTP router from handler dependencies.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inboxqualify-backend/internal/admins"
	"inboxqualify-backend/internal/batch"
	"inboxqualify-backend/internal/qualify"
	"inboxqualify-backend/internal/shared/config"
	"inboxqualify-backend/internal/shared/metrics"
	"inboxqualify-backend/internal/shared/server/middleware"
	"inboxqualify-backend/internal/shared/server/respond"
	"inboxqualify-backend/internal/suggest"
	"inboxqualify-backend/internal/templates"
)

// RouterDeps carries everything NewRouter needs to register routes.
type RouterDeps struct {
	Config          config.Config
	QualifyHandler  *qualify.Handler
	TemplateHandler *templates.Handler
	SuggestHandler  *suggest.Handler
	BatchHandler    *batch.Handler
	AdminHandler    *admins.Handler
	AdminService    *admins.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT": {Rate: 5, Burst: 20},
				"QUALIFY": {Rate: 1, Burst: 10},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/qualify" {
					return "QUALIFY"
				}
				return "DEFAULT"
			},
		}),
	)

	r.GET("/", func(c *gin.Context) {
		respond.OK(c, gin.H{"status": "inboxqualify API is running!"})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	deps.QualifyHandler.RegisterRoutes(api)
	deps.TemplateHandler.RegisterRoutes(api)
	deps.SuggestHandler.RegisterRoutes(api)
	deps.BatchHandler.RegisterRoutes(api)

	admin := api.Group("/admin", admins.BasicAuth(deps.AdminService))
	deps.AdminHandler.RegisterRoutes(admin)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
