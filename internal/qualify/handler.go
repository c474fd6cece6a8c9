package qualify

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"inboxqualify-backend/internal/services/health"
	"inboxqualify-backend/internal/shared/metrics"
	"inboxqualify-backend/internal/shared/server/respond"
)

// Handler exposes the public qualification endpoints.
type Handler struct {
	Svc    *Service
	Health *health.Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, healthSvc *health.Service) *Handler {
	return &Handler{Svc: svc, Health: healthSvc}
}

// RegisterRoutes attaches qualification routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/qualify", h.qualify)
	rg.GET("/health", h.health)
}

func (h *Handler) qualify(c *gin.Context) {
	var input EmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		metrics.IncQualifyFailed()
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return
	}
	if input.tooLarge() {
		metrics.IncQualifyFailed()
		respond.Error(c, http.StatusBadRequest, "validation_error", "email exceeds size limits", nil)
		return
	}

	result := h.Svc.Qualify(c.Request.Context(), input, RequestMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	c.Set("overallScore", result.OverallScore)
	c.Set("aiEnhanced", !strings.HasSuffix(result.Verdict, " (Local Analysis)"))
	respond.OK(c, result)
}

func (h *Handler) health(c *gin.Context) {
	respond.OK(c, h.Health.Status())
}
