package suggest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inboxqualify-backend/internal/shared/server/respond"
)

// Handler exposes the suggestion and rewrite endpoints.
type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/suggestions", h.suggestions)
	rg.POST("/rewrite", h.rewrite)
}

type emailRequest struct {
	Subject   string  `json:"subject"`
	EmailBody string  `json:"email_body"`
	Context   Context `json:"context"`
}

func (h *Handler) suggestions(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", err.Error())
		return
	}
	respond.OK(c, Analyze(req.Subject, req.EmailBody))
}

func (h *Handler) rewrite(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", err.Error())
		return
	}
	analysis := Analyze(req.Subject, req.EmailBody)
	respond.OK(c, FullRewrite(req.Subject, req.EmailBody, analysis, req.Context))
}
