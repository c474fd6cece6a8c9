package templates

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inboxqualify-backend/internal/shared/server/respond"
)

// Handler exposes the template library endpoints.
type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/templates", h.list)
	rg.POST("/templates/:industry", h.generate)
}

func (h *Handler) list(c *gin.Context) {
	respond.OK(c, gin.H{"templates": List()})
}

type generateRequest struct {
	Variables map[string]string `json:"variables"`
}

func (h *Handler) generate(c *gin.Context) {
	var req generateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", err.Error())
			return
		}
	}
	respond.OK(c, Generate(c.Param("industry"), req.Variables))
}
