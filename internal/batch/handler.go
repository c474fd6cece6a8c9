package batch

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"inboxqualify-backend/internal/shared/server/respond"
)

// Handler exposes batch analysis and campaign tracking endpoints.
type Handler struct {
	Svc       *Service
	Campaigns *Tracker
}

func NewHandler(svc *Service, campaigns *Tracker) *Handler {
	return &Handler{Svc: svc, Campaigns: campaigns}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/batch/analyze", h.analyze)
	rg.GET("/batch/:id", h.get)
	rg.GET("/batch/:id/report", h.report)
	rg.POST("/campaigns", h.createCampaign)
	rg.POST("/campaigns/:id/batches", h.addBatch)
	rg.GET("/campaigns/:id", h.campaignStats)
}

func (h *Handler) analyze(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "csv file is required", err.Error())
		return
	}

	f, err := file.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "could not read uploaded file", err.Error())
		return
	}
	defer f.Close()

	includeRewrite := c.Query("include_rewrite") == "true"
	result, err := h.Svc.Analyze(c.Request.Context(), f, includeRewrite)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_csv", "could not analyze csv", err.Error())
		return
	}
	respond.OK(c, result)
}

func (h *Handler) get(c *gin.Context) {
	result, ok := h.Svc.Get(c.Param("id"))
	if !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "batch not found", nil)
		return
	}
	respond.OK(c, result)
}

func (h *Handler) report(c *gin.Context) {
	result, ok := h.Svc.Get(c.Param("id"))
	if !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "batch not found", nil)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "batch_"+result.BatchID+".csv"))
	if err := WriteCSVReport(c.Writer, result); err != nil {
		// Headers are already out, nothing left to do but log.
		c.Error(err) //nolint:errcheck
	}
}

type createCampaignRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *Handler) createCampaign(c *gin.Context) {
	var req createCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", err.Error())
		return
	}
	campaign := h.Campaigns.Create(req.Name, req.Description)
	respond.Created(c, campaign)
}

type addBatchRequest struct {
	BatchID string `json:"batch_id" binding:"required"`
}

func (h *Handler) addBatch(c *gin.Context) {
	var req addBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", err.Error())
		return
	}

	result, ok := h.Svc.Get(req.BatchID)
	if !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "batch not found", nil)
		return
	}

	campaign, err := h.Campaigns.AddBatch(c.Param("id"), result)
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "campaign not found", err.Error())
		return
	}
	respond.OK(c, campaign)
}

func (h *Handler) campaignStats(c *gin.Context) {
	stats, ok := h.Campaigns.Stats(c.Param("id"))
	if !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "campaign not found", nil)
		return
	}
	respond.OK(c, stats)
}
