package admins

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"inboxqualify-backend/internal/analytics"
	"inboxqualify-backend/internal/shared/server/respond"
)

// AlertTester runs the alert checks on demand and reports how many alerts
// fired.
type AlertTester interface {
	RunChecks(ctx context.Context) (int, error)
}

// SystemInfo describes the deployment for the admin health endpoint.
type SystemInfo struct {
	DatabaseType string
	EmailAlerts  bool
	AIService    string
}

// Handler exposes the admin dashboard API. All routes assume BasicAuth ran
// first.
type Handler struct {
	Svc       *Service
	Analytics *analytics.Service
	Alerts    AlertTester
	Info      SystemInfo
}

// NewHandler constructs a Handler. Alerts may be nil when alerting is not
// configured.
func NewHandler(svc *Service, analyticsSvc *analytics.Service, alerts AlertTester, info SystemInfo) *Handler {
	return &Handler{Svc: svc, Analytics: analyticsSvc, Alerts: alerts, Info: info}
}

// RegisterRoutes attaches admin routes to an authenticated router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats", h.stats)
	rg.GET("/analytics/daily", h.dailyAnalytics)
	rg.GET("/analytics/advanced", h.advancedAnalytics)
	rg.GET("/users", h.listUsers)
	rg.POST("/users", h.createUser)
	rg.GET("/audit-log", h.auditLog)
	rg.GET("/health", h.health)
	rg.POST("/alerts/test", h.testAlerts)
}

func (h *Handler) stats(c *gin.Context) {
	summary, err := h.Analytics.Stats(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch stats", nil)
		return
	}
	h.audit(c, "view_stats", "")

	respond.OK(c, gin.H{
		"data":      summary,
		"status":    "success",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"message":   "Statistics retrieved successfully",
	})
}

func (h *Handler) dailyAnalytics(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	stats, err := h.Analytics.Daily(c.Request.Context(), days)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch daily analytics", nil)
		return
	}
	h.audit(c, "view_daily_analytics", "")
	if stats == nil {
		stats = []analytics.DailyStat{}
	}
	respond.OK(c, stats)
}

func (h *Handler) advancedAnalytics(c *gin.Context) {
	filter := analytics.Filter{
		StartDate:  c.Query("start_date"),
		EndDate:    c.Query("end_date"),
		IPContains: c.Query("ip_filter"),
	}
	var parseErr error
	filter.ScoreMin, parseErr = optionalInt(c.Query("min_score"))
	if parseErr != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "min_score must be an integer", nil)
		return
	}
	filter.ScoreMax, parseErr = optionalInt(c.Query("max_score"))
	if parseErr != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "max_score must be an integer", nil)
		return
	}

	out, err := h.Analytics.AdvancedAnalytics(c.Request.Context(), filter)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch advanced analytics", nil)
		return
	}
	h.audit(c, "view_advanced_analytics", "")
	respond.OK(c, out)
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.Svc.Users(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list admin users", nil)
		return
	}
	h.audit(c, "view_admin_users", "")
	if users == nil {
		users = []AdminUser{}
	}
	respond.OK(c, gin.H{"admin_users": users})
}

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return
	}

	user, err := h.Svc.CreateUser(c.Request.Context(), req.Username, req.Password, req.Email, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, ErrUsernameTaken):
			respond.Error(c, http.StatusConflict, "conflict", "username already exists", nil)
		default:
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		}
		return
	}
	h.audit(c, "create_admin_user", "created "+user.Username)
	respond.Created(c, user)
}

func (h *Handler) auditLog(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	logs, err := h.Svc.AuditLog(c.Request.Context(), limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch audit log", nil)
		return
	}
	if logs == nil {
		logs = []AuditEntry{}
	}
	respond.OK(c, gin.H{"audit_logs": logs})
}

func (h *Handler) health(c *gin.Context) {
	hasDB := h.Info.DatabaseType != "" && h.Info.DatabaseType != "none"
	respond.OK(c, gin.H{
		"status":        "healthy",
		"database_type": h.Info.DatabaseType,
		"email_alerts":  h.Info.EmailAlerts,
		"ai_service":    h.Info.AIService,
		"features": gin.H{
			"advanced_analytics": hasDB,
			"audit_logging":      hasDB,
			"multi_admin":        hasDB,
		},
	})
}

func (h *Handler) testAlerts(c *gin.Context) {
	var message string
	if h.Alerts == nil {
		message = "Email alert system not initialized"
	} else if sent, err := h.Alerts.RunChecks(c.Request.Context()); err != nil {
		message = fmt.Sprintf("Email alert system is configured but test failed: %v", err)
	} else {
		message = fmt.Sprintf("Email alert system tested successfully. Alerts sent: %d", sent)
	}
	h.audit(c, "test_email_alerts", message)
	respond.OK(c, gin.H{"message": message})
}

func (h *Handler) audit(c *gin.Context, action, details string) {
	h.Svc.Audit(context.WithoutCancel(c.Request.Context()), AdminFromContext(c), action, details, c.ClientIP())
}

func optionalInt(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
