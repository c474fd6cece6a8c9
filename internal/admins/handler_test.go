package admins

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"inboxqualify-backend/internal/analytics"
)

type stubAlerts struct {
	sent int
	err  error
}

func (s stubAlerts) RunChecks(ctx context.Context) (int, error) {
	return s.sent, s.err
}

func setupAdminRouter(t *testing.T, alerts AlertTester) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := NewService(NewMemoryRepo(), "admin", "super secret pw")
	handler := NewHandler(svc, analytics.NewService(analytics.NewMemoryRepo()), alerts, SystemInfo{
		DatabaseType: "postgres",
		EmailAlerts:  alerts != nil,
		AIService:    "huggingface",
	})

	router := gin.New()
	group := router.Group("/api/v1/admin", BasicAuth(svc))
	handler.RegisterRoutes(group)
	return router, svc
}

func adminGet(router *gin.Engine, path string, authed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authed {
		req.SetBasicAuth("admin", "super secret pw")
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	router, _ := setupAdminRouter(t, nil)

	resp := adminGet(router, "/api/v1/admin/stats", false)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
	if got := resp.Header().Get("WWW-Authenticate"); !strings.HasPrefix(got, "Basic") {
		t.Fatalf("expected a Basic challenge, got %q", got)
	}
}

func TestAdminRejectsWrongPassword(t *testing.T) {
	router, _ := setupAdminRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats", nil)
	req.SetBasicAuth("admin", "wrong")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAdminStats(t *testing.T) {
	router, svc := setupAdminRouter(t, nil)

	resp := adminGet(router, "/api/v1/admin/stats", true)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var payload struct {
		Status  string            `json:"status"`
		Data    analytics.Summary `json:"data"`
		Message string            `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Status != "success" {
		t.Fatalf("unexpected status %q", payload.Status)
	}

	logs, err := svc.AuditLog(context.Background(), 10)
	if err != nil {
		t.Fatalf("AuditLog: %v", err)
	}
	if len(logs) != 1 || logs[0].Action != "view_stats" {
		t.Fatalf("expected a view_stats audit entry, got %+v", logs)
	}
}

func TestAdminDailyAnalyticsEmptyWindow(t *testing.T) {
	router, _ := setupAdminRouter(t, nil)

	resp := adminGet(router, "/api/v1/admin/analytics/daily?days=3", true)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if body := strings.TrimSpace(resp.Body.String()); body != "[]" {
		t.Fatalf("expected an empty array, got %s", body)
	}
}

func TestAdminAdvancedAnalyticsValidation(t *testing.T) {
	router, _ := setupAdminRouter(t, nil)

	resp := adminGet(router, "/api/v1/admin/analytics/advanced?min_score=abc", true)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestAdminCreateAndListUsers(t *testing.T) {
	router, _ := setupAdminRouter(t, nil)

	body := `{"username":"ops","password":"long enough pw","email":"ops@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth("admin", "super secret pw")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if strings.Contains(resp.Body.String(), "password") {
		t.Fatalf("response must not leak password material: %s", resp.Body.String())
	}

	listResp := adminGet(router, "/api/v1/admin/users", true)
	if listResp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", listResp.Code)
	}
	var listed struct {
		AdminUsers []AdminUser `json:"admin_users"`
	}
	if err := json.NewDecoder(listResp.Body).Decode(&listed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(listed.AdminUsers) != 1 || listed.AdminUsers[0].Username != "ops" {
		t.Fatalf("unexpected users %+v", listed.AdminUsers)
	}
}

func TestAdminHealth(t *testing.T) {
	router, _ := setupAdminRouter(t, stubAlerts{})

	resp := adminGet(router, "/api/v1/admin/health", true)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var payload struct {
		Status       string `json:"status"`
		DatabaseType string `json:"database_type"`
		EmailAlerts  bool   `json:"email_alerts"`
		AIService    string `json:"ai_service"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.DatabaseType != "postgres" || !payload.EmailAlerts || payload.AIService != "huggingface" {
		t.Fatalf("unexpected health payload %+v", payload)
	}
}

func TestAdminTestAlerts(t *testing.T) {
	cases := []struct {
		name   string
		alerts AlertTester
		want   string
	}{
		{name: "not_initialized", alerts: nil, want: "not initialized"},
		{name: "success", alerts: stubAlerts{sent: 2}, want: "Alerts sent: 2"},
		{name: "failure", alerts: stubAlerts{err: errors.New("smtp down")}, want: "test failed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, _ := setupAdminRouter(t, tc.alerts)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/alerts/test", nil)
			req.SetBasicAuth("admin", "super secret pw")
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", resp.Code)
			}
			if !strings.Contains(resp.Body.String(), tc.want) {
				t.Fatalf("expected message containing %q, got %s", tc.want, resp.Body.String())
			}
		})
	}
}
