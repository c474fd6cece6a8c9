package batch

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupBatchRouter(t *testing.T) (*gin.Engine, *Service, *Tracker) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := NewService(nil)
	tracker := NewTracker()
	r := gin.New()
	NewHandler(svc, tracker).RegisterRoutes(r.Group("/api/v1"))
	return r, svc, tracker
}

func uploadCSV(t *testing.T, r http.Handler, csvData string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "emails.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(csvData)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/batch/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBatchAnalyzeEndpoint(t *testing.T) {
	r, _, _ := setupBatchRouter(t)

	w := uploadCSV(t, r, testCSV)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var result Result
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if result.Summary.TotalEmails != 2 {
		t.Errorf("TotalEmails = %d, want 2", result.Summary.TotalEmails)
	}

	// Stored result is retrievable.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/batch/"+result.BatchID, nil)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	if w2.Code != http.StatusOK {
		t.Errorf("get batch status = %d", w2.Code)
	}
}

func TestBatchAnalyzeMissingFile(t *testing.T) {
	r, _, _ := setupBatchRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/batch/analyze", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestBatchReportEndpoint(t *testing.T) {
	r, svc, _ := setupBatchRouter(t)

	result, err := svc.Analyze(t.Context(), strings.NewReader(testCSV), false)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/batch/"+result.BatchID+"/report", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "ID,Subject,Body_Preview") {
		t.Errorf("unexpected report body: %q", w.Body.String()[:40])
	}
}

func TestBatchNotFound(t *testing.T) {
	r, _, _ := setupBatchRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/batch/nope", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestCampaignEndpoints(t *testing.T) {
	r, svc, _ := setupBatchRouter(t)

	result, err := svc.Analyze(t.Context(), strings.NewReader(testCSV), false)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	// Create campaign.
	body := `{"name":"Q3 outreach","description":"cold leads"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", w.Code, w.Body.String())
	}
	var campaign Campaign
	if err := json.Unmarshal(w.Body.Bytes(), &campaign); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	// Attach the batch.
	attach := `{"batch_id":"` + result.BatchID + `"}`
	req = httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/"+campaign.ID+"/batches", strings.NewReader(attach))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("attach status = %d, body %s", w.Code, w.Body.String())
	}

	// Stats reflect the batch.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/campaigns/"+campaign.ID, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("stats status = %d", w.Code)
	}
	var stats CampaignStats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if stats.BatchCount != 1 || stats.TotalEmails != 2 || stats.Trend != "stable" {
		t.Errorf("stats = %+v", stats)
	}
}

func TestAttachBatchToUnknownCampaign(t *testing.T) {
	r, svc, _ := setupBatchRouter(t)

	result, err := svc.Analyze(t.Context(), strings.NewReader(testCSV), false)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	attach := `{"batch_id":"` + result.BatchID + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/campaigns/missing/batches", strings.NewReader(attach))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
