package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"inboxqualify-backend/internal/shared/telemetry"
)

const hfBaseURL = "https://api-inference.huggingface.co/models/"

// DefaultModel is tried first; its star-rating vocabulary carries the most
// signal for short marketing copy.
const DefaultModel = "nlptown/bert-base-multilingual-uncased-sentiment"

// DefaultFallbacks are tried in order when a model endpoint returns 404.
var DefaultFallbacks = []string{
	"cardiffnlp/twitter-roberta-base-sentiment-latest",
	"distilbert-base-uncased-finetuned-sst-2-english",
	"cardiffnlp/twitter-roberta-base-sentiment",
}

// HFClient implements Classifier against the Hugging Face inference API.
type HFClient struct {
	apiKey     string
	baseURL    string
	models     []string
	httpClient *http.Client
}

// NewHFClient constructs a Hugging Face classifier. The model chain is the
// default model followed by the fallbacks; Classify walks it in order.
func NewHFClient(apiKey string) (*HFClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("HUGGINGFACE_API_KEY is required")
	}
	timeout := 15 * time.Second
	if raw := strings.TrimSpace(os.Getenv("HUGGINGFACE_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &HFClient{
		apiKey:  apiKey,
		baseURL: hfBaseURL,
		models:  append([]string{DefaultModel}, DefaultFallbacks...),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Name implements Classifier.
func (c *HFClient) Name() string { return "huggingface" }

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

// Classify walks the model chain: a 404 moves on to the next model, any other
// failure ends the walk. First parseable response wins; exhausting the chain
// is an error the caller degrades from.
func (c *HFClient) Classify(ctx context.Context, text string) ([]Label, error) {
	var lastErr error
	for _, model := range c.models {
		labels, err := c.classifyOnce(ctx, model, text)
		if err == nil {
			return labels, nil
		}
		lastErr = err
		if !isNotFound(err) {
			return nil, err
		}
		telemetry.Warn("sentiment.model.unavailable", map[string]any{
			"model": model,
		})
	}
	return nil, fmt.Errorf("all sentiment models unavailable: %w", lastErr)
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("huggingface status %d: %s", e.code, e.body)
}

// Is lets errors.Is(err, ErrUnusableResponse) match any HTTP status failure.
func (e *statusError) Is(target error) bool {
	return target == ErrUnusableResponse
}

func isNotFound(err error) bool {
	se, ok := err.(*statusError)
	return ok && se.code == http.StatusNotFound
}

func (c *HFClient) classifyOnce(ctx context.Context, model, text string) ([]Label, error) {
	payload, err := json.Marshal(inferenceRequest{Inputs: text})
	if err != nil {
		return nil, fmt.Errorf("marshal inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+model, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build inference request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("huggingface request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read inference response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{code: resp.StatusCode, body: truncate(string(body), 200)}
	}
	return parseLabels(body)
}

// parseLabels accepts both response shapes the inference API produces: a
// nested [[{label,score}]] for single-input requests and a flat list.
func parseLabels(body []byte) ([]Label, error) {
	var nested [][]Label
	if err := json.Unmarshal(body, &nested); err == nil {
		if len(nested) == 0 {
			return nil, fmt.Errorf("empty inference response: %w", ErrUnusableResponse)
		}
		return nested[0], nil
	}
	var flat []Label
	if err := json.Unmarshal(body, &flat); err != nil {
		return nil, fmt.Errorf("parse inference response: %v: %w", err, ErrUnusableResponse)
	}
	return flat, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
