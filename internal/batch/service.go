package batch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"inboxqualify-backend/internal/shared/metrics"
	"inboxqualify-backend/internal/shared/storage/object"
	"inboxqualify-backend/internal/shared/telemetry"
	"inboxqualify-backend/internal/suggest"
)

// Service runs batch analyses and keeps results for later retrieval.
// Finished reports are also persisted to the object store when one is
// configured.
type Service struct {
	store object.Store

	mu      sync.RWMutex
	batches map[string]Result
}

func NewService(store object.Store) *Service {
	return &Service{
		store:   store,
		batches: make(map[string]Result),
	}
}

// Analyze parses the CSV, scores every email and returns the stored result.
func (s *Service) Analyze(ctx context.Context, r io.Reader, includeRewrite bool) (Result, error) {
	emails, err := ParseCSV(r)
	if err != nil {
		return Result{}, err
	}
	if len(emails) == 0 {
		return Result{}, fmt.Errorf("no analyzable email rows found")
	}

	start := time.Now()
	summary := Summary{
		TotalEmails:  len(emails),
		CommonIssues: map[string]int{},
	}

	results := make([]EmailResult, 0, len(emails))
	totalScore := 0
	for _, email := range emails {
		analysis := suggest.Analyze(email.Subject, email.Body)

		res := EmailResult{
			ID:              email.ID,
			Subject:         email.Subject,
			BodyPreview:     preview(email.Body),
			SenderName:      email.SenderName,
			SenderEmail:     email.SenderEmail,
			Company:         email.Company,
			Industry:        email.Industry,
			Score:           analysis.ImprovementScore,
			WordCount:       analysis.WordCount,
			SubjectLength:   analysis.SubjectLength,
			Suggestions:     analysis.Suggestions,
			SuggestionCount: len(analysis.Suggestions),
			PriorityIssues:  highPriority(analysis.Suggestions),
		}
		if includeRewrite && len(analysis.Suggestions) > 0 {
			rewrite := suggest.FullRewrite(email.Subject, email.Body, analysis, suggest.Context{
				Company:  email.Company,
				Name:     "recipient",
				Industry: email.Industry,
			})
			res.Rewrite = &rewrite
		}

		results = append(results, res)
		totalScore += analysis.ImprovementScore
		summary.ProcessedEmails++
		bumpDistribution(&summary.ScoreDistribution, analysis.ImprovementScore)
		for _, sg := range analysis.Suggestions {
			summary.CommonIssues[sg.Type]++
		}
	}

	summary.AverageScore = round1(float64(totalScore) / float64(summary.ProcessedEmails))
	summary.ProcessingTime = time.Since(start).Seconds()

	result := Result{
		BatchID:   uuid.NewString(),
		Timestamp: start.UTC(),
		Summary:   summary,
		Results:   results,
	}

	s.mu.Lock()
	s.batches[result.BatchID] = result
	s.mu.Unlock()

	metrics.IncBatchAnalysis()

	s.persistReport(ctx, result)
	return result, nil
}

// Get returns a stored batch result by ID.
func (s *Service) Get(batchID string) (Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.batches[batchID]
	return res, ok
}

func (s *Service) persistReport(ctx context.Context, result Result) {
	if s.store == nil {
		return
	}

	var buf bytes.Buffer
	if err := WriteCSVReport(&buf, result); err != nil {
		telemetry.Warn("batch.report.encode_failed", map[string]any{
			"batch_id": result.BatchID,
			"error":    err.Error(),
		})
		return
	}
	if _, err := s.store.Save(ctx, reportKey(result.BatchID), "text/csv", &buf); err != nil {
		telemetry.Warn("batch.report.save_failed", map[string]any{
			"batch_id": result.BatchID,
			"error":    err.Error(),
		})
	}
}

func reportKey(batchID string) string {
	return "reports/" + batchID + ".csv"
}

func preview(body string) string {
	if len(body) > previewLen {
		return body[:previewLen] + "..."
	}
	return body
}

func highPriority(suggestions []suggest.Suggestion) []suggest.Suggestion {
	var out []suggest.Suggestion
	for _, s := range suggestions {
		if s.Priority == suggest.PriorityHigh {
			out = append(out, s)
		}
	}
	return out
}

func bumpDistribution(d *Distribution, score int) {
	switch {
	case score < 40:
		d.Poor++
	case score < 60:
		d.Fair++
	case score < 80:
		d.Good++
	default:
		d.Excellent++
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
