package analytics

import (
	"context"
	"time"

	"inboxqualify-backend/internal/shared/telemetry"
)

const (
	summaryWindow  = 30 * 24 * time.Hour
	defaultDaily   = 7
	maxDailyWindow = 90
)

// Service wraps the repo with the windows the dashboard and alert checks use.
type Service struct {
	Repo Repo
}

// NewService constructs an analytics service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// LogRequest records one qualification request. Persistence failures are
// logged and swallowed; analytics must never fail a user request.
func (s *Service) LogRequest(ctx context.Context, entry LogEntry) {
	if err := s.Repo.Insert(ctx, entry); err != nil {
		telemetry.Error("analytics.log.failed", map[string]any{
			"err": err.Error(),
		})
	}
}

// Stats returns the trailing 30-day summary.
func (s *Service) Stats(ctx context.Context) (Summary, error) {
	return s.Repo.Summary(ctx, time.Now().UTC().Add(-summaryWindow))
}

// Daily returns per-day stats for the trailing window. days outside [1,90]
// falls back to 7.
func (s *Service) Daily(ctx context.Context, days int) ([]DailyStat, error) {
	if days < 1 || days > maxDailyWindow {
		days = defaultDaily
	}
	return s.Repo.Daily(ctx, time.Now().UTC().Add(-time.Duration(days)*24*time.Hour))
}

// AdvancedAnalytics returns filtered aggregates.
func (s *Service) AdvancedAnalytics(ctx context.Context, filter Filter) (Advanced, error) {
	return s.Repo.Advanced(ctx, filter)
}
