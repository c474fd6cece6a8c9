package qualify

import (
	"context"
	"time"

	"inboxqualify-backend/internal/analytics"
	"inboxqualify-backend/internal/scoring"
	"inboxqualify-backend/internal/sentiment"
	"inboxqualify-backend/internal/shared/metrics"
)

// Service runs the full qualification pipeline: blended analysis first, the
// plain rubric as the fallback, plus usage logging.
type Service struct {
	Blender   *sentiment.Blender
	Analytics *analytics.Service
}

// NewService constructs a qualify service. Analytics may be nil for setups
// without persistence.
func NewService(blender *sentiment.Blender, analyticsSvc *analytics.Service) *Service {
	return &Service{Blender: blender, Analytics: analyticsSvc}
}

// Qualify grades the email. When the AI path degrades, the verdict carries a
// " (Local Analysis)" marker so callers can tell the two paths apart.
func (s *Service) Qualify(ctx context.Context, input EmailInput, meta RequestMeta) scoring.AnalysisResult {
	start := time.Now()
	metrics.IncQualifyRequest()

	result, enhanced := s.Blender.Analyze(ctx, input.Subject, input.EmailBody)
	if !enhanced {
		result.Verdict += " (Local Analysis)"
	}
	metrics.IncQualifyCompleted()
	if enhanced {
		metrics.IncQualifyAIEnhanced()
	}
	metrics.ObserveQualifyDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)

	aiModel := "local_fallback"
	if enhanced {
		aiModel = s.Blender.AnalyzerName()
	}
	if s.Analytics != nil {
		// Logging outlives a canceled request on purpose.
		s.Analytics.LogRequest(context.WithoutCancel(ctx), analytics.LogEntry{
			IPAddress:        meta.IPAddress,
			UserAgent:        meta.UserAgent,
			SubjectLength:    len(input.Subject),
			BodyLength:       len(input.EmailBody),
			OverallScore:     result.OverallScore,
			AIEnhanced:       enhanced,
			AIModel:          aiModel,
			ProcessingTimeMS: time.Since(start).Milliseconds(),
		})
	}
	return result
}
