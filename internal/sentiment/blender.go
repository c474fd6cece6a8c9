package sentiment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inboxqualify-backend/internal/scoring"
	"inboxqualify-backend/internal/shared/telemetry"
)

const classifyTimeout = 15 * time.Second

// Blender runs the deterministic rubric, asks a Classifier about the email's
// tone, and folds the verdict and the Professionalism score together.
type Blender struct {
	classifier Classifier
	timeout    time.Duration
}

// NewBlender wires a classifier into the blending step. A nil classifier is
// allowed and turns Analyze into a plain rubric pass.
func NewBlender(classifier Classifier) *Blender {
	return &Blender{classifier: classifier, timeout: classifyTimeout}
}

// AnalyzerName reports the configured classifier's name, or "" without one.
func (b *Blender) AnalyzerName() string {
	if b == nil || b.classifier == nil {
		return ""
	}
	return b.classifier.Name()
}

// Analyze grades the email and, when the classifier responds, applies the
// bounded tone adjustment. The boolean reports whether the result was
// AI-enhanced. A response the service gave but that carries no usable labels
// (ErrUnusableResponse) still counts as enhanced and blends as neutral tone;
// only a transport failure (timeout, network) returns the untouched rubric
// result and false. Analyze never returns an error.
func (b *Blender) Analyze(ctx context.Context, subject, body string) (scoring.AnalysisResult, bool) {
	result := scoring.Score(subject, body)
	if b == nil || b.classifier == nil {
		return result, false
	}

	cctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	sig := Neutral()
	labels, err := b.classifier.Classify(cctx, subject+" "+body)
	switch {
	case err == nil:
		sig = Blend(labels)
	case errors.Is(err, ErrUnusableResponse):
		telemetry.Warn("sentiment.classify.neutral", map[string]any{
			"err": err.Error(),
		})
	default:
		telemetry.Warn("sentiment.classify.failed", map[string]any{
			"err": err.Error(),
		})
		return result, false
	}

	applySignal(&result, sig)
	result.Retotal()
	result.Verdict = scoring.Verdict(result.OverallScore) + " (AI Enhanced)"
	return result, true
}

// applySignal adjusts only the Professionalism category, keeping the score
// inside its [0, max] band. The thresholds are asymmetric: positive tone must
// clear 0.5 for +2, negative tone past -0.3 costs 3.
func applySignal(result *scoring.AnalysisResult, sig Signal) {
	prof := result.Professionalism()
	if prof == nil {
		return
	}
	score := sig.Score()
	switch {
	case score > 0.5:
		prof.Score = min(scoring.MaxProfessionalism, prof.Score+2)
		prof.Feedback += fmt.Sprintf(" AI detected positive tone (confidence: %.2f).", score)
	case score < -0.3:
		prof.Score = max(0, prof.Score-3)
		prof.Feedback += fmt.Sprintf(" AI detected negative tone (confidence: %.2f).", -score)
	default:
		prof.Feedback += " AI detected neutral tone."
	}
}
