package alerts

import (
	"context"
	"fmt"
	"sync"
	"time"

	"inboxqualify-backend/internal/analytics"
	"inboxqualify-backend/internal/shared/telemetry"
)

// Alert thresholds. The usage spike check compares the last hour against the
// trailing 7-day hourly average.
const (
	errorRatePercent  = 10.0
	errorRateMinReqs  = 5
	usageSpikeFactor  = 3.0
	usageSpikeMinReqs = 50
	aiFailureStreak   = 5
	aiFailureWindow   = 30 * time.Minute
	recentSampleSize  = 10
	cooldown          = time.Hour
)

// Checker runs the alert checks against the request log.
type Checker struct {
	Repo       analytics.Repo
	Mailer     Mailer
	Recipients []string

	mu       sync.Mutex
	lastSent map[string]time.Time
}

// NewChecker constructs a Checker.
func NewChecker(repo analytics.Repo, mailer Mailer, recipients []string) *Checker {
	return &Checker{
		Repo:       repo,
		Mailer:     mailer,
		Recipients: recipients,
		lastSent:   map[string]time.Time{},
	}
}

// RunChecks evaluates every alert condition and returns how many alerts were
// sent. A failing individual check is logged and does not stop the others.
func (c *Checker) RunChecks(ctx context.Context) (int, error) {
	sent := 0
	var firstErr error

	checks := []struct {
		name string
		run  func(context.Context) (bool, error)
	}{
		{"error_rate", c.checkErrorRate},
		{"usage_spike", c.checkUsageSpike},
		{"ai_failures", c.checkAIFailures},
	}
	for _, check := range checks {
		fired, err := check.run(ctx)
		if err != nil {
			telemetry.Error("alerts.check.failed", map[string]any{
				"check": check.name,
				"err":   err.Error(),
			})
			if firstErr == nil {
				firstErr = fmt.Errorf("%s check: %w", check.name, err)
			}
			continue
		}
		if fired {
			sent++
		}
	}
	return sent, firstErr
}

// checkErrorRate alerts when more than 10% of the last hour's requests
// errored, given at least 5 requests.
func (c *Checker) checkErrorRate(ctx context.Context) (bool, error) {
	total, errored, err := c.Repo.WindowCounts(ctx, time.Now().UTC().Add(-time.Hour))
	if err != nil {
		return false, err
	}
	if total < errorRateMinReqs {
		return false, nil
	}
	rate := float64(errored) / float64(total) * 100
	if rate <= errorRatePercent {
		return false, nil
	}

	subject := "InboxQualify Alert: High Error Rate"
	body := fmt.Sprintf(
		"Error rate over the last hour is %.1f%% (%d of %d requests).\nThreshold: %.0f%%.\n",
		rate, errored, total, errorRatePercent)
	return c.send(ctx, "error_rate", subject, body)
}

// checkUsageSpike alerts when the last hour runs more than 3x the trailing
// 7-day hourly average and tops 50 requests.
func (c *Checker) checkUsageSpike(ctx context.Context) (bool, error) {
	now := time.Now().UTC()
	lastHour, _, err := c.Repo.WindowCounts(ctx, now.Add(-time.Hour))
	if err != nil {
		return false, err
	}
	weekTotal, _, err := c.Repo.WindowCounts(ctx, now.Add(-7*24*time.Hour))
	if err != nil {
		return false, err
	}

	hourlyAvg := float64(weekTotal) / (24 * 7)
	if hourlyAvg <= 0 {
		return false, nil
	}
	if float64(lastHour) <= hourlyAvg*usageSpikeFactor || lastHour <= usageSpikeMinReqs {
		return false, nil
	}

	subject := "InboxQualify Alert: Unusual Traffic"
	body := fmt.Sprintf(
		"Requests in the last hour: %d.\n7-day hourly average: %.1f.\nCurrent traffic is more than %.0fx the average.\n",
		lastHour, hourlyAvg, usageSpikeFactor)
	return c.send(ctx, "usage_spike", subject, body)
}

// checkAIFailures alerts when the newest requests show an unbroken run of
// non-enhanced results, meaning the sentiment service keeps degrading.
func (c *Checker) checkAIFailures(ctx context.Context) (bool, error) {
	recent, err := c.Repo.Recent(ctx, time.Now().UTC().Add(-aiFailureWindow), recentSampleSize)
	if err != nil {
		return false, err
	}

	streak := 0
	for _, entry := range recent {
		if entry.AIEnhanced {
			break
		}
		streak++
	}
	if streak < aiFailureStreak {
		return false, nil
	}

	subject := "InboxQualify Alert: AI Service Failing"
	body := fmt.Sprintf(
		"The last %d requests fell back to local analysis.\nThe sentiment service appears to be down or rejecting requests.\n",
		streak)
	return c.send(ctx, "ai_failures", subject, body)
}

// send delivers an alert unless the same alert fired within the cooldown.
func (c *Checker) send(ctx context.Context, kind, subject, body string) (bool, error) {
	c.mu.Lock()
	if last, ok := c.lastSent[kind]; ok && time.Since(last) < cooldown {
		c.mu.Unlock()
		return false, nil
	}
	c.mu.Unlock()

	if err := c.Mailer.Send(ctx, subject, body, c.Recipients); err != nil {
		return false, err
	}

	c.mu.Lock()
	c.lastSent[kind] = time.Now()
	c.mu.Unlock()

	telemetry.Info("alerts.sent", map[string]any{
		"kind":       kind,
		"recipients": len(c.Recipients),
	})
	return true, nil
}
