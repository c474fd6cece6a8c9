package batch

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

const trendDelta = 5.0

// Tracker keeps campaigns in memory. Campaigns are short-lived working
// state, not durable records.
type Tracker struct {
	mu        sync.RWMutex
	campaigns map[string]*Campaign
}

func NewTracker() *Tracker {
	return &Tracker{campaigns: make(map[string]*Campaign)}
}

// Create starts a new campaign and returns it.
func (t *Tracker) Create(name, description string) Campaign {
	c := &Campaign{
		ID:               uuid.NewString(),
		Name:             name,
		Description:      description,
		CreatedAt:        time.Now().UTC(),
		Batches:          []CampaignBatch{},
		ImprovementTrend: []float64{},
	}

	t.mu.Lock()
	t.campaigns[c.ID] = c
	t.mu.Unlock()
	return c.snapshot()
}

// AddBatch appends a batch result to a campaign and refreshes its
// email-weighted average score.
func (t *Tracker) AddBatch(campaignID string, result Result) (Campaign, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	c, ok := t.campaigns[campaignID]
	if !ok {
		return Campaign{}, fmt.Errorf("campaign %s not found", campaignID)
	}

	c.Batches = append(c.Batches, CampaignBatch{
		BatchID:      result.BatchID,
		Timestamp:    result.Timestamp,
		EmailCount:   result.Summary.TotalEmails,
		AverageScore: result.Summary.AverageScore,
	})
	c.TotalEmails += result.Summary.TotalEmails

	var weighted float64
	for _, b := range c.Batches {
		weighted += b.AverageScore * float64(b.EmailCount)
	}
	c.AverageScore = round1(weighted / float64(c.TotalEmails))

	// Fresh slice: previously returned snapshots still alias the old one.
	trend := make([]float64, 0, len(c.Batches))
	for _, b := range c.Batches {
		trend = append(trend, b.AverageScore)
	}
	c.ImprovementTrend = trend
	return c.snapshot(), nil
}

// snapshot deep-copies the campaign so returned values never share slice
// backing with the tracker's state.
func (c *Campaign) snapshot() Campaign {
	out := *c
	out.Batches = make([]CampaignBatch, len(c.Batches))
	copy(out.Batches, c.Batches)
	out.ImprovementTrend = make([]float64, len(c.ImprovementTrend))
	copy(out.ImprovementTrend, c.ImprovementTrend)
	return out
}

// Stats returns a campaign with its derived trend: the average of the last
// two batches against the average of everything before them.
func (t *Tracker) Stats(campaignID string) (CampaignStats, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	c, ok := t.campaigns[campaignID]
	if !ok {
		return CampaignStats{}, false
	}

	stats := CampaignStats{
		Campaign:   c.snapshot(),
		Trend:      "stable",
		BatchCount: len(c.Batches),
	}
	if len(c.Batches) > 0 {
		latest := c.Batches[len(c.Batches)-1]
		stats.LatestBatch = &latest
	}

	trend := c.ImprovementTrend
	if len(trend) >= 2 {
		recent := (trend[len(trend)-1] + trend[len(trend)-2]) / 2
		older := 0.0
		if n := len(trend) - 2; n > 0 {
			for _, v := range trend[:n] {
				older += v
			}
			older /= float64(n)
		}
		switch {
		case recent > older+trendDelta:
			stats.Trend = "improving"
		case recent < older-trendDelta:
			stats.Trend = "declining"
		}
	}
	return stats, true
}
