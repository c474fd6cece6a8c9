package analytics

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// memoryRepo keeps entries in process memory. Used by tests and by local
// setups running without a database.
type memoryRepo struct {
	mu      sync.RWMutex
	nextID  int64
	entries []LogEntry
}

// NewMemoryRepo constructs an in-memory analytics repo.
func NewMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1}
}

func (r *memoryRepo) Insert(ctx context.Context, entry LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = r.nextID
	r.nextID++
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *memoryRepo) Summary(ctx context.Context, since time.Time) (Summary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var s Summary
	ips := map[string]struct{}{}
	scoreSum, procSum := 0, int64(0)
	now := time.Now().UTC()
	midnight := now.Truncate(24 * time.Hour)
	dayAgo := now.Add(-24 * time.Hour)
	for _, e := range r.entries {
		if e.Timestamp.Before(since) {
			continue
		}
		s.TotalRequests++
		if !e.Timestamp.Before(midnight) {
			s.TodayRequests++
		}
		if !e.Timestamp.Before(dayAgo) {
			s.Last24hRequests++
		}
		if !e.ErrorOccurred {
			s.SuccessfulRequests++
			scoreSum += e.OverallScore
		}
		if e.AIEnhanced {
			s.AIEnhancedRequests++
		}
		procSum += e.ProcessingTimeMS
		ips[e.IPAddress] = struct{}{}
	}
	s.UniqueUsers = len(ips)
	if s.SuccessfulRequests > 0 {
		s.AvgScore = round1(float64(scoreSum) / float64(s.SuccessfulRequests))
	}
	if s.TotalRequests > 0 {
		s.AvgProcessingMS = round1(float64(procSum) / float64(s.TotalRequests))
	}
	s.SuccessRate = successRate(s.SuccessfulRequests, s.TotalRequests)
	return s, nil
}

func (r *memoryRepo) Daily(ctx context.Context, since time.Time) ([]DailyStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byDate := map[string]*DailyStat{}
	scoreSums := map[string]int{}
	for _, e := range r.entries {
		if e.Timestamp.Before(since) {
			continue
		}
		date := e.Timestamp.UTC().Format("2006-01-02")
		d, ok := byDate[date]
		if !ok {
			d = &DailyStat{Date: date}
			byDate[date] = d
		}
		d.TotalRequests++
		if !e.ErrorOccurred {
			d.SuccessfulRequests++
			scoreSums[date] += e.OverallScore
		}
		if e.AIEnhanced {
			d.AIEnhancedRequests++
		}
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	out := make([]DailyStat, 0, len(dates))
	for _, date := range dates {
		d := *byDate[date]
		if d.SuccessfulRequests > 0 {
			d.AvgScore = round1(float64(scoreSums[date]) / float64(d.SuccessfulRequests))
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *memoryRepo) Advanced(ctx context.Context, filter Filter) (Advanced, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out Advanced
	s := &out.FilteredStats
	ips := map[string]struct{}{}
	hourly := map[string]*HourlyBucket{}
	hourScores := map[string]int{}
	bands := map[string]int{}
	scoreSum, procSum := 0, int64(0)
	s.MinScore, s.MaxScore = 0, 0

	first := true
	for _, e := range r.entries {
		if !matchesFilter(e, filter) {
			continue
		}
		s.TotalRequests++
		scoreSum += e.OverallScore
		procSum += e.ProcessingTimeMS
		ips[e.IPAddress] = struct{}{}
		if e.AIEnhanced {
			s.AIEnhancedCount++
		}
		if e.ErrorOccurred {
			s.ErrorCount++
		}
		if first || e.OverallScore < s.MinScore {
			s.MinScore = e.OverallScore
		}
		if first || e.OverallScore > s.MaxScore {
			s.MaxScore = e.OverallScore
		}
		first = false

		hour := e.Timestamp.UTC().Format("15") + ":00"
		b, ok := hourly[hour]
		if !ok {
			b = &HourlyBucket{Hour: hour}
			hourly[hour] = b
		}
		b.Requests++
		hourScores[hour] += e.OverallScore

		bands[scoreBandLabel(e.OverallScore)]++
	}

	s.UniqueIPs = len(ips)
	if s.TotalRequests > 0 {
		s.AvgScore = round2(float64(scoreSum) / float64(s.TotalRequests))
		s.AvgProcessingMS = round2(float64(procSum) / float64(s.TotalRequests))
	}

	hours := make([]string, 0, len(hourly))
	for hour := range hourly {
		hours = append(hours, hour)
	}
	sort.Strings(hours)
	for _, hour := range hours {
		b := *hourly[hour]
		b.AvgScore = round1(float64(hourScores[hour]) / float64(b.Requests))
		out.HourlyDistribution = append(out.HourlyDistribution, b)
	}

	for _, label := range []string{"Excellent (80-100)", "Good (60-79)", "Fair (40-59)", "Poor (0-39)"} {
		if count, ok := bands[label]; ok {
			out.ScoreDistribution = append(out.ScoreDistribution, ScoreBand{Range: label, Count: count})
		}
	}
	return out, nil
}

func (r *memoryRepo) WindowCounts(ctx context.Context, since time.Time) (int, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total, errored := 0, 0
	for _, e := range r.entries {
		if e.Timestamp.Before(since) {
			continue
		}
		total++
		if e.ErrorOccurred {
			errored++
		}
	}
	return total, errored, nil
}

func (r *memoryRepo) Recent(ctx context.Context, since time.Time, limit int) ([]LogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []LogEntry
	for _, e := range r.entries {
		if !e.Timestamp.Before(since) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func matchesFilter(e LogEntry, filter Filter) bool {
	date := e.Timestamp.UTC().Format("2006-01-02")
	if filter.StartDate != "" && date < filter.StartDate {
		return false
	}
	if filter.EndDate != "" && date > filter.EndDate {
		return false
	}
	if filter.IPContains != "" && !strings.Contains(strings.ToLower(e.IPAddress), strings.ToLower(filter.IPContains)) {
		return false
	}
	if filter.ScoreMin != nil && e.OverallScore < *filter.ScoreMin {
		return false
	}
	if filter.ScoreMax != nil && e.OverallScore > *filter.ScoreMax {
		return false
	}
	return true
}
