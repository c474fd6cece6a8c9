package analytics

import (
	"context"
	"testing"
	"time"
)

func seedMemoryRepo(t *testing.T) *memoryRepo {
	t.Helper()
	repo := NewMemoryRepo()
	now := time.Now().UTC()
	entries := []LogEntry{
		{Timestamp: now.Add(-10 * time.Minute), IPAddress: "203.0.113.1", OverallScore: 85, AIEnhanced: true, ProcessingTimeMS: 200},
		{Timestamp: now.Add(-20 * time.Minute), IPAddress: "203.0.113.2", OverallScore: 55, ProcessingTimeMS: 100},
		{Timestamp: now.Add(-30 * time.Minute), IPAddress: "203.0.113.1", OverallScore: 30, ErrorOccurred: true, ErrorMessage: "bad input", ProcessingTimeMS: 50},
		{Timestamp: now.Add(-48 * time.Hour), IPAddress: "203.0.113.3", OverallScore: 90, AIEnhanced: true, ProcessingTimeMS: 400},
	}
	for _, e := range entries {
		if err := repo.Insert(context.Background(), e); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
	return repo
}

func TestMemoryRepoSummary(t *testing.T) {
	repo := seedMemoryRepo(t)

	summary, err := repo.Summary(context.Background(), time.Now().UTC().Add(-time.Hour))
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.TotalRequests != 3 {
		t.Fatalf("TotalRequests = %d, want 3", summary.TotalRequests)
	}
	if summary.SuccessfulRequests != 2 {
		t.Fatalf("SuccessfulRequests = %d, want 2", summary.SuccessfulRequests)
	}
	if summary.AIEnhancedRequests != 1 {
		t.Fatalf("AIEnhancedRequests = %d, want 1", summary.AIEnhancedRequests)
	}
	// (85+55)/2 over the successful entries only.
	if summary.AvgScore != 70.0 {
		t.Fatalf("AvgScore = %v, want 70.0", summary.AvgScore)
	}
	if summary.UniqueUsers != 2 {
		t.Fatalf("UniqueUsers = %d, want 2", summary.UniqueUsers)
	}
	if summary.SuccessRate != 66.7 {
		t.Fatalf("SuccessRate = %v, want 66.7", summary.SuccessRate)
	}
	// The 48h-old entry sits outside both sub-windows.
	if summary.Last24hRequests != 3 {
		t.Fatalf("Last24hRequests = %d, want 3", summary.Last24hRequests)
	}
	// UTC midnight is always inside the trailing 24 hours.
	if summary.TodayRequests > summary.Last24hRequests {
		t.Fatalf("TodayRequests = %d exceeds Last24hRequests = %d",
			summary.TodayRequests, summary.Last24hRequests)
	}
}

func TestMemoryRepoWindowCounts(t *testing.T) {
	repo := seedMemoryRepo(t)

	total, errored, err := repo.WindowCounts(context.Background(), time.Now().UTC().Add(-time.Hour))
	if err != nil {
		t.Fatalf("WindowCounts: %v", err)
	}
	if total != 3 || errored != 1 {
		t.Fatalf("got total=%d errored=%d, want 3 and 1", total, errored)
	}
}

func TestMemoryRepoRecentNewestFirst(t *testing.T) {
	repo := seedMemoryRepo(t)

	recent, err := repo.Recent(context.Background(), time.Now().UTC().Add(-time.Hour), 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(recent))
	}
	if recent[0].Timestamp.Before(recent[1].Timestamp) {
		t.Fatalf("entries are not newest-first")
	}
	if recent[0].OverallScore != 85 {
		t.Fatalf("unexpected newest entry %+v", recent[0])
	}
}

func TestMemoryRepoAdvancedFiltering(t *testing.T) {
	repo := seedMemoryRepo(t)

	min := 50
	out, err := repo.Advanced(context.Background(), Filter{ScoreMin: &min})
	if err != nil {
		t.Fatalf("Advanced: %v", err)
	}
	s := out.FilteredStats
	if s.TotalRequests != 3 {
		t.Fatalf("TotalRequests = %d, want 3", s.TotalRequests)
	}
	if s.MinScore != 55 || s.MaxScore != 90 {
		t.Fatalf("score range = [%d,%d], want [55,90]", s.MinScore, s.MaxScore)
	}
	if s.AIEnhancedCount != 2 {
		t.Fatalf("AIEnhancedCount = %d, want 2", s.AIEnhancedCount)
	}
	if len(out.ScoreDistribution) == 0 {
		t.Fatalf("expected a score distribution")
	}
	for _, band := range out.ScoreDistribution {
		if band.Range == "Poor (0-39)" {
			t.Fatalf("filtered-out scores leaked into the distribution")
		}
	}
}

func TestScoreBandLabels(t *testing.T) {
	cases := map[int]string{
		100: "Excellent (80-100)",
		80:  "Excellent (80-100)",
		79:  "Good (60-79)",
		60:  "Good (60-79)",
		59:  "Fair (40-59)",
		40:  "Fair (40-59)",
		39:  "Poor (0-39)",
		0:   "Poor (0-39)",
	}
	for score, want := range cases {
		if got := scoreBandLabel(score); got != want {
			t.Errorf("scoreBandLabel(%d) = %q, want %q", score, got, want)
		}
	}
}
