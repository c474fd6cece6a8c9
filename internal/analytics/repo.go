package analytics

import (
	"context"
	"time"
)

// Repo persists and aggregates request logs.
type Repo interface {
	Insert(ctx context.Context, entry LogEntry) error
	Summary(ctx context.Context, since time.Time) (Summary, error)
	Daily(ctx context.Context, since time.Time) ([]DailyStat, error)
	Advanced(ctx context.Context, filter Filter) (Advanced, error)
	// WindowCounts returns total and errored requests since the cutoff; the
	// alert checks build their rates from it.
	WindowCounts(ctx context.Context, since time.Time) (total, errored int, err error)
	// Recent returns entries newest-first since the cutoff, capped at limit.
	Recent(ctx context.Context, since time.Time, limit int) ([]LogEntry, error)
}
