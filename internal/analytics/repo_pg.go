package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"
)

type pgRepo struct {
	DB *sql.DB
}

// NewPGRepo constructs a Postgres-backed analytics repo.
func NewPGRepo(db *sql.DB) *pgRepo {
	return &pgRepo{DB: db}
}

func (r *pgRepo) Insert(ctx context.Context, entry LogEntry) error {
	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	var errMsg sql.NullString
	if entry.ErrorMessage != "" {
		errMsg = sql.NullString{String: entry.ErrorMessage, Valid: true}
	}
	var aiModel sql.NullString
	if entry.AIModel != "" {
		aiModel = sql.NullString{String: entry.AIModel, Valid: true}
	}
	_, err := r.DB.ExecContext(ctx, `
INSERT INTO usage_logs
(timestamp, ip_address, user_agent, subject_length, body_length, overall_score,
 ai_enhanced, ai_model, processing_time_ms, error_occurred, error_message)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		ts, entry.IPAddress, entry.UserAgent, entry.SubjectLength, entry.BodyLength,
		entry.OverallScore, entry.AIEnhanced, aiModel, entry.ProcessingTimeMS, entry.ErrorOccurred, errMsg)
	return err
}

func (r *pgRepo) Summary(ctx context.Context, since time.Time) (Summary, error) {
	var s Summary
	row := r.DB.QueryRowContext(ctx, `
SELECT COUNT(*),
       COUNT(*) FILTER (WHERE timestamp >= date_trunc('day', now())),
       COUNT(*) FILTER (WHERE timestamp >= now() - interval '24 hours'),
       COUNT(*) FILTER (WHERE NOT error_occurred),
       COUNT(*) FILTER (WHERE ai_enhanced),
       COALESCE(AVG(overall_score) FILTER (WHERE NOT error_occurred), 0),
       COUNT(DISTINCT ip_address),
       COALESCE(AVG(processing_time_ms), 0)
FROM usage_logs
WHERE timestamp >= $1`, since)
	if err := row.Scan(&s.TotalRequests, &s.TodayRequests, &s.Last24hRequests,
		&s.SuccessfulRequests, &s.AIEnhancedRequests,
		&s.AvgScore, &s.UniqueUsers, &s.AvgProcessingMS); err != nil {
		return Summary{}, err
	}
	s.AvgScore = round1(s.AvgScore)
	s.AvgProcessingMS = round1(s.AvgProcessingMS)
	s.SuccessRate = successRate(s.SuccessfulRequests, s.TotalRequests)
	return s, nil
}

func (r *pgRepo) Daily(ctx context.Context, since time.Time) ([]DailyStat, error) {
	rows, err := r.DB.QueryContext(ctx, `
SELECT to_char(timestamp, 'YYYY-MM-DD'),
       COUNT(*),
       COUNT(*) FILTER (WHERE NOT error_occurred),
       COUNT(*) FILTER (WHERE ai_enhanced),
       COALESCE(AVG(overall_score) FILTER (WHERE NOT error_occurred), 0)
FROM usage_logs
WHERE timestamp >= $1
GROUP BY 1
ORDER BY 1`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DailyStat
	for rows.Next() {
		var d DailyStat
		if err := rows.Scan(&d.Date, &d.TotalRequests, &d.SuccessfulRequests,
			&d.AIEnhancedRequests, &d.AvgScore); err != nil {
			return nil, err
		}
		d.AvgScore = round1(d.AvgScore)
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *pgRepo) Advanced(ctx context.Context, filter Filter) (Advanced, error) {
	where, args := buildFilter(filter)

	var out Advanced
	row := r.DB.QueryRowContext(ctx, `
SELECT COUNT(*),
       COALESCE(AVG(overall_score), 0),
       COALESCE(MIN(overall_score), 0),
       COALESCE(MAX(overall_score), 0),
       COALESCE(AVG(processing_time_ms), 0),
       COUNT(DISTINCT ip_address),
       COUNT(*) FILTER (WHERE ai_enhanced),
       COUNT(*) FILTER (WHERE error_occurred)
FROM usage_logs`+where, args...)
	s := &out.FilteredStats
	if err := row.Scan(&s.TotalRequests, &s.AvgScore, &s.MinScore, &s.MaxScore,
		&s.AvgProcessingMS, &s.UniqueIPs, &s.AIEnhancedCount, &s.ErrorCount); err != nil {
		return Advanced{}, err
	}
	s.AvgScore = round2(s.AvgScore)
	s.AvgProcessingMS = round2(s.AvgProcessingMS)

	rows, err := r.DB.QueryContext(ctx, `
SELECT to_char(timestamp, 'HH24'),
       COUNT(*),
       COALESCE(AVG(overall_score), 0)
FROM usage_logs`+where+`
GROUP BY 1
ORDER BY 1`, args...)
	if err != nil {
		return Advanced{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var b HourlyBucket
		if err := rows.Scan(&b.Hour, &b.Requests, &b.AvgScore); err != nil {
			return Advanced{}, err
		}
		b.Hour += ":00"
		b.AvgScore = round1(b.AvgScore)
		out.HourlyDistribution = append(out.HourlyDistribution, b)
	}
	if err := rows.Err(); err != nil {
		return Advanced{}, err
	}

	bandRows, err := r.DB.QueryContext(ctx, `
SELECT CASE
         WHEN overall_score >= 80 THEN 'Excellent (80-100)'
         WHEN overall_score >= 60 THEN 'Good (60-79)'
         WHEN overall_score >= 40 THEN 'Fair (40-59)'
         ELSE 'Poor (0-39)'
       END,
       COUNT(*)
FROM usage_logs`+where+`
GROUP BY 1`, args...)
	if err != nil {
		return Advanced{}, err
	}
	defer bandRows.Close()
	for bandRows.Next() {
		var b ScoreBand
		if err := bandRows.Scan(&b.Range, &b.Count); err != nil {
			return Advanced{}, err
		}
		out.ScoreDistribution = append(out.ScoreDistribution, b)
	}
	return out, bandRows.Err()
}

func (r *pgRepo) WindowCounts(ctx context.Context, since time.Time) (int, int, error) {
	var total, errored int
	row := r.DB.QueryRowContext(ctx, `
SELECT COUNT(*), COUNT(*) FILTER (WHERE error_occurred)
FROM usage_logs
WHERE timestamp >= $1`, since)
	if err := row.Scan(&total, &errored); err != nil {
		return 0, 0, err
	}
	return total, errored, nil
}

func (r *pgRepo) Recent(ctx context.Context, since time.Time, limit int) ([]LogEntry, error) {
	rows, err := r.DB.QueryContext(ctx, `
SELECT id, timestamp, ip_address, user_agent, subject_length, body_length,
       overall_score, ai_enhanced, COALESCE(ai_model, ''), processing_time_ms,
       error_occurred, COALESCE(error_message, '')
FROM usage_logs
WHERE timestamp >= $1
ORDER BY timestamp DESC
LIMIT $2`, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LogEntry
	for rows.Next() {
		var e LogEntry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.IPAddress, &e.UserAgent,
			&e.SubjectLength, &e.BodyLength, &e.OverallScore, &e.AIEnhanced,
			&e.AIModel, &e.ProcessingTimeMS, &e.ErrorOccurred, &e.ErrorMessage); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// buildFilter renders the optional WHERE clause for Advanced with positional
// placeholders.
func buildFilter(filter Filter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.StartDate != "" {
		add("timestamp::date >= $%d::date", filter.StartDate)
	}
	if filter.EndDate != "" {
		add("timestamp::date <= $%d::date", filter.EndDate)
	}
	if filter.IPContains != "" {
		add("ip_address ILIKE '%%' || $%d || '%%'", filter.IPContains)
	}
	if filter.ScoreMin != nil {
		add("overall_score >= $%d", *filter.ScoreMin)
	}
	if filter.ScoreMax != nil {
		add("overall_score <= $%d", *filter.ScoreMax)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return "\nWHERE " + strings.Join(conds, " AND "), args
}

func successRate(successful, total int) float64 {
	if total < 1 {
		total = 1
	}
	return round1(float64(successful) / float64(total) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
