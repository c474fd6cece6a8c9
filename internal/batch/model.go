// Package batch analyzes CSV uploads of cold emails in bulk and tracks
// results across campaigns.
package batch

import (
	"time"

	"inboxqualify-backend/internal/suggest"
)

// Email is one row parsed from an uploaded CSV.
type Email struct {
	ID          int    `json:"id"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
	SenderName  string `json:"sender_name"`
	SenderEmail string `json:"sender_email"`
	Company     string `json:"company"`
	Industry    string `json:"industry"`
}

const previewLen = 200

// EmailResult is the per-email analysis outcome.
type EmailResult struct {
	ID              int                  `json:"id"`
	Subject         string               `json:"subject"`
	BodyPreview     string               `json:"body_preview"`
	SenderName      string               `json:"sender_name"`
	SenderEmail     string               `json:"sender_email"`
	Company         string               `json:"company"`
	Industry        string               `json:"industry"`
	Score           int                  `json:"score"`
	WordCount       int                  `json:"word_count"`
	SubjectLength   int                  `json:"subject_length"`
	Suggestions     []suggest.Suggestion `json:"suggestions"`
	SuggestionCount int                  `json:"suggestion_count"`
	PriorityIssues  []suggest.Suggestion `json:"priority_issues"`
	Rewrite         *suggest.Rewrite     `json:"rewrite,omitempty"`
}

// Distribution buckets scores into quality bands.
type Distribution struct {
	Poor      int `json:"poor"`
	Fair      int `json:"fair"`
	Good      int `json:"good"`
	Excellent int `json:"excellent"`
}

// Summary aggregates a whole batch.
type Summary struct {
	TotalEmails       int            `json:"total_emails"`
	ProcessedEmails   int            `json:"processed_emails"`
	AverageScore      float64        `json:"average_score"`
	ScoreDistribution Distribution   `json:"score_distribution"`
	CommonIssues      map[string]int `json:"common_issues"`
	ProcessingTime    float64        `json:"processing_time"`
}

// Result is a completed batch analysis.
type Result struct {
	BatchID   string        `json:"batch_id"`
	Timestamp time.Time     `json:"timestamp"`
	Summary   Summary       `json:"summary"`
	Results   []EmailResult `json:"results"`
}

// CampaignBatch records one batch's contribution to a campaign.
type CampaignBatch struct {
	BatchID      string    `json:"batch_id"`
	Timestamp    time.Time `json:"timestamp"`
	EmailCount   int       `json:"email_count"`
	AverageScore float64   `json:"average_score"`
}

// Campaign groups batches so senders can watch their copy improve.
type Campaign struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	CreatedAt        time.Time       `json:"created_at"`
	Batches          []CampaignBatch `json:"batches"`
	TotalEmails      int             `json:"total_emails"`
	AverageScore     float64         `json:"average_score"`
	ImprovementTrend []float64       `json:"improvement_trend"`
}

// CampaignStats is a campaign with its derived trend.
type CampaignStats struct {
	Campaign
	Trend       string         `json:"trend"`
	BatchCount  int            `json:"batch_count"`
	LatestBatch *CampaignBatch `json:"latest_batch"`
}
