package analytics

import "time"

// LogEntry is one recorded qualification request. Only request metadata and
// the resulting score are kept, never the email text itself.
type LogEntry struct {
	ID               int64     `json:"id"`
	Timestamp        time.Time `json:"timestamp"`
	IPAddress        string    `json:"ipAddress"`
	UserAgent        string    `json:"userAgent"`
	SubjectLength    int       `json:"subjectLength"`
	BodyLength       int       `json:"bodyLength"`
	OverallScore     int       `json:"overallScore"`
	AIEnhanced       bool      `json:"aiEnhanced"`
	AIModel          string    `json:"aiModel,omitempty"`
	ProcessingTimeMS int64     `json:"processingTimeMs"`
	ErrorOccurred    bool      `json:"errorOccurred"`
	ErrorMessage     string    `json:"errorMessage,omitempty"`
}

// Summary aggregates a trailing window of requests for the dashboard. The
// today and last-24h counts are sub-windows of the same query.
type Summary struct {
	TotalRequests      int     `json:"totalRequests"`
	TodayRequests      int     `json:"todayRequests"`
	Last24hRequests    int     `json:"last24hRequests"`
	SuccessfulRequests int     `json:"successfulRequests"`
	AIEnhancedRequests int     `json:"aiEnhancedRequests"`
	AvgScore           float64 `json:"avgScore"`
	UniqueUsers        int     `json:"uniqueUsers"`
	AvgProcessingMS    float64 `json:"avgProcessingTimeMs"`
	SuccessRate        float64 `json:"successRate"`
}

// DailyStat is one calendar day of request volume.
type DailyStat struct {
	Date               string  `json:"date"`
	TotalRequests      int     `json:"totalRequests"`
	SuccessfulRequests int     `json:"successfulRequests"`
	AIEnhancedRequests int     `json:"aiEnhancedRequests"`
	AvgScore           float64 `json:"avgScore"`
}

// Filter narrows the advanced-analytics queries. Zero values mean "no
// constraint"; score bounds use pointers so 0 stays expressible.
type Filter struct {
	StartDate  string
	EndDate    string
	IPContains string
	ScoreMin   *int
	ScoreMax   *int
}

// FilteredStats summarizes the rows matched by a Filter.
type FilteredStats struct {
	TotalRequests   int     `json:"totalRequests"`
	AvgScore        float64 `json:"avgScore"`
	MinScore        int     `json:"minScore"`
	MaxScore        int     `json:"maxScore"`
	AvgProcessingMS float64 `json:"avgProcessingTimeMs"`
	UniqueIPs       int     `json:"uniqueIps"`
	AIEnhancedCount int     `json:"aiEnhancedCount"`
	ErrorCount      int     `json:"errorCount"`
}

// HourlyBucket is request volume for one hour of the day, "00:00".."23:00".
type HourlyBucket struct {
	Hour     string  `json:"hour"`
	Requests int     `json:"requests"`
	AvgScore float64 `json:"avgScore"`
}

// ScoreBand is one slice of the score-distribution histogram.
type ScoreBand struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// Advanced is the filtered-analytics response.
type Advanced struct {
	FilteredStats      FilteredStats  `json:"filteredStats"`
	HourlyDistribution []HourlyBucket `json:"hourlyDistribution"`
	ScoreDistribution  []ScoreBand    `json:"scoreDistribution"`
}

// scoreBandLabel buckets a score the way the dashboard histogram expects.
func scoreBandLabel(score int) string {
	switch {
	case score >= 80:
		return "Excellent (80-100)"
	case score >= 60:
		return "Good (60-79)"
	case score >= 40:
		return "Fair (40-59)"
	default:
		return "Poor (0-39)"
	}
}
