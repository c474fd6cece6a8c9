package scoring

// Category names are part of the wire contract; order and identity are fixed.
const (
	CategoryRelevance       = "Relevance & Hook"
	CategoryValue           = "Value Proposition"
	CategoryCTA             = "Call to Action (CTA)"
	CategoryProfessionalism = "Professionalism"
)

// Per-category maximums. They sum to 100 so the overall score is a percentage.
const (
	MaxRelevance       = 45
	MaxValue           = 30
	MaxCTA             = 15
	MaxProfessionalism = 10
)

// ScoreCategory is one scored rubric dimension with its explanation.
type ScoreCategory struct {
	Name     string `json:"name"`
	Score    int    `json:"score"`
	MaxScore int    `json:"maxScore"`
	Feedback string `json:"feedback"`
}

// AnalysisResult is the complete qualification of one email. Breakdown always
// holds exactly four categories in rubric order.
type AnalysisResult struct {
	OverallScore int             `json:"overallScore"`
	Verdict      string          `json:"verdict"`
	Breakdown    []ScoreCategory `json:"breakdown"`
}

// Professionalism returns the Professionalism category for in-place adjustment,
// or nil if the breakdown is malformed.
func (r *AnalysisResult) Professionalism() *ScoreCategory {
	for i := range r.Breakdown {
		if r.Breakdown[i].Name == CategoryProfessionalism {
			return &r.Breakdown[i]
		}
	}
	return nil
}

// Retotal recomputes OverallScore from the breakdown. Callers that mutate a
// category score must call this rather than patching the total.
func (r *AnalysisResult) Retotal() {
	total := 0
	for _, cat := range r.Breakdown {
		total += cat.Score
	}
	r.OverallScore = total
}
