package scoring

// Verdict maps an overall score to its human-readable tier. Boundaries are
// inclusive: 85 is Excellent, 84 is Good.
func Verdict(overallScore int) string {
	switch {
	case overallScore >= 85:
		return "Excellent - This email is highly likely to get responses"
	case overallScore >= 70:
		return "Good - Strong email with minor improvements needed"
	case overallScore >= 50:
		return "Fair - Decent foundation but needs significant improvements"
	case overallScore >= 30:
		return "Poor - Major issues that will hurt response rates"
	default:
		return "Very Poor - This email needs a complete rewrite"
	}
}
