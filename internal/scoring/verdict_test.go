package scoring

import "testing"

func TestVerdictThresholds(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{score: 100, want: "Excellent - This email is highly likely to get responses"},
		{score: 85, want: "Excellent - This email is highly likely to get responses"},
		{score: 84, want: "Good - Strong email with minor improvements needed"},
		{score: 70, want: "Good - Strong email with minor improvements needed"},
		{score: 69, want: "Fair - Decent foundation but needs significant improvements"},
		{score: 50, want: "Fair - Decent foundation but needs significant improvements"},
		{score: 49, want: "Poor - Major issues that will hurt response rates"},
		{score: 30, want: "Poor - Major issues that will hurt response rates"},
		{score: 29, want: "Very Poor - This email needs a complete rewrite"},
		{score: 0, want: "Very Poor - This email needs a complete rewrite"},
	}

	for _, tc := range cases {
		if got := Verdict(tc.score); got != tc.want {
			t.Errorf("Verdict(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}
