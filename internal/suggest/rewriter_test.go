package suggest

import (
	"strings"
	"testing"
)

func TestRewriteSubject(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		company string
		topic   string
		want    string
	}{
		{"strips spam words", "Amazing Free offer", "", "", "offer"},
		{"short subject untouched", "Quick question about Acme", "", "", "Quick question about Acme"},
		{"long with company and topic", strings.Repeat("a", 60), "Acme", "churn", "Question about Acme's churn"},
		{"long with company only", strings.Repeat("a", 60), "Acme", "", "Quick question about Acme"},
		{"long without context truncates", strings.Repeat("a", 60), "", "", strings.Repeat("a", 47) + "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RewriteSubject(tt.subject, tt.company, tt.topic); got != tt.want {
				t.Errorf("RewriteSubject() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFullRewriteWeakEmail(t *testing.T) {
	subject := strings.Repeat("x", 51)
	body := "hi there, buy our product now."
	analysis := Analyze(subject, body)

	got := FullRewrite(subject, body, analysis, Context{})

	if got.Improvements.AreasImproved != 5 {
		t.Errorf("AreasImproved = %d, want 5", got.Improvements.AreasImproved)
	}
	if got.EstimatedImprovement != 95 {
		t.Errorf("EstimatedImprovement = %d, want capped 95", got.EstimatedImprovement)
	}
	if !strings.HasPrefix(got.Rewritten.Body, "Hi {name},") {
		t.Errorf("rewritten body should open with placeholder greeting, got %q", got.Rewritten.Body)
	}
	if !strings.Contains(got.Rewritten.Body, "We've helped companies like {similar_company}") {
		t.Errorf("expected social proof line, got %q", got.Rewritten.Body)
	}
	if got.Original.WordCount != 6 {
		t.Errorf("Original.WordCount = %d, want 6", got.Original.WordCount)
	}
	if got.Rewritten.SubjectLength > maxSubjectLen {
		t.Errorf("rewritten subject still too long: %d", got.Rewritten.SubjectLength)
	}
}

func TestFullRewriteUsesContext(t *testing.T) {
	subject := strings.Repeat("x", 60)
	body := "hi there, buy our product now."
	analysis := Analyze(subject, body)

	got := FullRewrite(subject, body, analysis, Context{
		Company:        "Acme",
		Name:           "Jordan",
		Industry:       "SaaS",
		Topic:          "onboarding",
		SpecificDetail: "your Series B announcement",
		SenderName:     "Sam",
	})

	if got.Rewritten.Subject != "Question about Acme's onboarding" {
		t.Errorf("subject = %q", got.Rewritten.Subject)
	}
	if !strings.HasPrefix(got.Rewritten.Body, "Hi Jordan,") {
		t.Errorf("body should greet by name, got %q", got.Rewritten.Body)
	}
	if !strings.Contains(got.Rewritten.Body, "I noticed your Series B announcement about Acme.") {
		t.Errorf("missing research opening: %q", got.Rewritten.Body)
	}
	if !strings.HasSuffix(got.Rewritten.Body, "Best regards,\nSam") {
		t.Errorf("missing closing: %q", got.Rewritten.Body)
	}
}

func TestFullRewriteCleanEmailEstimate(t *testing.T) {
	subject := "Quick question about Acme's onboarding"
	body := "Hi Jordan,\n\nWe help SaaS clients improve onboarding. Open to a quick call?"
	analysis := Analyze(subject, body)

	got := FullRewrite(subject, body, analysis, Context{})
	if got.Improvements.AreasImproved != 0 {
		t.Errorf("AreasImproved = %d, want 0", got.Improvements.AreasImproved)
	}
	if got.EstimatedImprovement != 60 {
		t.Errorf("EstimatedImprovement = %d, want 60", got.EstimatedImprovement)
	}
	if strings.Contains(got.Rewritten.Body, "We've helped companies like") {
		t.Errorf("social proof line should be omitted: %q", got.Rewritten.Body)
	}
}
