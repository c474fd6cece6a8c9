package suggest

import (
	"strings"
	"testing"
)

func TestAnalyzeCleanEmailPassesAllRules(t *testing.T) {
	subject := "Quick question about Acme's onboarding"
	body := "Hi Jordan,\n\nI noticed your team is scaling fast. We help SaaS clients improve onboarding completion.\n\nWould you be open to a quick call?\n\nBest,\nSam"

	got := Analyze(subject, body)
	if got.ImprovementScore != 100 {
		t.Errorf("ImprovementScore = %d, want 100", got.ImprovementScore)
	}
	if len(got.Suggestions) != 0 {
		t.Errorf("expected no suggestions, got %v", got.Suggestions)
	}
	if got.SubjectLength != len(subject) {
		t.Errorf("SubjectLength = %d, want %d", got.SubjectLength, len(subject))
	}
}

func TestAnalyzeFlagsWeakEmail(t *testing.T) {
	subject := strings.Repeat("x", 51)
	body := "hi there, buy our product now."

	got := Analyze(subject, body)
	if got.ImprovementScore != 16 {
		t.Errorf("ImprovementScore = %d, want 16", got.ImprovementScore)
	}
	wantOrder := []string{"subject_length", "personalization", "value_proposition", "call_to_action", "social_proof"}
	if len(got.Suggestions) != len(wantOrder) {
		t.Fatalf("got %d suggestions, want %d: %v", len(got.Suggestions), len(wantOrder), got.Suggestions)
	}
	for i, want := range wantOrder {
		if got.Suggestions[i].Type != want {
			t.Errorf("suggestion[%d].Type = %q, want %q", i, got.Suggestions[i].Type, want)
		}
	}
}

func TestAnalyzeRules(t *testing.T) {
	longBody := strings.Repeat("word ", 151)
	tests := []struct {
		name    string
		subject string
		body    string
		flagged string
	}{
		{"long body", "Quick question", "Hi Jordan, we help clients improve results. Interested? " + longBody, "length"},
		{"generic greeting", "Quick question", "Hi there, we help clients improve results. Interested?", "personalization"},
		{"no cta", "Quick note", "Hi Jordan, we help clients improve results.", "call_to_action"},
		{"no value prop", "Quick question", "Hi Jordan, our clients love us. Interested?", "value_proposition"},
		{"no social proof", "Quick question", "Hi Jordan, we help teams improve results. Interested?", "social_proof"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.subject, tt.body)
			if !hasSuggestion(got.Suggestions, tt.flagged) {
				t.Errorf("expected %q suggestion, got %v", tt.flagged, got.Suggestions)
			}
			if len(got.Suggestions) != 1 {
				t.Errorf("expected exactly one suggestion, got %v", got.Suggestions)
			}
		})
	}
}

func TestAnalyzePlaceholderGreetingCountsAsPersonalized(t *testing.T) {
	got := Analyze("Quick question", "Hi there {name}, we help clients improve results. Interested?")
	if hasSuggestion(got.Suggestions, "personalization") {
		t.Errorf("template placeholder should satisfy personalization, got %v", got.Suggestions)
	}
}
