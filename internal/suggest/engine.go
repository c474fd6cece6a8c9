// Package suggest produces actionable improvement suggestions for a cold
// email, plus rewritten alternatives.
package suggest

import (
	"sort"
	"strings"
)

// Priority orders suggestions from most to least urgent.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

var priorityRank = map[Priority]int{
	PriorityHigh:   0,
	PriorityMedium: 1,
	PriorityLow:    2,
}

// Suggestion is one detected issue with a fix.
type Suggestion struct {
	Type     string   `json:"type"`
	Message  string   `json:"message"`
	Priority Priority `json:"priority"`
}

// Analysis is the result of running all suggestion rules.
type Analysis struct {
	ImprovementScore int          `json:"improvement_score"`
	Suggestions      []Suggestion `json:"suggestions"`
	WordCount        int          `json:"word_count"`
	SubjectLength    int          `json:"subject_length"`
}

type rule struct {
	kind     string
	message  string
	priority Priority
	failed   func(subject, body, full string) bool
}

var rules = []rule{
	{
		kind:     "subject_length",
		message:  "Subject line is too long. Keep it under 50 characters for better open rates.",
		priority: PriorityHigh,
		failed: func(subject, _, _ string) bool {
			return len(subject) > 50
		},
	},
	{
		kind:     "personalization",
		message:  "Add personalization. Use the recipient's name instead of generic greetings.",
		priority: PriorityHigh,
		failed: func(_, _, full string) bool {
			return strings.Contains(full, "hi there") && !strings.Contains(full, "{name}")
		},
	},
	{
		kind:     "call_to_action",
		message:  "Include a clear call-to-action. Ask a question or suggest a specific next step.",
		priority: PriorityMedium,
		failed: func(_, _, full string) bool {
			return !strings.Contains(full, "?") && !strings.Contains(full, "call")
		},
	},
	{
		kind:     "length",
		message:  "Email is too long. Keep cold emails under 150 words for better response rates.",
		priority: PriorityMedium,
		failed: func(_, body, _ string) bool {
			return len(strings.Fields(body)) > 150
		},
	},
	{
		kind:     "value_proposition",
		message:  "Clarify your value proposition. Explain how you help or what improves.",
		priority: PriorityHigh,
		failed: func(_, _, full string) bool {
			return !containsAny(full, "help", "increase", "improve", "save", "grow")
		},
	},
	{
		kind:     "social_proof",
		message:  "Add social proof. Mention similar clients or companies you've helped.",
		priority: PriorityLow,
		failed: func(_, _, full string) bool {
			return !containsAny(full, "helped", "clients", "customers", "companies")
		},
	},
}

// Analyze runs every rule against the email and scores how many pass.
func Analyze(subject, body string) Analysis {
	full := strings.ToLower(subject + " " + body)
	lowerSubject := strings.ToLower(subject)
	lowerBody := strings.ToLower(body)

	var out []Suggestion
	passed := 0
	for _, r := range rules {
		if r.failed(lowerSubject, lowerBody, full) {
			out = append(out, Suggestion{Type: r.kind, Message: r.message, Priority: r.priority})
		} else {
			passed++
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return priorityRank[out[i].Priority] < priorityRank[out[j].Priority]
	})

	return Analysis{
		ImprovementScore: passed * 100 / len(rules),
		Suggestions:      out,
		WordCount:        len(strings.Fields(body)),
		SubjectLength:    len(subject),
	}
}

func containsAny(text string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
