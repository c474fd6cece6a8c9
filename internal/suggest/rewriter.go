package suggest

import (
	"fmt"
	"strings"
)

const maxSubjectLen = 50

var avoidWords = []string{"Amazing", "Incredible", "Revolutionary", "Best", "Free", "Act now"}

// Context supplies optional details used to fill in a rewrite. Missing
// fields become {placeholder} variables in the output.
type Context struct {
	Company         string `json:"company"`
	Name            string `json:"name"`
	Industry        string `json:"industry"`
	Topic           string `json:"topic"`
	SpecificDetail  string `json:"specific_detail"`
	Benefit         string `json:"benefit"`
	Outcome         string `json:"outcome"`
	SimilarCompany  string `json:"similar_company"`
	SpecificResult  string `json:"specific_result"`
	MeetingDuration string `json:"meeting_duration"`
	DiscussionTopic string `json:"discussion_topic"`
	SenderName      string `json:"sender_name"`
}

// RewriteSuggestion explains one area of the rewrite.
type RewriteSuggestion struct {
	Area       string `json:"area"`
	Issue      string `json:"issue"`
	Suggestion string `json:"suggestion"`
	Example    string `json:"example"`
}

// EmailVersion captures one version of the email with its measurements.
type EmailVersion struct {
	Subject       string `json:"subject"`
	Body          string `json:"body"`
	WordCount     int    `json:"word_count"`
	SubjectLength int    `json:"subject_length"`
}

// Improvements summarizes what the rewrite changed.
type Improvements struct {
	WordReduction       int `json:"word_reduction"`
	SubjectOptimization int `json:"subject_optimization"`
	AreasImproved       int `json:"areas_improved"`
}

// Rewrite is a full rewrite result.
type Rewrite struct {
	Original             EmailVersion        `json:"original"`
	Rewritten            EmailVersion        `json:"rewritten"`
	Improvements         Improvements        `json:"improvements"`
	RewriteSuggestions   []RewriteSuggestion `json:"rewrite_suggestions"`
	EstimatedImprovement int                 `json:"estimated_improvement"`
}

// RewriteSubject strips spam-like words and shortens an overlong subject,
// preferring a concrete question when company or topic is known.
func RewriteSubject(subject, company, topic string) string {
	cleaned := subject
	for _, w := range avoidWords {
		cleaned = strings.ReplaceAll(cleaned, w, "")
	}
	if len(cleaned) > maxSubjectLen {
		switch {
		case company != "" && topic != "":
			cleaned = fmt.Sprintf("Question about %s's %s", company, topic)
		case company != "":
			cleaned = fmt.Sprintf("Quick question about %s", company)
		default:
			cleaned = cleaned[:47] + "..."
		}
	}
	return strings.TrimSpace(cleaned)
}

// FullRewrite rebuilds the email around a proven structure and reports how
// much shorter and sharper the result is.
func FullRewrite(subject, body string, analysis Analysis, ctx Context) Rewrite {
	newSubject := RewriteSubject(subject, ctx.Company, ctx.Topic)
	newBody := rewriteBody(analysis.Suggestions, ctx)
	rewriteSugg := rewriteSuggestions(subject, analysis.Suggestions)

	originalWords := len(strings.Fields(body))
	newWords := len(strings.Fields(newBody))

	return Rewrite{
		Original: EmailVersion{
			Subject:       subject,
			Body:          body,
			WordCount:     originalWords,
			SubjectLength: len(subject),
		},
		Rewritten: EmailVersion{
			Subject:       newSubject,
			Body:          newBody,
			WordCount:     newWords,
			SubjectLength: len(newSubject),
		},
		Improvements: Improvements{
			WordReduction:       originalWords - newWords,
			SubjectOptimization: len(subject) - len(newSubject),
			AreasImproved:       len(rewriteSugg),
		},
		RewriteSuggestions:   rewriteSugg,
		EstimatedImprovement: min(95, 60+len(rewriteSugg)*8),
	}
}

func rewriteBody(suggestions []Suggestion, ctx Context) string {
	company := orPlaceholder(ctx.Company, "{company}")
	name := orPlaceholder(ctx.Name, "{name}")
	industry := orPlaceholder(ctx.Industry, "{industry}")
	detail := orPlaceholder(ctx.SpecificDetail, "{specific_research_detail}")

	var parts []string
	parts = append(parts, fmt.Sprintf("Hi %s,", name), "")
	parts = append(parts, fmt.Sprintf("I noticed %s about %s.", detail, company), "")
	parts = append(parts, fmt.Sprintf("We help %s companies %s.", industry,
		orPlaceholder(ctx.Benefit, "increase efficiency and reduce costs")), "")

	if hasSuggestion(suggestions, "social_proof") {
		parts = append(parts, fmt.Sprintf("We've helped companies like %s achieve %s.",
			orPlaceholder(ctx.SimilarCompany, "{similar_company}"),
			orPlaceholder(ctx.SpecificResult, "significant improvements")), "")
	}

	parts = append(parts, fmt.Sprintf("Would you be open to a brief %s call to discuss?",
		orPlaceholder(ctx.MeetingDuration, "15-minute")), "")
	parts = append(parts, "Best regards,", orPlaceholder(ctx.SenderName, "{your_name}"))

	return strings.Join(parts, "\n")
}

func rewriteSuggestions(subject string, suggestions []Suggestion) []RewriteSuggestion {
	var out []RewriteSuggestion
	for _, s := range suggestions {
		switch s.Type {
		case "subject_length":
			out = append(out, RewriteSuggestion{
				Area:       "Subject Line",
				Issue:      "Too long for optimal open rates",
				Suggestion: "Make it more concise and specific",
				Example:    RewriteSubject(subject, "", ""),
			})
		case "personalization":
			out = append(out, RewriteSuggestion{
				Area:       "Greeting",
				Issue:      "Generic or missing personalization",
				Suggestion: "Use recipient's name and mention company research",
				Example:    "Hi {name}, I noticed {specific_detail} about {company}.",
			})
		case "value_proposition":
			out = append(out, RewriteSuggestion{
				Area:       "Value Proposition",
				Issue:      "Unclear how you help clients",
				Suggestion: "Be specific about benefits and outcomes",
				Example:    "We help {industry} companies increase {metric} by {percentage}% through {method}.",
			})
		case "call_to_action":
			out = append(out, RewriteSuggestion{
				Area:       "Call to Action",
				Issue:      "Missing or weak call to action",
				Suggestion: "Include specific, low-commitment ask",
				Example:    "Would you be open to a brief 15-minute call to explore how this might work for {company}?",
			})
		case "length":
			out = append(out, RewriteSuggestion{
				Area:       "Email Length",
				Issue:      "Email is too long",
				Suggestion: "Keep cold emails under 150 words",
				Example:    "Focus on research, value proposition, social proof, then the ask",
			})
		case "social_proof":
			out = append(out, RewriteSuggestion{
				Area:       "Social Proof",
				Issue:      "Missing credibility indicators",
				Suggestion: "Mention similar clients or results",
				Example:    "We've helped similar {industry} companies achieve {specific_outcome}.",
			})
		}
	}
	return out
}

func hasSuggestion(suggestions []Suggestion, kind string) bool {
	for _, s := range suggestions {
		if s.Type == kind {
			return true
		}
	}
	return false
}

func orPlaceholder(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
