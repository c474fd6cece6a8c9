// Package templates serves the cold-email template library.
package templates

import (
	"regexp"
	"sort"
	"strings"
)

// Template is one industry template. Subject and Body carry {placeholder}
// variables the caller can fill.
type Template struct {
	Key     string   `json:"key"`
	Name    string   `json:"name"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
	Tips    []string `json:"tips"`
}

// Summary is the list view of a template.
type Summary struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	Preview   string `json:"preview"`
	TipsCount int    `json:"tips_count"`
}

// Generated is a template with variables applied and the remaining
// placeholders listed.
type Generated struct {
	Name            string   `json:"name"`
	Subject         string   `json:"subject"`
	Body            string   `json:"body"`
	Tips            []string `json:"tips"`
	VariablesNeeded []string `json:"variables_needed"`
}

const defaultIndustry = "saas"

var placeholderPattern = regexp.MustCompile(`\{(\w+)\}`)

var catalog = map[string]Template{
	"saas": {
		Key:     "saas",
		Name:    "SaaS Cold Outreach",
		Subject: "Quick question about {company}'s {pain_point}",
		Body: `Hi {name},

I noticed {specific_research_detail} about {company}.

I help {company_type} companies like yours {value_proposition} through {solution_method}.

Would you be open to a brief {duration} call to explore how this could {specific_benefit}?

Best regards,
{sender_name}`,
		Tips: []string{
			"Keep subject line under 50 characters",
			"Mention specific company research",
			"Include clear value proposition",
			"End with specific, low-commitment ask",
		},
	},
	"ecommerce": {
		Key:     "ecommerce",
		Name:    "E-commerce Partnership",
		Subject: "Increasing {company}'s conversion rates",
		Body: `Hi {name},

I saw {specific_research_detail} and was impressed by {company}'s growth.

We've helped similar {industry} businesses increase {metric} by {percentage}% through {method}.

Would you be interested in a quick call to see how this might work for {company}?

Best,
{sender_name}`,
		Tips: []string{
			"Reference specific company achievements",
			"Use concrete metrics and percentages",
			"Mention similar industry success",
			"Keep email under 100 words",
		},
	},
	"consulting": {
		Key:     "consulting",
		Name:    "Professional Services",
		Subject: "Thoughts on {company}'s {current_challenge}",
		Body: `Hi {name},

I've been following {company}'s journey in {industry} and particularly noted {specific_observation}.

Based on our work with {similar_companies}, I believe there's an opportunity to {improvement_area}.

Would you be open to a brief conversation about how we've helped similar organizations {specific_outcome}?

Best regards,
{sender_name}`,
		Tips: []string{
			"Show you've researched their business",
			"Reference similar client successes",
			"Focus on outcomes, not features",
			"Use consultative tone, not sales-y",
		},
	},
	"finance": {
		Key:     "finance",
		Name:    "Financial Services",
		Subject: "Cost optimization opportunity for {company}",
		Body: `Hi {name},

I noticed {company} recently {recent_event}. Congratulations on the growth!

We specialize in helping {company_size} companies in {industry} optimize {financial_area} and have achieved average savings of {percentage}%.

Would you be interested in a 15-minute call to explore potential opportunities?

Best,
{sender_name}`,
		Tips: []string{
			"Reference recent company news",
			"Use specific financial metrics",
			"Mention relevant company size/industry",
			"Suggest short, specific meeting duration",
		},
	},
	"followup": {
		Key:     "followup",
		Name:    "Follow-up Email",
		Subject: "Following up on {previous_topic}",
		Body: `Hi {name},

I wanted to follow up on our conversation about {previous_topic}.

Since we last spoke, {relevant_update}. This reminded me of the {specific_point} we discussed.

Would it be helpful to schedule a brief call to explore {next_steps}?

Best regards,
{sender_name}`,
		Tips: []string{
			"Reference specific previous conversation",
			"Provide relevant update or value",
			"Suggest concrete next steps",
			"Keep tone helpful, not pushy",
		},
	},
}

// List returns the catalog summaries sorted by key.
func List() []Summary {
	out := make([]Summary, 0, len(catalog))
	for _, t := range catalog {
		out = append(out, Summary{
			Key:       t.Key,
			Name:      t.Name,
			Preview:   t.Subject,
			TipsCount: len(t.Tips),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Generate fills a template with the given variables. Unknown industries fall
// back to the SaaS template. Unfilled placeholders stay in the text and are
// reported in VariablesNeeded.
func Generate(industry string, vars map[string]string) Generated {
	t, ok := catalog[strings.ToLower(strings.TrimSpace(industry))]
	if !ok {
		t = catalog[defaultIndustry]
	}

	subject := fill(t.Subject, vars)
	body := fill(t.Body, vars)
	return Generated{
		Name:            t.Name,
		Subject:         subject,
		Body:            body,
		Tips:            t.Tips,
		VariablesNeeded: placeholders(subject + body),
	}
}

func fill(text string, vars map[string]string) string {
	if len(vars) == 0 {
		return text
	}
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		name := strings.Trim(match, "{}")
		if value, ok := vars[name]; ok {
			return value
		}
		return match
	})
}

func placeholders(text string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, match := range placeholderPattern.FindAllStringSubmatch(text, -1) {
		if _, ok := seen[match[1]]; ok {
			continue
		}
		seen[match[1]] = struct{}{}
		out = append(out, match[1])
	}
	sort.Strings(out)
	return out
}
