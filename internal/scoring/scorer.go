package scoring

import (
	"fmt"
	"regexp"
	"strings"
)

// Score deterministically grades a cold email against the four-part rubric.
// It is a pure function: identical inputs always produce identical results,
// and any input text, including empty strings, yields a complete breakdown.
func Score(subject, body string) AnalysisResult {
	relevanceScore, relevanceFeedback := scoreRelevance(body)
	valueScore, valueFeedback := scoreValue(body)
	ctaScore, ctaFeedback := scoreCTA(body)
	profScore, profFeedback := scoreProfessionalism(body)

	result := AnalysisResult{
		Breakdown: []ScoreCategory{
			{Name: CategoryRelevance, Score: relevanceScore, MaxScore: MaxRelevance, Feedback: relevanceFeedback},
			{Name: CategoryValue, Score: valueScore, MaxScore: MaxValue, Feedback: valueFeedback},
			{Name: CategoryCTA, Score: ctaScore, MaxScore: MaxCTA, Feedback: ctaFeedback},
			{Name: CategoryProfessionalism, Score: profScore, MaxScore: MaxProfessionalism, Feedback: profFeedback},
		},
	}
	result.Retotal()
	result.Verdict = Verdict(result.OverallScore)

	_ = subject // the current rules grade body text only; subject stays part of the contract
	return result
}

func scoreRelevance(body string) (int, string) {
	score := 0
	var feedback []string

	if match := greetingPattern.FindString(body); match != "" {
		score += 15
		feedback = append(feedback, fmt.Sprintf("Good start with a personalized greeting ('%s').", match))
	} else {
		feedback = append(feedback, "Lacks a direct, personalized greeting like 'Hi [Name],'.")
	}

	switch researchFound := countPresent(body, researchIndicators); {
	case researchFound >= 2:
		score += 20
		feedback = append(feedback, "Strong evidence of specific research about the recipient.")
	case researchFound == 1:
		score += 10
		feedback = append(feedback, "Shows some research effort.")
	default:
		feedback = append(feedback, "No clear signs of research beyond the name.")
	}

	if countPresent(body, genericFlattery) > 0 {
		score -= 5
		feedback = append(feedback, "Relies on generic flattery, which can feel insincere.")
	} else {
		score += 10
		feedback = append(feedback, "Avoids generic flattery, making the personalization feel more authentic.")
	}

	return clamp(score, 0, MaxRelevance), strings.Join(feedback, " ")
}

func scoreValue(body string) (int, string) {
	score := 0
	var feedback []string

	switch valueMentions := countPresent(body, valueWords); {
	case valueMentions >= 2:
		score += 15
		feedback = append(feedback, "Clear value proposition with specific benefit-oriented words.")
	case valueMentions == 1:
		score += 8
		feedback = append(feedback, "Some value mentioned but could be stronger and more direct.")
	default:
		feedback = append(feedback, "Weak or unclear value proposition. Focus on benefits like 'saving time' or 'increasing revenue'.")
	}

	if metricsPattern.MatchString(body) {
		score += 10
		feedback = append(feedback, "Includes specific metrics which adds credibility.")
	} else {
		feedback = append(feedback, "Could be strengthened by including specific metrics or numbers.")
	}

	lower := strings.ToLower(body)
	selfCount := len(selfWordPattern.FindAllString(lower, -1))
	otherCount := len(otherWordPattern.FindAllString(lower, -1))

	// Asymmetric on purpose: the bonus uses >=, the penalty only fires when
	// self-references exceed recipient references by more than one. In between
	// is a dead zone with no score change and no feedback.
	switch {
	case otherCount >= selfCount:
		score += 5
		feedback = append(feedback, "Good recipient-focused language.")
	case selfCount > otherCount+1:
		score -= 5
		feedback = append(feedback, "Language is too self-focused. Use 'you' and 'your' more often to center the recipient.")
	}

	return clamp(score, 0, MaxValue), strings.Join(feedback, " ")
}

func scoreCTA(body string) (int, string) {
	score := 0
	var feedback []string
	lower := strings.ToLower(body)

	goodFound := anyMatch(lower, goodCTAPatterns)
	if goodFound {
		score += 10
		feedback = append(feedback, "Uses a low-friction, interest-gauging approach.")
	}

	badFound := anyMatch(lower, badCTAPatterns)
	if badFound {
		score -= 5
		feedback = append(feedback, "Contains high-friction demands, which can scare prospects away.")
	}

	if strings.Count(body, "?") >= 1 {
		score += 5
		feedback = append(feedback, "Includes engaging questions.")
	} else {
		feedback = append(feedback, "Could benefit from an engaging question to prompt a reply.")
	}

	if !goodFound && !badFound {
		feedback = append(feedback, "No clear call to action was identified.")
	}

	return clamp(score, 0, MaxCTA), strings.Join(feedback, " ")
}

func scoreProfessionalism(body string) (int, string) {
	// Penalty-based: every other category earns points, this one starts full
	// and loses them.
	score := MaxProfessionalism
	var feedback []string

	if spamFound := countOccurrences(body, spamWords); spamFound > 0 {
		score -= spamFound * 2
		feedback = append(feedback, fmt.Sprintf("Contains %d spam-like words.", spamFound))
	} else {
		feedback = append(feedback, "Avoids spam-like language.")
	}

	if countPresent(body, professionalWords) >= 1 {
		feedback = append(feedback, "Uses courteous language.")
	} else {
		score -= 2
		feedback = append(feedback, "Tone could be improved with more courteous language (e.g., 'thank you', 'appreciate').")
	}

	switch wordCount := len(strings.Fields(body)); {
	case wordCount >= 50 && wordCount <= 150:
		feedback = append(feedback, "Good length for a cold email.")
	case wordCount < 50:
		score -= 2
		feedback = append(feedback, "Email might be too brief to convey value.")
	default:
		score -= 2
		feedback = append(feedback, "Email is lengthy and could be more concise.")
	}

	return clamp(score, 0, MaxProfessionalism), strings.Join(feedback, " ")
}

// countPresent counts how many words from the list occur in the text at least
// once. Each word counts once no matter how often it repeats.
func countPresent(text string, words []string) int {
	lower := strings.ToLower(text)
	found := 0
	for _, word := range words {
		if strings.Contains(lower, word) {
			found++
		}
	}
	return found
}

// countOccurrences sums every non-overlapping occurrence of every listed
// phrase. Repeats count, unlike countPresent.
func countOccurrences(text string, phrases []string) int {
	lower := strings.ToLower(text)
	total := 0
	for _, phrase := range phrases {
		total += strings.Count(lower, phrase)
	}
	return total
}

func anyMatch(text string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
