package scoring

import "regexp"

// Keyword and pattern tables. All are read-only after init and safe for
// concurrent use.

var spamWords = []string{
	"free", "guarantee", "act now", "limited time", "urgent", "act fast",
	"amazing deal", "incredible offer", "once in a lifetime", "exclusive",
	"make money fast", "get rich", "no risk", "risk free",
}

var professionalWords = []string{
	"please", "thank you", "appreciate", "respect", "understand",
	"consider", "opportunity", "collaboration", "partnership",
}

var valueWords = []string{
	"save", "increase", "improve", "reduce", "optimize", "streamline",
	"boost", "enhance", "grow", "scale", "efficiency", "productivity",
}

var researchIndicators = []string{
	"noticed", "saw", "read", "found", "discovered", "recent", "expansion",
	"launch", "announcement", "news", "article", "post", "comment", "background",
}

var genericFlattery = []string{
	"love your company", "great company", "amazing work", "impressed by",
}

// greetingPattern must match from the very start of the body: a casual
// salutation, one bare name token, then a comma.
var greetingPattern = regexp.MustCompile(`(?i)^(hi|hello)\s+([a-z]+),`)

// metricsPattern picks up percentages, multipliers and dollar amounts.
var metricsPattern = regexp.MustCompile(`\d+%|\d+x|\$\d+`)

var (
	selfWordPattern  = regexp.MustCompile(`\b(i|we|our|my)\b`)
	otherWordPattern = regexp.MustCompile(`\b(you|your)\b`)
)

var goodCTAPatterns = compilePatterns(
	`open to.*\?`, `interested in.*\?`, `would you.*\?`,
	`quick question`, `brief chat`, `quick call`, `thoughts on`,
)

var badCTAPatterns = compilePatterns(
	`book.*demo`, `schedule.*meeting`, `sign up`, `buy now`,
	`call me`, `download.*now`,
)

func compilePatterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		out = append(out, regexp.MustCompile(expr))
	}
	return out
}
