package sentiment

import (
	"context"
	"sync"

	"github.com/jonreiter/govader"
)

// VaderClassifier is a local, offline Classifier backed by the VADER lexicon.
// It exists for deployments without a Hugging Face key and for tests.
type VaderClassifier struct {
	mu       sync.Mutex
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderClassifier() *VaderClassifier {
	return &VaderClassifier{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Name implements Classifier.
func (v *VaderClassifier) Name() string { return "vader" }

// Classify maps VADER's polarity scores onto the binary label vocabulary so
// the same normalization path handles local and remote classifiers.
func (v *VaderClassifier) Classify(ctx context.Context, text string) ([]Label, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v.mu.Lock()
	scores := v.analyzer.PolarityScores(text)
	v.mu.Unlock()

	return []Label{
		{Label: "POSITIVE", Score: scores.Positive},
		{Label: "NEGATIVE", Score: scores.Negative},
		{Label: "NEUTRAL", Score: scores.Neutral},
	}, nil
}
