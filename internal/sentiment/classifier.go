// Package sentiment turns external tone classifiers into a bounded adjustment
// on top of the deterministic scoring rubric.
package sentiment

import (
	"context"
	"errors"
)

// ErrUnusableResponse marks a classifier outcome where the service answered
// but the answer carries no usable labels: a non-200 status (a loading model's
// 503, an exhausted fallback chain) or an unparseable payload. The blender
// treats it as a neutral reading, not as an outage.
var ErrUnusableResponse = errors.New("unusable classifier response")

// Label is one ranked prediction from a sentiment classifier. The label
// vocabulary varies by model ("5 stars", "POSITIVE", "LABEL_2", ...); Blend
// normalizes it.
type Label struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classifier produces ranked sentiment labels for a piece of text. Errors
// wrapping ErrUnusableResponse mean the service answered badly; any other
// error means it could not be reached at all.
type Classifier interface {
	Classify(ctx context.Context, text string) ([]Label, error)
	// Name identifies the backend ("huggingface", "vader") for usage logs.
	Name() string
}
