package sentiment

import (
	"context"
	"testing"
)

func TestVaderClassifier(t *testing.T) {
	classifier := NewVaderClassifier()

	labels, err := classifier.Classify(context.Background(), "This is wonderful, I love it and truly appreciate the great work")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(labels) != 3 {
		t.Fatalf("expected 3 labels, got %d", len(labels))
	}
	sig := Blend(labels)
	if sig.Positive <= sig.Negative {
		t.Fatalf("expected clearly positive text to score positive, got %+v", sig)
	}
}

func TestVaderClassifierHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewVaderClassifier().Classify(ctx, "text"); err == nil {
		t.Fatalf("expected a context error")
	}
}
