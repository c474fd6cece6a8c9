package sentiment

import "strings"

// Signal is the normalized outcome of one classifier response: two raw
// confidences and, via Score, a single scalar in roughly [-1, 1].
type Signal struct {
	Positive float64
	Negative float64
}

// Score collapses the signal into positive minus negative.
func (s Signal) Score() float64 {
	return s.Positive - s.Negative
}

// Neutral is the degrade value used when no usable classifier response
// exists.
func Neutral() Signal {
	return Signal{}
}

type labelFamily int

const (
	familyUnknown labelFamily = iota
	familyStar
	familyBinary
)

// familyOf tags a raw label with its vocabulary family and returns the
// canonical uppercase form the accumulation rules switch on.
func familyOf(raw string) (labelFamily, string) {
	label := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(label, "1 STAR"), strings.HasPrefix(label, "2 STAR"),
		strings.HasPrefix(label, "3 STAR"), strings.HasPrefix(label, "4 STAR"),
		strings.HasPrefix(label, "5 STAR"):
		return familyStar, label
	case label == "POSITIVE", label == "POS", strings.HasPrefix(label, "LABEL_2"),
		label == "NEGATIVE", label == "NEG", strings.HasPrefix(label, "LABEL_0"),
		label == "NEUTRAL", strings.HasPrefix(label, "LABEL_1"):
		return familyBinary, label
	default:
		return familyUnknown, label
	}
}

// Blend folds a ranked label list into a Signal.
//
// Star-rating labels accumulate: 4 and 5 stars add to positive, 1 and 2 stars
// add to negative, and 3 stars counts as mildly positive at a fifth of its
// confidence. Binary and ternary labels overwrite instead of accumulating,
// with neutral lifting positive to at least 0.3x its confidence. Labels from
// neither family leave the signal untouched, so an unrecognized vocabulary
// yields Neutral().
func Blend(labels []Label) Signal {
	var sig Signal
	for _, l := range labels {
		family, label := familyOf(l.Label)
		switch family {
		case familyStar:
			switch {
			case strings.HasPrefix(label, "5 STAR"), strings.HasPrefix(label, "4 STAR"):
				sig.Positive += l.Score
			case strings.HasPrefix(label, "1 STAR"), strings.HasPrefix(label, "2 STAR"):
				sig.Negative += l.Score
			default: // 3 stars
				sig.Positive += 0.2 * l.Score
			}
		case familyBinary:
			switch {
			case label == "POSITIVE", label == "POS", strings.HasPrefix(label, "LABEL_2"):
				sig.Positive = l.Score
			case label == "NEGATIVE", label == "NEG", strings.HasPrefix(label, "LABEL_0"):
				sig.Negative = l.Score
			default: // neutral
				if lifted := 0.3 * l.Score; lifted > sig.Positive {
					sig.Positive = lifted
				}
			}
		}
	}
	return sig
}
