package sentiment

import "math"

// ConfidenceLevel is a coarse band of the confidence score.
type ConfidenceLevel string

const (
	High   ConfidenceLevel = "High"
	Medium ConfidenceLevel = "Medium"
	Low    ConfidenceLevel = "Low"
)

const (
	// confidenceDamping is added to the total signal in the denominator.
	confidenceDamping = 2.0
	highThreshold     = 60.0
	mediumThreshold   = 30.0
)

// Confidence returns the confidence score (0-100, one decimal) and its tier.
// The tier is taken from the unrounded score.
func Confidence(t Totals) (float64, ConfidenceLevel) {
	signal := t.Pos + t.Neg
	if signal == 0 {
		return 0, Low
	}

	raw := math.Abs(t.Difference) / (signal + confidenceDamping) * 100
	raw = math.Min(math.Max(raw, 0), 100)

	return math.Round(raw*10) / 10, level(raw)
}

func level(confidence float64) ConfidenceLevel {
	switch {
	case confidence > highThreshold:
		return High
	case confidence > mediumThreshold:
		return Medium
	default:
		return Low
	}
}
