package sentiment

import (
	"math"
	"strings"
)

// PhraseScore collects the phrases found in a text and their bucketed weights.
type PhraseScore struct {
	Found    []string
	Positive []string
	Negative []string
	PosScore float64
	NegScore float64
}

// DetectPhrases checks the lowercased text for every configured phrase.
// Matching is plain case-insensitive substring matching, so a phrase also matches
// inside longer words ("not badly" contains "not bad"). Zero-weight phrases are
// listed in Found only.
func DetectPhrases(text string) PhraseScore {
	lowerText := strings.ToLower(text)
	result := PhraseScore{
		Found:    []string{},
		Positive: []string{},
		Negative: []string{},
	}

	for _, p := range phrases {
		if !strings.Contains(lowerText, p.Text) {
			continue
		}

		result.Found = append(result.Found, p.Text)
		switch {
		case p.Weight > 0:
			result.PosScore += p.Weight
			result.Positive = append(result.Positive, p.Text)
		case p.Weight < 0:
			result.NegScore += math.Abs(p.Weight)
			result.Negative = append(result.Negative, p.Text)
		}
	}

	return result
}
