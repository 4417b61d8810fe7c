package sentiment

import "math"

const (
	negationWindow = 2
	negationFactor = -0.5
)

// WordScore is the word-level outcome of scoring a token sequence.
type WordScore struct {
	PosScore  float64
	NegScore  float64
	WordCount int
}

// ScoreWords sums lexicon weights over tokens. A word preceded by a negation word
// within the last two tokens has its weight multiplied by -0.5, so "not good" is
// mildly negative. Negation does not chain; only the raw preceding tokens are checked.
func ScoreWords(tokens []Token) WordScore {
	score := WordScore{WordCount: len(tokens)}

	for i, tok := range tokens {
		weight := WordWeight(tok.Text)
		if weight == 0 {
			continue
		}

		if negated(tokens, i) {
			weight *= negationFactor
		}

		if weight > 0 {
			score.PosScore += weight
		} else {
			score.NegScore += math.Abs(weight)
		}
	}

	return score
}

func negated(tokens []Token, i int) bool {
	for back := 1; back <= negationWindow; back++ {
		if i-back < 0 {
			break
		}
		if IsNegation(tokens[i-back].Text) {
			return true
		}
	}
	return false
}
