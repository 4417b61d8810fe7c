package sentiment

// Label is the polarity assigned to a review.
type Label string

const (
	Positive Label = "Positive"
	Negative Label = "Negative"
	Neutral  Label = "Neutral"
)

const (
	phraseMultiplier   = 1.5
	decisiveDifference = 3.0
	decisivePhrase     = 3.0
	positiveRating     = 4.0
	negativeRating     = 2.0
)

// Totals are the word and phrase scores merged with the phrase multiplier applied.
type Totals struct {
	Pos        float64
	Neg        float64
	Difference float64
	PhrasePos  float64
	PhraseNeg  float64
}

// Aggregate merges word-level and phrase-level scores. Phrase weights count 1.5x.
func Aggregate(words WordScore, found PhraseScore) Totals {
	pos := words.PosScore + found.PosScore*phraseMultiplier
	neg := words.NegScore + found.NegScore*phraseMultiplier
	return Totals{
		Pos:        pos,
		Neg:        neg,
		Difference: pos - neg,
		PhrasePos:  found.PosScore,
		PhraseNeg:  found.NegScore,
	}
}

type rule struct {
	label Label
	match func(t Totals, rating float64, rated bool) bool
}

// rules are evaluated top to bottom; the first match wins. Boundary values fall
// through (a difference of exactly 3 is not decisive).
var rules = []rule{
	{Positive, func(t Totals, _ float64, _ bool) bool { return t.Difference > decisiveDifference }},
	{Negative, func(t Totals, _ float64, _ bool) bool { return t.Difference < -decisiveDifference }},
	{Positive, func(t Totals, _ float64, _ bool) bool { return t.PhrasePos >= decisivePhrase && t.PhraseNeg == 0 }},
	{Negative, func(t Totals, _ float64, _ bool) bool { return t.PhraseNeg >= decisivePhrase && t.PhrasePos == 0 }},
	{Positive, func(t Totals, r float64, rated bool) bool { return rated && r >= positiveRating && t.Difference >= 0 }},
	{Negative, func(t Totals, r float64, rated bool) bool { return rated && r <= negativeRating && t.Difference <= 0 }},
}

// Classify assigns a label to aggregated totals. The star rating only breaks ties
// when it agrees with the lexical direction. A nil or zero rating counts as absent.
func Classify(t Totals, rating *float64) Label {
	r, rated := ratingValue(rating)
	for _, rl := range rules {
		if rl.match(t, r, rated) {
			return rl.label
		}
	}
	return Neutral
}

func ratingValue(rating *float64) (float64, bool) {
	if rating == nil || *rating == 0 {
		return 0, false
	}
	return *rating, true
}
