package sentiment

// Phrase is a fixed multi-word expression with a polarity weight.
type Phrase struct {
	Text   string
	Weight float64
}

var lexicon = map[string]float64{
	// positive
	"love":      3.2,
	"loved":     3.2,
	"loves":     3.2,
	"awesome":   3.1,
	"amazing":   3.2,
	"excellent": 3.1,
	"perfect":   3.0,
	"great":     3.0,
	"best":      3.0,
	"beautiful": 2.5,
	"good":      1.9,
	"happy":     2.5,
	"nice":      1.8,
	"wonderful": 2.8,
	"fantastic": 2.9,
	"excited":   2.5,
	"glad":      2.0,
	"enjoy":     2.2,
	"enjoyed":   2.2,
	"super":     2.5,
	"highly":    1.5,
	"recommend": 2.0,

	// negative
	"hate":          -3.0,
	"hated":         -3.0,
	"awful":         -3.0,
	"terrible":      -3.0,
	"horrible":      -3.0,
	"bad":           -2.5,
	"worst":         -3.0,
	"disappointing": -2.5,
	"disappointed":  -2.6,
	"poor":          -2.0,
	"waste":         -2.5,
	"useless":       -2.5,
	"broken":        -2.0,
	"broke":         -2.0,
	"slow":          -1.5,
	"stupid":        -2.0,
	"sucks":         -2.5,
	"rude":          -2.5,
	"never":         -1.5,
}

var negations = map[string]struct{}{
	"not":      {},
	"no":       {},
	"never":    {},
	"nothing":  {},
	"neither":  {},
	"nor":      {},
	"barely":   {},
	"hardly":   {},
	"scarcely": {},
}

// phrases is ordered; found phrases are reported in this order.
var phrases = []Phrase{
	{Text: "waste of money", Weight: -3.5},
	{Text: "customer service", Weight: 0.0},
	{Text: "highly recommend", Weight: 3.5},
	{Text: "works great", Weight: 3.0},
	{Text: "not bad", Weight: 1.5},
	{Text: "customer support", Weight: 0.0},
}

// WordWeight returns the lexicon weight of a lowercase word, or 0 if it is unknown.
func WordWeight(word string) float64 {
	return lexicon[word]
}

// IsNegation reports whether a lowercase word opens a negation window.
func IsNegation(word string) bool {
	_, ok := negations[word]
	return ok
}

// Phrases returns a copy of the phrase table in match order.
func Phrases() []Phrase {
	out := make([]Phrase, len(phrases))
	copy(out, phrases)
	return out
}

// LexiconSize returns the number of scored words.
func LexiconSize() int {
	return len(lexicon)
}
