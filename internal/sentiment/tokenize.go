package sentiment

import (
	"regexp"
	"strings"
)

// Token is a lowercase word and its position in the token sequence.
type Token struct {
	Text  string
	Index int
}

// Letters, numbers and underscore. Combining marks are separators, so a
// decomposed accent splits a word.
var wordRE = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Tokenize lowercases text and splits it into runs of word characters.
// Punctuation and whitespace are dropped.
func Tokenize(text string) []Token {
	words := wordRE.FindAllString(strings.ToLower(text), -1)
	tokens := make([]Token, len(words))
	for i, w := range words {
		tokens[i] = Token{Text: w, Index: i}
	}
	return tokens
}
