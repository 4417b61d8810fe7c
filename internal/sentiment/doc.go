// Package sentiment implements the review scoring engine.
//
// Analyze tokenizes the text, scores lexicon words with a two-token negation window,
// detects fixed phrases by substring match, and classifies the aggregate with an
// ordered rule list that falls back to the star rating. No mutable state: the lexicon,
// negation and phrase tables are built once at package init and only read afterwards,
// so Analyze is safe for concurrent use.
package sentiment
