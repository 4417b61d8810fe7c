package sentiment

// Result is the full analysis of one review. Field names in JSON are part of the
// public API and must not change.
type Result struct {
	Sentiment Label `json:"final_sentiment"`

	TotalPosScore float64 `json:"total_pos_score"`
	TotalNegScore float64 `json:"total_neg_score"`
	WordCount     int     `json:"word_count"`

	TotalPosScoreWithPhrases float64 `json:"total_pos_score_with_phrases"`
	TotalNegScoreWithPhrases float64 `json:"total_neg_score_with_phrases"`
	PhraseDifference         float64 `json:"phrase_difference"`

	FoundPhrases    []string `json:"found_phrases"`
	PositivePhrases []string `json:"positive_phrases"`
	NegativePhrases []string `json:"negative_phrases"`
	PhrasePosScore  float64  `json:"phrase_pos_score"`
	PhraseNegScore  float64  `json:"phrase_neg_score"`

	ConfidenceScore float64         `json:"confidence_score"`
	ConfidenceLevel ConfidenceLevel `json:"confidence_level"`
}

// Analyze scores review text. rating is the optional star rating; nil or 0 means
// none was given. The result depends only on the arguments.
func Analyze(text string, rating *float64) Result {
	words := ScoreWords(Tokenize(text))
	found := DetectPhrases(text)
	totals := Aggregate(words, found)
	confidence, level := Confidence(totals)

	return Result{
		Sentiment:                Classify(totals, rating),
		TotalPosScore:            words.PosScore,
		TotalNegScore:            words.NegScore,
		WordCount:                words.WordCount,
		TotalPosScoreWithPhrases: totals.Pos,
		TotalNegScoreWithPhrases: totals.Neg,
		PhraseDifference:         totals.Difference,
		FoundPhrases:             found.Found,
		PositivePhrases:          found.Positive,
		NegativePhrases:          found.Negative,
		PhrasePosScore:           found.PosScore,
		PhraseNegScore:           found.NegScore,
		ConfidenceScore:          confidence,
		ConfidenceLevel:          level,
	}
}
