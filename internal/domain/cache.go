package domain

import (
	"context"

	"github.com/pscheid92/reviewpulse/internal/sentiment"
)

// ResultCache stores analysis results by input fingerprint. Analysis is a pure
// function of its input, so entries never need invalidation, only expiry.
// Implementations treat backend failures as misses.
type ResultCache interface {
	Get(ctx context.Context, key string) (sentiment.Result, bool)
	Set(ctx context.Context, key string, result sentiment.Result)
}

// AnalysisObserver receives one call per completed analysis.
type AnalysisObserver interface {
	ObserveAnalysis(result sentiment.Result, cached bool, seconds float64)
	ObservePersistFailure()
}
