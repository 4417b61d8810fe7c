package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/pscheid92/reviewpulse/internal/domain"
	"github.com/pscheid92/reviewpulse/internal/sentiment"
)

// AnalysisMetrics records the outcome of every analysis. It implements
// domain.AnalysisObserver.
type AnalysisMetrics struct {
	AnalysesTotal   *prometheus.CounterVec
	Confidence      *prometheus.HistogramVec
	Duration        prometheus.Histogram
	PhraseMatches   *prometheus.CounterVec
	PersistFailures prometheus.Counter
}

var _ domain.AnalysisObserver = (*AnalysisMetrics)(nil)

// NewAnalysisMetrics creates and registers analysis metrics on the given registry.
func NewAnalysisMetrics(reg prometheus.Registerer) *AnalysisMetrics {
	m := &AnalysisMetrics{
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Total number of analyzed reviews, by sentiment and cache usage.",
		}, []string{"sentiment", "cached"}),
		Confidence: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_confidence_score",
			Help:      "Confidence score of analyzed reviews, by sentiment.",
			Buckets:   prometheus.LinearBuckets(10, 10, 10),
		}, []string{"sentiment"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Time to produce an analysis result, including cache lookups.",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}),
		PhraseMatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "phrase_matches_total",
			Help:      "Total number of phrase matches, by phrase.",
		}, []string{"phrase"}),
		PersistFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "review_persist_failures_total",
			Help:      "Total number of analyzed reviews that could not be stored.",
		}),
	}

	reg.MustRegister(m.AnalysesTotal, m.Confidence, m.Duration, m.PhraseMatches, m.PersistFailures)
	return m
}

func (m *AnalysisMetrics) ObserveAnalysis(result sentiment.Result, cached bool, seconds float64) {
	label := string(result.Sentiment)
	m.AnalysesTotal.WithLabelValues(label, strconv.FormatBool(cached)).Inc()
	m.Confidence.WithLabelValues(label).Observe(result.ConfidenceScore)
	m.Duration.Observe(seconds)

	// phrase texts come from the fixed phrase table, so the label set is bounded
	for _, phrase := range result.FoundPhrases {
		m.PhraseMatches.WithLabelValues(phrase).Inc()
	}
}

func (m *AnalysisMetrics) ObservePersistFailure() {
	m.PersistFailures.Inc()
}
