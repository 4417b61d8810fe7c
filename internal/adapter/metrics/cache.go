package metrics

import "github.com/prometheus/client_golang/prometheus"

// CacheMetrics holds Prometheus metrics for the analysis result cache.
type CacheMetrics struct {
	Hits      *prometheus.CounterVec
	Misses    prometheus.Counter
	Errors    *prometheus.CounterVec
	Entries   prometheus.Gauge
	Evictions prometheus.Counter
}

// NewCacheMetrics creates and registers cache metrics on the given registry.
func NewCacheMetrics(reg prometheus.Registerer) *CacheMetrics {
	m := &CacheMetrics{
		Hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "result_cache",
			Name:      "hits_total",
			Help:      "Total number of result cache hits, by layer.",
		}, []string{"layer"}),
		Misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "result_cache",
			Name:      "misses_total",
			Help:      "Total number of lookups that missed every cache layer.",
		}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "result_cache",
			Name:      "errors_total",
			Help:      "Total number of failed Redis cache operations, by operation.",
		}, []string{"operation"}),
		Entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "result_cache",
			Name:      "memory_entries",
			Help:      "Number of entries in the in-memory cache layer.",
		}),
		Evictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "result_cache",
			Name:      "evictions_total",
			Help:      "Total number of expired in-memory entries evicted.",
		}),
	}

	reg.MustRegister(m.Hits, m.Misses, m.Errors, m.Entries, m.Evictions)
	return m
}
