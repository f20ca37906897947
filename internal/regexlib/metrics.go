package regexlib

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricCompiles = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lexgen",
		Subsystem: "regexlib",
		Name:      "compiles_total",
		Help:      "Total number of patterns compiled to a minimal DFA.",
	})
	metricCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lexgen",
		Subsystem: "regexlib",
		Name:      "cache_lookups_total",
		Help:      "Total number of compiled-pattern cache lookups, by result.",
	}, []string{"result"})
	metricDFAStates = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "lexgen",
		Subsystem: "regexlib",
		Name:      "dfa_states",
		Help:      "Number of DFA states per compiled pattern, before and after minimization.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"stage"})
)

const (
	cacheHit  = "hit"
	cacheMiss = "miss"
)

func init() {
	metricCacheLookups.WithLabelValues(cacheHit)
	metricCacheLookups.WithLabelValues(cacheMiss)
}
