package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics
var (
	predictionsComputed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "prediction_engine_predictions_total",
		Help: "Total number of single-factor predictions computed",
	})

	combinedComputed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "prediction_engine_combined_predictions_total",
		Help: "Total number of multi-factor consensus predictions computed",
	})

	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "prediction_engine_cache_hits_total",
		Help: "Total number of predictions served from the in-memory cache",
	})

	persistenceFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "prediction_engine_persistence_failures_total",
		Help: "Total number of prediction writes that failed (non-fatal)",
	})

	historyLookupFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "prediction_engine_history_lookup_failures_total",
		Help: "Total number of history queries that failed (non-fatal)",
	})

	synthesisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "prediction_engine_synthesis_duration_seconds",
		Help:    "Duration of the full single-factor prediction pipeline",
		Buckets: prometheus.DefBuckets,
	})
)
