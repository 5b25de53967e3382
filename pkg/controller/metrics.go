package controller

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/snakeplanner/snake-planner/pkg/planner"
)

var (
	// searchLatency measures the wall-clock time of a single search.
	// Labels: outcome (succeeded, timed_out, exhausted)
	searchLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "snake",
		Subsystem: "planner",
		Name:      "search_latency_seconds",
		Help:      "Wall-clock time of a single search in seconds",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
	}, []string{"outcome"})

	// searchExplored tracks the number of expanded states per search.
	// Labels: outcome
	searchExplored = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "snake",
		Subsystem: "planner",
		Name:      "explored_states",
		Help:      "Number of states expanded by a single search",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
	}, []string{"outcome"})

	// searchesTotal counts finished searches.
	// Labels: outcome
	searchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "snake",
		Subsystem: "planner",
		Name:      "searches_total",
		Help:      "Total searches by outcome",
	}, []string{"outcome"})

	// failureCacheHits counts queries answered from the failure cache.
	failureCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "snake",
		Subsystem: "runner",
		Name:      "failure_cache_hits_total",
		Help:      "Total queries rejected because the same query failed recently",
	})
)

// recordSearch updates all search metrics from a result.
func recordSearch(res planner.Result) {
	outcome := res.Outcome.String()
	searchLatency.WithLabelValues(outcome).Observe(res.Elapsed.Seconds())
	searchExplored.WithLabelValues(outcome).Observe(float64(res.Explored))
	searchesTotal.WithLabelValues(outcome).Inc()
}
