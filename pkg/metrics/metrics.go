package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	QueryLabel     = "query"
	TableLabel     = "table"
	ResultLabel    = "result"
	HeuristicLabel = "heuristic"
	Outcome        = "outcome"
	Succeeded      = "succeeded"
	Failed         = "failed"
	Hit            = "hit"
	Miss           = "miss"
)

// To add new metrics:
// 1. Register new metrics in Register() below.
// 2. Add an exported function updating them and call it where the event happens.
var (
	oracleQuerySummary = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "fasb_oracle_query_duration_seconds",
			Help:       "The duration of a solver oracle query",
			Objectives: map[float64]float64{0.95: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{QueryLabel, Outcome},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fasb_cache_lookups_total",
			Help: "Monotonic count of cache lookups by table and result",
		},
		[]string{TableLabel, ResultLabel},
	)

	currentFacets = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "fasb_current_facets",
			Help: "Number of facets under the most recently updated route",
		},
	)

	routeActivations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fasb_route_activations_total",
			Help: "Monotonic count of facet tokens activated on a route",
		},
	)

	sampleSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fasb_sample_collection_size",
			Help: "Number of models in the last collection assembled by a sampling heuristic",
		},
		[]string{HeuristicLabel},
	)
)

func Register() {
	prometheus.MustRegister(oracleQuerySummary)
	prometheus.MustRegister(cacheLookups)
	prometheus.MustRegister(currentFacets)
	prometheus.MustRegister(routeActivations)
	prometheus.MustRegister(sampleSize)
}

func RegisterOracleQuerySuccess(query string, duration time.Duration) {
	oracleQuerySummary.WithLabelValues(query, Succeeded).Observe(duration.Seconds())
}

func RegisterOracleQueryFailure(query string, duration time.Duration) {
	oracleQuerySummary.WithLabelValues(query, Failed).Observe(duration.Seconds())
}

func CacheLookup(table string, hit bool) {
	result := Miss
	if hit {
		result = Hit
	}
	cacheLookups.WithLabelValues(table, result).Inc()
}

func SetCurrentFacets(n int) {
	currentFacets.Set(float64(n))
}

func EmitActivation() {
	routeActivations.Inc()
}

func SetSampleSize(heuristic string, n int) {
	sampleSize.WithLabelValues(heuristic).Set(float64(n))
}
