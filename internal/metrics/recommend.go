package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recommendation pipeline Prometheus metrics.
var (
	RecommendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "datadex",
			Name:      "recommend_requests_total",
			Help:      "Total number of recommendation requests by resolved intent",
		},
		[]string{"intent"},
	)

	RecommendCandidatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "datadex",
			Name:      "recommend_candidates_total",
			Help:      "Total candidates retrieved per strategy",
		},
		[]string{"strategy"}, // "semantic" / "name"
	)

	RecommendEmptyTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "datadex",
			Name:      "recommend_empty_total",
			Help:      "Recommendation requests that returned no results",
		},
	)

	RecommendDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "datadex",
			Name:      "recommend_duration_seconds",
			Help:      "End-to-end recommendation request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)
)

var recommendMetricsRegistered bool

// RegisterRecommendMetrics registers recommendation metrics. Must be called once from main.
func RegisterRecommendMetrics() {
	if recommendMetricsRegistered {
		return
	}
	prometheus.MustRegister(RecommendRequestsTotal)
	prometheus.MustRegister(RecommendCandidatesTotal)
	prometheus.MustRegister(RecommendEmptyTotal)
	prometheus.MustRegister(RecommendDuration)
	recommendMetricsRegistered = true
}
