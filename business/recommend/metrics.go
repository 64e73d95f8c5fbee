package recommend

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RecommendationsServedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendations_served_total",
			Help: "Count of recommendation requests that produced a ranked result.",
		},
	)

	FallbackActivationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_fallback_total",
			Help: "Count of requests where the constraint filter found nothing and the price-only fallback ran.",
		},
	)

	FetchDegradationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_fetch_degradations_total",
			Help: "Count of collaborator fetches that failed and degraded to defaults, by feed.",
		},
		[]string{"feed"},
	)
)

func init() {
	prometheus.MustRegister(
		RecommendationsServedTotal,
		FallbackActivationsTotal,
		FetchDegradationsTotal,
	)
}
