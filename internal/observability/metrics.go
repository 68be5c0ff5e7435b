package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce              sync.Once
	apiRequestsTotal          *prometheus.CounterVec
	apiLatencySeconds         *prometheus.HistogramVec
	apiErrorsTotal            *prometheus.CounterVec
	scoresSubmittedTotal      *prometheus.CounterVec
	finalizationsTotal        prometheus.Counter
	scoreboardRecomputeSecond prometheus.Histogram
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hackpoint_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hackpoint_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hackpoint_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		scoresSubmittedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hackpoint_scores_submitted_total",
			Help: "Total number of judge scores recorded, by kind.",
		}, []string{"kind"})

		finalizationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "hackpoint_finalizations_total",
			Help: "Total number of completed award finalizations.",
		})

		scoreboardRecomputeSecond = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "hackpoint_scoreboard_recompute_seconds",
			Help:    "Latency distribution for scoreboard recomputation.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		})

		prometheus.MustRegister(
			apiRequestsTotal,
			apiLatencySeconds,
			apiErrorsTotal,
			scoresSubmittedTotal,
			finalizationsTotal,
			scoreboardRecomputeSecond,
		)
	})
}

// APIRequests exposes the counter for API requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for API requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for API error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// ScoresSubmitted exposes the counter for recorded judge scores.
func ScoresSubmitted() *prometheus.CounterVec {
	RegisterMetrics()
	return scoresSubmittedTotal
}

// FinalizationsTotal exposes the counter for award finalizations.
func FinalizationsTotal() prometheus.Counter {
	RegisterMetrics()
	return finalizationsTotal
}

// ScoreboardRecomputeSeconds exposes the scoreboard recomputation histogram.
func ScoreboardRecomputeSeconds() prometheus.Histogram {
	RegisterMetrics()
	return scoreboardRecomputeSecond
}
