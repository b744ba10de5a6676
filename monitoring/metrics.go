package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)
)

var (
	GoalRecalculationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "goal_recalculations_total",
			Help: "Total goal recalculations triggered by target or weight changes",
		},
	)

	InviteResponsesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invite_responses_total",
			Help: "Consultation invite responses by outcome",
		},
		[]string{"outcome"},
	)
)

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(GoalRecalculationsTotal)
	prometheus.MustRegister(InviteResponsesTotal)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
