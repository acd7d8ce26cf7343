package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Bootstrap metrics
	bootstrapStepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bootstrap_step_duration_seconds",
			Help:    "Duration of each startup sequence step",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"step"},
	)

	bootstrapStepsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bootstrap_steps_total",
			Help: "Startup sequence step outcomes",
		},
		[]string{"step", "status"},
	)

	adminProvisionedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "admin_accounts_provisioned_total",
			Help: "Administrative accounts created at startup",
		},
	)

	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint", "status"},
	)
)

func ObserveBootstrapStep(step string, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	bootstrapStepDuration.WithLabelValues(step).Observe(d.Seconds())
	bootstrapStepsTotal.WithLabelValues(step, status).Inc()
}

func AdminProvisioned() {
	adminProvisionedTotal.Inc()
}

func ObserveHTTPRequest(method, endpoint string, status int, d time.Duration) {
	code := strconv.Itoa(status)
	httpRequestsTotal.WithLabelValues(method, endpoint, code).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint, code).Observe(d.Seconds())
}
