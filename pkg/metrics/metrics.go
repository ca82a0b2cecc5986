package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TaskDispatchCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_dispatch_count",
			Help: "Total number of dispatched tasks",
		},
		[]string{"task_type", "status"}, // status: completed, failed
	)

	ComputeCallLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "compute_call_latency_ms",
			Help:    "Compute unit invocation latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(10, 2, 10), // 10ms to ~10s
		},
		[]string{"function", "status"},
	)

	FallbackInvocationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fallback_invocation_count",
			Help: "Total number of tasks served by the local fallback provider",
		},
		[]string{"task_type"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)
)

// RecordComputeCallLatency records one compute invocation round trip.
func RecordComputeCallLatency(function, status string, duration time.Duration) {
	ComputeCallLatency.WithLabelValues(function, status).Observe(float64(duration.Milliseconds()))
}

// RecordHTTPRequestDuration records one front-door request.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncrementTaskDispatch counts a dispatched task by terminal status.
func IncrementTaskDispatch(taskType, status string) {
	TaskDispatchCount.WithLabelValues(taskType, status).Inc()
}

// IncrementFallbackInvocation counts a task served by the fallback provider.
func IncrementFallbackInvocation(taskType string) {
	FallbackInvocationCount.WithLabelValues(taskType).Inc()
}
