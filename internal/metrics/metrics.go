package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds every collector of this service.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		gatewayRequestsTotal,
		gatewayRequestDuration,
		gatewayRetriesTotal,
		toolCallsTotal,
	)
}

var (
	gatewayRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paytm",
			Name:      "gateway_requests_total",
			Help:      "Gateway HTTP attempts by endpoint and outcome (ok/http_error/network_error/malformed).",
		},
		[]string{"endpoint", "outcome"},
	)

	gatewayRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "paytm",
			Name:      "gateway_request_duration_seconds",
			Help:      "Gateway HTTP attempt latency.",
			Buckets:   []float64{0.05, 0.1, 0.2, 0.3, 0.5, 0.8, 1.2, 2, 3, 5, 10, 30},
		},
		[]string{"endpoint"},
	)

	gatewayRetriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paytm",
			Name:      "gateway_retries_total",
			Help:      "Retries scheduled after a transport-layer failure.",
		},
		[]string{"endpoint"},
	)

	toolCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "paytm",
			Name:      "tool_calls_total",
			Help:      "Tool invocations by tool and result status/kind.",
		},
		[]string{"tool", "outcome"},
	)
)

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// ObserveGatewayAttempt records one HTTP exchange with the gateway.
func ObserveGatewayAttempt(endpoint, outcome string, d time.Duration) {
	gatewayRequestsTotal.WithLabelValues(endpoint, norm(outcome)).Inc()
	gatewayRequestDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

func IncGatewayRetry(endpoint string) {
	gatewayRetriesTotal.WithLabelValues(endpoint).Inc()
}

func IncToolCall(tool, outcome string) {
	toolCallsTotal.WithLabelValues(tool, norm(outcome)).Inc()
}
