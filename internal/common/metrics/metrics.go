// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_requests_total",
			Help: "Total number of chat messages processed, by response status",
		},
		[]string{"status"},
	)

	ChatRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "chat_request_duration_seconds",
			Help: "Duration of chat message processing in seconds",
		},
		[]string{"intent"},
	)

	ProviderCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_calls_total",
			Help: "Total number of external provider calls, by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	FallbackGenerations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fallback_generations_total",
			Help: "Total number of synthetic listing sets generated",
		},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_sessions",
			Help: "Number of conversation contexts held in the in-memory store",
		},
	)
)
