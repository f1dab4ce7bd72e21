package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP метрики
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculator_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "calculator_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Метрики вычислений
	EvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculator_evaluations_total",
			Help: "Total number of expression evaluations",
		},
		[]string{"mode", "outcome"}, // mode: preview|commit, outcome: success|invalid|unsafe|error
	)

	EvaluationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "calculator_evaluation_duration_seconds",
			Help:    "Expression evaluation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "calculator_active_sessions",
			Help: "Current number of live calculator sessions",
		},
	)

	ActiveWSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "calculator_ws_connections",
			Help: "Number of active WebSocket connections",
		},
	)

	HistorySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "calculator_history_size",
			Help: "Current size of calculation history",
		},
	)
)

// UpdateCalculatorMetrics - обновление глобальных датчиков
func UpdateCalculatorMetrics(sessions, historySize int) {
	ActiveSessions.Set(float64(sessions))
	HistorySize.Set(float64(historySize))
}
