package infra

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus collectors, registered on the default registry and exposed at /metrics.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	// CestasMontadas counts assembly attempts by basket type and outcome
	// (montada | falta_estoque | falha).
	CestasMontadas = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cestas_montagens_total",
			Help: "Basket assembly attempts by type and outcome",
		},
		[]string{"tipo", "resultado"},
	)

	LotesProximosVencimento = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "estoque_lotes_proximos_vencimento",
			Help: "Lots within the near-expiry window at the last alert scan",
		},
	)
)
