package infra

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPSolicitudes counts requests by route template, method and status.
	HTTPSolicitudes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portal",
		Name:      "http_requests_total",
		Help:      "Solicitudes HTTP atendidas.",
	}, []string{"route", "method", "status"})

	// HTTPDuracion observes request latency by route template.
	HTTPDuracion = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "portal",
		Name:      "http_request_duration_seconds",
		Help:      "Latencia de las solicitudes HTTP.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	// CargaMasivaElementos counts bulk elements by operation and outcome
	// (creado, error, warning).
	CargaMasivaElementos = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portal",
		Name:      "bulk_elements_total",
		Help:      "Elementos procesados por las cargas masivas.",
	}, []string{"operacion", "resultado"})
)
