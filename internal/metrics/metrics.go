// Package metrics holds the Prometheus collectors shared by both services.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthDecisionsTotal counts gate outcomes by decision
	// (service, admitted, invalid_credential, unauthorized_action, resource_id_required).
	AuthDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agenda_auth_decisions_total",
			Help: "Authorization gate decisions",
		},
		[]string{"decision"},
	)

	// ExternalRequestsTotal counts outbound calls by dependency and result.
	ExternalRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agenda_external_requests_total",
			Help: "Calls to external dependencies",
		},
		[]string{"dependency", "result"},
	)

	ExternalRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agenda_external_request_duration_seconds",
			Help:    "Latency of calls to external dependencies",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"dependency"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "agenda_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	GeocodeFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "agenda_geocode_fallbacks_total",
			Help: "Geocoder lookups answered with the fallback coordinate",
		},
	)

	GeocodeCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agenda_geocode_cache_total",
			Help: "Geocode cache lookups by result",
		},
		[]string{"result"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agenda_http_requests_total",
			Help: "Handled HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
)
