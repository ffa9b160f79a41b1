// Package metrics defines the custom Prometheus metrics of the panel. Inbound
// HTTP metrics come from the echoprometheus middleware; everything here is
// about what the panel does on behalf of a request.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "painel"

// ── Upstream API ──────────────────────────────────────────────────────────────

// UpstreamRequestsTotal counts calls to the remote API.
// Labels:
//   - code: HTTP status code returned by the API
//   - method: HTTP method
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests sent to the remote API.",
	},
	[]string{"code", "method"},
)

// UpstreamRequestDuration measures remote API latency.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of requests sent to the remote API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"code", "method"},
)

// UpstreamInFlight is the number of remote API calls currently open.
var UpstreamInFlight = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "upstream_in_flight_requests",
		Help:      "Number of requests to the remote API currently in flight.",
	},
)

// InstrumentUpstream wraps next so every remote API call is counted and timed.
func InstrumentUpstream(next http.RoundTripper) http.RoundTripper {
	return promhttp.InstrumentRoundTripperInFlight(UpstreamInFlight,
		promhttp.InstrumentRoundTripperCounter(UpstreamRequestsTotal,
			promhttp.InstrumentRoundTripperDuration(UpstreamRequestDuration, next),
		),
	)
}

// ── Postal lookups ────────────────────────────────────────────────────────────

// PostalLookupsTotal counts postal-code lookups.
// Label:
//   - result: "hit", "miss", "cached" or "error"
var PostalLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "postal_lookups_total",
		Help:      "Total number of postal-code lookups, by result.",
	},
	[]string{"result"},
)

// ObservePostal satisfies postal.Observer.
func ObservePostal(result string) {
	PostalLookupsTotal.WithLabelValues(result).Inc()
}

// ── Guard and sessions ────────────────────────────────────────────────────────

// GuardDecisionsTotal counts route guard outcomes.
// Label:
//   - state: loading, unauthenticated, insufficient-role or authorized
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by resulting state.",
	},
	[]string{"state"},
)

// SessionOperationsTotal counts session store operations.
// Labels:
//   - op: login, logout, cleared_on_401 or load_error
var SessionOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_operations_total",
		Help:      "Total number of session lifecycle operations.",
	},
	[]string{"op"},
)
