// Package metrics defines and registers all custom Prometheus metrics for the
// blog BFF. It is the single source of truth for metric names, labels, and
// help strings; every layer that records a metric imports it from here.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bff"

// ── Operation metrics ─────────────────────────────────────────────────────────

// OperationsTotal counts orchestrated operation executions.
// Labels:
//   - operation: catalog name (e.g. "addPostComment")
//   - outcome: "ok", "error", "denied" or "unknown"
var OperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operations_total",
		Help:      "Total number of orchestrated operation executions, by outcome.",
	},
	[]string{"operation", "outcome"},
)

// AccessDeniedTotal counts authorization denials before any upstream call.
// Labels:
//   - operation: catalog name
//   - reason: "NO_SESSION" or "ROLE_NOT_ALLOWED"
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of operations rejected by the access guard.",
	},
	[]string{"operation", "reason"},
)

// OperationDuration measures how long a successful operation takes end-to-end,
// guard check and upstream calls included.
var OperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "operation_duration_seconds",
		Help:      "Duration of successful orchestrated operations.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsCreatedTotal counts sessions issued at login.
var SessionsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_created_total",
		Help:      "Total number of sessions issued.",
	},
)

// ── Data API metrics ──────────────────────────────────────────────────────────

// DataAPIRequestDuration measures upstream CRUD call latency.
// Labels:
//   - resource: first path segment ("users", "posts", "comments", "roles")
//   - method: HTTP method
var DataAPIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "dataapi_request_duration_seconds",
		Help:      "Duration of requests to the upstream data API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"resource", "method"},
)

// DataAPIErrorsTotal counts failed upstream CRUD calls (transport errors and
// unexpected statuses; 404s on lookups count too).
var DataAPIErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dataapi_errors_total",
		Help:      "Total number of failed requests to the upstream data API.",
	},
	[]string{"resource"},
)
