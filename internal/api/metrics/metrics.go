// Package metrics defines and registers the custom Prometheus metrics for
// the weather API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at import
// time; GET /metrics serves them via promhttp.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "weatherapi"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthDeniedTotal counts requests rejected by the auth gate.
// Label:
//   - reason: "no_token", "invalid_token", "revoked_token", "unknown_user", "forbidden"
var AuthDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_denied_total",
		Help:      "Total number of requests rejected by authentication or authorization.",
	},
	[]string{"reason"},
)

// ReadingsIngestedTotal counts persisted weather readings.
// Label:
//   - mode: "single" or "bulk"
var ReadingsIngestedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "readings_ingested_total",
		Help:      "Total number of weather readings persisted, by ingestion mode.",
	},
	[]string{"mode"},
)

// ReadingQueriesTotal counts aggregate reading queries.
// Label:
//   - query: "max_precipitation", "max_temperature", "station_at", "humidity_window"
var ReadingQueriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reading_queries_total",
		Help:      "Total number of aggregate reading queries served, by query kind.",
	},
	[]string{"query"},
)

// UsersPurgedTotal counts Student accounts removed by the retention job.
var UsersPurgedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_purged_total",
		Help:      "Total number of inactive student accounts removed by the purge job.",
	},
)
