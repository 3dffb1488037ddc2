// Package metrics defines and registers all custom Prometheus metrics for
// the taskboard API. It is the single source of truth for metric names,
// labels, and help strings. Collectors register themselves with the default
// registry at package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskboard"

// ── Socket metrics ────────────────────────────────────────────────────────────

// SocketConnectionsActive tracks the number of currently registered sockets.
var SocketConnectionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "socket_connections_active",
		Help:      "Number of WebSocket connections currently registered in the hub.",
	},
)

// NotificationsSentTotal counts events successfully written to a socket.
// Label:
//   - type: the event type (e.g. "task_created")
var NotificationsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Total number of events delivered to individual sockets.",
	},
	[]string{"type"},
)

// NotificationsFailedTotal counts per-socket delivery failures. Delivery is
// best-effort, so these are informational only.
// Label:
//   - reason: "write_failed", "member_lookup_failed", or "queue_full"
var NotificationsFailedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_failed_total",
		Help:      "Total number of events that could not be delivered.",
	},
	[]string{"reason"},
)

// ── Board metrics ─────────────────────────────────────────────────────────────

// TasksCreatedTotal counts created tasks by their initial status.
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created, by initial status.",
	},
	[]string{"status"},
)

// ActivitiesRecordedTotal counts activity log entries by action label.
var ActivitiesRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activities_recorded_total",
		Help:      "Total number of activity log entries written, by action.",
	},
	[]string{"action"},
)
