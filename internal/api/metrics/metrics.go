// Package metrics defines the Prometheus metrics for the field service API.
// It is the single source of truth for metric names, labels, and help
// strings. Metrics register with the default registry at import time via
// promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fieldservice"

// OrdersCreatedTotal counts newly opened service orders.
// Label:
//   - type: "installation", "support", or "removal"
var OrdersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of service orders created, by order type.",
	},
	[]string{"type"},
)

// OrdersAcceptedTotal counts orders claimed by a technician.
var OrdersAcceptedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_accepted_total",
		Help:      "Total number of service orders accepted for execution.",
	},
)

// OrdersCompletedTotal counts finished orders.
// Label:
//   - type: the completed order's type
var OrdersCompletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_completed_total",
		Help:      "Total number of service orders completed, by order type.",
	},
	[]string{"type"},
)

// OrdersReturnedTotal counts orders sent back to the pending queue.
var OrdersReturnedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_returned_total",
		Help:      "Total number of executing orders returned to the pending queue.",
	},
)

// PointsAwardedTotal counts ranking points credited on completion.
// Label:
//   - role: "technician" or "helper"
var PointsAwardedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "points_awarded_total",
		Help:      "Total ranking points credited to crew members, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts authentication attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total login attempts, by result.",
	},
	[]string{"result"},
)

// SnapshotSaveFailuresTotal counts snapshot writes that failed and rolled
// the in-memory mutation back.
var SnapshotSaveFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_save_failures_total",
		Help:      "Total snapshot persistence failures.",
	},
)
