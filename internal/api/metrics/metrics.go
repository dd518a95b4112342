// Package metrics defines and registers the portal's custom Prometheus
// metrics. It is the single source of truth for metric names, labels,
// and help strings; everything registers with the default registry at
// import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "unknown_user", "bad_password", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"result"},
)

// GateDecisionsTotal counts session-gate decisions on role-scoped paths.
// Labels:
//   - scope:    "admin" or "csr"
//   - decision: "allow" or "redirect"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of session gate decisions on role-scoped routes.",
	},
	[]string{"scope", "decision"},
)

// TokensRevokedTotal counts tokens denylisted at logout.
var TokensRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_revoked_total",
		Help:      "Total number of session tokens denylisted at logout.",
	},
)

// AuditEventsTotal counts audit trail writes.
// Label:
//   - result: "written" or "error"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of audit events processed, by result.",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks pending audit events per dispatcher worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
