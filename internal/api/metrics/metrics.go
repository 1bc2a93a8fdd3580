// Package metrics defines and registers all custom Prometheus metrics for the
// VantagePoint CRM API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time and
// are exposed through the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "crm"

// ── Auth metrics ──────────────────────────────────────────────────────────────

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

// ── Lead metrics ──────────────────────────────────────────────────────────────

// LeadsCreatedTotal counts newly created leads.
// Label:
//   - priority: "high", "medium", or "low"
var LeadsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leads_created_total",
		Help:      "Total number of leads created, by priority.",
	},
	[]string{"priority"},
)

// LeadsBulkAssignedTotal counts leads handed out by bulk assignment.
var LeadsBulkAssignedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leads_bulk_assigned_total",
		Help:      "Total number of leads assigned through bulk assignment.",
	},
)

// ── Docs pipeline metrics ─────────────────────────────────────────────────────

// DocsSendTotal counts document-send job outcomes.
// Label:
//   - result: "sent" or "failed"
var DocsSendTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "docs_send_total",
		Help:      "Total number of partner document-send jobs, by result.",
	},
	[]string{"result"},
)

// DocsQueueDepth tracks the current number of jobs waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var DocsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "docs_queue_depth",
		Help:      "Current number of jobs pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// DocsSendDuration measures how long a single docs job takes end-to-end.
// Label:
//   - result: "sent" or "failed"
var DocsSendDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "docs_send_duration_seconds",
		Help:      "Duration of docs job processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)
