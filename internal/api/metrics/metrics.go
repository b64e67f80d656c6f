// Package metrics defines the custom Prometheus metrics of the marketplace
// API. All metrics register with the default registry at init via promauto;
// HTTP request metrics come from the echoprometheus middleware instead.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// ── Identity ──────────────────────────────────────────────────────────────────

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

// RegistrationsTotal counts accounts created, by role.
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts registered, by role.",
	},
	[]string{"role"},
)

// ── Jobs ──────────────────────────────────────────────────────────────────────

// JobsPostedTotal counts posted jobs.
// Label:
//   - category: web, mobile, design, writing, marketing, other
var JobsPostedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_posted_total",
		Help:      "Total number of jobs posted, by category.",
	},
	[]string{"category"},
)

// ApplicationsSubmittedTotal counts applications submitted by freelancers.
var ApplicationsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_submitted_total",
		Help:      "Total number of applications submitted.",
	},
)

// ApplicationDecisionsTotal counts client decisions.
// Label:
//   - status: "accepted" or "rejected"
var ApplicationDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "application_decisions_total",
		Help:      "Total number of application decisions, by resulting status.",
	},
	[]string{"status"},
)

// ── Messaging ─────────────────────────────────────────────────────────────────

// MessagesDeliveredTotal counts messages appended to a conversation.
var MessagesDeliveredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_delivered_total",
		Help:      "Total number of messages delivered.",
	},
)

// MessagesFailedTotal counts messages the dispatcher could not deliver.
var MessagesFailedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_failed_total",
		Help:      "Total number of messages that failed delivery.",
	},
)

// MessagesQueueDepth tracks pending messages per dispatcher worker.
var MessagesQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "messages_queue_depth",
		Help:      "Current number of messages pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// MessageDeliveryDuration measures dequeue-to-stored latency.
var MessageDeliveryDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "message_delivery_duration_seconds",
		Help:      "Duration of message delivery from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
)
