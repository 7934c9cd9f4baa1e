// Package metrics provides Prometheus instrumentation for the relay workflow.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// SubmissionsTotal counts accepted submissions by kind.
	SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "warchest",
			Name:      "submissions_total",
			Help:      "Total accepted submissions by kind.",
		},
		[]string{"kind"},
	)

	// ApprovalsTotal counts approval gestures by outcome.
	ApprovalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "warchest",
			Name:      "approvals_total",
			Help:      "Total approval gestures by outcome.",
		},
		[]string{"outcome"},
	)

	// SheetDeliveriesTotal counts sheet webhook deliveries by result.
	SheetDeliveriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "warchest",
			Name:      "sheet_deliveries_total",
			Help:      "Total sheet webhook delivery attempts by result.",
		},
		[]string{"result"},
	)

	// PendingRecords tracks records currently awaiting approval.
	PendingRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "warchest",
			Name:      "pending_records",
			Help:      "Number of records currently awaiting approval.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		SubmissionsTotal,
		ApprovalsTotal,
		SheetDeliveriesTotal,
		PendingRecords,
	)
}

// Approval outcomes.
const (
	OutcomeDelivered      = "delivered"
	OutcomeDeliveryFailed = "delivery_failed"
	OutcomeUnauthorized   = "unauthorized"
)
