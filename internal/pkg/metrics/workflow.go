package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkflowTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_transitions_total",
			Help: "Total number of committed status transitions",
		},
		[]string{"entity", "status"},
	)

	SideEffectWarningsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_side_effect_warnings_total",
			Help: "Total number of best-effort steps that failed without failing the operation",
		},
		[]string{"operation"},
	)

	NotificationsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_created_total",
			Help: "Total number of notifications written to the outbox",
		},
		[]string{"type", "priority"},
	)

	NotificationsDispatchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_dispatched_total",
			Help: "Total number of outbox notifications handed to the broker",
		},
		[]string{"result"},
	)

	PushDeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "push_deliveries_total",
			Help: "Total number of push notification attempts",
		},
		[]string{"result"},
	)
)
