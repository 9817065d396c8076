// Package metrics exposes the service's prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SessionsBooked = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mockmate_sessions_booked_total",
		Help: "Slot-backed sessions booked (direct and gateway flows).",
	})

	SessionsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mockmate_sessions_completed_total",
		Help: "Sessions completed, by flow.",
	}, []string{"flow"})

	PaymentsConfirmed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mockmate_payments_confirmed_total",
		Help: "Payments confirmed as paid.",
	})

	MeetingProvisionAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mockmate_meeting_provision_attempts_total",
		Help: "Meeting provisioning attempts, by outcome.",
	}, []string{"outcome"})
)
