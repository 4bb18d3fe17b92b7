// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ActionInvocations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "action_invocations_total",
			Help: "Total number of action invocations",
		},
		[]string{"action"},
	)

	ActionFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "action_failures_total",
			Help: "Total number of failed action invocations",
		},
		[]string{"action", "error_code"},
	)

	ActionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "action_duration_seconds",
			Help: "Duration of action processing in seconds",
		},
		[]string{"action"},
	)

	ApplicationsAutoApproved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "applications_auto_approved_total",
			Help: "Seller applications approved without manual review",
		},
	)
)
