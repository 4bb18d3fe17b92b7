// Package actions implements the authenticated mutations behind the API:
// seller applications and review, product and shipping CRUD. Each action
// authorizes the caller, validates input, persists, then fans out the
// side effects (cache invalidation, search reindex, notifications) on a
// best-effort basis.
package actions

import (
	apperrors "evercraft/internal/common/errors"
	"evercraft/internal/common/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

// instrument counts the invocation and returns a closure the action defers
// to record duration and failure code.
func instrument(action string) func(*apperrors.Error) {
	metrics.ActionInvocations.WithLabelValues(action).Inc()
	timer := prometheus.NewTimer(metrics.ActionDuration.WithLabelValues(action))
	return func(appErr *apperrors.Error) {
		timer.ObserveDuration()
		if appErr != nil {
			metrics.ActionFailures.WithLabelValues(action, string(appErr.Code)).Inc()
		}
	}
}
