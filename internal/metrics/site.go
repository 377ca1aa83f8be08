// SPDX-License-Identifier: MIT

// Package metrics provides Prometheus metrics for the site daemon.
// Labels are low-cardinality: no session ids, request ids or paths.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	modeChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bigeen_mode_changes_total",
		Help: "Display mode changes by target mode",
	}, []string{"to"}) // to=tech|consult

	contactSubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bigeen_contact_submissions_total",
		Help: "Contact form submissions by outcome",
	}, []string{"outcome"}) // outcome=submitted|incomplete|failed

	contactFieldUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bigeen_contact_field_updates_total",
		Help: "Contact form field edits by field",
	}, []string{"field"})

	pageRendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bigeen_page_renders_total",
		Help: "Rendered pages by page and display mode",
	}, []string{"page", "mode"})

	sessionsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bigeen_sessions_created_total",
		Help: "Visitor sessions created",
	})

	sessionRestoreErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bigeen_session_restore_errors_total",
		Help: "Session state that could not be restored, by reason",
	}, []string{"reason"}) // reason=backend|corrupt

	sessionPersistErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bigeen_session_persist_errors_total",
		Help: "Session state that could not be written back to the cache",
	})

	configReloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bigeen_config_reloads_total",
		Help: "Configuration hot reloads by outcome",
	}, []string{"outcome"}) // outcome=applied|rejected|unchanged

	buildInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "bigeen_build_info",
		Help: "Build information; value is always 1",
	}, []string{"version", "commit"})
)

func IncModeChange(to string) { modeChangesTotal.WithLabelValues(to).Inc() }
func IncContactSubmission(outcome string) { contactSubmissionsTotal.WithLabelValues(outcome).Inc() }
func IncContactFieldUpdate(field string) { contactFieldUpdatesTotal.WithLabelValues(field).Inc() }
func IncPageRender(page, mode string) { pageRendersTotal.WithLabelValues(page, mode).Inc() }
func IncSessionCreated() { sessionsCreatedTotal.Inc() }
func IncSessionRestoreError(reason string) { sessionRestoreErrorsTotal.WithLabelValues(reason).Inc() }
func IncSessionPersistError() { sessionPersistErrorsTotal.Inc() }
func IncConfigReload(outcome string) { configReloadsTotal.WithLabelValues(outcome).Inc() }

// SetBuildInfo publishes the running version.
func SetBuildInfo(version, commit string) {
	if version == "" {
		version = "dev"
	}
	if commit == "" {
		commit = "unknown"
	}
	buildInfo.WithLabelValues(version, commit).Set(1)
}
