// Package metrics defines the custom Prometheus metrics of the job board API.
// It is the single source of truth for metric names, labels, and help strings.
//
// Call Register once at startup, before the HTTP server starts, with the
// registry that backs the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "jobboard"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts created accounts.
// Label:
//   - role: "jobseeker", "employer" or "admin"
var RegistrationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registered users, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthFailuresTotal counts requests rejected by the auth middleware.
// Label:
//   - reason: "missing_token", "invalid_token", "unknown_user" or "forbidden"
var AuthFailuresTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by authentication or authorization.",
	},
	[]string{"reason"},
)

// ── Job metrics ───────────────────────────────────────────────────────────────

// JobsCreatedTotal counts newly posted jobs.
// Label:
//   - job_type: "Full-time", "Part-time", "Contract" or "Internship"
var JobsCreatedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_created_total",
		Help:      "Total number of jobs created, by job type.",
	},
	[]string{"job_type"},
)

// ApplicationsTotal counts apply calls.
// Label:
//   - result: "accepted", "duplicate" or "rejected"
var ApplicationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_total",
		Help:      "Total number of job applications, by result.",
	},
	[]string{"result"},
)

// ── Message metrics ───────────────────────────────────────────────────────────

// MessagesSentTotal counts stored direct messages.
var MessagesSentTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_sent_total",
		Help:      "Total number of direct messages sent.",
	},
)

// Register adds every metric above to reg.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		RegistrationsTotal,
		LoginsTotal,
		AuthFailuresTotal,
		JobsCreatedTotal,
		ApplicationsTotal,
		MessagesSentTotal,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
