// Package metrics holds the outreach business counters. HTTP request metrics
// live with the router middleware.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	outreachEmails = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_emails_total",
			Help: "Outreach send attempts by kind (single, bulk, sweep, follow_up) and status",
		},
		[]string{"kind", "status"},
	)

	outreachSweeps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_sweeps_total",
			Help: "Scheduled sweep runs by result (completed, skipped, failed)",
		},
		[]string{"result"},
	)
)

func RecordEmailOutcome(kind, status string) {
	outreachEmails.WithLabelValues(kind, status).Inc()
}

func RecordSweep(result string) {
	outreachSweeps.WithLabelValues(result).Inc()
}
