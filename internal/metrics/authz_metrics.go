package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthzDecisionsTotal counts resolver decisions.
	// Labels: resource (category/project/prompt), action (read/write), outcome (allow/deny)
	AuthzDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prompthub_authz_decisions_total",
			Help: "Total number of authorization decisions by resource, action and outcome",
		},
		[]string{"resource", "action", "outcome"},
	)

	// VersionWritesTotal counts ledger appends.
	// Labels: operation (create/amend/revert), status (success/conflict/error)
	VersionWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prompthub_version_writes_total",
			Help: "Total number of prompt version ledger writes by operation and status",
		},
		[]string{"operation", "status"},
	)

	// InvariantViolationsTotal counts attempted non-monotonic version writes.
	// Any increment is a defect signal.
	InvariantViolationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "prompthub_invariant_violations_total",
			Help: "Total number of detected version ledger invariant violations",
		},
	)
)

// RecordAuthzDecision records one resolver decision
func RecordAuthzDecision(resource, action string, allowed bool) {
	outcome := "allow"
	if !allowed {
		outcome = "deny"
	}
	AuthzDecisionsTotal.WithLabelValues(resource, action, outcome).Inc()
}

// RecordVersionWrite records one ledger append attempt
func RecordVersionWrite(operation, status string) {
	VersionWritesTotal.WithLabelValues(operation, status).Inc()
}
