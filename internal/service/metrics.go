package service

import (
	"time"

	"github.com/dangerclosesec/crm/internal/model"
	"github.com/dangerclosesec/crm/internal/policy"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	visibilityDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crm",
		Name:      "visibility_decisions_total",
		Help:      "Visibility scopes resolved, by resource kind and caller role.",
	}, []string{"kind", "role"})

	assignments = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crm",
		Subsystem: "assignment",
		Name:      "total",
		Help:      "Record assignments attempted, by resource kind and result.",
	}, []string{"kind", "result"})

	bulkAssignLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "crm",
		Subsystem: "assignment",
		Name:      "bulk_latency_seconds",
		Help:      "Latency distribution of bulk assignment requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"kind"})

	reconciledRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crm",
		Subsystem: "reconcile",
		Name:      "records_total",
		Help:      "Records whose reporting team was rewritten, by kind and mode.",
	}, []string{"kind", "mode"})
)

func recordVisibility(kind model.ResourceKind, role policy.Role) {
	visibilityDecisions.With(prometheus.Labels{
		"kind": string(kind),
		"role": role.String(),
	}).Inc()
}

func recordAssignment(kind model.ResourceKind, err error) {
	result := "assigned"
	if err != nil {
		result = "failed"
	}
	assignments.With(prometheus.Labels{
		"kind":   string(kind),
		"result": result,
	}).Inc()
}

func recordBulkLatency(kind model.ResourceKind, latency time.Duration) {
	bulkAssignLatency.With(prometheus.Labels{"kind": string(kind)}).Observe(latency.Seconds())
}

func recordReconciled(kind model.ResourceKind, dryRun bool, n int) {
	mode := "apply"
	if dryRun {
		mode = "dry_run"
	}
	reconciledRecords.With(prometheus.Labels{
		"kind": string(kind),
		"mode": mode,
	}).Add(float64(n))
}
