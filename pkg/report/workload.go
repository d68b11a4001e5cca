package report

import (
	"errors"

	"github.com/aquasecurity/polaris-lens/pkg/ext"
	"github.com/aquasecurity/polaris-lens/pkg/polaris"
)

var (
	// ErrUnsupportedKind is returned for kinds Polaris does not audit as
	// workload controllers.
	ErrUnsupportedKind = errors.New("unsupported workload kind")
	// ErrNotAudited is returned when the audit has no result for the
	// requested workload.
	ErrNotAudited = errors.New("workload not found in Polaris audit results")
)

// SupportedKinds are the workload kinds with an inline audit.
var SupportedKinds = []string{
	"Deployment",
	"StatefulSet",
	"DaemonSet",
	"Job",
	"CronJob",
}

// WorkloadAudit returns the audit of the named workload.
func WorkloadAudit(data polaris.AuditData, kind, namespace, name string) (*WorkloadReport, error) {
	if !ext.ContainsString(SupportedKinds, kind) {
		return nil, ErrUnsupportedKind
	}
	result, found := polaris.FindResult(data, kind, namespace, name)
	if !found {
		return nil, ErrNotAudited
	}
	counts := polaris.CountResultsForItems([]polaris.Result{result})
	score := polaris.ComputeScore(counts)
	return &WorkloadReport{
		Kind:      kind,
		Namespace: namespace,
		Name:      name,
		Score:     score,
		Status:    polaris.ScoreStatus(score),
		Counts:    counts,
		Failures:  polaris.FailingChecks(result),
	}, nil
}
