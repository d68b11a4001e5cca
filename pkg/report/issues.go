package report

import (
	"github.com/aquasecurity/polaris-lens/pkg/polaris"
)

// TopIssues returns the failing checks that affect the most workloads. A
// check failing in several containers of one workload counts once for that
// workload. A limit <= 0 returns all issues.
func TopIssues(data polaris.AuditData, limit int) []IssueWithCount {
	index := make(map[string]int)
	issues := make([]IssueWithCount, 0)
	for _, result := range data.Results {
		for _, check := range polaris.FailingChecks(result) {
			i, ok := index[check.ID]
			if !ok {
				index[check.ID] = len(issues)
				issues = append(issues, IssueWithCount{FailingCheck: check})
				i = len(issues) - 1
			}
			issues[i].AffectedWorkloads++
		}
	}
	OrderedBy(issueCompareFunc...).SortDesc(issues)
	if limit > 0 && len(issues) > limit {
		issues = issues[:limit]
	}
	return issues
}
