package report

import (
	"github.com/aquasecurity/polaris-lens/pkg/polaris"
)

// Overview summarizes the whole audit.
type Overview struct {
	DisplayName string               `json:"displayName"`
	AuditTime   string               `json:"auditTime"`
	LastUpdated string               `json:"lastUpdated"`
	Score       int                  `json:"score"`
	Status      polaris.Status       `json:"status"`
	Counts      polaris.ResultCounts `json:"counts"`
	ClusterInfo polaris.ClusterInfo  `json:"clusterInfo"`
	TopIssues   []IssueWithCount     `json:"topIssues"`
}

// NamespaceRow is the summary of a single namespace.
type NamespaceRow struct {
	Namespace string               `json:"namespace"`
	Score     int                  `json:"score"`
	Status    polaris.Status       `json:"status"`
	Counts    polaris.ResultCounts `json:"counts"`
}

// NamespaceReport holds the summary of a namespace together with one row
// per audited resource.
type NamespaceReport struct {
	NamespaceRow `json:",inline"`
	Resources    []ResourceRow `json:"resources"`
}

type ResourceRow struct {
	Name   string               `json:"name"`
	Kind   string               `json:"kind"`
	Score  int                  `json:"score"`
	Counts polaris.ResultCounts `json:"counts"`
}

// WorkloadReport is the audit of a single workload controller.
type WorkloadReport struct {
	Kind      string                 `json:"kind"`
	Namespace string                 `json:"namespace"`
	Name      string                 `json:"name"`
	Score     int                    `json:"score"`
	Status    polaris.Status         `json:"status"`
	Counts    polaris.ResultCounts   `json:"counts"`
	Failures  []polaris.FailingCheck `json:"failures"`
}

// IssueWithCount is a failing check together with the number of workloads
// it fails for.
type IssueWithCount struct {
	polaris.FailingCheck `json:",inline"`
	AffectedWorkloads    int `json:"affectedWorkloads"`
}

// BadgeData is what a score badge shows.
type BadgeData struct {
	Score int    `json:"score"`
	Color string `json:"color"`
	Label string `json:"label"`
}
