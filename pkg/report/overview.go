package report

import (
	"time"

	"github.com/aquasecurity/polaris-lens/pkg/polaris"
)

// DefaultTopIssues is the number of issues listed in an Overview.
const DefaultTopIssues = 5

// NewOverview summarizes data as of now.
func NewOverview(data polaris.AuditData, now time.Time) Overview {
	counts := polaris.CountResults(data)
	score := polaris.ComputeScore(counts)
	return Overview{
		DisplayName: data.DisplayName,
		AuditTime:   data.AuditTime,
		LastUpdated: polaris.FormatAuditTime(now, data.AuditTime),
		Score:       score,
		Status:      polaris.ScoreStatus(score),
		Counts:      counts,
		ClusterInfo: data.ClusterInfo,
		TopIssues:   TopIssues(data, DefaultTopIssues),
	}
}

// NamespaceRows returns one row per namespace in alphabetical order.
func NamespaceRows(data polaris.AuditData) NamespaceList {
	namespaces := polaris.GetNamespaces(data)
	rows := make(NamespaceList, 0, len(namespaces))
	for _, namespace := range namespaces {
		rows = append(rows, namespaceRow(namespace, polaris.FilterResultsByNamespace(data, namespace)))
	}
	return rows
}

// NamespaceDetail returns the report of a single namespace. A namespace
// without results yields an empty report with a zero score.
func NamespaceDetail(data polaris.AuditData, namespace string) NamespaceReport {
	results := polaris.FilterResultsByNamespace(data, namespace)
	report := NamespaceReport{
		NamespaceRow: namespaceRow(namespace, results),
		Resources:    make([]ResourceRow, 0, len(results)),
	}
	for _, result := range results {
		counts := polaris.CountResultsForResource(result)
		report.Resources = append(report.Resources, ResourceRow{
			Name:   result.Name,
			Kind:   result.Kind,
			Score:  polaris.ComputeScore(counts),
			Counts: counts,
		})
	}
	return report
}

func namespaceRow(namespace string, results []polaris.Result) NamespaceRow {
	counts := polaris.CountResultsForItems(results)
	score := polaris.ComputeScore(counts)
	return NamespaceRow{
		Namespace: namespace,
		Score:     score,
		Status:    polaris.ScoreStatus(score),
		Counts:    counts,
	}
}
