package report

import (
	"fmt"
	"io"
)

// NamespaceList is printed as one row per namespace.
type NamespaceList []NamespaceRow

func (o Overview) WriteTable(w io.Writer) error {
	_, _ = fmt.Fprintf(w, "CLUSTER:\t%s\n", o.DisplayName)
	_, _ = fmt.Fprintf(w, "LAST UPDATED:\t%s\n", o.LastUpdated)
	_, _ = fmt.Fprintf(w, "SCORE:\t%d%%\n", o.Score)
	_, _ = fmt.Fprintf(w, "CHECKS:\tpass %d, warning %d, danger %d, skipped %d, total %d\n",
		o.Counts.Pass, o.Counts.Warning, o.Counts.Danger, o.Counts.Skipped, o.Counts.Total)
	_, _ = fmt.Fprintf(w, "KUBERNETES:\t%s\n", o.ClusterInfo.Version)
	_, _ = fmt.Fprintf(w, "NODES:\t%d\n", o.ClusterInfo.Nodes)
	_, _ = fmt.Fprintf(w, "PODS:\t%d\n", o.ClusterInfo.Pods)
	_, _ = fmt.Fprintf(w, "NAMESPACES:\t%d\n", o.ClusterInfo.Namespaces)
	_, _ = fmt.Fprintf(w, "CONTROLLERS:\t%d\n", o.ClusterInfo.Controllers)
	if len(o.TopIssues) == 0 {
		return nil
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "CHECK\tCATEGORY\tSEVERITY\tAFFECTED WORKLOADS")
	for _, issue := range o.TopIssues {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", issue.Name, issue.Category, issue.Severity, issue.AffectedWorkloads)
	}
	return nil
}

func (l NamespaceList) WriteTable(w io.Writer) error {
	_, _ = fmt.Fprintln(w, "NAMESPACE\tSCORE\tPASS\tWARNING\tDANGER\tSKIPPED")
	for _, row := range l {
		_, _ = fmt.Fprintf(w, "%s\t%d%%\t%d\t%d\t%d\t%d\n", row.Namespace, row.Score,
			row.Counts.Pass, row.Counts.Warning, row.Counts.Danger, row.Counts.Skipped)
	}
	return nil
}

func (r NamespaceReport) WriteTable(w io.Writer) error {
	_, _ = fmt.Fprintf(w, "NAMESPACE:\t%s\n", r.Namespace)
	_, _ = fmt.Fprintf(w, "SCORE:\t%d%%\n", r.Score)
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "NAME\tKIND\tSCORE\tPASS\tWARNING\tDANGER")
	for _, row := range r.Resources {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d%%\t%d\t%d\t%d\n", row.Name, row.Kind, row.Score,
			row.Counts.Pass, row.Counts.Warning, row.Counts.Danger)
	}
	return nil
}

func (r WorkloadReport) WriteTable(w io.Writer) error {
	_, _ = fmt.Fprintf(w, "WORKLOAD:\t%s/%s\n", r.Kind, r.Name)
	_, _ = fmt.Fprintf(w, "NAMESPACE:\t%s\n", r.Namespace)
	_, _ = fmt.Fprintf(w, "SCORE:\t%d%%\n", r.Score)
	_, _ = fmt.Fprintf(w, "CHECKS:\tpass %d, warning %d, danger %d\n", r.Counts.Pass, r.Counts.Warning, r.Counts.Danger)
	if len(r.Failures) == 0 {
		return nil
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "CHECK\tSEVERITY\tMESSAGE")
	for _, failure := range r.Failures {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", failure.Name, failure.Severity, failure.Message)
	}
	return nil
}

func (b BadgeData) WriteTable(w io.Writer) error {
	_, err := fmt.Fprintf(w, "SCORE:\t%d%%\tCOLOR:\t%s\n", b.Score, b.Color)
	return err
}
