package report

import (
	"sort"

	"github.com/aquasecurity/polaris-lens/pkg/polaris"
)

type LessFunc func(p1, p2 *IssueWithCount) bool

// multiSorter implements the Sort interface, sorting the issues within.
type multiSorter struct {
	issues []IssueWithCount
	less   []LessFunc
}

// SortDesc sorts the argument slice in descending order according to the
// LessFunc functions passed to OrderedBy.
func (ms *multiSorter) SortDesc(issues []IssueWithCount) {
	ms.issues = issues
	sort.Stable(sort.Reverse(ms))
}

// OrderedBy returns a Sorter that sorts using the LessFunc functions, in order.
func OrderedBy(less ...LessFunc) *multiSorter {
	return &multiSorter{
		less: less,
	}
}

func (ms *multiSorter) Len() int {
	return len(ms.issues)
}

func (ms *multiSorter) Swap(i, j int) {
	ms.issues[i], ms.issues[j] = ms.issues[j], ms.issues[i]
}

// Less loops along the less functions until it finds a comparison that
// discriminates between the two items.
func (ms *multiSorter) Less(i, j int) bool {
	p, q := &ms.issues[i], &ms.issues[j]
	var k int
	for k = 0; k < len(ms.less)-1; k++ {
		less := ms.less[k]
		switch {
		case less(p, q):
			return true
		case less(q, p):
			return false
		}
	}
	return ms.less[k](p, q)
}

func severityRank(severity polaris.Severity) int {
	switch severity {
	case polaris.SeverityDanger:
		return 2
	case polaris.SeverityWarning:
		return 1
	default:
		return 0
	}
}

// issueCompareFunc orders issues, once reversed, by affected workloads
// desc, danger before warning, and ID asc.
var issueCompareFunc = []LessFunc{
	func(i1, i2 *IssueWithCount) bool {
		return i1.AffectedWorkloads < i2.AffectedWorkloads
	}, func(i1, i2 *IssueWithCount) bool {
		return severityRank(i1.Severity) < severityRank(i2.Severity)
	}, func(i1, i2 *IssueWithCount) bool {
		return i1.ID > i2.ID
	}}
