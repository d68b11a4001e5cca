package polaris

import (
	"math"
	"sort"

	"github.com/emirpasic/gods/sets/hashset"
)

// ResultCounts aggregates check outcomes. Total always equals the sum of
// the other buckets for well-formed input.
type ResultCounts struct {
	Total   int `json:"total"`
	Pass    int `json:"pass"`
	Warning int `json:"warning"`
	Danger  int `json:"danger"`
	Skipped int `json:"skipped"`
}

// Add returns the sum of c and other.
func (c ResultCounts) Add(other ResultCounts) ResultCounts {
	return ResultCounts{
		Total:   c.Total + other.Total,
		Pass:    c.Pass + other.Pass,
		Warning: c.Warning + other.Warning,
		Danger:  c.Danger + other.Danger,
		Skipped: c.Skipped + other.Skipped,
	}
}

// CountResultSet classifies every entry of the set into exactly one bucket.
// Checks disabled in the Polaris config (severity ignore) are skipped;
// exemptions granted through resource annotations never show up here.
func CountResultSet(set ResultSet) ResultCounts {
	var counts ResultCounts
	for _, msg := range set {
		counts.Total++
		switch {
		case msg.Success:
			counts.Pass++
		case msg.Severity == SeverityIgnore:
			counts.Skipped++
		case msg.Severity == SeverityWarning:
			counts.Warning++
		case msg.Severity == SeverityDanger:
			counts.Danger++
		}
	}
	return counts
}

// CountResultsForResource sums the resource, pod and container sets of a
// single result. Check IDs repeated across containers count once each.
func CountResultsForResource(result Result) ResultCounts {
	counts := CountResultSet(result.Results)
	if result.PodResult == nil {
		return counts
	}
	counts = counts.Add(CountResultSet(result.PodResult.Results))
	for _, container := range result.PodResult.ContainerResults {
		counts = counts.Add(CountResultSet(container.Results))
	}
	return counts
}

// CountResultsForItems sums CountResultsForResource over the given results.
func CountResultsForItems(results []Result) ResultCounts {
	var counts ResultCounts
	for _, result := range results {
		counts = counts.Add(CountResultsForResource(result))
	}
	return counts
}

// CountResults counts every check in the audit document.
func CountResults(data AuditData) ResultCounts {
	return CountResultsForItems(data.Results)
}

// ComputeScore returns the share of passing checks as a percentage rounded
// half up. Skipped checks stay in the denominator.
func ComputeScore(counts ResultCounts) int {
	if counts.Total == 0 {
		return 0
	}
	return int(math.Floor(float64(counts.Pass)*100/float64(counts.Total) + 0.5))
}

// GetNamespaces returns the sorted, distinct namespaces of all namespaced
// results.
func GetNamespaces(data AuditData) []string {
	set := hashset.New()
	for _, result := range data.Results {
		if result.Namespace != "" {
			set.Add(result.Namespace)
		}
	}
	namespaces := make([]string, 0, set.Size())
	for _, value := range set.Values() {
		namespaces = append(namespaces, value.(string))
	}
	sort.Strings(namespaces)
	return namespaces
}

// FilterResultsByNamespace returns results in the given namespace keeping
// their original order. The match is exact and case-sensitive.
func FilterResultsByNamespace(data AuditData, namespace string) []Result {
	results := make([]Result, 0)
	for _, result := range data.Results {
		if result.Namespace == namespace {
			results = append(results, result)
		}
	}
	return results
}

// FindResult looks up the result of a single resource.
func FindResult(data AuditData, kind, namespace, name string) (Result, bool) {
	for _, result := range data.Results {
		if result.Kind == kind && result.Namespace == namespace && result.Name == name {
			return result, true
		}
	}
	return Result{}, false
}
