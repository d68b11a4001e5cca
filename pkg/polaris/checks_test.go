package polaris_test

import (
	"testing"
	"time"

	"github.com/aquasecurity/polaris-lens/pkg/polaris"
	"github.com/stretchr/testify/assert"
)

func TestScoreStatus(t *testing.T) {
	assert.Equal(t, polaris.StatusSuccess, polaris.ScoreStatus(100))
	assert.Equal(t, polaris.StatusSuccess, polaris.ScoreStatus(80))
	assert.Equal(t, polaris.StatusWarning, polaris.ScoreStatus(79))
	assert.Equal(t, polaris.StatusWarning, polaris.ScoreStatus(50))
	assert.Equal(t, polaris.StatusError, polaris.ScoreStatus(49))
	assert.Equal(t, polaris.StatusError, polaris.ScoreStatus(0))
}

func TestSeverityStatus(t *testing.T) {
	assert.Equal(t, polaris.StatusError, polaris.SeverityStatus(polaris.SeverityDanger))
	assert.Equal(t, polaris.StatusWarning, polaris.SeverityStatus(polaris.SeverityWarning))
	assert.Equal(t, polaris.StatusNone, polaris.SeverityStatus(polaris.SeverityIgnore))
}

func TestCheckName(t *testing.T) {
	assert.Equal(t, "CPU Limits Missing", polaris.CheckName("cpuLimitsMissing"))
	assert.Equal(t, "customCheck", polaris.CheckName("customCheck"))
}

func TestFailingChecks(t *testing.T) {
	t.Run("Should return empty list without pod result", func(t *testing.T) {
		assert.Empty(t, polaris.FailingChecks(polaris.Result{
			Results: polaris.ResultSet{"a": check(false, polaris.SeverityDanger)},
		}))
	})

	t.Run("Should deduplicate and put danger first", func(t *testing.T) {
		result := polaris.Result{
			PodResult: &polaris.PodResult{
				Results: polaris.ResultSet{
					"hostIPCSet":          {Success: true, Severity: polaris.SeverityDanger},
					"priorityClassNotSet": {Success: false, Severity: polaris.SeverityIgnore},
					"livenessProbeMissing": {
						Success: false, Severity: polaris.SeverityWarning, Message: "pod", Category: "Reliability",
					},
				},
				ContainerResults: []polaris.ContainerResult{
					{
						Name: "app",
						Results: polaris.ResultSet{
							"cpuLimitsMissing": {Success: false, Severity: polaris.SeverityWarning, Message: "app", Category: "Efficiency"},
							"runAsPrivileged":  {Success: false, Severity: polaris.SeverityDanger, Message: "app", Category: "Security"},
						},
					},
					{
						Name: "sidecar",
						Results: polaris.ResultSet{
							"cpuLimitsMissing": {Success: false, Severity: polaris.SeverityWarning, Message: "sidecar", Category: "Efficiency"},
						},
					},
				},
			},
		}

		assert.Equal(t, []polaris.FailingCheck{
			{ID: "runAsPrivileged", Name: "Privileged Container", Severity: polaris.SeverityDanger, Message: "app", Category: "Security"},
			{ID: "livenessProbeMissing", Name: "Liveness Probe Missing", Severity: polaris.SeverityWarning, Message: "pod", Category: "Reliability"},
			{ID: "cpuLimitsMissing", Name: "CPU Limits Missing", Severity: polaris.SeverityWarning, Message: "app", Category: "Efficiency"},
		}, polaris.FailingChecks(result))
	})
}

func TestFormatAuditTime(t *testing.T) {
	now := time.Date(2024, 5, 3, 12, 0, 0, 0, time.UTC)
	testCases := []struct {
		auditTime string
		expected  string
	}{
		{auditTime: "2024-05-03T11:59:30Z", expected: "just now"},
		{auditTime: "2024-05-03T11:59:00Z", expected: "1 minute ago"},
		{auditTime: "2024-05-03T11:15:00Z", expected: "45 minutes ago"},
		{auditTime: "2024-05-03T11:00:00Z", expected: "1 hour ago"},
		{auditTime: "2024-05-02T13:00:00Z", expected: "23 hours ago"},
		{auditTime: "2024-05-01T12:00:00Z", expected: "2 days ago"},
		{auditTime: "yesterday", expected: "yesterday"},
	}
	for _, tc := range testCases {
		t.Run(tc.auditTime, func(t *testing.T) {
			assert.Equal(t, tc.expected, polaris.FormatAuditTime(now, tc.auditTime))
		})
	}
}

func TestCheckOutputVersion(t *testing.T) {
	assert.NoError(t, polaris.CheckOutputVersion("1.0"))
	assert.NoError(t, polaris.CheckOutputVersion("1.3.2"))
	assert.EqualError(t, polaris.CheckOutputVersion("2.0"), "unsupported output version 2.0.0, want >= 1.0, < 2.0")
	assert.Error(t, polaris.CheckOutputVersion("latest"))
}
