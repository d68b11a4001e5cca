package report

import (
	"fmt"

	"github.com/aquasecurity/polaris-lens/pkg/polaris"
	"github.com/aquasecurity/polaris-lens/pkg/refresh"
)

const (
	ColorSuccess = "#4caf50"
	ColorWarning = "#ff9800"
	ColorError   = "#f44336"
)

// Badge returns the cluster score badge for state. There is no badge while
// loading or without data.
func Badge(state refresh.State) (BadgeData, bool) {
	if state.Loading || state.Data == nil {
		return BadgeData{}, false
	}
	score := polaris.ComputeScore(polaris.CountResults(*state.Data))
	return BadgeData{
		Score: score,
		Color: scoreColor(score),
		Label: fmt.Sprintf("Polaris cluster score: %d%%", score),
	}, true
}

func scoreColor(score int) string {
	switch polaris.ScoreStatus(score) {
	case polaris.StatusSuccess:
		return ColorSuccess
	case polaris.StatusWarning:
		return ColorWarning
	default:
		return ColorError
	}
}
