package refresh

import (
	"time"

	"github.com/aquasecurity/polaris-lens/pkg/polaris"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultSuccess = "success"
	resultError   = "error"
)

// Metrics records the outcome of fetch cycles. A nil *Metrics records
// nothing.
type Metrics struct {
	fetches  *prometheus.CounterVec
	duration prometheus.Histogram
	score    prometheus.Gauge
}

// NewMetrics creates the fetch metrics and registers them with registerer.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "polaris_lens",
			Name:      "fetch_total",
			Help:      "Number of audit data fetches partitioned by result.",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "polaris_lens",
			Name:      "fetch_duration_seconds",
			Help:      "Time spent fetching audit data.",
			Buckets:   prometheus.DefBuckets,
		}),
		score: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "polaris_lens",
			Name:      "cluster_score",
			Help:      "Cluster score computed from the most recent audit.",
		}),
	}
	registerer.MustRegister(m.fetches, m.duration, m.score)
	return m
}

func (m *Metrics) observe(duration time.Duration, data *polaris.AuditData, err error) {
	if m == nil {
		return
	}
	m.duration.Observe(duration.Seconds())
	if err != nil {
		m.fetches.With(prometheus.Labels{"result": resultError}).Inc()
		return
	}
	m.fetches.With(prometheus.Labels{"result": resultSuccess}).Inc()
	if data != nil {
		m.score.Set(float64(polaris.ComputeScore(polaris.CountResults(*data))))
	}
}
