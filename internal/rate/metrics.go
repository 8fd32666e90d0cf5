package rate

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultSuccess   = "success"
	resultFailure   = "failure"
	resultDiscarded = "discarded"
)

// Metrics is optional; a nil *Metrics records nothing.
type Metrics struct {
	refreshes   *prometheus.CounterVec
	duration    prometheus.Histogram
	tableAssets prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cryptoquote",
			Subsystem: "rate",
			Name:      "refresh_total",
			Help:      "Rate refreshes by outcome.",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cryptoquote",
			Subsystem: "rate",
			Name:      "refresh_duration_seconds",
			Help:      "Time spent waiting on both upstream feeds.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2, 5, 10},
		}),
		tableAssets: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cryptoquote",
			Subsystem: "rate",
			Name:      "table_assets",
			Help:      "Number of assets priced in the current rate table.",
		}),
	}
	reg.MustRegister(m.refreshes, m.duration, m.tableAssets)
	return m
}

// observe records one finished refresh. assets < 0 leaves the table gauge untouched.
func (m *Metrics) observe(result string, took time.Duration, assets int) {
	if m == nil {
		return
	}
	m.refreshes.WithLabelValues(result).Inc()
	m.duration.Observe(took.Seconds())
	if assets >= 0 {
		m.tableAssets.Set(float64(assets))
	}
}
