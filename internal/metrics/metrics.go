// Package metrics exposes Prometheus instrumentation for the resolver.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Tracker records resolution outcomes as Prometheus metrics. It satisfies
// the resolver's MetricsTracker interface.
type Tracker struct {
	resolutions *prometheus.CounterVec
	duration    prometheus.Histogram
}

// NewTracker creates a tracker and registers its collectors.
func NewTracker(reg prometheus.Registerer) *Tracker {
	t := &Tracker{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "randomarticle",
			Name:      "resolutions_total",
			Help:      "Resolution attempts by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "randomarticle",
			Name:      "resolution_duration_seconds",
			Help:      "Wall time of one resolution attempt.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(t.resolutions, t.duration)
	return t
}

// ObserveResolution records one completed resolution attempt.
func (t *Tracker) ObserveResolution(outcome string, duration time.Duration) {
	t.resolutions.WithLabelValues(outcome).Inc()
	t.duration.Observe(duration.Seconds())
}
