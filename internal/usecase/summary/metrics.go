package summary

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/johnquangdev/meeting-notes/internal/domain/entities"
)

// Metrics records extraction outcomes. A nil *Metrics is a no-op.
type Metrics struct {
	extractions    *prometheus.CounterVec
	backendSeconds *prometheus.HistogramVec
}

// NewMetrics registers the extractor metrics with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		extractions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "meeting_notes",
			Subsystem: "summary",
			Name:      "extractions_total",
			Help:      "Summary extractions by provider and outcome",
		}, []string{"provider", "outcome"}),
		backendSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "meeting_notes",
			Subsystem: "summary",
			Name:      "backend_seconds",
			Help:      "Latency of generation backend calls",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 60},
		}, []string{"provider"}),
	}
}

func (m *Metrics) observeOutcome(provider string, outcome entities.GenerationOutcome) {
	if m == nil {
		return
	}
	m.extractions.WithLabelValues(provider, string(outcome)).Inc()
}

func (m *Metrics) observeBackend(provider string, d time.Duration) {
	if m == nil {
		return
	}
	m.backendSeconds.WithLabelValues(provider).Observe(d.Seconds())
}
