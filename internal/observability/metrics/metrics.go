// Package metrics provides Prometheus metrics for the gateway.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "interview_gateway"

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	FramesReceived *prometheus.CounterVec // by transport
	FramesDropped  *prometheus.CounterVec // by reason

	TranscriptEntries prometheus.Counter
	DuplicateFinals   prometheus.Counter

	DirectivesSent *prometheus.CounterVec // warn | interrupt

	SessionsStarted prometheus.Counter
	SessionsActive  prometheus.Gauge
}

// Default is the global metrics instance.
var Default = New()

func New() *Metrics {
	return &Metrics{
		FramesReceived: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_received_total",
			Help:      "Inbound provider frames by transport",
		}, []string{"transport"}),
		FramesDropped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_dropped_total",
			Help:      "Inbound frames dropped before reaching the merger",
		}, []string{"reason"}),
		TranscriptEntries: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcript_entries_total",
			Help:      "Finalized transcript entries appended",
		}),
		DuplicateFinals: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicate_finals_total",
			Help:      "Consecutive identical finals, usually double delivery across transports",
		}),
		DirectivesSent: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "directives_sent_total",
			Help:      "Closure directives issued to the provider",
		}, []string{"directive"}),
		SessionsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_started_total",
			Help:      "Interview sessions started",
		}),
		SessionsActive: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Interview sessions currently live",
		}),
	}
}
