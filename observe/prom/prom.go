// Package prom exposes guard lifecycle events as Prometheus metrics.
package prom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts guard lifecycle events and tracks how long cleanup
// actions take. It implements the guard.Observer interface.
type Metrics struct {
	armed    prometheus.Counter
	fired    prometheus.Counter
	moved    prometheus.Counter
	panicked prometheus.Counter
	fireDur  prometheus.Histogram
}

// New returns a Metrics observer with its collectors registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		armed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "guard",
			Name:      "armed_total",
			Help:      "Cleanup actions registered with a guard.",
		}),
		fired: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "guard",
			Name:      "fired_total",
			Help:      "Cleanup actions executed at scope exit.",
		}),
		moved: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "guard",
			Name:      "moved_total",
			Help:      "Guards moved out of (ownership transfers).",
		}),
		panicked: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "guard",
			Name:      "panicked_total",
			Help:      "Cleanup actions that panicked, violating the no-failure contract.",
		}),
		fireDur: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "guard",
			Name:      "fire_duration_seconds",
			Help:      "Time spent running cleanup actions.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// GuardArmed counts a registered action.
func (m *Metrics) GuardArmed() { m.armed.Inc() }

// GuardFired counts an executed action and observes its duration.
func (m *Metrics) GuardFired(dur time.Duration) {
	m.fired.Inc()
	m.fireDur.Observe(dur.Seconds())
}

// GuardMoved counts an ownership transfer.
func (m *Metrics) GuardMoved() { m.moved.Inc() }

// GuardPanicked counts a contract violation.
func (m *Metrics) GuardPanicked(any) { m.panicked.Inc() }
