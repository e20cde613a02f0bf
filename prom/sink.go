// Package prom implements breaker.MetricsSink on Prometheus collectors.
package prom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/quantrail/breaker"
)

// Sink exports circuit breaker metrics through Prometheus. One Sink can
// serve any number of circuits; series are labeled by circuit name.
type Sink struct {
	state    *prometheus.GaugeVec
	attempts *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewSink builds a Sink and registers its collectors with reg. It
// panics if a collector with the same name is already registered, same
// as prometheus.MustRegister.
func NewSink(reg prometheus.Registerer) *Sink {
	s := &Sink{
		state: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "breaker_state",
				Help: "Current circuit state: 0=closed, 1=half-open, 2=open",
			},
			[]string{"circuit"},
		),
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "breaker_attempts_total",
				Help: "Call attempts through the circuit, including rejected ones",
			},
			[]string{"circuit"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "breaker_failures_total",
				Help: "Classified failures recorded by the circuit, by kind",
			},
			[]string{"circuit", "kind"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "breaker_call_duration_seconds",
				Help:    "Duration of admitted calls, by outcome",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"circuit", "outcome"},
		),
	}
	reg.MustRegister(s.state, s.attempts, s.failures, s.duration)
	return s
}

// SetState implements breaker.MetricsSink.
func (s *Sink) SetState(name string, state breaker.State) {
	s.state.WithLabelValues(name).Set(stateValue(state))
}

// IncAttempts implements breaker.MetricsSink.
func (s *Sink) IncAttempts(name string) {
	s.attempts.WithLabelValues(name).Inc()
}

// IncFailures implements breaker.MetricsSink.
func (s *Sink) IncFailures(name, kind string) {
	s.failures.WithLabelValues(name, kind).Inc()
}

// ObserveDuration implements breaker.MetricsSink.
func (s *Sink) ObserveDuration(name string, outcome breaker.Outcome, elapsed time.Duration) {
	s.duration.WithLabelValues(name, string(outcome)).Observe(elapsed.Seconds())
}

func stateValue(state breaker.State) float64 {
	switch state {
	case breaker.Closed:
		return 0
	case breaker.HalfOpen:
		return 1
	case breaker.Open:
		return 2
	default:
		return -1
	}
}
