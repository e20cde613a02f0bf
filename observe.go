package breaker

import "time"

// Outcome tags a call duration observation.
type Outcome string

const (
	// OutcomeSuccess marks a call that returned without error.
	OutcomeSuccess Outcome = "success"

	// OutcomeFailure marks a call whose error matched the failure
	// condition and was counted toward circuit health.
	OutcomeFailure Outcome = "failure"

	// OutcomeTimeout marks an async call that exceeded the call timeout.
	OutcomeTimeout Outcome = "timeout"

	// OutcomeError marks a call whose error was ignored or did not
	// match the failure condition and passed through uncounted.
	OutcomeError Outcome = "error"
)

// Failure kinds reported to MetricsSink.IncFailures.
const (
	KindFailure = "failure"
	KindTimeout = "timeout"
)

// MetricsSink receives best-effort observability notifications from a
// circuit. Implementations must be safe for concurrent use and must not
// block: sinks are invoked on the caller's goroutine, sometimes with
// the circuit lock held.
type MetricsSink interface {
	// SetState gauges the current state of the named circuit.
	SetState(name string, state State)

	// IncAttempts counts every call attempt, including rejected ones.
	IncAttempts(name string)

	// IncFailures counts every classified failure by kind
	// (KindFailure or KindTimeout).
	IncFailures(name string, kind string)

	// ObserveDuration records how long an admitted call took, tagged
	// by outcome.
	ObserveDuration(name string, outcome Outcome, elapsed time.Duration)
}

// NopSink is a MetricsSink that discards everything.
type NopSink struct{}

func (NopSink) SetState(string, State) {}

func (NopSink) IncAttempts(string) {}

func (NopSink) IncFailures(string, string) {}

func (NopSink) ObserveDuration(string, Outcome, time.Duration) {}
