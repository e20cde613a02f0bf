package breaker

import (
	"log/slog"
	"time"
)

type config struct {
	failureThreshold int
	successThreshold int
	recoveryTimeout  time.Duration
	callTimeout      time.Duration
	condition        Condition
	ignore           Condition
	clock            Clock
	metrics          MetricsSink
	logger           *slog.Logger

	onStateChange OnStateChangeFunc
}

// Option configures a Circuit.
type Option func(*config)

// WithFailureThreshold sets how many classified failures while closed
// open the circuit. Default is 5.
func WithFailureThreshold(n int) Option {
	return func(c *config) {
		c.failureThreshold = n
	}
}

// WithSuccessThreshold sets how many successes in half-open state are
// required before closing the circuit. Default is 2.
func WithSuccessThreshold(n int) Option {
	return func(c *config) {
		c.successThreshold = n
	}
}

// WithRecoveryTimeout sets how long the circuit stays open before a
// call attempt may probe for recovery. Default is 30 seconds.
func WithRecoveryTimeout(d time.Duration) Option {
	return func(c *config) {
		c.recoveryTimeout = d
	}
}

// WithCallTimeout bounds calls made through DoAsync and ProtectAsync.
// Zero disables the timeout. Default is 10 seconds. Do is never bounded
// by this value.
func WithCallTimeout(d time.Duration) Option {
	return func(c *config) {
		c.callTimeout = d
	}
}

// If sets the condition that determines whether an error counts as a
// failure. By default, any non-nil error is a failure. Errors that do
// not match propagate to the caller without affecting circuit health.
func If(cond Condition) Option {
	return func(c *config) {
		c.condition = cond
	}
}

// IfNot sets a condition where matching errors are NOT counted as failures.
// This is equivalent to If(Not(cond)).
func IfNot(cond Condition) Option {
	return If(Not(cond))
}

// Not inverts a condition.
func Not(cond Condition) Condition {
	return func(err error) bool {
		return !cond(err)
	}
}

// Ignore excludes matching errors from failure accounting even when the
// failure condition would match them. Ignored errors propagate to the
// caller untouched.
func Ignore(cond Condition) Option {
	return func(c *config) {
		c.ignore = cond
	}
}

// WithClock sets the clock for time operations. Useful for testing.
func WithClock(clock Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithMetrics sets the metrics sink notified of attempts, failures,
// state changes, and call durations. Default is NopSink.
func WithMetrics(sink MetricsSink) Option {
	return func(c *config) {
		c.metrics = sink
	}
}

// WithLogger sets the structured logger. Events: info on recovery
// probes and recovery transitions, warn on classified failures, error
// on transitions into the open state. Default discards all output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// OnStateChange sets a hook called when the circuit changes state.
func OnStateChange(fn OnStateChangeFunc) Option {
	return func(c *config) {
		c.onStateChange = fn
	}
}
