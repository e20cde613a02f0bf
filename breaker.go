package breaker

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"
)

// State represents the circuit breaker state.
type State int

const (
	// Closed is the normal operating state. Requests flow through.
	Closed State = iota

	// Open is the tripped state. Requests are rejected immediately.
	Open

	// HalfOpen is the recovery testing state. Probe requests are allowed.
	HalfOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Func is the function signature for protected operations.
type Func func(ctx context.Context) error

// Condition determines whether an error should count as a failure.
type Condition func(error) bool

// OnStateChangeFunc is called when the circuit changes state.
type OnStateChangeFunc func(name string, from, to State)

// Default values.
const (
	DefaultFailureThreshold = 5
	DefaultSuccessThreshold = 2
	DefaultRecoveryTimeout  = 30 * time.Second
	DefaultCallTimeout      = 10 * time.Second
)

// Circuit is a circuit breaker. Safe for concurrent use.
//
// The mutex guards only the state and counters below it. Protected
// functions always execute outside the lock, so a slow downstream call
// never blocks admission checks against the same circuit.
type Circuit struct {
	name string
	cfg  config
	log  *slog.Logger

	mu           sync.Mutex
	state        State
	failures     int
	successes    int
	total        int64
	lastFailure  time.Time
	stateChanged time.Time
}

// New creates a Circuit with the given options.
func New(name string, opts ...Option) *Circuit {
	cfg := config{
		failureThreshold: DefaultFailureThreshold,
		successThreshold: DefaultSuccessThreshold,
		recoveryTimeout:  DefaultRecoveryTimeout,
		callTimeout:      DefaultCallTimeout,
		condition:        defaultCondition,
		clock:            realClock{},
		metrics:          NopSink{},
		logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	c := &Circuit{
		name:         name,
		cfg:          cfg,
		log:          cfg.logger.With(slog.String("circuit", name)),
		state:        Closed,
		stateChanged: cfg.clock.Now(),
	}
	cfg.metrics.SetState(name, Closed)
	return c
}

// Do executes fn with circuit breaker protection.
//
// The attempted-call metric is emitted for every invocation, including
// rejected ones. Do enforces no timeout of its own; bound ctx if the
// protected call needs a deadline.
func (c *Circuit) Do(ctx context.Context, fn Func) error {
	c.cfg.metrics.IncAttempts(c.name)

	if err := c.admit(); err != nil {
		return err
	}

	start := c.cfg.clock.Now()
	fnErr := fn(ctx)
	c.settle(fnErr, c.cfg.clock.Now().Sub(start))

	return fnErr
}

// DoAsync executes fn in its own goroutine and races it against the
// configured call timeout and ctx. A timeout is always recorded as a
// failure, regardless of the failure condition, and surfaces as a
// *TimeoutError. The context passed to fn is cancelled once DoAsync
// returns, so a well-behaved fn stops working after a timeout.
func (c *Circuit) DoAsync(ctx context.Context, fn Func) error {
	c.cfg.metrics.IncAttempts(c.name)

	if err := c.admit(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := c.cfg.clock.Now()
	done := make(chan error, 1)
	go func() {
		done <- fn(ctx)
	}()

	var expired <-chan time.Time
	if c.cfg.callTimeout > 0 {
		timer := time.NewTimer(c.cfg.callTimeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case fnErr := <-done:
		c.settle(fnErr, c.cfg.clock.Now().Sub(start))
		return fnErr
	case <-expired:
		terr := &TimeoutError{Name: c.name, Timeout: c.cfg.callTimeout}
		c.recordFailure(terr, KindTimeout)
		c.cfg.metrics.ObserveDuration(c.name, OutcomeTimeout, c.cfg.clock.Now().Sub(start))
		return terr
	case <-ctx.Done():
		ctxErr := ctx.Err()
		c.settle(ctxErr, c.cfg.clock.Now().Sub(start))
		return ctxErr
	}
}

// State returns the current state.
//
// This is a pure read: an elapsed recovery window is only acted on when
// a call is attempted, so an idle circuit reports Open until the next
// Do, DoAsync, or Protect.
func (c *Circuit) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Reset manually forces the circuit to closed with zeroed failure and
// success counters, regardless of its current state. This is an
// operational override, not a transition driven by traffic.
func (c *Circuit) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures = 0
	c.successes = 0
	c.transition(Closed)
}

// Name returns the circuit name.
func (c *Circuit) Name() string {
	return c.name
}

// Counts returns the current failure and success counts.
func (c *Circuit) Counts() (failures, successes int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failures, c.successes
}

// admit decides whether a call may proceed. While open it re-checks the
// recovery window on every attempt; once the window has elapsed the
// open-to-half-open transition happens here, before the protected
// function runs. There is no background timer.
func (c *Circuit) admit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Open {
		if c.cfg.clock.Now().Sub(c.stateChanged) >= c.cfg.recoveryTimeout {
			c.transition(HalfOpen)
			return nil
		}
		return &OpenError{Name: c.name, Stats: c.statsLocked()}
	}
	return nil
}

// settle records the outcome of an executed call and emits its duration
// observation. Ignored and unclassified errors pass through with no
// counter or state effect.
func (c *Circuit) settle(err error, elapsed time.Duration) {
	switch {
	case err == nil:
		c.recordSuccess()
		c.cfg.metrics.ObserveDuration(c.name, OutcomeSuccess, elapsed)
	case c.cfg.ignore != nil && c.cfg.ignore(err):
		c.cfg.metrics.ObserveDuration(c.name, OutcomeError, elapsed)
	case c.cfg.condition(err):
		c.recordFailure(err, KindFailure)
		c.cfg.metrics.ObserveDuration(c.name, OutcomeFailure, elapsed)
	default:
		c.cfg.metrics.ObserveDuration(c.name, OutcomeError, elapsed)
	}
}

func (c *Circuit) recordSuccess() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.total++

	if c.state == HalfOpen {
		c.successes++
		c.log.Info("recovery probe succeeded",
			slog.Int("successes", c.successes),
			slog.Int("success_threshold", c.cfg.successThreshold),
		)
		if c.successes >= c.cfg.successThreshold {
			c.transition(Closed)
		}
	}
}

func (c *Circuit) recordFailure(err error, kind string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.total++
	c.failures++
	c.lastFailure = c.cfg.clock.Now()

	c.cfg.metrics.IncFailures(c.name, kind)
	c.log.Warn("call failed",
		slog.Int("failures", c.failures),
		slog.String("state", c.state.String()),
		slog.String("error", err.Error()),
	)

	switch c.state {
	case Closed:
		if c.failures >= c.cfg.failureThreshold {
			c.transition(Open)
		}
	case HalfOpen:
		c.transition(Open)
	}
}

// transition moves the circuit to a new state. Callers must hold c.mu.
func (c *Circuit) transition(to State) {
	if c.state == to {
		return
	}
	from := c.state
	c.state = to
	c.stateChanged = c.cfg.clock.Now()

	switch to {
	case Open:
		c.successes = 0
		c.log.Error("circuit opened",
			slog.String("from", from.String()),
			slog.Int("failures", c.failures),
		)
	case HalfOpen:
		c.successes = 0
		c.log.Info("circuit half-opened", slog.String("from", from.String()))
	case Closed:
		c.failures = 0
		c.successes = 0
		c.log.Info("circuit closed", slog.String("from", from.String()))
	}

	c.cfg.metrics.SetState(c.name, to)
	if c.cfg.onStateChange != nil {
		c.cfg.onStateChange(c.name, from, to)
	}
}

func defaultCondition(err error) bool {
	return err != nil
}
