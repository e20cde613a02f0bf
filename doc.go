// Package breaker implements the circuit breaker pattern for resilient distributed systems.
//
// breaker protects callers from repeatedly invoking a failing dependency by:
//
//   - Tracking Failures: Classified errors trip the circuit open
//   - Fast Rejection: Open circuits reject calls immediately without load
//   - Gradual Recovery: Half-open state probes whether the dependency recovered
//   - Observability: A metrics sink and structured logging, no backend coupling
//   - Shared Circuits: A registry so call sites protecting the same dependency share state
//
// # Quick Start
//
// Create a circuit and protect calls:
//
//	circuit := breaker.New("payment-service")
//
//	err := circuit.Do(ctx, func(ctx context.Context) error {
//	    return client.Charge(ctx, amount)
//	})
//	if breaker.IsOpen(err) {
//	    return handleFallback()
//	}
//
// For functions that return values, use the generic Run helper:
//
//	user, err := breaker.Run(ctx, circuit, func(ctx context.Context) (*User, error) {
//	    return client.GetUser(ctx, id)
//	})
//
// # Circuit States
//
// The circuit breaker has three states:
//
//	Closed (normal):
//	    - Requests flow through to the protected function
//	    - Classified failures are counted
//	    - When failures reach threshold, circuit opens
//
//	Open (tripped):
//	    - Requests are rejected immediately with an *OpenError
//	    - After the recovery timeout, the next attempt probes recovery
//
//	HalfOpen (testing):
//	    - Requests are admitted as probes, with no concurrency cap
//	    - Enough successes close the circuit
//	    - Any classified failure reopens it
//
// The open-to-half-open transition has no background timer: it happens
// lazily, as a side effect of a call attempt after the recovery window
// has elapsed.
//
// # Configuration
//
// Configure thresholds and timing with options:
//
//	circuit := breaker.New("api",
//	    breaker.WithFailureThreshold(5),           // Open after 5 classified failures
//	    breaker.WithSuccessThreshold(2),           // Close after 2 successes in half-open
//	    breaker.WithRecoveryTimeout(30*time.Second), // Wait 30s before probing
//	    breaker.WithCallTimeout(10*time.Second),   // Bound DoAsync calls to 10s
//	)
//
// Or start from a predefined profile for a class of dependency:
//
//	db := breaker.New("orders-db", breaker.WithProfile(breaker.DatabaseProfile))
//	cache := breaker.New("session-cache", breaker.WithProfile(breaker.CacheProfile))
//	api := breaker.New("tax-api", breaker.WithProfile(breaker.ExternalAPIProfile))
//
// # Synchronous and Asynchronous Protection
//
// Do runs the function inline and enforces no timeout; deadlines are the
// caller's responsibility via ctx. DoAsync runs the function in its own
// goroutine and races it against the configured call timeout:
//
//	err := circuit.DoAsync(ctx, func(ctx context.Context) error {
//	    return client.Call(ctx)
//	})
//	if breaker.IsTimeout(err) {
//	    // recorded as a failure, dependency may still be in flight
//	}
//
// A timeout always counts as a failure, even with a custom failure
// condition.
//
// # Failure Conditions
//
// By default, any non-nil error counts as a failure. Customize this with If:
//
//	// Only count connection errors as failures
//	circuit := breaker.New("api",
//	    breaker.If(func(err error) bool {
//	        return errors.Is(err, ErrConnReset) || errors.Is(err, ErrUnavailable)
//	    }),
//	)
//
// Errors that do not match the condition propagate to the caller without
// touching any counter or state: only classified failures influence
// circuit health. Use Ignore to carve exceptions out of a broad
// condition:
//
//	// Everything is a failure except validation errors
//	circuit := breaker.New("api",
//	    breaker.Ignore(func(err error) bool {
//	        return errors.Is(err, ErrInvalidInput)
//	    }),
//	)
//
// # Shared Circuits
//
// A Registry hands out one circuit per name, so independent call sites
// share failure state for the same dependency:
//
//	reg := breaker.NewRegistry()
//
//	// Both sites get the same *Circuit; options on later lookups are ignored.
//	a := reg.Get("billing-db", breaker.WithProfile(breaker.DatabaseProfile))
//	b := reg.Get("billing-db")
//
//	reg.AllStats()          // snapshot of every circuit
//	reg.Reset("billing-db") // operational override back to closed
//	reg.Remove("billing-db")
//
// # Protecting Inline Blocks
//
// Where wrapping a block as a function is unnatural, use Protect:
//
//	done, err := circuit.Protect(ctx)
//	if err != nil {
//	    return err // circuit open
//	}
//	rows, err := tx.Query(q)
//	done(err)
//
// ProtectAsync additionally derives a call-timeout context for the block:
//
//	ctx, done, err := circuit.ProtectAsync(ctx)
//	if err != nil {
//	    return err
//	}
//	err = stream.Send(ctx, msg)
//	done(err)
//
// # Observability
//
// A MetricsSink receives the state gauge, attempted-call and failure
// counters, and per-call duration observations. The prom subpackage
// implements it on Prometheus. A *slog.Logger receives probe, failure,
// and transition events:
//
//	circuit := breaker.New("service",
//	    breaker.WithMetrics(sink),
//	    breaker.WithLogger(slog.Default()),
//	)
//
// The OnStateChange hook remains for lightweight cases:
//
//	breaker.OnStateChange(func(name string, from, to breaker.State) {
//	    alert(name, from, to)
//	})
//
// # Error Taxonomy
//
// Callers can always distinguish "the circuit blocked me" from "the
// dependency failed":
//
//   - *OpenError (matches ErrOpen): rejected without execution; carries
//     the circuit name and a Stats snapshot. Never wraps a cause.
//   - *TimeoutError (matches ErrTimeout): async call exceeded the call
//     timeout; recorded as a failure.
//   - Everything else is the protected function's own error, returned
//     unmodified; the circuit never swallows or retries it.
//
// # Inspecting State
//
// Query the circuit's current status:
//
//	state := circuit.State()  // Closed, Open, or HalfOpen
//	stats := circuit.Stats()  // counters, timestamps, next attempt time
//
// # Testing
//
// Inject a fake clock to control time in tests:
//
//	type fakeClock struct {
//	    now time.Time
//	}
//
//	func (c *fakeClock) Now() time.Time { return c.now }
//	func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }
//
//	clock := &fakeClock{now: time.Now()}
//	circuit := breaker.New("test",
//	    breaker.WithFailureThreshold(1),
//	    breaker.WithRecoveryTimeout(30*time.Second),
//	    breaker.WithClock(clock),
//	)
//
// Note that an elapsed recovery window is only observable through a call
// attempt; State() alone never transitions the circuit.
//
// # Scope
//
// breaker performs no retries, no backoff, and no service discovery.
// Retry policy belongs to a higher-level collaborator; compose the two
// so that open-circuit rejections are not retried:
//
//	err := retry.Do(ctx, func(ctx context.Context) error {
//	    return circuit.Do(ctx, func(ctx context.Context) error {
//	        return client.Call(ctx)
//	    })
//	}, retry.If(func(err error) bool {
//	    return !breaker.IsOpen(err)
//	}))
package breaker
