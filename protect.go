package breaker

import (
	"context"
	"errors"
	"sync"
)

// Done completes a protected block, recording its outcome with the same
// semantics as Do. Calling it more than once is a no-op.
type Done func(err error)

// Protect admits an inline block of code under circuit breaker
// protection, for cases where packaging the block as a Func is
// unnatural. It emits the attempted-call metric, checks admission, and
// returns a completion func the caller must invoke with the block's
// error (nil on success):
//
//	done, err := circuit.Protect(ctx)
//	if err != nil {
//		return err // circuit open
//	}
//	err = doWork()
//	done(err)
//
// Like Do, Protect enforces no timeout.
func (c *Circuit) Protect(ctx context.Context) (Done, error) {
	c.cfg.metrics.IncAttempts(c.name)

	if err := c.admit(); err != nil {
		return nil, err
	}

	start := c.cfg.clock.Now()
	var once sync.Once
	return func(err error) {
		once.Do(func() {
			c.settle(err, c.cfg.clock.Now().Sub(start))
		})
	}, nil
}

// ProtectAsync is Protect with the circuit's call timeout applied: the
// returned context carries a deadline, and a block that ends with the
// deadline exceeded is recorded as a timeout failure regardless of the
// failure condition. The completion func releases the deadline's
// resources, so it must be called even when the block fails.
func (c *Circuit) ProtectAsync(ctx context.Context) (context.Context, Done, error) {
	c.cfg.metrics.IncAttempts(c.name)

	if err := c.admit(); err != nil {
		return ctx, nil, err
	}

	cancel := context.CancelFunc(func() {})
	if c.cfg.callTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, c.cfg.callTimeout)
	}

	start := c.cfg.clock.Now()
	var once sync.Once
	done := func(err error) {
		once.Do(func() {
			elapsed := c.cfg.clock.Now().Sub(start)
			if errors.Is(err, context.DeadlineExceeded) {
				terr := &TimeoutError{Name: c.name, Timeout: c.cfg.callTimeout}
				c.recordFailure(terr, KindTimeout)
				c.cfg.metrics.ObserveDuration(c.name, OutcomeTimeout, elapsed)
			} else {
				c.settle(err, elapsed)
			}
			cancel()
		})
	}
	return ctx, done, nil
}
