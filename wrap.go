package breaker

import "context"

// Wrap returns a function equivalent to fn with every invocation routed
// through c.Do. Use it to protect a callable once and pass it around
// instead of repeating the Do boilerplate at each call site.
func Wrap(c *Circuit, fn Func) Func {
	return func(ctx context.Context) error {
		return c.Do(ctx, fn)
	}
}

// WrapAsync returns a function equivalent to fn with every invocation
// routed through c.DoAsync, bounded by the circuit's call timeout.
func WrapAsync(c *Circuit, fn Func) Func {
	return func(ctx context.Context) error {
		return c.DoAsync(ctx, fn)
	}
}
