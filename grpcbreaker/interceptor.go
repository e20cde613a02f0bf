// Package grpcbreaker integrates circuit breakers into gRPC clients as
// interceptors, so every outbound call is protected without touching
// call sites.
package grpcbreaker

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/quantrail/breaker"
)

type options struct {
	key         KeyFunc
	circuitOpts []breaker.Option
}

// Option configures the interceptors.
type Option func(*options)

// WithKey sets how the circuit name is derived from a call. Default is
// TargetKey.
func WithKey(fn KeyFunc) Option {
	return func(o *options) {
		o.key = fn
	}
}

// WithCircuitOptions sets the breaker options applied when a circuit is
// first created for a key. Like Registry.Get, later calls for an
// existing key ignore them.
func WithCircuitOptions(opts ...breaker.Option) Option {
	return func(o *options) {
		o.circuitOpts = opts
	}
}

func buildOptions(opts []Option) options {
	o := options{key: TargetKey()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// UnaryClientInterceptor protects unary calls with a circuit from reg,
// keyed per call by the configured KeyFunc.
//
//	reg := breaker.NewRegistry()
//	conn, err := grpc.NewClient(target,
//	    grpc.WithUnaryInterceptor(grpcbreaker.UnaryClientInterceptor(reg)),
//	)
func UnaryClientInterceptor(reg *breaker.Registry, opts ...Option) grpc.UnaryClientInterceptor {
	o := buildOptions(opts)
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, callOpts ...grpc.CallOption) error {
		c := reg.Get(o.key(ctx, method, cc), o.circuitOpts...)
		return c.Do(ctx, func(ctx context.Context) error {
			return invoker(ctx, method, req, reply, cc, callOpts...)
		})
	}
}

// StreamClientInterceptor protects stream establishment with a circuit
// from reg. Failures of an established stream are not observed; only
// the call that opens the stream counts.
func StreamClientInterceptor(reg *breaker.Registry, opts ...Option) grpc.StreamClientInterceptor {
	o := buildOptions(opts)
	return func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, streamer grpc.Streamer, callOpts ...grpc.CallOption) (grpc.ClientStream, error) {
		c := reg.Get(o.key(ctx, method, cc), o.circuitOpts...)
		return breaker.Run(ctx, c, func(ctx context.Context) (grpc.ClientStream, error) {
			return streamer(ctx, desc, cc, method, callOpts...)
		})
	}
}

// TransientFailures returns a failure condition that counts only status
// codes indicating an unhealthy backend: Unavailable, DeadlineExceeded,
// and ResourceExhausted. Application-level errors such as NotFound or
// InvalidArgument pass through without affecting circuit health.
func TransientFailures() breaker.Condition {
	return func(err error) bool {
		switch status.Code(err) {
		case codes.Unavailable, codes.DeadlineExceeded, codes.ResourceExhausted:
			return true
		default:
			return false
		}
	}
}
