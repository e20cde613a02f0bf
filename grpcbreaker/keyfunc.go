package grpcbreaker

import (
	"context"
	"strings"

	"google.golang.org/grpc"
)

// KeyFunc derives the circuit name from a gRPC call. The name decides
// which circuit in the registry tracks the call's outcome.
type KeyFunc func(ctx context.Context, fullMethod string, cc *grpc.ClientConn) string

// TargetKey keys circuits by connection target, one circuit per
// backend service. This is the default.
func TargetKey() KeyFunc {
	return func(ctx context.Context, fullMethod string, cc *grpc.ClientConn) string {
		return cc.Target()
	}
}

// MethodKey keys circuits by full method name, so a failing method
// trips independently of its service's other methods.
func MethodKey() KeyFunc {
	return func(ctx context.Context, fullMethod string, cc *grpc.ClientConn) string {
		return fullMethod
	}
}

// CompositeKey joins multiple key funcs with "@".
func CompositeKey(primary KeyFunc, secondary ...KeyFunc) KeyFunc {
	return func(ctx context.Context, fullMethod string, cc *grpc.ClientConn) string {
		parts := make([]string, 0, 1+len(secondary))
		parts = append(parts, primary(ctx, fullMethod, cc))
		for _, kf := range secondary {
			parts = append(parts, kf(ctx, fullMethod, cc))
		}
		return strings.Join(parts, "@")
	}
}
