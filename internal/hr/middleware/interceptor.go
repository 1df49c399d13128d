// Package middleware provides request logging for the HTTP mux and a gRPC
// unary interceptor that logs calls and turns panics into Internal errors.
package middleware

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Interceptor logs unary gRPC calls, skipping methods listed as quiet.
type Interceptor struct {
	logger       *zap.Logger
	quietMethods map[string]bool
}

// NewInterceptor creates an Interceptor. Health checks are not logged by
// default because probes call them continuously.
func NewInterceptor(logger *zap.Logger) *Interceptor {
	quiet := map[string]bool{
		"/grpc.health.v1.Health/Check": true,
		"/grpc.health.v1.Health/Watch": true,
	}

	return &Interceptor{
		logger:       logger.Named("grpc"),
		quietMethods: quiet,
	}
}

// Unary returns a gRPC unary interceptor.
func (i *Interceptor) Unary() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (resp interface{}, err error) {
		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				i.logger.Error("Panic in gRPC handler",
					zap.String("method", info.FullMethod),
					zap.Any("panic", r),
				)
				resp, err = nil, status.Error(codes.Internal, "internal server error")
			}
			if i.quietMethods[info.FullMethod] && err == nil {
				return
			}
			i.logger.Info("gRPC call",
				zap.String("method", info.FullMethod),
				zap.String("code", status.Code(err).String()),
				zap.Duration("duration", time.Since(start)),
			)
		}()

		return handler(ctx, req)
	}
}
