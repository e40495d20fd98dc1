package rpc

import (
	"context"
	"time"

	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/auth"
	"github.com/Ivanvip24/vt-souvenir-system-sub001/internal/platform/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// ContextInterceptor copies the caller identity from metadata into the context.
func ContextInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if val := md.Get("x-user-id"); len(val) > 0 && val[0] != "" {
				ctx = auth.WithUserID(ctx, val[0])
			}
		}
		return handler(ctx, req)
	}
}

// LoggingInterceptor logs every call with its status code and latency.
// Server-side failures are logged at error level.
func LoggingInterceptor(log logger.ZapLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", code.String()),
			zap.Duration("duration", time.Since(start)),
		}
		switch code {
		case codes.OK:
			log.Debug("gRPC call", fields...)
		case codes.Internal, codes.Unknown:
			log.Error("gRPC call failed", append(fields, zap.Error(err))...)
		default:
			log.Info("gRPC call rejected", append(fields, zap.Error(err))...)
		}
		return resp, err
	}
}
