package grpc

import (
	"context"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paulohenriquejustino/payment-gateway/app/factory"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const requestIDHeader = "x-request-id"

type contextKey string

const requestIDKey contextKey = "request_id"

var moduleLogger = factory.NewModuleLogger("grpc")

func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

func requestIDFromMetadata(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	for _, v := range md.Get(requestIDHeader) {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func loggerWithContext(ctx context.Context) logrus.FieldLogger {
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		return moduleLogger.WithField("request_id", requestID)
	}
	return moduleLogger
}

// RequestIDInterceptor propagates x-request-id, generating one when the
// caller did not send it. The id is echoed back as a response header.
func RequestIDInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		requestID := requestIDFromMetadata(ctx)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		_ = grpc.SetHeader(ctx, metadata.Pairs(requestIDHeader, requestID))

		return handler(context.WithValue(ctx, requestIDKey, requestID), req)
	}
}

func RecoveryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				loggerWithContext(ctx).WithFields(logrus.Fields{
					"method": info.FullMethod,
					"panic":  r,
					"stack":  string(debug.Stack()),
				}).Error("gRPC handler panicked")
				err = status.Error(codes.Internal, "internal server error")
			}
		}()
		return handler(ctx, req)
	}
}

func LoggingInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		entry := loggerWithContext(ctx).WithFields(logrus.Fields{
			"method":     info.FullMethod,
			"code":       status.Code(err).String(),
			"latency":    time.Since(start).String(),
			"latency_ns": time.Since(start).Nanoseconds(),
		})
		if err != nil {
			entry.WithError(err).Warn("grpc_request")
		} else {
			entry.Info("grpc_request")
		}
		return resp, err
	}
}
