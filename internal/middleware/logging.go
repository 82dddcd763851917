// internal/middleware/logging.go
package middleware

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// LoggingInterceptor writes one log line per RPC. It must run after the metadata extractor.
type LoggingInterceptor struct {
	logger zerolog.Logger
}

func NewLoggingInterceptor(logger zerolog.Logger) *LoggingInterceptor {
	return &LoggingInterceptor{logger: logger}
}

func (l *LoggingInterceptor) Unary() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		l.log(ctx, info.FullMethod, start, err)
		return resp, err
	}
}

func (l *LoggingInterceptor) Stream() grpc.StreamServerInterceptor {
	return func(
		srv interface{},
		stream grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		start := time.Now()
		err := handler(srv, stream)
		l.log(stream.Context(), info.FullMethod, start, err)
		return err
	}
}

func (l *LoggingInterceptor) log(ctx context.Context, method string, start time.Time, err error) {
	client := GetClientInfoFromContext(ctx)
	code := status.Code(err)

	event := l.logger.Info()
	if err != nil {
		event = l.logger.Error().Err(err)
	}
	event.
		Str("method", method).
		Str("code", code.String()).
		Dur("duration", time.Since(start)).
		Str("ip", client.IPAddress).
		Str("user_agent", client.UserAgent).
		Str("user_id", client.UserID).
		Msg("grpc request")
}
