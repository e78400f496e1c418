// Package logger wraps a process-wide zap logger that threads the request ID
// from the context into every line it emits.
package logger

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log  *zap.Logger
	once sync.Once
)

// ContextKey keeps logger context values from colliding with other string keys
type ContextKey string

// RequestIDKey carries the per-request ID set by the HTTP middleware
const RequestIDKey ContextKey = "request_id"

// Init builds the process logger. Development gets a colored console encoder;
// anything else emits production JSON with ISO-8601 timestamps. Calling Init
// again is a no-op.
func Init(env string) {
	once.Do(func() {
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

		if env == "development" {
			cfg = zap.NewDevelopmentConfig()
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}

		l, err := cfg.Build(zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
		log = l
	})
}

// WithContext returns the logger annotated with the request ID when the
// context carries one. The gin middleware stores the ID under a plain string
// key, so both key forms are checked.
func WithContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return log
	}

	id, ok := ctx.Value(RequestIDKey).(string)
	if !ok {
		id, ok = ctx.Value("request_id").(string)
	}
	if !ok {
		return log
	}
	return log.With(zap.String("request_id", id))
}

// Info logs at InfoLevel with the context's request ID
func Info(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Info(msg, fields...)
}

// Error logs at ErrorLevel with the context's request ID
func Error(ctx context.Context, msg string, fields ...zap.Field) {
	WithContext(ctx).Error(msg, fields...)
}

// LogRequest writes the access-log line emitted by the HTTP middleware
func LogRequest(ctx context.Context, method, path string, status int, latency time.Duration, clientIP string) {
	WithContext(ctx).Info("HTTP Request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("latency", latency),
		zap.String("client_ip", clientIP),
	)
}
