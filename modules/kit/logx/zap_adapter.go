package logx

import (
	"context"

	"AlliancePlanner/modules/kit/tracex"

	"go.uber.org/zap"
)

// ZapLogger 把 *zap.Logger 包成 Logger
type ZapLogger struct {
	base *zap.Logger
}

func NewZapLogger(l *zap.Logger) *ZapLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return &ZapLogger{base: l}
}

// WithContext 带上 ctx 里的 trace_id / span_id，ctx 里没有时原样返回
func (z *ZapLogger) WithContext(ctx context.Context) Logger {
	if z == nil {
		return Nop()
	}
	if ctx == nil {
		return z
	}
	fields := make([]zap.Field, 0, 2)
	if tid, ok := tracex.TraceIDFrom(ctx); ok {
		fields = append(fields, zap.String("trace_id", tid))
	}
	if sid, ok := tracex.SpanIDFrom(ctx); ok {
		fields = append(fields, zap.String("span_id", sid))
	}
	if len(fields) == 0 {
		return z
	}
	return &ZapLogger{base: z.base.With(fields...)}
}

// With 绑定固定字段，例如 board actor 的 board id
func (z *ZapLogger) With(fields ...zap.Field) Logger {
	if z == nil {
		return Nop()
	}
	if len(fields) == 0 {
		return z
	}
	return &ZapLogger{base: z.base.With(fields...)}
}

func (z *ZapLogger) Info(msg string, fields ...zap.Field)  { z.base.Info(msg, fields...) }
func (z *ZapLogger) Error(msg string, fields ...zap.Field) { z.base.Error(msg, fields...) }
func (z *ZapLogger) Debug(msg string, fields ...zap.Field) { z.base.Debug(msg, fields...) }
func (z *ZapLogger) Warn(msg string, fields ...zap.Field)  { z.base.Warn(msg, fields...) }
