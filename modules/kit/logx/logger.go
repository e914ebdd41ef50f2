package logx

import (
	"context"

	"go.uber.org/zap"
)

// Logger 是跨包复用的最小日志接口：结构化字段 + ctx 透传（trace/span）。
type Logger interface {
	Info(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Debug(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	WithContext(ctx context.Context) Logger
	With(fields ...zap.Field) Logger
}

// Nop 返回丢弃所有输出的 Logger，测试和未注入日志时使用。
func Nop() Logger {
	return NewZapLogger(nil)
}

// OrNop 在 l 为 nil 时回退到 Nop。
func OrNop(l Logger) Logger {
	if l == nil {
		return Nop()
	}
	return l
}
