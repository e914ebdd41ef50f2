package transport

import (
	"AlliancePlanner/modules/kit/logx"
	"AlliancePlanner/modules/kit/tracex"
	"context"
	"time"

	"go.uber.org/zap"
)

const spanName = "planner"

// AccessLog 记录一次请求的结果，WS/HTTP/RPC 共用
type AccessLog struct {
	BizCode     BizCode
	ErrorReason string
	Board       string

	action string
	start  time.Time
}

type accessLogKey struct{}

func NewContext(action string) context.Context {
	return NewContextWithParent(context.Background(), action)
}

// NewContextWithParent 保留 parent 的取消信号；parent 已带 trace 时沿用
func NewContextWithParent(parent context.Context, action string) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	if action == "" {
		action = "unknown"
	}
	ctx := tracex.WithSpanID(tracex.Ensure(parent), spanName)
	return context.WithValue(ctx, accessLogKey{}, &AccessLog{
		BizCode: BizCode(SystemError),
		action:  action,
		start:   time.Now(),
	})
}

func FromContext(ctx context.Context) *AccessLog {
	if ctx == nil {
		return nil
	}
	al, _ := ctx.Value(accessLogKey{}).(*AccessLog)
	return al
}

// ActionOf 形如 "WS board.pointer"
func ActionOf(ctx context.Context) string {
	if al := FromContext(ctx); al != nil {
		return al.action
	}
	return ""
}

func SetBizCode(ctx context.Context, code BizCode) {
	if al := FromContext(ctx); al != nil {
		al.BizCode = code
	}
}

// SetErrorReason 空串不覆盖已有原因
func SetErrorReason(ctx context.Context, reason string) {
	if al := FromContext(ctx); al != nil && reason != "" {
		al.ErrorReason = reason
	}
}

// SetBoard 让访问日志带上请求所在的 board
func SetBoard(ctx context.Context, board string) {
	if al := FromContext(ctx); al != nil {
		al.Board = board
	}
}

// WriteAccessLog 在请求结束时调用一次
func WriteAccessLog(ctx context.Context, log logx.Logger) {
	al := FromContext(ctx)
	if al == nil || log == nil {
		return
	}

	fields := make([]zap.Field, 0, 4)
	fields = append(fields, zap.Duration("latency", time.Since(al.start)))
	if al.Board != "" {
		fields = append(fields, zap.String("board", al.Board))
	}
	if al.BizCode == BizCode(OK) {
		fields = append(fields, zap.String("result", "success"))
	} else {
		fields = append(fields, zap.String("result", "failure"))
		if al.ErrorReason != "" {
			fields = append(fields, zap.String("error_reason", al.ErrorReason))
		}
	}
	logx.ReportAccessWithLoggerContext(ctx, log, al.action, int(al.BizCode), fields...)
}
