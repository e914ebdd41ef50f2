package logx

import (
	"context"
	"errors"
	"strings"
	"testing"

	"AlliancePlanner/modules/kit/errx"
	"AlliancePlanner/modules/kit/tracex"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestBuildErrorLog_能提取语义与栈(t *testing.T) {
	e := errx.NewSys("SYS_INTERNAL", "服务器内部错误").
		WithData("board", "b-1").
		WithCause(errors.New("mongo down"))

	meta := BuildErrorLog(e)
	if meta.Error == "" || meta.Code == "" || meta.Msg == "" {
		t.Fatalf("期望 Error/Code/Msg 非空，got=%+v", meta)
	}
	if meta.Data["board"] != "b-1" {
		t.Fatalf("期望 meta.Data 包含 board=b-1, got=%v", meta.Data)
	}
	if len(meta.CauseChain) == 0 {
		t.Fatalf("期望 meta.CauseChain 非空")
	}
	if meta.Origin == "" || meta.Stack == "" {
		t.Fatalf("期望 Origin/Stack 非空 origin=%q stack=%q", meta.Origin, meta.Stack)
	}
}

func TestReportAccess_按biz_code分级(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewZapLogger(zap.New(core))
	ctx := tracex.WithTraceID(context.Background(), "t-1")

	ReportAccessWithLoggerContext(ctx, l, "WS board.pointer", 0)
	ReportAccessWithLoggerContext(ctx, l, "WS board.pointer", 409)
	ReportAccessWithLoggerContext(ctx, l, "WS board.pointer", 500)

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("期望 3 条日志，got=%d", len(entries))
	}
	want := []zapcore.Level{zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}
	for i, e := range entries {
		if e.Level != want[i] {
			t.Fatalf("第 %d 条期望级别 %v，got=%v", i, want[i], e.Level)
		}
		if e.ContextMap()["trace_id"] != "t-1" {
			t.Fatalf("期望带上 trace_id，got=%v", e.ContextMap())
		}
	}
}

func TestReportBiz_消息拼接(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewZapLogger(zap.New(core))

	ReportBizWithLoggerContext(context.Background(), l, NewBizLog("place reject", "PLACEMENT_OVERLAP", "建筑不能重叠"))
	got := logs.All()[0].Message
	if !strings.Contains(got, "reason:PLACEMENT_OVERLAP") || !strings.Contains(got, "msg:建筑不能重叠") {
		t.Fatalf("业务日志格式不符合预期: %q", got)
	}
}

func TestNop_不会panic(t *testing.T) {
	var z *ZapLogger
	z.WithContext(context.Background()).Info("ok")
	OrNop(nil).Warn("ok")
}

func TestWith_绑定固定字段(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewZapLogger(zap.New(core)).With(zap.String("board", "b-9"))
	ctx := tracex.WithTraceID(context.Background(), "t-2")

	l.WithContext(ctx).Warn("flush failed")
	m := logs.All()[0].ContextMap()
	if m["board"] != "b-9" || m["trace_id"] != "t-2" {
		t.Fatalf("期望同时带 board 和 trace_id，got=%v", m)
	}

	var z *ZapLogger
	z.With(zap.String("k", "v")).Info("ok")
}
