package rpc

import (
	"context"

	"github.com/goccy/go-json"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"AlliancePlanner/internal/planner/app"
	"AlliancePlanner/internal/planner/interfaces/handler"
	"AlliancePlanner/modules/kit/errx"
	"AlliancePlanner/modules/kit/logx"
)

type Layout struct {
	layouts *app.LayoutService
	log     logx.Logger
}

func NewLayout(layouts *app.LayoutService, log logx.Logger) *Layout {
	return &Layout{layouts: layouts, log: logx.OrNop(log)}
}

func (l *Layout) GetLayout(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	layout, err := l.layouts.Get(ctx, in.GetValue())
	if err != nil {
		l.report(ctx, "rpc GetLayout", err)
		return nil, handler.ToRPCError(err)
	}
	return wrapperspb.String(layout.Payload), nil
}

func (l *Layout) DecodeLayout(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	res, err := l.layouts.Decode(in.GetValue())
	if err != nil {
		l.report(ctx, "rpc DecodeLayout", err)
		return nil, handler.ToRPCError(err)
	}
	raw, err := json.Marshal(res.Buildings)
	if err != nil {
		err = errx.ErrInternal.WithCause(err)
		l.report(ctx, "rpc DecodeLayout", err)
		return nil, handler.ToRPCError(err)
	}
	return wrapperspb.String(string(raw)), nil
}

func (l *Layout) report(ctx context.Context, action string, err error) {
	if e, ok := errx.As(err); ok && !e.IsSys() {
		logx.ReportBizWithLoggerContext(ctx, l.log, logx.NewBizLog(action, e.CodeText(), e.Msg()))
		return
	}
	logx.ReportSysErrorWithLoggerContext(ctx, l.log, logx.NewSysLog(action, err))
}

var _ LayoutServiceServer = (*Layout)(nil)
