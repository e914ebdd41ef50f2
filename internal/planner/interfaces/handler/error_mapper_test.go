package handler

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"AlliancePlanner/internal/planner/app"
	"AlliancePlanner/internal/planner/codec"
	"AlliancePlanner/internal/planner/domain"
	"AlliancePlanner/internal/shared/transport"
	"AlliancePlanner/modules/kit/errx"
	"AlliancePlanner/modules/kit/logx"
)

func TestHandleError_业务错误映射(t *testing.T) {
	cases := map[error]int{
		domain.ErrOverlap:                         transport.PlacementRejected,
		domain.ErrCannotShift:                     transport.PlacementRejected,
		domain.ErrLimitReached:                    transport.LimitReached,
		domain.ErrNotFound.WithData("id", "x"):    transport.BuildingMissing,
		domain.ErrGridTooSmall:                    transport.GridRejected,
		codec.ErrLayoutCorrupted:                  transport.LayoutCorrupted,
		domain.ErrLayoutNotFound:                  transport.LayoutMissing,
		app.ErrEditForbidden:                      transport.EditForbidden,
		domain.ErrUnknownType:                     transport.InvalidParam,
		errx.ErrReqParamERR.WithData("board", ""): transport.InvalidParam,
	}
	for err, want := range cases {
		ctx := transport.NewContext("TEST")
		code, msg := HandleError(ctx, logx.Nop(), err)
		if code != want {
			t.Fatalf("%v: 期望 code=%d，实际=%d", err, want, code)
		}
		if msg == "" || msg == busyMsg {
			t.Fatalf("%v: 期望返回业务提示语，实际=%q", err, msg)
		}
	}
}

func TestHandleError_技术错误隐藏细节(t *testing.T) {
	cases := map[error]int{
		errx.ErrTimeout.WithCause(errors.New("deadline")):  transport.Timeout,
		errx.ErrUnavailable.WithCause(errors.New("down")): transport.Unavailable,
		errors.New("boom"):                                 transport.SystemError,
	}
	for err, want := range cases {
		code, msg := HandleError(context.Background(), logx.Nop(), err)
		if code != want || msg != busyMsg {
			t.Fatalf("%v: 期望 code=%d msg=%q，实际 code=%d msg=%q", err, want, busyMsg, code, msg)
		}
	}
}

func TestHandleError_记录拒绝原因(t *testing.T) {
	ctx := transport.NewContext("TEST")
	HandleError(ctx, logx.Nop(), app.ErrEditForbidden.WithReason(app.ReasonTokenMismatch))
	al := transport.FromContext(ctx)
	if al == nil || al.ErrorReason != app.ReasonTokenMismatch.Code {
		t.Fatalf("期望 reason=%s，实际=%+v", app.ReasonTokenMismatch.Code, al)
	}
}

func TestToRPCError_状态码(t *testing.T) {
	cases := map[error]codes.Code{
		domain.ErrLayoutNotFound: codes.NotFound,
		app.ErrEditForbidden:     codes.PermissionDenied,
		codec.ErrLayoutCorrupted: codes.DataLoss,
		domain.ErrOverlap:        codes.InvalidArgument,
		errx.ErrTimeout:          codes.DeadlineExceeded,
		errx.ErrUnavailable:      codes.Unavailable,
		errors.New("boom"):       codes.Internal,
	}
	for err, want := range cases {
		if got := status.Code(ToRPCError(err)); got != want {
			t.Fatalf("%v: 期望 %s，实际=%s", err, want, got)
		}
	}
}
