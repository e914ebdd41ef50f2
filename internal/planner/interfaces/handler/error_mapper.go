package handler

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"AlliancePlanner/internal/planner/app"
	"AlliancePlanner/internal/planner/codec"
	"AlliancePlanner/internal/planner/domain"
	"AlliancePlanner/internal/shared/transport"
	"AlliancePlanner/modules/kit/errx"
	"AlliancePlanner/modules/kit/logx"
)

const busyMsg = "系统繁忙，请稍后重试"

func mapBizCodeToClientCode(code errx.Code) int {
	switch code {
	case domain.CodeOverlap, domain.CodeOutOfBounds, domain.CodeNotResizable,
		domain.CodeNotNameable, domain.CodeInvalidExtent, domain.CodeCannotShift:
		return transport.PlacementRejected
	case domain.CodeLimitReached:
		return transport.LimitReached
	case domain.CodeNotFound:
		return transport.BuildingMissing
	case domain.CodeInvalidGridSize, domain.CodeGridTooSmall, domain.CodeInvalidCellSize:
		return transport.GridRejected
	case codec.CodeLayoutCorrupted:
		return transport.LayoutCorrupted
	case domain.CodeLayoutNotFound:
		return transport.LayoutMissing
	case app.CodeEditForbidden:
		return transport.EditForbidden
	default:
		return transport.InvalidParam
	}
}

func mapTechErrToClientCode(err error) int {
	switch {
	case errors.Is(err, errx.ErrTimeout):
		return transport.Timeout
	case errors.Is(err, errx.ErrUnavailable):
		return transport.Unavailable
	default:
		return transport.SystemError
	}
}

// HandleError 把错误转换成对外业务码和提示语，并按 biz/sys 分别记录日志。
func HandleError(ctx context.Context, log logx.Logger, err error) (int, string) {
	if err == nil {
		return transport.OK, ""
	}
	action := transport.ActionOf(ctx)
	e, ok := errx.As(err)
	if ok && !e.IsSys() {
		reason := e.Reason()
		if reason == "" {
			reason = e.CodeText()
		}
		transport.SetErrorReason(ctx, reason)
		logx.ReportBizWithLoggerContext(ctx, log, logx.NewBizLog(action, reason, e.Msg()))
		return mapBizCodeToClientCode(e.Code()), e.Msg()
	}
	if ok && e.Reason() != "" {
		transport.SetErrorReason(ctx, e.Reason())
	}

	logx.ReportSysErrorWithLoggerContext(ctx, log, logx.NewSysLog(action, err))
	return mapTechErrToClientCode(err), busyMsg
}

// ToRPCError 把错误转换成 grpc status
func ToRPCError(err error) error {
	if err == nil {
		return nil
	}
	e, ok := errx.As(err)
	if !ok {
		return status.Error(codes.Internal, busyMsg)
	}
	if !e.IsSys() {
		switch e.Code() {
		case domain.CodeLayoutNotFound, domain.CodeNotFound:
			return status.Error(codes.NotFound, e.Msg())
		case app.CodeEditForbidden:
			return status.Error(codes.PermissionDenied, e.Msg())
		case codec.CodeLayoutCorrupted:
			return status.Error(codes.DataLoss, e.Msg())
		default:
			return status.Error(codes.InvalidArgument, e.Msg())
		}
	}
	switch {
	case errors.Is(err, errx.ErrTimeout):
		return status.Error(codes.DeadlineExceeded, e.Msg())
	case errors.Is(err, errx.ErrUnavailable):
		return status.Error(codes.Unavailable, e.Msg())
	default:
		return status.Error(codes.Internal, busyMsg)
	}
}
