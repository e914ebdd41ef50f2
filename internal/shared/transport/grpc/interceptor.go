package grpc

import (
	"AlliancePlanner/internal/shared/transport"
	"AlliancePlanner/modules/kit/logx"
	"AlliancePlanner/modules/kit/tracex"
	"context"

	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	traceIDHeader = "x-trace-id"
	spanIDHeader  = "x-span-id"
)

// UnaryClientTraceInterceptor 把 ctx 里的 trace/span 写进出站 metadata。
func UnaryClientTraceInterceptor() gogrpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *gogrpc.ClientConn, invoker gogrpc.UnaryInvoker, opts ...gogrpc.CallOption) error {
		return invoker(injectTraceToOutgoing(ctx), method, req, reply, cc, opts...)
	}
}

// UnaryServerInterceptor 提取入站 trace，并为每次调用写一条 access 日志。
func UnaryServerInterceptor(log logx.Logger) gogrpc.UnaryServerInterceptor {
	log = logx.OrNop(log)
	return func(ctx context.Context, req any, info *gogrpc.UnaryServerInfo, handler gogrpc.UnaryHandler) (any, error) {
		ctx = transport.NewContextWithParent(extractTraceFromIncoming(ctx), "RPC "+info.FullMethod)
		defer transport.WriteAccessLog(ctx, log)

		resp, err := handler(ctx, req)
		transport.SetBizCode(ctx, transport.BizCode(bizCodeOf(err)))
		if err != nil {
			transport.SetErrorReason(ctx, status.Convert(err).Message())
		}
		return resp, err
	}
}

// bizCodeOf 把 grpc 状态折算成 access 日志的业务码，决定日志级别
func bizCodeOf(err error) int {
	switch status.Code(err) {
	case codes.OK:
		return transport.OK
	case codes.DeadlineExceeded:
		return transport.Timeout
	case codes.Unavailable:
		return transport.Unavailable
	case codes.Internal, codes.Unknown, codes.Unimplemented:
		return transport.SystemError
	case codes.NotFound:
		return transport.LayoutMissing
	case codes.PermissionDenied:
		return transport.EditForbidden
	case codes.DataLoss:
		return transport.LayoutCorrupted
	default:
		return transport.InvalidParam
	}
}

func injectTraceToOutgoing(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if traceID, ok := tracex.TraceIDFrom(ctx); ok {
		ctx = metadata.AppendToOutgoingContext(ctx, traceIDHeader, traceID)
	}
	if spanID, ok := tracex.SpanIDFrom(ctx); ok {
		ctx = metadata.AppendToOutgoingContext(ctx, spanIDHeader, spanID)
	}
	return ctx
}

func extractTraceFromIncoming(ctx context.Context) context.Context {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ctx
	}
	if v := md.Get(traceIDHeader); len(v) > 0 && v[0] != "" {
		ctx = tracex.WithTraceID(ctx, v[0])
	}
	if v := md.Get(spanIDHeader); len(v) > 0 && v[0] != "" {
		ctx = tracex.WithSpanID(ctx, v[0])
	}
	return ctx
}
