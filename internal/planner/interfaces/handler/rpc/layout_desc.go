package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	serviceName        = "planner.LayoutService"
	methodGetLayout    = "/planner.LayoutService/GetLayout"
	methodDecodeLayout = "/planner.LayoutService/DecodeLayout"
)

// LayoutServiceServer 的请求和应答都是 StringValue：GetLayout 入参 id 出参 payload，
// DecodeLayout 入参分享串出参建筑列表 json。
type LayoutServiceServer interface {
	GetLayout(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
	DecodeLayout(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
}

func RegisterLayoutServiceServer(s grpc.ServiceRegistrar, srv LayoutServiceServer) {
	s.RegisterService(&LayoutServiceDesc, srv)
}

var LayoutServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*LayoutServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetLayout", Handler: getLayoutHandler},
		{MethodName: "DecodeLayout", Handler: decodeLayoutHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "planner/layout.proto",
}

func getLayoutHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LayoutServiceServer).GetLayout(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetLayout}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LayoutServiceServer).GetLayout(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func decodeLayoutHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LayoutServiceServer).DecodeLayout(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodDecodeLayout}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(LayoutServiceServer).DecodeLayout(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// LayoutServiceClient 是 LayoutService 的 typed client
type LayoutServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewLayoutServiceClient(cc grpc.ClientConnInterface) *LayoutServiceClient {
	return &LayoutServiceClient{cc: cc}
}

func (c *LayoutServiceClient) GetLayout(ctx context.Context, id string, opts ...grpc.CallOption) (string, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, methodGetLayout, wrapperspb.String(id), out, opts...); err != nil {
		return "", err
	}
	return out.GetValue(), nil
}

func (c *LayoutServiceClient) DecodeLayout(ctx context.Context, locator string, opts ...grpc.CallOption) (string, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, methodDecodeLayout, wrapperspb.String(locator), out, opts...); err != nil {
		return "", err
	}
	return out.GetValue(), nil
}
