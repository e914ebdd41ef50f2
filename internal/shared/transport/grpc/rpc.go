package grpc

import (
	"AlliancePlanner/modules/kit/logx"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// NewServer 创建带 trace 和 access 日志拦截器的 grpc server
func NewServer(log logx.Logger, opts ...grpc.ServerOption) *grpc.Server {
	base := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(UnaryServerInterceptor(log)),
	}
	return grpc.NewServer(append(base, opts...)...)
}

// Dial 建立 grpc 连接，客户端自动注入 trace/span。
func Dial(target string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	base := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithChainUnaryInterceptor(UnaryClientTraceInterceptor()),
	}
	// NewClient 不会立即建连，首个 RPC 时才按 target scheme 解析地址
	conn, err := grpc.NewClient(target, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("dial %s failed: %w", target, err)
	}
	return conn, nil
}
