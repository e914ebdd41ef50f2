package http

import (
	"context"
	nethttp "net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"AlliancePlanner/internal/shared/transport/http/middleware"
	"AlliancePlanner/modules/kit/logx"
)

// Registrar 由业务模块实现，把自己的路由挂到 gin 分组上
type Registrar interface {
	HttpRegister(g *gin.RouterGroup)
}

type Server struct {
	engine   *gin.Engine
	group    *gin.RouterGroup
	srv      *nethttp.Server
	draining atomic.Bool
}

// NewHttpServer 挂好 CORS、访问日志、探活和指标路由；engine 为 nil 时新建并带 Recovery
func NewHttpServer(addr string, engine *gin.Engine, logger logx.Logger) *Server {
	if engine == nil {
		engine = gin.New()
		engine.Use(gin.Recovery())
	}
	_ = engine.SetTrustedProxies(nil)
	engine.Use(middleware.Cors(), middleware.BodyLimit(middleware.MaxBodyBytes), middleware.AccessLog(logx.OrNop(logger)))

	s := &Server{
		engine: engine,
		group:  engine.Group(""),
		srv: &nethttp.Server{
			Addr:              addr,
			Handler:           engine,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(nethttp.StatusOK, gin.H{"status": "ok"})
	})
	// 开始关闭后 readyz 返回 503，负载均衡先摘流量
	engine.GET("/readyz", func(c *gin.Context) {
		if s.draining.Load() {
			c.JSON(nethttp.StatusServiceUnavailable, gin.H{"status": "draining"})
			return
		}
		c.JSON(nethttp.StatusOK, gin.H{"status": "ready"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return s
}

// Start 阻塞，关闭后返回 net/http.ErrServerClosed
func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.draining.Store(true)
	return s.srv.Shutdown(ctx)
}

func (s *Server) Group() *gin.RouterGroup {
	return s.group
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) Handler() nethttp.Handler {
	return s.engine
}
