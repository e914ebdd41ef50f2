package ws

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"AlliancePlanner/modules/kit/logx"
)

type Server struct {
	router     *Router
	needSecret bool
	upgrader   websocket.Upgrader
	log        logx.Logger
}

func NewServer(r *Router, needSecret bool, l logx.Logger) *Server {
	return &Server{
		router:     r,
		needSecret: needSecret,
		upgrader: websocket.Upgrader{
			// 允许所有CORS跨域请求
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		log: logx.OrNop(l),
	}
}

func (s *Server) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	wsConn, err := s.upgrader.Upgrade(resp, req, nil)
	if err != nil {
		s.log.Error("websocket upgrade error", zap.Error(err))
		return
	}

	wsServer := NewWsServer(wsConn, s.needSecret, s.log)
	s.log.Info("websocket upgrade success", zap.String("conn", wsServer.ID()), zap.String("addr", wsServer.Addr()))
	wsServer.Router(s.router)
	wsServer.Run()
}
