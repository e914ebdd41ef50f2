package ws

type ReqBody struct {
	Seq  int64  `json:"seq"`
	Name string `json:"name"`
	Msg  any    `json:"msg"`
}

type RespBody struct {
	Seq  int64  `json:"seq"`
	Name string `json:"name"`
	Code int    `json:"code"`
	Msg  any    `json:"msg"`
}

type WsMsgReq struct {
	Body *ReqBody
	Conn WSConn
}

type WsMsgResp struct {
	Body *RespBody
}

// WSConn 是 handler 看到的连接。board 归属由 session 管，连接本身不存业务状态
type WSConn interface {
	ID() string
	Addr() string
	Push(name string, data any)
	Close()
	// Done 在连接关闭时被 close
	Done() <-chan struct{}
}

// Registrar 由业务模块实现，把自己的路由挂到 Router 上
type Registrar interface {
	WsRegister(r *Router)
}

type Handshake struct {
	Key string `json:"key"`
}

type Heartbeat struct {
	CTime int64 `json:"ctime" mapstructure:"ctime"`
	STime int64 `json:"stime" mapstructure:"stime"`
}

const (
	HandshakeMsg = "handshake"
	HeartbeatMsg = "heartbeat"
)
