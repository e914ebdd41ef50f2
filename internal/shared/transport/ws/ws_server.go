package ws

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-think/openssl"
	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/lithammer/shortuuid/v4"
	"go.uber.org/zap"

	"AlliancePlanner/internal/shared/metrics"
	"AlliancePlanner/internal/shared/security"
	"AlliancePlanner/internal/shared/utils"
	"AlliancePlanner/modules/kit/logx"
)

const (
	outQueueSize = 1000
	maxFrameSize = 1 << 20

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var errNoSecret = errors.New("secret key not negotiated")

// frame 是已编码好的一帧，写协程只负责发送
type frame struct {
	typ  int
	data []byte
	name string
}

// WsServer 是一条 WS 连接。所有写操作都经过 writeLoop，gorilla 不允许并发写
type WsServer struct {
	id         string
	conn       *websocket.Conn
	router     *Router
	needSecret bool
	out        chan frame
	done       chan struct{}
	closeOnce  sync.Once
	log        logx.Logger

	mu     sync.RWMutex
	secret string
}

func NewWsServer(wsConn *websocket.Conn, needSecret bool, l logx.Logger) *WsServer {
	return &WsServer{
		id:         shortuuid.New(),
		conn:       wsConn,
		needSecret: needSecret,
		out:        make(chan frame, outQueueSize),
		done:       make(chan struct{}),
		log:        logx.OrNop(l),
	}
}

func (s *WsServer) ID() string {
	return s.id
}

func (s *WsServer) Router(router *Router) {
	s.router = router
}

func (s *WsServer) Addr() string {
	return s.conn.RemoteAddr().String()
}

func (s *WsServer) Done() <-chan struct{} {
	return s.done
}

// Push 服务端主动推送，seq 固定为 0
func (s *WsServer) Push(name string, data any) {
	s.reply(&RespBody{Name: name, Msg: data})
}

func (s *WsServer) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		_ = s.conn.Close()
		metrics.WSConnections.Dec()
	})
}

// Run 先下发密钥再起读写协程
func (s *WsServer) Run() {
	metrics.WSConnections.Inc()
	s.conn.SetReadLimit(maxFrameSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	s.handshake()
	go s.readLoop()
	go s.writeLoop()
}

func (s *WsServer) readLoop() {
	defer func() {
		if p := recover(); p != nil {
			s.log.Error("ws read loop panic", zap.String("conn", s.id), zap.Any("panic", p))
		}
		s.Close()
	}()
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("ws read failed", zap.String("conn", s.id), zap.Error(err))
			}
			return
		}
		// 客户端的任何消息都算活跃
		_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))

		plain, err := s.decodeFrame(data)
		if err != nil {
			s.log.Warn("ws decode frame failed", zap.String("conn", s.id), zap.Error(err))
			// 密钥对不上时重新握手
			s.handshake()
			continue
		}

		var body ReqBody
		if err := json.Unmarshal(plain, &body); err != nil {
			s.log.Warn("ws bad request json", zap.String("conn", s.id), zap.Error(err))
			continue
		}
		s.reply(s.serve(&body))
	}
}

// serve 处理一条请求，响应的 seq 与请求一致
func (s *WsServer) serve(body *ReqBody) *RespBody {
	resp := &RespBody{Seq: body.Seq, Name: body.Name}
	if body.Name == HeartbeatMsg {
		h := &Heartbeat{}
		_ = mapstructure.Decode(body.Msg, h)
		h.STime = time.Now().UnixMilli()
		resp.Msg = h
		return resp
	}
	s.log.Debug("ws request", zap.String("conn", s.id), zap.String("name", body.Name), zap.Int64("seq", body.Seq))
	s.router.Dispatch(&WsMsgReq{Body: body, Conn: s}, &WsMsgResp{Body: resp})
	return resp
}

func (s *WsServer) reply(body *RespBody) {
	raw, err := json.Marshal(body)
	if err != nil {
		s.log.Error("ws marshal response failed", zap.String("name", body.Name), zap.Error(err))
		return
	}
	typ, data, err := s.encodeFrame(raw)
	if err != nil {
		s.log.Error("ws encode frame failed", zap.String("name", body.Name), zap.Error(err))
		return
	}
	s.enqueue(frame{typ: typ, data: data, name: body.Name})
}

func (s *WsServer) enqueue(f frame) {
	select {
	case <-s.done:
		return
	default:
	}
	select {
	case s.out <- f:
	case <-s.done:
	default:
		s.log.Warn("ws out queue full, drop msg", zap.String("conn", s.id), zap.String("name", f.name))
	}
}

func (s *WsServer) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.Close()
	}()
	for {
		select {
		case f := <-s.out:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(f.typ, f.data); err != nil {
				s.log.Warn("ws write failed", zap.String("conn", s.id), zap.String("name", f.name), zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.done:
			return
		}
	}
}

func (s *WsServer) secretKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.secret
}

// decodeFrame need_secret 时 解压 -> 解密，否则是明文 json
func (s *WsServer) decodeFrame(data []byte) ([]byte, error) {
	if !s.needSecret {
		return data, nil
	}
	zipped, err := security.UnZip(data)
	if err != nil {
		return nil, fmt.Errorf("unzip: %w", err)
	}
	key := s.secretKey()
	if key == "" {
		return nil, errNoSecret
	}
	plain, err := security.AesCBCDecrypt(zipped, []byte(key), []byte(key), openssl.ZEROS_PADDING)
	if err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}
	return plain, nil
}

// encodeFrame 与 decodeFrame 相反：加密 -> 压缩，走 BinaryMessage
func (s *WsServer) encodeFrame(plain []byte) (int, []byte, error) {
	if !s.needSecret {
		return websocket.TextMessage, plain, nil
	}
	key := s.secretKey()
	if key == "" {
		return 0, nil, errNoSecret
	}
	encrypted, err := security.AesCBCEncrypt(plain, []byte(key), []byte(key), openssl.ZEROS_PADDING)
	if err != nil {
		return 0, nil, fmt.Errorf("encrypt: %w", err)
	}
	zipped, err := security.Zip(encrypted)
	if err != nil {
		return 0, nil, fmt.Errorf("zip: %w", err)
	}
	return websocket.BinaryMessage, zipped, nil
}

// handshake 下发会话密钥，只压缩不加密。未开启加密时什么都不做
func (s *WsServer) handshake() {
	if !s.needSecret {
		return
	}
	s.mu.Lock()
	if s.secret == "" {
		s.secret = utils.RandSeq(16)
	}
	key := s.secret
	s.mu.Unlock()

	raw, err := json.Marshal(&RespBody{Name: HandshakeMsg, Msg: &Handshake{Key: key}})
	if err != nil {
		s.log.Error("ws marshal handshake failed", zap.Error(err))
		return
	}
	zipped, err := security.Zip(raw)
	if err != nil {
		s.log.Error("ws zip handshake failed", zap.Error(err))
		return
	}
	s.enqueue(frame{typ: websocket.BinaryMessage, data: zipped, name: HandshakeMsg})
}
