package session

import (
	"AlliancePlanner/internal/shared/transport/ws"
	"sync"
)

// Manager 记录每条连接当前加入的 board。
type Manager interface {
	// Bind 把连接绑定到 board，返回之前绑定的 board（没有则为空）
	Bind(board string, conn ws.WSConn) string
	UnbindConn(conn ws.WSConn) string
	BoardOf(conn ws.WSConn) (string, bool)
	Members(board string) int
}

// DropFunc 在连接断开且仍绑定 board 时调用
type DropFunc func(board string, conn ws.WSConn)

type SessMgr struct {
	sync.RWMutex
	conn2board map[ws.WSConn]string
	members    map[string]int
	watched    map[ws.WSConn]struct{}
	onDrop     DropFunc
}

func NewSessMgr(onDrop DropFunc) Manager {
	return &SessMgr{
		conn2board: make(map[ws.WSConn]string),
		members:    make(map[string]int),
		watched:    make(map[ws.WSConn]struct{}),
		onDrop:     onDrop,
	}
}

func (s *SessMgr) Bind(board string, conn ws.WSConn) string {
	if conn == nil || board == "" {
		return ""
	}
	s.Lock()
	defer s.Unlock()

	// 每条连接只启动一次 watcher，连接关闭后自动解绑
	if _, ok := s.watched[conn]; !ok {
		s.watched[conn] = struct{}{}
		go s.watchConnDone(conn)
	}

	prev := s.conn2board[conn]
	if prev == board {
		return prev
	}
	if prev != "" {
		s.decr(prev)
	}
	s.conn2board[conn] = board
	s.members[board]++
	return prev
}

func (s *SessMgr) watchConnDone(conn ws.WSConn) {
	<-conn.Done()
	s.Lock()
	delete(s.watched, conn)
	s.Unlock()
	if board := s.UnbindConn(conn); board != "" && s.onDrop != nil {
		s.onDrop(board, conn)
	}
}

func (s *SessMgr) UnbindConn(conn ws.WSConn) string {
	s.Lock()
	defer s.Unlock()
	board, ok := s.conn2board[conn]
	if !ok {
		return ""
	}
	delete(s.conn2board, conn)
	s.decr(board)
	return board
}

func (s *SessMgr) BoardOf(conn ws.WSConn) (string, bool) {
	s.RLock()
	defer s.RUnlock()
	board, ok := s.conn2board[conn]
	return board, ok
}

func (s *SessMgr) Members(board string) int {
	s.RLock()
	defer s.RUnlock()
	return s.members[board]
}

func (s *SessMgr) decr(board string) {
	if s.members[board] <= 1 {
		delete(s.members, board)
		return
	}
	s.members[board]--
}
