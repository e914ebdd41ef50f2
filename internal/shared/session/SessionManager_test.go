package session

import (
	"AlliancePlanner/internal/shared/transport/ws"
	"testing"
	"time"
)

type fakeConn struct {
	done chan struct{}
}

func newFakeConn() *fakeConn {
	return &fakeConn{done: make(chan struct{})}
}

func (c *fakeConn) ID() string            { return "fake" }
func (c *fakeConn) Addr() string          { return "" }
func (c *fakeConn) Push(string, any)      {}
func (c *fakeConn) Close()                { close(c.done) }
func (c *fakeConn) Done() <-chan struct{} { return c.done }

func TestBind_切换board(t *testing.T) {
	m := NewSessMgr(nil)
	conn := newFakeConn()

	if prev := m.Bind("b1", conn); prev != "" {
		t.Fatalf("首次绑定期望 prev 为空，实际=%s", prev)
	}
	if prev := m.Bind("b2", conn); prev != "b1" {
		t.Fatalf("期望 prev=b1，实际=%s", prev)
	}
	if m.Members("b1") != 0 || m.Members("b2") != 1 {
		t.Fatalf("期望 b1=0 b2=1，实际 b1=%d b2=%d", m.Members("b1"), m.Members("b2"))
	}
	if board, ok := m.BoardOf(conn); !ok || board != "b2" {
		t.Fatalf("期望 BoardOf=b2，实际=%s", board)
	}
}

func TestBind_重复绑定不重复计数(t *testing.T) {
	m := NewSessMgr(nil)
	conn := newFakeConn()
	m.Bind("b1", conn)
	m.Bind("b1", conn)
	if got := m.Members("b1"); got != 1 {
		t.Fatalf("期望 1，实际=%d", got)
	}
}

func TestUnbindConn(t *testing.T) {
	m := NewSessMgr(nil)
	a, b := newFakeConn(), newFakeConn()
	m.Bind("b1", a)
	m.Bind("b1", b)

	if board := m.UnbindConn(a); board != "b1" {
		t.Fatalf("期望返回 b1，实际=%s", board)
	}
	if got := m.Members("b1"); got != 1 {
		t.Fatalf("期望剩 1 个成员，实际=%d", got)
	}
	if board := m.UnbindConn(a); board != "" {
		t.Fatalf("重复解绑期望空串，实际=%s", board)
	}
}

func TestWatch_断线回调(t *testing.T) {
	dropped := make(chan string, 1)
	m := NewSessMgr(func(board string, _ ws.WSConn) { dropped <- board })
	conn := newFakeConn()
	m.Bind("b9", conn)
	conn.Close()

	select {
	case board := <-dropped:
		if board != "b9" {
			t.Fatalf("期望 b9，实际=%s", board)
		}
	case <-time.After(time.Second):
		t.Fatalf("期望断线后触发回调")
	}
	if _, ok := m.BoardOf(conn); ok {
		t.Fatalf("期望断线后解绑")
	}
}
