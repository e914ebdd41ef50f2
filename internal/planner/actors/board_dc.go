package actors

import (
	"context"
	"errors"
	"sync"
	"time"

	"AlliancePlanner/internal/planner/app"
	"AlliancePlanner/internal/planner/domain"
	"AlliancePlanner/modules/kit/logx"

	"go.uber.org/zap"
)

const (
	defaultFlushEvery = 3 * time.Second

	saveTimeout = 5 * time.Second
	retryBase   = 200 * time.Millisecond
	retryMax    = 3 * time.Second
	// 连续失败这么多次后暂停重试，快照留在队列里，等下一次 Flush 或 Close
	maxSaveAttempts = 5
)

var errNilRepo = errors.New("layout repository is nil")

type snapshot struct {
	layout  domain.Layout
	version uint64
}

// BoardDC 负责 board 状态的加载和异步落盘。
// actor 线程只负责生成快照，写库在独立 goroutine 里进行，只保留最新版本。
type BoardDC struct {
	repo       app.LayoutRepository
	flushEvery time.Duration
	retryBase  time.Duration
	log        logx.Logger

	mu      sync.Mutex
	pending *snapshot
	version uint64
	closed  bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

func NewBoardDC(repo app.LayoutRepository, flushEvery time.Duration, log logx.Logger) *BoardDC {
	return newBoardDC(repo, flushEvery, retryBase, log)
}

func newBoardDC(repo app.LayoutRepository, flushEvery, retry time.Duration, log logx.Logger) *BoardDC {
	if flushEvery <= 0 {
		flushEvery = defaultFlushEvery
	}
	d := &BoardDC{
		repo:       repo,
		flushEvery: flushEvery,
		retryBase:  retry,
		log:        logx.OrNop(log),
		wake:       make(chan struct{}, 1),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	go d.writerLoop()
	return d
}

// Load 读取 board 的存储状态，不存在时 ok=false。
func (d *BoardDC) Load(ctx context.Context, boardID string) (domain.Layout, bool, error) {
	if d.repo == nil {
		return domain.Layout{}, false, errNilRepo
	}
	l, err := d.repo.Load(ctx, boardID)
	if errors.Is(err, domain.ErrLayoutNotFound) {
		return domain.Layout{}, false, nil
	}
	if err != nil {
		return domain.Layout{}, false, err
	}
	return l, true, nil
}

// Flush 在 board 有改动时生成快照并排队写库。没有改动但还有没写成功的快照时重新唤醒写协程
func (d *BoardDC) Flush(b *app.Board) error {
	if b == nil || !b.Dirty() {
		if d.hasPending() {
			d.kick()
		}
		return nil
	}
	l, err := b.Snapshot()
	if err != nil {
		return err
	}
	now := time.Now()
	l.UpdatedAt = now
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	b.MarkClean()

	d.mu.Lock()
	d.version++
	s := &snapshot{layout: l, version: d.version}
	d.mu.Unlock()
	d.enqueueLatest(s)
	return nil
}

func (d *BoardDC) FlushEvery() time.Duration {
	return d.flushEvery
}

// Close 停止写协程，等待已排队的快照写完。
func (d *BoardDC) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.stop)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *BoardDC) enqueueLatest(s *snapshot) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	if d.pending == nil || d.pending.version < s.version {
		d.pending = s
	}
	d.mu.Unlock()
	d.kick()
}

func (d *BoardDC) kick() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *BoardDC) hasPending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

func (d *BoardDC) popPending() *snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.pending
	d.pending = nil
	return s
}

func (d *BoardDC) writerLoop() {
	defer close(d.done)
	for {
		select {
		case <-d.wake:
			d.consumePending(false)
		case <-d.stop:
			d.consumePending(true)
			return
		}
	}
}

// consumePending 写出最新快照。失败时退避重试，收到 stop 后只再试一次；
// closing 为 true 时每个快照只试一次
func (d *BoardDC) consumePending(closing bool) {
	attempt := 0
	for {
		s := d.popPending()
		if s == nil {
			return
		}
		err := d.save(s)
		if err == nil {
			attempt = 0
			continue
		}
		attempt++
		d.log.Error("board snapshot save failed",
			zap.Uint64("version", s.version), zap.Int("attempt", attempt), zap.Bool("closing", closing), zap.Error(err))
		if closing {
			return
		}
		// 已有更新的快照时 requeue 不会覆盖它
		d.requeue(s)
		if attempt >= maxSaveAttempts {
			return
		}

		timer := time.NewTimer(d.backoff(attempt))
		select {
		case <-timer.C:
		case <-d.stop:
			timer.Stop()
			closing = true
		}
	}
}

func (d *BoardDC) save(s *snapshot) error {
	if d.repo == nil {
		return errNilRepo
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	return d.repo.Save(ctx, s.layout)
}

func (d *BoardDC) backoff(attempt int) time.Duration {
	wait := d.retryBase << (attempt - 1)
	if wait <= 0 || wait > retryMax {
		return retryMax
	}
	return wait
}

func (d *BoardDC) requeue(s *snapshot) {
	d.mu.Lock()
	if d.pending == nil || d.pending.version < s.version {
		d.pending = s
	}
	d.mu.Unlock()
}
