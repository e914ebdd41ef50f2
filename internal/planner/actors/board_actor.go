package actors

import (
	"context"
	"time"

	"AlliancePlanner/internal/planner/app"
	"AlliancePlanner/internal/planner/domain"
	"AlliancePlanner/internal/shared/metrics"
	"AlliancePlanner/modules/kit/errx"
	"AlliancePlanner/modules/kit/logx"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

type State int

const (
	None State = iota
	Init
	Online
	Offline
	Stopping
)

// Deps 是创建 board actor 需要的共享依赖。
type Deps struct {
	Catalog     *domain.Catalog
	Grid        domain.GridConfig
	Repo        app.LayoutRepository
	Prefs       app.Prefs
	FlushEvery  time.Duration
	IdleTimeout time.Duration
	Log         logx.Logger
}

// BoardActor 串行化一块 board 的全部操作，并把事件扇出给已加入的连接。
type BoardActor struct {
	state      State
	boardID    string
	deps       Deps
	board      *app.Board
	dc         *BoardDC
	dispatcher *Dispatcher
	sinks      map[string]app.EventSink
	log        logx.Logger
	flushStop  chan struct{}
}

type flushTick struct{}

func (flushTick) NotInfluenceReceiveTimeout() {}

func NewBoardActor(boardID string, deps Deps) *BoardActor {
	log := logx.OrNop(deps.Log).With(zap.String("board", boardID))
	return &BoardActor{
		state:      None,
		boardID:    boardID,
		deps:       deps,
		dc:         NewBoardDC(deps.Repo, deps.FlushEvery, log),
		dispatcher: NewDispatcher(),
		sinks:      make(map[string]app.EventSink),
		log:        log,
	}
}

func (p *BoardActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		p.state = Init
		p.init(ctx)
		return
	case *actor.Stopping:
		p.stopFlushLoop()
		if err := p.dc.Flush(p.board); err != nil {
			p.log.Error("board final flush failed", zap.Error(err))
		}
		closeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := p.dc.Close(closeCtx); err != nil {
			p.log.Error("board dc close failed", zap.Error(err))
		}
		p.state = Stopping
		return
	case *actor.Stopped:
		p.stopFlushLoop()
		if p.board != nil {
			metrics.ActiveBoards.Dec()
		}
		p.state = Offline
		return
	case *actor.Restarting:
		p.stopFlushLoop()
		p.state = Init
		return
	case *actor.ReceiveTimeout:
		// 没有连接且空闲时退出，状态在 Stopping 里落盘
		if len(p.sinks) == 0 {
			ctx.Stop(ctx.Self())
		}
		return
	case flushTick:
		if p.state != Online {
			return
		}
		if err := p.dc.Flush(p.board); err != nil {
			p.log.Error("board periodic flush failed", zap.Error(err))
		}
		return
	case BoardMessage:
		if msg == nil {
			ctx.Respond(fail(errx.ErrReqParamERR))
			return
		}
		if p.state != Online {
			ctx.Respond(fail(errx.ErrUnavailable.WithData("board", p.boardID)))
			return
		}
		p.dispatcher.Dispatch(ctx, p, msg)
	default:
		return
	}
}

func (p *BoardActor) init(ctx actor.Context) {
	b, err := app.NewBoard(p.boardID, p.deps.Catalog, p.deps.Grid,
		app.WithSink(fanout{p}),
		app.WithPrefs(p.deps.Prefs),
		app.WithBoardLogger(p.log))
	if err != nil {
		p.log.Error("board create failed", zap.Error(err))
		p.state = Stopping
		ctx.Stop(ctx.Self())
		return
	}

	loadCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	stored, ok, err := p.dc.Load(loadCtx, p.boardID)
	if err != nil {
		p.log.Error("board load failed", zap.Error(err))
		p.state = Stopping
		ctx.Stop(ctx.Self())
		return
	}
	if ok {
		if err := b.Restore(stored); err != nil {
			// 存储数据损坏时以空板上线
			p.log.Warn("board restore failed, starting empty", zap.Error(err))
		}
	}

	p.board = b
	p.state = Online
	metrics.ActiveBoards.Inc()
	if p.deps.IdleTimeout > 0 {
		ctx.SetReceiveTimeout(p.deps.IdleTimeout)
	}
	p.startFlushLoop(ctx)
}

func (p *BoardActor) Board() *app.Board {
	return p.board
}

func (p *BoardActor) startFlushLoop(ctx actor.Context) {
	if p.flushStop != nil {
		return
	}
	interval := p.dc.FlushEvery()
	if interval <= 0 {
		return
	}
	p.flushStop = make(chan struct{})
	self := ctx.Self()
	root := ctx.ActorSystem().Root

	go func(stop <-chan struct{}, every time.Duration) {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				root.Send(self, flushTick{})
			case <-stop:
				return
			}
		}
	}(p.flushStop, interval)
}

func (p *BoardActor) stopFlushLoop() {
	if p.flushStop == nil {
		return
	}
	close(p.flushStop)
	p.flushStop = nil
}

// fanout 把 board 事件推给所有已加入的连接；只在 actor 线程里调用。
type fanout struct{ p *BoardActor }

func (f fanout) Push(ev app.Event) {
	for _, s := range f.p.sinks {
		s.Push(ev)
	}
}
