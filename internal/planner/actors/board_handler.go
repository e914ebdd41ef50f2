package actors

import (
	"AlliancePlanner/internal/planner/app"

	"github.com/asynkron/protoactor-go/actor"
)

type BoardHandler struct{}

var BH = &BoardHandler{}

// HandleJoin 登记连接的事件通道并返回当前视图。
func (h *BoardHandler) HandleJoin(ctx actor.Context, p *BoardActor, req *Join) {
	if req.ConnID != "" && req.Sink != nil {
		p.sinks[req.ConnID] = req.Sink
	}
	ctx.Respond(ok(p.board.View()))
}

// HandleLeave 注销连接；该连接发起的手势一并取消。
func (h *BoardHandler) HandleLeave(ctx actor.Context, p *BoardActor, req *Leave) {
	if _, joined := p.sinks[req.ConnID]; joined {
		delete(p.sinks, req.ConnID)
		if len(p.sinks) == 0 {
			p.board.Cancel()
		}
	}
	ctx.Respond(ok(nil))
}

func (h *BoardHandler) HandleBeginMove(ctx actor.Context, p *BoardActor, req *BeginMove) {
	ctx.Respond(done(p.board.BeginMove(req.ID, req.X, req.Y, req.Modality)))
}

func (h *BoardHandler) HandleBeginResize(ctx actor.Context, p *BoardActor, req *BeginResize) {
	ctx.Respond(done(p.board.BeginResize(req.ID, req.X, req.Y, req.Modality)))
}

func (h *BoardHandler) HandleBeginPlace(ctx actor.Context, p *BoardActor, req *BeginPlace) {
	ctx.Respond(done(p.board.BeginPlace(req.Type, req.Source, req.Modality)))
}

func (h *BoardHandler) HandlePointer(ctx actor.Context, p *BoardActor, req *Pointer) {
	p.board.Pointer(req.Event)
	ctx.Respond(ok(nil))
}

func (h *BoardHandler) HandleCancel(ctx actor.Context, p *BoardActor, req *Cancel) {
	ctx.Respond(ok(p.board.Cancel()))
}

func (h *BoardHandler) HandleSelect(ctx actor.Context, p *BoardActor, req *Select) {
	ctx.Respond(done(p.board.Select(req.ID)))
}

func (h *BoardHandler) HandleDelete(ctx actor.Context, p *BoardActor, req *Delete) {
	ctx.Respond(done(p.board.Delete(req.ID)))
}

func (h *BoardHandler) HandleRename(ctx actor.Context, p *BoardActor, req *Rename) {
	ctx.Respond(result(p.board.Rename(req.ID, req.Name)))
}

func (h *BoardHandler) HandleShift(ctx actor.Context, p *BoardActor, req *Shift) {
	ctx.Respond(done(p.board.ShiftAll(req.DX, req.DY)))
}

func (h *BoardHandler) HandleGridSize(ctx actor.Context, p *BoardActor, req *GridSize) {
	ctx.Respond(done(p.board.SetGridSize(req.Size)))
}

func (h *BoardHandler) HandlePinch(ctx actor.Context, p *BoardActor, req *Pinch) {
	ctx.Respond(ok(p.board.Pinch(req.InitialCell, req.InitialDistance, req.Distance)))
}

func (h *BoardHandler) HandleRotate(ctx actor.Context, p *BoardActor, req *Rotate) {
	ctx.Respond(ok(p.board.ToggleRotation()))
}

func (h *BoardHandler) HandleDistance(ctx actor.Context, p *BoardActor, req *Distance) {
	ctx.Respond(ok(p.board.ToggleDistance()))
}

func (h *BoardHandler) HandleShare(ctx actor.Context, p *BoardActor, req *Share) {
	ctx.Respond(result(p.board.Share(req.Base)))
}

func (h *BoardHandler) HandleLoad(ctx actor.Context, p *BoardActor, req *Load) {
	ctx.Respond(result(p.board.Load(req.Locator)))
}

func (h *BoardHandler) HandleGetView(ctx actor.Context, p *BoardActor, req *GetView) {
	ctx.Respond(ok(p.board.View()))
}

func ok(data any) *Reply {
	return &Reply{Data: data}
}

func fail(err error) *Reply {
	return &Reply{Err: err}
}

// done 用于只关心成败的操作。
func done(err error) *Reply {
	if err != nil {
		return fail(err)
	}
	return ok(nil)
}

func result[T any](data T, err error) *Reply {
	if err != nil {
		return fail(err)
	}
	return ok(data)
}

var _ app.EventSink = fanout{}
