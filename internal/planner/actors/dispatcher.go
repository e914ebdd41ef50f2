package actors

import (
	"reflect"

	"AlliancePlanner/modules/kit/errx"

	"github.com/asynkron/protoactor-go/actor"
)

type Dispatcher struct {
	handlers map[reflect.Type]Handler
}

type Handler struct {
	fn      reflect.Value
	reqType reflect.Type
}

func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[reflect.Type]Handler),
	}
	d.registerAll()
	return d
}

func (d *Dispatcher) registerAll() {
	register(d, BH.HandleJoin)
	register(d, BH.HandleLeave)
	register(d, BH.HandleBeginMove)
	register(d, BH.HandleBeginResize)
	register(d, BH.HandleBeginPlace)
	register(d, BH.HandlePointer)
	register(d, BH.HandleCancel)
	register(d, BH.HandleSelect)
	register(d, BH.HandleDelete)
	register(d, BH.HandleRename)
	register(d, BH.HandleShift)
	register(d, BH.HandleGridSize)
	register(d, BH.HandlePinch)
	register(d, BH.HandleRotate)
	register(d, BH.HandleDistance)
	register(d, BH.HandleShare)
	register(d, BH.HandleLoad)
	register(d, BH.HandleGetView)
}

func register[Req any](
	d *Dispatcher,
	fn func(ctx actor.Context, p *BoardActor, req Req),
) {
	reqType := reflect.TypeOf((*Req)(nil)).Elem()
	if reqType == nil {
		panic("dispatcher req type cannot be nil")
	}

	d.handlers[reqType] = Handler{
		fn:      reflect.ValueOf(fn),
		reqType: reqType,
	}
}

func (d *Dispatcher) Dispatch(ctx actor.Context, p *BoardActor, req BoardMessage) {
	if req == nil {
		ctx.Respond(fail(errx.ErrReqParamERR))
		return
	}

	bodyType := reflect.TypeOf(req)
	handler, ok := d.handlers[bodyType]
	if !ok {
		ctx.Respond(fail(errx.ErrReqParamERR.WithData("message", bodyType.String())))
		return
	}

	if bodyType != handler.reqType {
		ctx.Respond(fail(errx.ErrReqParamERR.WithData("message", bodyType.String())))
		return
	}

	handler.fn.Call([]reflect.Value{
		reflect.ValueOf(ctx),
		reflect.ValueOf(p),
		reflect.ValueOf(req),
	})
}
