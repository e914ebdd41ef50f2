package actors

import (
	"AlliancePlanner/modules/kit/errx"

	"github.com/asynkron/protoactor-go/actor"
)

// ManagerActor 按 board id 懒创建 board actor 并转发请求。
type ManagerActor struct {
	deps        Deps
	boardActors map[string]*actor.PID
}

func NewManagerActor(deps Deps) *ManagerActor {
	return &ManagerActor{
		deps:        deps,
		boardActors: make(map[string]*actor.PID),
	}
}

func (m *ManagerActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Terminated:
		m.forget(msg.Who)
	case BoardMessage:
		if msg == nil || msg.BoardID() == "" {
			ctx.Respond(fail(errx.ErrReqParamERR.WithData("board", "")))
			return
		}
		ctx.Forward(m.getOrSpawn(ctx, msg.BoardID()))
	}
}

func (m *ManagerActor) getOrSpawn(ctx actor.Context, boardID string) *actor.PID {
	if pid, ok := m.boardActors[boardID]; ok && pid != nil {
		return pid
	}

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewBoardActor(boardID, m.deps)
	})
	pid := ctx.Spawn(props)
	ctx.Watch(pid)
	m.boardActors[boardID] = pid
	return pid
}

func (m *ManagerActor) forget(pid *actor.PID) {
	if pid == nil {
		return
	}
	for id, p := range m.boardActors {
		if p.Id == pid.Id && p.Address == pid.Address {
			delete(m.boardActors, id)
			return
		}
	}
}
