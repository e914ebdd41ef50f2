package interaction

import (
	"AlliancePlanner/internal/planner/domain"
	"AlliancePlanner/modules/kit/logx"

	"go.uber.org/zap"
)

type CommitKind uint8

const (
	CommitCreated CommitKind = iota + 1
	CommitMoved
	CommitResized
	CommitDeleted
)

// Event 返回对外推送的事件名。
func (k CommitKind) Event() string {
	switch k {
	case CommitCreated:
		return "buildingCreated"
	case CommitMoved:
		return "buildingMoved"
	case CommitResized:
		return "buildingResized"
	case CommitDeleted:
		return "buildingDeleted"
	default:
		return ""
	}
}

type Commit struct {
	Kind     CommitKind
	Building domain.Building
}

// Reject 描述一次被拒绝的提交，Err 是领域错误。
type Reject struct {
	Kind      SessionKind
	Type      domain.BuildingType
	SubjectID domain.BuildingID
	Err       error
}

// Observer 接收控制器产生的事件，渲染端据此刷新。
type Observer interface {
	OnCommit(Commit)
	OnGhost(Ghost)
	OnReject(Reject)
}

type nopObserver struct{}

func (nopObserver) OnCommit(Commit) {}
func (nopObserver) OnGhost(Ghost)   {}
func (nopObserver) OnReject(Reject) {}

// Controller 是拖拽手势状态机：Idle 或一个活跃的 Session。
// 不是并发安全的，和 Registry 在同一个 goroutine 里使用。
type Controller struct {
	reg    *domain.Registry
	bus    *Bus
	obs    Observer
	log    logx.Logger
	active *Session
	ghost  Ghost
}

type Option func(*Controller)

func WithObserver(obs Observer) Option {
	return func(c *Controller) {
		if obs != nil {
			c.obs = obs
		}
	}
}

func WithLogger(l logx.Logger) Option {
	return func(c *Controller) { c.log = logx.OrNop(l) }
}

func NewController(reg *domain.Registry, opts ...Option) *Controller {
	c := &Controller{
		reg: reg,
		bus: NewBus(),
		obs: nopObserver{},
		log: logx.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Bus() *Bus { return c.bus }

func (c *Controller) Ghost() Ghost { return c.ghost }

// Active 返回当前会话的副本。
func (c *Controller) Active() (Session, bool) {
	if c.active == nil {
		return Session{}, false
	}
	s := *c.active
	s.handles = nil
	return s, true
}

// TouchPlacing 表示正在进行移动端放置，此时忽略双指缩放。
func (c *Controller) TouchPlacing() bool {
	return c.active != nil && c.active.Kind == KindPlace && c.active.Modality == ModalityTouch
}

// Dispatch 把一个指针事件投递给当前会话；Idle 时事件被丢弃。
func (c *Controller) Dispatch(ev PointerEvent) {
	if n := c.bus.Publish(ev); n == 0 {
		c.log.Debug("pointer event ignored", zap.String("kind", ev.Kind.String()))
	}
}

func (c *Controller) BeginMove(id domain.BuildingID, px, py float64, m Modality) error {
	return c.beginSubject(KindMove, id, px, py, m)
}

func (c *Controller) BeginResize(id domain.BuildingID, px, py float64, m Modality) error {
	b, ok := c.reg.Get(id)
	if !ok {
		return domain.ErrNotFound.WithData("id", string(id))
	}
	if spec, _ := c.reg.Catalog().Lookup(b.Type); !spec.Resizable {
		return domain.ErrNotResizable.WithData("type", b.Type.String())
	}
	return c.beginSubject(KindResize, id, px, py, m)
}

func (c *Controller) beginSubject(kind SessionKind, id domain.BuildingID, px, py float64, m Modality) error {
	if c.toggled(kind, id, domain.TypeUnknown) {
		return nil
	}
	b, ok := c.reg.Get(id)
	if !ok {
		return domain.ErrNotFound.WithData("id", string(id))
	}
	c.end()
	s := &Session{
		Kind:        kind,
		SubjectID:   id,
		PendingType: b.Type,
		Modality:    m,
		StartX:      px,
		StartY:      py,
		Origin:      b.Rect(),
		LastValid:   b.Rect(),
		Candidate:   b.Rect(),
		Valid:       true,
	}
	c.start(s)
	return nil
}

// BeginPlace 开始放置新建筑。ghost 在指针第一次进入网格前保持隐藏。
func (c *Controller) BeginPlace(t domain.BuildingType, src Source, m Modality) error {
	if c.toggled(KindPlace, "", t) {
		return nil
	}
	if _, ok := c.reg.Catalog().Lookup(t); !ok {
		return domain.ErrUnknownType.WithData("type", t.String())
	}
	c.end()
	s := &Session{
		Kind:        KindPlace,
		PendingType: t,
		Source:      src,
		Modality:    m,
	}
	c.start(s)
	return nil
}

// Cancel 丢弃当前会话，不修改 registry。Idle 时是 no-op。
func (c *Controller) Cancel() bool {
	if c.active == nil {
		return false
	}
	c.log.Debug("session cancelled", zap.String("kind", c.active.Kind.String()))
	c.end()
	return true
}

// Delete 删除建筑；如果它正是当前会话的对象，先取消会话。
func (c *Controller) Delete(id domain.BuildingID) (domain.Building, error) {
	if c.active != nil && c.active.SubjectID == id {
		c.end()
	}
	b, err := c.reg.Delete(id)
	if err != nil {
		return domain.Building{}, err
	}
	c.obs.OnCommit(Commit{Kind: CommitDeleted, Building: b})
	return b, nil
}

// toggled 在重复开始同一个会话时取消它。
func (c *Controller) toggled(kind SessionKind, id domain.BuildingID, t domain.BuildingType) bool {
	if !c.active.sameAs(kind, id, t) {
		return false
	}
	c.end()
	return true
}

func (c *Controller) start(s *Session) {
	c.active = s
	s.listen(c.bus, EventMove, func(ev PointerEvent) {
		if c.active == s {
			c.update(s, ev)
			c.pushGhost()
		}
	})
	s.listen(c.bus, EventRelease, func(ev PointerEvent) {
		if c.active == s {
			c.release(s, ev)
		}
	})
	s.listen(c.bus, EventLeave, func(ev PointerEvent) {
		if c.active == s {
			c.leave(s, ev)
		}
	})
	s.listen(c.bus, EventTouchCancel, func(PointerEvent) {
		if c.active == s {
			c.Cancel()
		}
	})
	c.pushGhost()
}

// end 结束当前会话：撤掉监听并隐藏 ghost。
func (c *Controller) end() {
	if c.active == nil {
		return
	}
	c.active.close()
	c.active = nil
	c.pushGhost()
}

func (c *Controller) pushGhost() {
	g := ghostFor(c.active, c.reg.Catalog())
	if g == c.ghost {
		return
	}
	c.ghost = g
	c.obs.OnGhost(g)
}

func (c *Controller) update(s *Session, ev PointerEvent) {
	grid := c.reg.Grid()
	switch s.Kind {
	case KindMove:
		dx := domain.SnapDelta(ev.X-s.StartX, grid.CellSize)
		dy := domain.SnapDelta(ev.Y-s.StartY, grid.CellSize)
		x, y := domain.ClampFootprint(s.Origin.X+dx, s.Origin.Y+dy, s.Origin.W, s.Origin.H, grid.GridSize)
		c.track(s, domain.Rect{X: x, Y: y, W: s.Origin.W, H: s.Origin.H})
	case KindResize:
		dx := domain.SnapDelta(ev.X-s.StartX, grid.CellSize)
		dy := domain.SnapDelta(ev.Y-s.StartY, grid.CellSize)
		w := min(max(1, s.Origin.W+dx), grid.GridSize-s.Origin.X)
		h := min(max(1, s.Origin.H+dy), grid.GridSize-s.Origin.Y)
		c.track(s, domain.Rect{X: s.Origin.X, Y: s.Origin.Y, W: w, H: h})
	case KindPlace:
		if !grid.ContainsPixel(ev.X, ev.Y) {
			s.InsideGrid = false
			s.Valid = false
			return
		}
		spec, _ := c.reg.Catalog().Lookup(s.PendingType)
		cx, cy := domain.PixelToCell(ev.X, ev.Y, grid.CellSize)
		cx, cy = domain.ClampFootprint(cx, cy, spec.Size, spec.Size, grid.GridSize)
		s.InsideGrid = true
		s.Candidate = domain.Rect{X: cx, Y: cy, W: spec.Size, H: spec.Size}
		s.Valid = c.reg.CanPlace(s.Candidate, "") && !c.reg.LimitReached(s.PendingType)
	}
}

// track 更新候选；只有合法候选才成为 LastValid。
func (c *Controller) track(s *Session, cand domain.Rect) {
	s.Candidate = cand
	s.Valid = c.reg.CanPlace(cand, s.SubjectID)
	if s.Valid {
		s.LastValid = cand
	}
}

func (c *Controller) release(s *Session, ev PointerEvent) {
	c.update(s, ev)
	switch s.Kind {
	case KindMove:
		c.end()
		if s.LastValid == s.Origin {
			return
		}
		b, err := c.reg.Move(s.SubjectID, s.LastValid.X, s.LastValid.Y)
		c.commitOrReject(s, CommitMoved, b, err)
	case KindResize:
		c.end()
		if s.LastValid == s.Origin {
			return
		}
		b, err := c.reg.Resize(s.SubjectID, s.LastValid.W, s.LastValid.H)
		c.commitOrReject(s, CommitResized, b, err)
	case KindPlace:
		c.end()
		if err := c.placeRejection(s); err != nil {
			c.reject(s, err)
			return
		}
		b, err := c.reg.Create(s.PendingType, s.Candidate.X, s.Candidate.Y, c.reg.DefaultName(s.PendingType))
		c.commitOrReject(s, CommitCreated, b, err)
	}
}

func (c *Controller) placeRejection(s *Session) error {
	switch {
	case !s.InsideGrid:
		return domain.ErrOutOfBounds.WithData("type", s.PendingType.String())
	case c.reg.LimitReached(s.PendingType):
		return domain.ErrLimitReached.WithData("type", s.PendingType.String())
	case !s.Valid:
		return domain.ErrOverlap.WithDataMap(map[string]any{"x": s.Candidate.X, "y": s.Candidate.Y})
	}
	return nil
}

// leave：移动端放置时指针离开网格直接取消；鼠标拖拽只隐藏 ghost，回到网格后继续。
func (c *Controller) leave(s *Session, ev PointerEvent) {
	if s.Kind != KindPlace {
		return
	}
	if s.Modality == ModalityTouch || ev.Modality == ModalityTouch {
		c.Cancel()
		return
	}
	s.InsideGrid = false
	s.Valid = false
	c.pushGhost()
}

func (c *Controller) commitOrReject(s *Session, kind CommitKind, b domain.Building, err error) {
	if err != nil {
		c.reject(s, err)
		return
	}
	c.log.Debug("session committed", zap.String("event", kind.Event()), zap.String("id", string(b.ID)))
	c.obs.OnCommit(Commit{Kind: kind, Building: b})
}

func (c *Controller) reject(s *Session, err error) {
	c.obs.OnReject(Reject{Kind: s.Kind, Type: s.PendingType, SubjectID: s.SubjectID, Err: err})
}
