package app

import (
	"context"

	"AlliancePlanner/internal/planner/codec"
	"AlliancePlanner/internal/planner/domain"
	"AlliancePlanner/internal/planner/interaction"
	"AlliancePlanner/internal/shared/metrics"
	"AlliancePlanner/modules/kit/errx"
	"AlliancePlanner/modules/kit/logx"

	"go.uber.org/zap"
)

// Board 持有一块布局板的全部状态：registry、手势控制器和视图开关。
// 不是并发安全的，由 board actor 串行调用。
type Board struct {
	id    string
	reg   *domain.Registry
	ctl   *interaction.Controller
	codec *codec.Codec
	sink  EventSink
	prefs Prefs
	log   logx.Logger

	selected     domain.BuildingID
	rotated      bool
	showDistance bool
	dirty        bool
}

type BoardOption func(*Board)

func WithSink(s EventSink) BoardOption {
	return func(b *Board) { b.sink = s }
}

func WithPrefs(p Prefs) BoardOption {
	return func(b *Board) { b.prefs = p }
}

func WithBoardLogger(l logx.Logger) BoardOption {
	return func(b *Board) { b.log = logx.OrNop(l) }
}

func WithCodec(c *codec.Codec) BoardOption {
	return func(b *Board) {
		if c != nil {
			b.codec = c
		}
	}
}

func NewBoard(id string, catalog *domain.Catalog, grid domain.GridConfig, opts ...BoardOption) (*Board, error) {
	b := &Board{id: id, log: logx.Nop()}
	for _, opt := range opts {
		opt(b)
	}
	if b.prefs != nil {
		if n, ok := b.prefs.GridSize(); ok {
			grid.GridSize = n
		}
	}
	reg, err := domain.NewRegistry(catalog, grid)
	if err != nil {
		return nil, err
	}
	b.reg = reg
	if b.codec == nil {
		b.codec = codec.New(reg.Catalog(), codec.WithLogger(b.log))
	}
	b.ctl = interaction.NewController(reg,
		interaction.WithObserver(boardObserver{b}),
		interaction.WithLogger(b.log))
	return b, nil
}

func (b *Board) ID() string                          { return b.id }
func (b *Board) Registry() *domain.Registry          { return b.reg }
func (b *Board) Controller() *interaction.Controller { return b.ctl }
func (b *Board) Selected() domain.BuildingID         { return b.selected }
func (b *Board) Rotated() bool                       { return b.rotated }
func (b *Board) Dirty() bool                         { return b.dirty }
func (b *Board) MarkClean()                          { b.dirty = false }

// Select 选中建筑，空 id 表示取消选中。
func (b *Board) Select(id domain.BuildingID) error {
	if id == "" {
		b.selected = ""
		return nil
	}
	if _, ok := b.reg.Get(id); !ok {
		return domain.ErrNotFound.WithData("id", string(id))
	}
	b.selected = id
	return nil
}

// BeginMove 按下建筑：旋转视图先复位，然后选中并开始移动。
func (b *Board) BeginMove(id domain.BuildingID, px, py float64, m interaction.Modality) error {
	b.resetRotation()
	if err := b.ctl.BeginMove(id, px, py, m); err != nil {
		return err
	}
	b.selected = id
	return nil
}

func (b *Board) BeginResize(id domain.BuildingID, px, py float64, m interaction.Modality) error {
	b.resetRotation()
	if err := b.ctl.BeginResize(id, px, py, m); err != nil {
		return err
	}
	b.selected = id
	return nil
}

func (b *Board) BeginPlace(t domain.BuildingType, src interaction.Source, m interaction.Modality) error {
	b.resetRotation()
	return b.ctl.BeginPlace(t, src, m)
}

func (b *Board) Pointer(ev interaction.PointerEvent) {
	b.ctl.Dispatch(ev)
}

func (b *Board) Cancel() bool {
	return b.ctl.Cancel()
}

func (b *Board) Delete(id domain.BuildingID) error {
	b.ctl.Cancel()
	_, err := b.ctl.Delete(id)
	return err
}

func (b *Board) Rename(id domain.BuildingID, name string) (domain.Building, error) {
	b.ctl.Cancel()
	nb, err := b.reg.Rename(id, name)
	if err != nil {
		return domain.Building{}, err
	}
	b.dirty = true
	b.push(EventRenamed, nb)
	return nb, nil
}

// ShiftAll 整体平移，先取消会话并复位旋转。
func (b *Board) ShiftAll(dx, dy int) error {
	b.ctl.Cancel()
	b.rotated = false
	if err := b.reg.ShiftAll(dx, dy); err != nil {
		b.rejected(err)
		return err
	}
	b.dirty = true
	b.pushView()
	return nil
}

// SetGridSize 修改网格尺寸，成功后写入本地偏好。
func (b *Board) SetGridSize(n int) error {
	b.ctl.Cancel()
	if err := b.reg.SetGridSize(n); err != nil {
		b.rejected(err)
		return err
	}
	b.dirty = true
	if b.prefs != nil {
		if err := b.prefs.SaveGridSize(n); err != nil {
			logx.ReportSysErrorWithLoggerContext(context.Background(), b.log,
				logx.NewSysLog("board.gridSize", ErrUnavailable.WithReason(ReasonPrefsWriteFail).WithCause(err)))
		}
	}
	b.pushView()
	return nil
}

// Pinch 双指缩放；移动端放置过程中忽略。
func (b *Board) Pinch(initialCell, d0, d1 float64) bool {
	if b.ctl.TouchPlacing() {
		return false
	}
	size, changed := domain.PinchCellSize(b.reg.Grid().CellSize, initialCell, d0, d1)
	if !changed {
		return false
	}
	if err := b.reg.SetCellSize(size); err != nil {
		return false
	}
	b.pushView()
	return true
}

func (b *Board) ToggleRotation() bool {
	b.ctl.Cancel()
	b.rotated = !b.rotated
	b.pushView()
	return b.rotated
}

func (b *Board) ToggleDistance() bool {
	b.showDistance = !b.showDistance
	b.pushView()
	return b.showDistance
}

// Share 把当前布局编码成分享链接。
func (b *Board) Share(base string) (string, error) {
	payload, err := b.codec.Encode(b.reg.Snapshot())
	if err != nil {
		return "", err
	}
	return codec.BuildLocator(base, payload), nil
}

type LoadReport struct {
	Format   string   `json:"format"`
	Loaded   int      `json:"loaded"`
	Warnings []string `json:"warnings,omitempty"`
}

// Load 从分享链接恢复布局；数据损坏时返回错误，当前布局不变。
func (b *Board) Load(locator string) (LoadReport, error) {
	b.ctl.Cancel()
	res, err := b.codec.Decode(codec.ParseLocator(locator))
	if err != nil {
		b.rejected(err)
		return LoadReport{}, err
	}
	rep := LoadReport{Format: res.Format, Warnings: res.Warnings}
	for _, s := range b.reg.Replace(res.Buildings) {
		rep.Warnings = append(rep.Warnings, skipWarning(s))
	}
	rep.Loaded = b.reg.Len()
	b.selected = ""
	b.dirty = true
	b.pushView()
	return rep, nil
}

// Snapshot 导出可持久化的状态。
func (b *Board) Snapshot() (domain.Layout, error) {
	payload, err := b.codec.Encode(b.reg.Snapshot())
	if err != nil {
		return domain.Layout{}, err
	}
	g := b.reg.Grid()
	return domain.Layout{ID: b.id, Payload: payload, GridSize: g.GridSize, CellSize: g.CellSize}, nil
}

// Restore 用存储的状态初始化，不推送事件也不标脏。负载解析失败或网格参数不合法时什么都不改
func (b *Board) Restore(l domain.Layout) error {
	var buildings []domain.Building
	if l.Payload != "" {
		res, err := b.codec.Decode(l.Payload)
		if err != nil {
			return err
		}
		buildings = res.Buildings
	}
	grid := b.reg.Grid()
	if l.GridSize != 0 {
		grid.GridSize = l.GridSize
	}
	if l.CellSize > 0 {
		grid.CellSize = l.CellSize
	}
	if err := grid.Validate(); err != nil {
		return err
	}

	// 先清空，缩小网格时不会被旧建筑挡住
	b.reg.Replace(nil)
	if err := b.reg.SetGridSize(grid.GridSize); err != nil {
		return err
	}
	if err := b.reg.SetCellSize(grid.CellSize); err != nil {
		return err
	}
	for _, s := range b.reg.Replace(buildings) {
		b.log.Warn("restore skipped building", zap.String("board", b.id), zap.String("reason", skipWarning(s)))
	}
	return nil
}

func (b *Board) resetRotation() {
	if b.rotated {
		b.rotated = false
		b.pushView()
	}
}

func (b *Board) push(name string, data any) {
	if b.sink != nil {
		b.sink.Push(Event{Name: name, Data: data})
	}
}

func (b *Board) pushView() {
	b.push(EventViewChanged, b.View())
}

type Rejection struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

func (b *Board) rejected(err error) {
	r := Rejection{Code: string(errx.CodeOf(err)), Msg: err.Error()}
	if e, ok := errx.As(err); ok {
		r.Msg = e.Msg()
	}
	metrics.BoardRejects.WithLabelValues(r.Code).Inc()
	b.push(EventRejected, r)
}

func skipWarning(s domain.SkippedBuilding) string {
	msg := s.Err.Error()
	if e, ok := errx.As(s.Err); ok {
		msg = e.Msg()
	}
	return "building " + s.Building.Type.String() + ": " + msg
}

// boardObserver 把控制器事件转成 board 事件，避免 Board 自身暴露回调方法。
type boardObserver struct{ b *Board }

func (o boardObserver) OnCommit(c interaction.Commit) {
	b := o.b
	b.dirty = true
	switch c.Kind {
	case interaction.CommitCreated:
		b.selected = c.Building.ID
	case interaction.CommitDeleted:
		if b.selected == c.Building.ID {
			b.selected = ""
		}
	}
	metrics.BoardCommits.WithLabelValues(c.Kind.Event()).Inc()
	b.push(c.Kind.Event(), c.Building)
}

func (o boardObserver) OnGhost(g interaction.Ghost) {
	o.b.push(EventGhost, g)
}

func (o boardObserver) OnReject(r interaction.Reject) {
	o.b.rejected(r.Err)
}
