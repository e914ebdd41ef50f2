package interaction

import (
	"errors"
	"fmt"
	"testing"

	"AlliancePlanner/internal/planner/domain"
)

type recorder struct {
	commits []Commit
	ghosts  []Ghost
	rejects []Reject
}

func (r *recorder) OnCommit(c Commit) { r.commits = append(r.commits, c) }
func (r *recorder) OnGhost(g Ghost)   { r.ghosts = append(r.ghosts, g) }
func (r *recorder) OnReject(j Reject) { r.rejects = append(r.rejects, j) }

func newTestController(t *testing.T, gridSize int) (*Controller, *domain.Registry, *recorder) {
	t.Helper()
	n := 0
	reg, err := domain.NewRegistry(domain.DefaultCatalog(),
		domain.GridConfig{GridSize: gridSize, CellSize: 24},
		domain.WithIDGenerator(func() domain.BuildingID {
			n++
			return domain.BuildingID(fmt.Sprintf("b%d", n))
		}))
	if err != nil {
		t.Fatalf("NewRegistry err=%v", err)
	}
	rec := &recorder{}
	return NewController(reg, WithObserver(rec)), reg, rec
}

func move(x, y float64) PointerEvent    { return PointerEvent{Kind: EventMove, X: x, Y: y} }
func release(x, y float64) PointerEvent { return PointerEvent{Kind: EventRelease, X: x, Y: y} }

func TestScenario2_拖动一个格子提交到新位置(t *testing.T) {
	c, reg, rec := newTestController(t, 50)
	a, _ := reg.Create(domain.TypeHospital, 0, 0, "")

	if err := c.BeginMove(a.ID, 10, 10, ModalityMouse); err != nil {
		t.Fatalf("BeginMove err=%v", err)
	}
	c.Dispatch(move(34, 10))
	c.Dispatch(release(34, 10))

	got, _ := reg.Get(a.ID)
	if got.X != 1 || got.Y != 0 {
		t.Fatalf("期望 (1,0), got=(%d,%d)", got.X, got.Y)
	}
	if len(rec.commits) != 1 || rec.commits[0].Kind != CommitMoved {
		t.Fatalf("期望一次 buildingMoved, got=%v", rec.commits)
	}
	if c.Ghost().Visible {
		t.Fatalf("期望会话结束后 ghost 隐藏")
	}
}

func TestScenario3_调整大小被网格边界夹住(t *testing.T) {
	c, reg, rec := newTestController(t, 10)
	d, _ := reg.Create(domain.TypeDeadzone, 8, 5, "")

	if err := c.BeginResize(d.ID, 216, 144, ModalityMouse); err != nil {
		t.Fatalf("BeginResize err=%v", err)
	}
	c.Dispatch(move(216+72, 144+72))
	g := c.Ghost()
	if !g.Valid || g.Width != 2 || g.Height != 4 {
		t.Fatalf("期望 ghost 2x4 合法, got=%+v", g)
	}
	c.Dispatch(release(216+72, 144+72))

	got, _ := reg.Get(d.ID)
	if got.X != 8 || got.Y != 5 || got.Width != 2 || got.Height != 4 {
		t.Fatalf("期望 (8,5) 2x4, got=%+v", got)
	}
	if len(rec.commits) != 1 || rec.commits[0].Kind != CommitResized {
		t.Fatalf("期望一次 buildingResized, got=%v", rec.commits)
	}
}

func TestMove_非法位置时ghost停在最后合法位置(t *testing.T) {
	c, reg, _ := newTestController(t, 50)
	a, _ := reg.Create(domain.TypeHospital, 0, 0, "")
	_, _ = reg.Create(domain.TypeFarm, 4, 0, "")

	_ = c.BeginMove(a.ID, 0, 0, ModalityMouse)
	c.Dispatch(move(48, 0)) // (2,0) 合法，紧贴 farm
	c.Dispatch(move(72, 0)) // (3,0) 与 farm 重叠
	g := c.Ghost()
	if g.Valid || g.X != 2 {
		t.Fatalf("期望 ghost 停在 x=2 且 Valid=false, got=%+v", g)
	}
	c.Dispatch(release(72, 0))
	got, _ := reg.Get(a.ID)
	if got.X != 2 {
		t.Fatalf("期望提交最后合法位置 x=2, got=%d", got.X)
	}
}

func TestMove_回到原位不提交(t *testing.T) {
	c, reg, rec := newTestController(t, 50)
	a, _ := reg.Create(domain.TypeHospital, 5, 5, "")
	_ = c.BeginMove(a.ID, 100, 100, ModalityMouse)
	c.Dispatch(move(200, 100))
	c.Dispatch(move(105, 100))
	c.Dispatch(release(105, 100))
	if len(rec.commits) != 0 {
		t.Fatalf("期望没有提交, got=%v", rec.commits)
	}
}

func TestPlace_合法释放创建建筑并使用默认名(t *testing.T) {
	c, reg, rec := newTestController(t, 50)
	if err := c.BeginPlace(domain.TypeCastle, SourceToolbarDrag, ModalityMouse); err != nil {
		t.Fatalf("BeginPlace err=%v", err)
	}
	if c.Ghost().Visible {
		t.Fatalf("期望指针进入网格前 ghost 隐藏")
	}
	c.Dispatch(move(130, 60))
	g := c.Ghost()
	if !g.Visible || !g.Valid || g.X != 5 || g.Y != 2 {
		t.Fatalf("期望 ghost 在 (5,2) 合法, got=%+v", g)
	}
	c.Dispatch(release(130, 60))
	if reg.Len() != 1 || len(rec.commits) != 1 || rec.commits[0].Kind != CommitCreated {
		t.Fatalf("期望创建 1 个建筑, commits=%v", rec.commits)
	}
	if rec.commits[0].Building.PlayerName != "Castle 1" {
		t.Fatalf("期望默认名 Castle 1, got=%q", rec.commits[0].Building.PlayerName)
	}
}

func TestPlace_网格外释放取消并拒绝(t *testing.T) {
	c, reg, rec := newTestController(t, 50)
	_ = c.BeginPlace(domain.TypeFarm, SourceToolbarDrag, ModalityMouse)
	c.Dispatch(move(100, 100))
	c.Dispatch(release(-5, 100))
	if reg.Len() != 0 {
		t.Fatalf("期望没有建筑被创建")
	}
	if len(rec.rejects) != 1 || !errors.Is(rec.rejects[0].Err, domain.ErrOutOfBounds) {
		t.Fatalf("期望一次越界拒绝, got=%v", rec.rejects)
	}
	if _, ok := c.Active(); ok {
		t.Fatalf("期望会话已结束")
	}
}

func TestPlace_重叠释放被拒绝(t *testing.T) {
	c, reg, rec := newTestController(t, 50)
	_, _ = reg.Create(domain.TypeHospital, 10, 10, "")
	_ = c.BeginPlace(domain.TypeFarm, SourceToolSelect, ModalityTouch)
	c.Dispatch(PointerEvent{Kind: EventRelease, X: 11 * 24, Y: 11 * 24, Modality: ModalityTouch})
	if reg.Len() != 1 {
		t.Fatalf("期望 registry 不变, got=%d", reg.Len())
	}
	if len(rec.rejects) != 1 || !errors.Is(rec.rejects[0].Err, domain.ErrOverlap) {
		t.Fatalf("期望重叠拒绝, got=%v", rec.rejects)
	}
}

func TestPlace_达到上限时拒绝(t *testing.T) {
	c, reg, rec := newTestController(t, 50)
	_, _ = reg.Create(domain.TypeFortress, 0, 0, "")
	_ = c.BeginPlace(domain.TypeFortress, SourceToolbarDrag, ModalityMouse)
	c.Dispatch(move(480, 480))
	if c.Ghost().Valid {
		t.Fatalf("期望达到上限时 ghost 非法")
	}
	c.Dispatch(release(480, 480))
	if reg.CountOf(domain.TypeFortress) != 1 {
		t.Fatalf("期望仍只有 1 个 fortress")
	}
	if len(rec.rejects) != 1 || !errors.Is(rec.rejects[0].Err, domain.ErrLimitReached) {
		t.Fatalf("期望上限拒绝, got=%v", rec.rejects)
	}
}

func TestPlace_重复释放只放置一次(t *testing.T) {
	c, reg, _ := newTestController(t, 50)
	_ = c.BeginPlace(domain.TypeCastle, SourceToolSelect, ModalityTouch)
	c.Dispatch(release(100, 100))
	c.Dispatch(release(100, 100))
	if reg.Len() != 1 {
		t.Fatalf("期望只创建 1 个, got=%d", reg.Len())
	}
}

func TestPlace_触摸离开网格取消_鼠标离开只隐藏(t *testing.T) {
	c, _, _ := newTestController(t, 50)
	_ = c.BeginPlace(domain.TypeCastle, SourceToolSelect, ModalityTouch)
	c.Dispatch(PointerEvent{Kind: EventMove, X: 50, Y: 50, Modality: ModalityTouch})
	c.Dispatch(PointerEvent{Kind: EventLeave, Modality: ModalityTouch})
	if _, ok := c.Active(); ok {
		t.Fatalf("期望触摸离开后会话取消")
	}

	_ = c.BeginPlace(domain.TypeCastle, SourceToolbarDrag, ModalityMouse)
	c.Dispatch(move(50, 50))
	c.Dispatch(PointerEvent{Kind: EventLeave})
	if _, ok := c.Active(); !ok {
		t.Fatalf("期望鼠标离开后会话仍在")
	}
	if c.Ghost().Visible {
		t.Fatalf("期望鼠标离开后 ghost 隐藏")
	}
	c.Dispatch(move(50, 50))
	if !c.Ghost().Visible {
		t.Fatalf("期望回到网格后 ghost 重新显示")
	}
}

func TestSession_重复选择同一工具取消(t *testing.T) {
	c, _, _ := newTestController(t, 50)
	_ = c.BeginPlace(domain.TypeCastle, SourceToolSelect, ModalityTouch)
	_ = c.BeginPlace(domain.TypeCastle, SourceToolSelect, ModalityTouch)
	if _, ok := c.Active(); ok {
		t.Fatalf("期望第二次选择同一工具后回到 Idle")
	}
	if c.Bus().ListenerCount() != 0 {
		t.Fatalf("期望监听全部撤掉, got=%d", c.Bus().ListenerCount())
	}
}

func TestSession_监听不泄漏(t *testing.T) {
	c, reg, _ := newTestController(t, 50)
	a, _ := reg.Create(domain.TypeHospital, 0, 0, "")
	d, _ := reg.Create(domain.TypeDeadzone, 20, 20, "")
	for i := 0; i < 20; i++ {
		_ = c.BeginMove(a.ID, 0, 0, ModalityMouse)
		per := c.Bus().ListenerCount()
		if per == 0 {
			t.Fatalf("期望会话期间有监听")
		}
		_ = c.BeginResize(d.ID, 0, 0, ModalityMouse)
		if c.Bus().ListenerCount() != per {
			t.Fatalf("期望开始新会话时旧监听被撤掉, got=%d want=%d", c.Bus().ListenerCount(), per)
		}
		_ = c.BeginPlace(domain.TypeCastle, SourceToolbarDrag, ModalityMouse)
		c.Dispatch(release(-1, -1))
		if c.Bus().ListenerCount() != 0 {
			t.Fatalf("第 %d 轮后期望 0 个监听, got=%d", i, c.Bus().ListenerCount())
		}
	}
}

func TestCancel_不改变registry且可重复(t *testing.T) {
	c, reg, rec := newTestController(t, 50)
	a, _ := reg.Create(domain.TypeHospital, 0, 0, "")
	before := reg.Snapshot()
	_ = c.BeginMove(a.ID, 0, 0, ModalityMouse)
	c.Dispatch(move(120, 120))
	if !c.Cancel() {
		t.Fatalf("期望取消了一个会话")
	}
	if c.Cancel() {
		t.Fatalf("期望重复取消是 no-op")
	}
	after := reg.Snapshot()
	if len(after) != 1 || after[0] != before[0] {
		t.Fatalf("期望 registry 不变")
	}
	if len(rec.commits) != 0 || c.Ghost().Visible {
		t.Fatalf("期望无提交且 ghost 隐藏")
	}
	c.Dispatch(release(120, 120))
	if got, _ := reg.Get(a.ID); got.X != 0 {
		t.Fatalf("期望取消后的释放被忽略")
	}
}

func TestTouchCancel_取消会话(t *testing.T) {
	c, reg, _ := newTestController(t, 50)
	a, _ := reg.Create(domain.TypeHospital, 0, 0, "")
	_ = c.BeginMove(a.ID, 0, 0, ModalityTouch)
	c.Dispatch(PointerEvent{Kind: EventTouchCancel, Modality: ModalityTouch})
	if _, ok := c.Active(); ok {
		t.Fatalf("期望 touchcancel 后回到 Idle")
	}
}

func TestBeginResize_不可调整类型报错(t *testing.T) {
	c, reg, _ := newTestController(t, 50)
	a, _ := reg.Create(domain.TypeCastle, 0, 0, "")
	if err := c.BeginResize(a.ID, 0, 0, ModalityMouse); !errors.Is(err, domain.ErrNotResizable) {
		t.Fatalf("期望 ErrNotResizable, got=%v", err)
	}
	if err := c.BeginMove("missing", 0, 0, ModalityMouse); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("期望 ErrNotFound, got=%v", err)
	}
}

func TestDelete_删除当前拖拽对象时先取消(t *testing.T) {
	c, reg, rec := newTestController(t, 50)
	a, _ := reg.Create(domain.TypeHospital, 0, 0, "")
	_ = c.BeginMove(a.ID, 0, 0, ModalityMouse)
	if _, err := c.Delete(a.ID); err != nil {
		t.Fatalf("Delete err=%v", err)
	}
	if _, ok := c.Active(); ok || c.Bus().ListenerCount() != 0 {
		t.Fatalf("期望会话被取消")
	}
	if len(rec.commits) != 1 || rec.commits[0].Kind != CommitDeleted {
		t.Fatalf("期望一次 buildingDeleted, got=%v", rec.commits)
	}
}

func TestResize_缩小到最小1x1且锚点不动(t *testing.T) {
	c, reg, rec := newTestController(t, 50)
	d, _ := reg.Create(domain.TypeDeadzone, 5, 5, "")
	if _, err := reg.Resize(d.ID, 3, 3); err != nil {
		t.Fatalf("Resize err=%v", err)
	}

	sx, sy := float64(8*24), float64(8*24)
	if err := c.BeginResize(d.ID, sx, sy, ModalityMouse); err != nil {
		t.Fatalf("BeginResize err=%v", err)
	}
	c.Dispatch(move(sx-500, sy-500))
	g := c.Ghost()
	if !g.Valid || g.X != 5 || g.Y != 5 || g.Width != 1 || g.Height != 1 {
		t.Fatalf("期望 ghost 夹到 (5,5) 1x1, got=%+v", g)
	}
	c.Dispatch(release(sx-500, sy-500))

	got, _ := reg.Get(d.ID)
	if got.X != 5 || got.Y != 5 || got.Width != 1 || got.Height != 1 {
		t.Fatalf("期望提交 (5,5) 1x1, got=%+v", got)
	}
	if len(rec.commits) != 1 || rec.commits[0].Kind != CommitResized {
		t.Fatalf("期望一次 buildingResized, got=%v", rec.commits)
	}
}
