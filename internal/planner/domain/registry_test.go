package domain

import (
	"errors"
	"testing"
)

func errorsIs(err, target error) bool { return errors.Is(err, target) }

func TestCreate_数量上限(t *testing.T) {
	r := newTestRegistry(50)
	if _, err := r.Create(TypeFortress, 0, 0, ""); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if _, err := r.Create(TypeFortress, 10, 10, ""); !errorsIs(err, ErrLimitReached) {
		t.Fatalf("期望 ErrLimitReached, got=%v", err)
	}
	if r.Len() != 1 {
		t.Fatalf("期望只有 1 个建筑, got=%d", r.Len())
	}
}

func TestCreate_坐标被夹到网格内(t *testing.T) {
	r := newTestRegistry(50)
	b, err := r.Create(TypeFortress, 49, 49, "")
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if b.X != 47 || b.Y != 47 || b.Width != 3 || b.Height != 3 {
		t.Fatalf("期望 (47,47) 3x3, got=%+v", b)
	}
}

func TestCreate_名称只保留给可命名类型(t *testing.T) {
	r := newTestRegistry(50)
	c, _ := r.Create(TypeCastle, 0, 0, "  Bob  ")
	if c.PlayerName != "Bob" {
		t.Fatalf("期望名称被 trim 为 Bob, got=%q", c.PlayerName)
	}
	f, _ := r.Create(TypeFarm, 5, 5, "ignored")
	if f.PlayerName != "" {
		t.Fatalf("期望不可命名类型无名称, got=%q", f.PlayerName)
	}
}

func TestDefaultName_城堡计数递增(t *testing.T) {
	r := newTestRegistry(50)
	if got := r.DefaultName(TypeCastle); got != "Castle 1" {
		t.Fatalf("期望 Castle 1, got=%q", got)
	}
	_, _ = r.Create(TypeCastle, 0, 0, r.DefaultName(TypeCastle))
	if got := r.DefaultName(TypeCastle); got != "Castle 2" {
		t.Fatalf("期望 Castle 2, got=%q", got)
	}
	if got := r.DefaultName(TypeDeadzone); got != "" {
		t.Fatalf("期望 deadzone 默认名为空, got=%q", got)
	}
}

func TestMove_重叠和越界被拒绝(t *testing.T) {
	r := newTestRegistry(50)
	a, _ := r.Create(TypeHospital, 0, 0, "")
	_, _ = r.Create(TypeFarm, 4, 0, "")
	if _, err := r.Move(a.ID, 3, 0); !errorsIs(err, ErrOverlap) {
		t.Fatalf("期望 ErrOverlap, got=%v", err)
	}
	if _, err := r.Move(a.ID, 49, 0); !errorsIs(err, ErrOutOfBounds) {
		t.Fatalf("期望 ErrOutOfBounds, got=%v", err)
	}
	if _, err := r.Move("nope", 1, 1); !errorsIs(err, ErrNotFound) {
		t.Fatalf("期望 ErrNotFound, got=%v", err)
	}
	got, _ := r.Get(a.ID)
	if got.X != 0 || got.Y != 0 {
		t.Fatalf("期望位置不变, got=%+v", got)
	}
	moved, err := r.Move(a.ID, 2, 0)
	if err != nil || moved.X != 2 {
		t.Fatalf("期望边缘相接可移动, got=%+v err=%v", moved, err)
	}
}

func TestResize_只允许可调整类型(t *testing.T) {
	r := newTestRegistry(50)
	c, _ := r.Create(TypeCastle, 0, 0, "")
	if _, err := r.Resize(c.ID, 3, 3); !errorsIs(err, ErrNotResizable) {
		t.Fatalf("期望 ErrNotResizable, got=%v", err)
	}
	d, _ := r.Create(TypeDeadzone, 10, 10, "")
	if _, err := r.Resize(d.ID, 0, 2); !errorsIs(err, ErrInvalidExtent) {
		t.Fatalf("期望 ErrInvalidExtent, got=%v", err)
	}
	got, err := r.Resize(d.ID, 4, 2)
	if err != nil || got.Width != 4 || got.Height != 2 || got.X != 10 {
		t.Fatalf("期望 4x2 且左上角不动, got=%+v err=%v", got, err)
	}
}

func TestRename(t *testing.T) {
	r := newTestRegistry(50)
	f, _ := r.Create(TypeFarm, 0, 0, "")
	if _, err := r.Rename(f.ID, "x"); !errorsIs(err, ErrNotNameable) {
		t.Fatalf("期望 ErrNotNameable, got=%v", err)
	}
	d, _ := r.Create(TypeDeadzone, 5, 5, "")
	got, err := r.Rename(d.ID, "  swamp ")
	if err != nil || got.PlayerName != "swamp" {
		t.Fatalf("期望 swamp, got=%+v err=%v", got, err)
	}
}

func TestDelete(t *testing.T) {
	r := newTestRegistry(50)
	a, _ := r.Create(TypeFarm, 0, 0, "")
	b, _ := r.Create(TypeHospital, 5, 5, "")
	if _, err := r.Delete(a.ID); err != nil {
		t.Fatalf("Delete err=%v", err)
	}
	snap := r.Snapshot()
	if len(snap) != 1 || snap[0].ID != b.ID {
		t.Fatalf("期望只剩 %s, got=%v", b.ID, snap)
	}
	if _, err := r.Delete(a.ID); !errorsIs(err, ErrNotFound) {
		t.Fatalf("期望重复删除返回 ErrNotFound, got=%v", err)
	}
}

func TestShiftAll_全部移动(t *testing.T) {
	r := newTestRegistry(50)
	_, _ = r.Create(TypeFarm, 0, 0, "")
	_, _ = r.Create(TypeHospital, 5, 5, "")
	before := r.Snapshot()
	if err := r.ShiftAll(2, 1); err != nil {
		t.Fatalf("ShiftAll err=%v", err)
	}
	after := r.Snapshot()
	for i := range before {
		if after[i].X != before[i].X+2 || after[i].Y != before[i].Y+1 {
			t.Fatalf("期望平移 (2,1), before=%+v after=%+v", before[i], after[i])
		}
	}
}

func TestSetGridSize_缩小放不下时拒绝(t *testing.T) {
	r := newTestRegistry(50)
	_, _ = r.Create(TypeFarm, 40, 40, "")
	if err := r.SetGridSize(20); !errorsIs(err, ErrGridTooSmall) {
		t.Fatalf("期望 ErrGridTooSmall, got=%v", err)
	}
	if r.Grid().GridSize != 50 {
		t.Fatalf("期望网格尺寸不变, got=%d", r.Grid().GridSize)
	}
	if err := r.SetGridSize(5); !errorsIs(err, ErrInvalidGridSize) {
		t.Fatalf("期望 ErrInvalidGridSize, got=%v", err)
	}
	if err := r.SetGridSize(42); err != nil {
		t.Fatalf("期望 42 可接受, err=%v", err)
	}
}

func TestSetCellSize(t *testing.T) {
	r := newTestRegistry(50)
	if err := r.SetCellSize(0); !errorsIs(err, ErrInvalidCellSize) {
		t.Fatalf("期望 ErrInvalidCellSize, got=%v", err)
	}
	if err := r.SetCellSize(30); err != nil || r.Grid().CellSize != 30 {
		t.Fatalf("期望 30, got=%v err=%v", r.Grid().CellSize, err)
	}
}

func TestReplace_跳过非法和重叠条目(t *testing.T) {
	r := newTestRegistry(50)
	keep, _ := r.Create(TypeFarm, 20, 20, "")
	_ = keep
	skipped := r.Replace([]Building{
		{Type: TypeCastle, X: 0, Y: 0, Width: 2, Height: 2, PlayerName: "A"},
		{Type: TypeCastle, X: 1, Y: 1, Width: 2, Height: 2},
		{Type: TypeUnknown, X: 5, Y: 5, Width: 1, Height: 1},
		{Type: TypeFarm, X: 49, Y: 49, Width: 2, Height: 2},
		{Type: TypeCastle, X: 10, Y: 10, Width: 2, Height: 2},
		{Type: TypeCastle, X: 20, Y: 10, Width: 2, Height: 2},
	})
	if len(skipped) != 3 {
		t.Fatalf("期望跳过 3 条, got=%v", skipped)
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("期望接受 3 条并替换原有内容, got=%v", snap)
	}
	for _, b := range snap {
		if b.ID == "" {
			t.Fatalf("期望每条都有 id, got=%+v", b)
		}
	}
	if err := assertNoOverlapWithin(snap, 50); err != nil {
		t.Fatal(err)
	}
}

func TestReplace_加载时不检查数量上限(t *testing.T) {
	r := newTestRegistry(50)
	skipped := r.Replace([]Building{
		{Type: TypeFortress, X: 0, Y: 0, Width: 3, Height: 3},
		{Type: TypeFortress, X: 10, Y: 10, Width: 3, Height: 3},
	})
	if len(skipped) != 0 || r.CountOf(TypeFortress) != 2 {
		t.Fatalf("期望两个 fortress 都被接受, skipped=%v", skipped)
	}
}

func TestRegistry_连续操作后不变式成立(t *testing.T) {
	r := newTestRegistry(20)
	ids := []BuildingID{}
	for i := 0; i < 10; i++ {
		b, err := r.Create(TypeCastle, i*3, i*2, "")
		if err == nil {
			ids = append(ids, b.ID)
		}
	}
	for i, id := range ids {
		_, _ = r.Move(id, (i*7)%20, (i*5)%20)
	}
	_ = r.ShiftAll(1, 1)
	_ = r.SetGridSize(10)
	if err := assertNoOverlapWithin(r.Snapshot(), r.Grid().GridSize); err != nil {
		t.Fatal(err)
	}
}
