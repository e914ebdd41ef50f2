package domain

import (
	"strings"

	"github.com/lithammer/shortuuid/v4"
)

// Registry 是建筑集合的唯一持有者，所有变更都经过这里的提交方法。
// 失败的调用不会修改任何状态。不是并发安全的，由所在 board actor 串行访问。
type Registry struct {
	catalog   *Catalog
	grid      GridConfig
	buildings []Building
	newID     func() BuildingID
}

type RegistryOption func(*Registry)

// WithIDGenerator 替换默认的 shortuuid 生成器，测试里用来得到确定的 id。
func WithIDGenerator(gen func() BuildingID) RegistryOption {
	return func(r *Registry) {
		if gen != nil {
			r.newID = gen
		}
	}
}

func NewRegistry(catalog *Catalog, grid GridConfig, opts ...RegistryOption) (*Registry, error) {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	r := &Registry{
		catalog: catalog,
		grid:    grid,
		newID:   func() BuildingID { return BuildingID(shortuuid.New()) },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// SkippedBuilding 记录 Replace 时被丢弃的建筑及原因。
type SkippedBuilding struct {
	Index    int
	Building Building
	Err      error
}

func (r *Registry) Catalog() *Catalog { return r.catalog }
func (r *Registry) Grid() GridConfig  { return r.grid }
func (r *Registry) Len() int          { return len(r.buildings) }

// Snapshot 返回按插入顺序排列的副本。
func (r *Registry) Snapshot() []Building {
	out := make([]Building, len(r.buildings))
	copy(out, r.buildings)
	return out
}

func (r *Registry) Get(id BuildingID) (Building, bool) {
	if i := r.indexOf(id); i >= 0 {
		return r.buildings[i], true
	}
	return Building{}, false
}

func (r *Registry) CountOf(t BuildingType) int {
	n := 0
	for _, b := range r.buildings {
		if b.Type == t {
			n++
		}
	}
	return n
}

func (r *Registry) CanPlace(candidate Rect, exclude BuildingID) bool {
	return CanPlace(candidate, r.buildings, exclude, r.grid.GridSize)
}

// LimitReached 判断该类型是否已达数量上限。
func (r *Registry) LimitReached(t BuildingType) bool {
	spec, ok := r.catalog.Lookup(t)
	if !ok || spec.Unlimited() {
		return false
	}
	return r.CountOf(t) >= spec.Limit
}

func (r *Registry) DefaultName(t BuildingType) string {
	spec, ok := r.catalog.Lookup(t)
	if !ok {
		return ""
	}
	return spec.DefaultName(r.CountOf(t))
}

// Create 放置新建筑，坐标先被夹到网格内。
func (r *Registry) Create(t BuildingType, x, y int, name string) (Building, error) {
	spec, ok := r.catalog.Lookup(t)
	if !ok {
		return Building{}, ErrUnknownType.WithData("type", t.String())
	}
	if r.LimitReached(t) {
		return Building{}, ErrLimitReached.WithDataMap(map[string]any{"type": t.String(), "limit": spec.Limit})
	}
	x, y = ClampFootprint(x, y, spec.Size, spec.Size, r.grid.GridSize)
	rect := Rect{X: x, Y: y, W: spec.Size, H: spec.Size}
	if !rect.Within(r.grid.GridSize) {
		return Building{}, ErrOutOfBounds.WithData("type", t.String())
	}
	if Overlaps(rect, r.buildings, "") {
		return Building{}, ErrOverlap.WithDataMap(map[string]any{"x": x, "y": y})
	}
	b := Building{
		ID:     r.newID(),
		Type:   t,
		X:      x,
		Y:      y,
		Width:  spec.Size,
		Height: spec.Size,
	}
	if spec.Nameable {
		b.PlayerName = strings.TrimSpace(name)
	}
	r.buildings = append(r.buildings, b)
	return b, nil
}

func (r *Registry) Move(id BuildingID, x, y int) (Building, error) {
	i := r.indexOf(id)
	if i < 0 {
		return Building{}, ErrNotFound.WithData("id", string(id))
	}
	b := r.buildings[i]
	b.X, b.Y = x, y
	if err := r.check(b.Rect(), id); err != nil {
		return Building{}, err
	}
	r.buildings[i] = b
	return b, nil
}

// Resize 保持左上角不动，只修改宽高。
func (r *Registry) Resize(id BuildingID, w, h int) (Building, error) {
	i := r.indexOf(id)
	if i < 0 {
		return Building{}, ErrNotFound.WithData("id", string(id))
	}
	b := r.buildings[i]
	spec, _ := r.catalog.Lookup(b.Type)
	if !spec.Resizable {
		return Building{}, ErrNotResizable.WithData("type", b.Type.String())
	}
	if w < 1 || h < 1 {
		return Building{}, ErrInvalidExtent.WithDataMap(map[string]any{"width": w, "height": h})
	}
	b.Width, b.Height = w, h
	if err := r.check(b.Rect(), id); err != nil {
		return Building{}, err
	}
	r.buildings[i] = b
	return b, nil
}

func (r *Registry) Delete(id BuildingID) (Building, error) {
	i := r.indexOf(id)
	if i < 0 {
		return Building{}, ErrNotFound.WithData("id", string(id))
	}
	b := r.buildings[i]
	r.buildings = append(r.buildings[:i:i], r.buildings[i+1:]...)
	return b, nil
}

func (r *Registry) Rename(id BuildingID, name string) (Building, error) {
	i := r.indexOf(id)
	if i < 0 {
		return Building{}, ErrNotFound.WithData("id", string(id))
	}
	b := r.buildings[i]
	spec, _ := r.catalog.Lookup(b.Type)
	if !spec.Nameable {
		return Building{}, ErrNotNameable.WithData("type", b.Type.String())
	}
	b.PlayerName = strings.TrimSpace(name)
	r.buildings[i] = b
	return b, nil
}

// ShiftAll 整体平移，要么全部移动，要么全部不动。
func (r *Registry) ShiftAll(dx, dy int) error {
	if !CanShiftAll(dx, dy, r.buildings, r.grid.GridSize) {
		return ErrCannotShift.WithDataMap(map[string]any{"dx": dx, "dy": dy})
	}
	for i := range r.buildings {
		r.buildings[i].X += dx
		r.buildings[i].Y += dy
	}
	return nil
}

func (r *Registry) SetGridSize(n int) error {
	if n < MinGridSize || n > MaxGridSize {
		return ErrInvalidGridSize.WithData("grid_size", n)
	}
	for _, b := range r.buildings {
		if !b.Rect().Within(n) {
			return ErrGridTooSmall.WithDataMap(map[string]any{"grid_size": n, "id": string(b.ID)})
		}
	}
	r.grid.GridSize = n
	return nil
}

func (r *Registry) SetCellSize(px float64) error {
	if px <= 0 {
		return ErrInvalidCellSize.WithData("cell_size", px)
	}
	r.grid.CellSize = px
	return nil
}

// Replace 用一组新建筑整体替换当前内容（加载路径）。
// 不合法或与前面已接受建筑重叠的条目被跳过并返回；数量上限在加载时不检查。
func (r *Registry) Replace(in []Building) []SkippedBuilding {
	accepted := make([]Building, 0, len(in))
	var skipped []SkippedBuilding
	for i, b := range in {
		spec, ok := r.catalog.Lookup(b.Type)
		if !ok {
			skipped = append(skipped, SkippedBuilding{Index: i, Building: b, Err: ErrUnknownType.WithData("type", b.Type.String())})
			continue
		}
		if b.Width < 1 || b.Height < 1 {
			skipped = append(skipped, SkippedBuilding{Index: i, Building: b, Err: ErrInvalidExtent})
			continue
		}
		if !spec.Resizable {
			b.Width, b.Height = spec.Size, spec.Size
		}
		if !spec.Nameable {
			b.PlayerName = ""
		}
		if !b.Rect().Within(r.grid.GridSize) {
			skipped = append(skipped, SkippedBuilding{Index: i, Building: b, Err: ErrOutOfBounds})
			continue
		}
		if Overlaps(b.Rect(), accepted, "") {
			skipped = append(skipped, SkippedBuilding{Index: i, Building: b, Err: ErrOverlap})
			continue
		}
		if b.ID == "" {
			b.ID = r.newID()
		}
		accepted = append(accepted, b)
	}
	r.buildings = accepted
	return skipped
}

func (r *Registry) check(rect Rect, exclude BuildingID) error {
	if !rect.Within(r.grid.GridSize) {
		return ErrOutOfBounds.WithDataMap(map[string]any{"x": rect.X, "y": rect.Y, "width": rect.W, "height": rect.H})
	}
	if Overlaps(rect, r.buildings, exclude) {
		return ErrOverlap.WithDataMap(map[string]any{"x": rect.X, "y": rect.Y})
	}
	return nil
}

func (r *Registry) indexOf(id BuildingID) int {
	for i := range r.buildings {
		if r.buildings[i].ID == id {
			return i
		}
	}
	return -1
}
