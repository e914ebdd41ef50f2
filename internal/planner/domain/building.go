package domain

// BuildingID 是会话内的不透明标识，不进入分享格式。
type BuildingID string

type Building struct {
	ID         BuildingID   `json:"id"`
	Type       BuildingType `json:"type"`
	X          int          `json:"x"`
	Y          int          `json:"y"`
	Width      int          `json:"width"`
	Height     int          `json:"height"`
	PlayerName string       `json:"playerName,omitempty"`
}

func (b Building) Rect() Rect {
	return Rect{X: b.X, Y: b.Y, W: b.Width, H: b.Height}
}

// Rect 是格子坐标下的轴对齐矩形。
type Rect struct {
	X, Y, W, H int
}

// Overlaps 使用半开区间判断，边缘相接不算重叠。
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X &&
		r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Within 判断矩形是否完整落在 [0,gridSize)² 内。
func (r Rect) Within(gridSize int) bool {
	return r.W >= 1 && r.H >= 1 &&
		r.X >= 0 && r.Y >= 0 &&
		r.X+r.W <= gridSize && r.Y+r.H <= gridSize
}

func (r Rect) Translate(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}
