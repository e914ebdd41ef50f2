package domain

import "math"

const (
	MinGridSize     = 10
	MaxGridSize     = 100
	DefaultGridSize = 50

	DefaultCellSize = 24.0
	MinCellSize     = 10.0
	MaxCellSize     = 60.0

	// pinch 缩放小于该阈值时不触发重绘
	pinchThreshold = 0.5
)

type GridConfig struct {
	GridSize int     `json:"gridSize"`
	CellSize float64 `json:"cellSize"`
}

func DefaultGridConfig() GridConfig {
	return GridConfig{GridSize: DefaultGridSize, CellSize: DefaultCellSize}
}

func (g GridConfig) Validate() error {
	if g.GridSize < MinGridSize || g.GridSize > MaxGridSize {
		return ErrInvalidGridSize.WithData("grid_size", g.GridSize)
	}
	if g.CellSize <= 0 {
		return ErrInvalidCellSize.WithData("cell_size", g.CellSize)
	}
	return nil
}

// PixelSpan 是整张网格的像素边长。
func (g GridConfig) PixelSpan() float64 {
	return float64(g.GridSize) * g.CellSize
}

// ContainsPixel 判断网格内像素坐标是否落在网格上。
func (g GridConfig) ContainsPixel(px, py float64) bool {
	span := g.PixelSpan()
	return px >= 0 && py >= 0 && px < span && py < span
}

// PixelToCell 用 floor 把绝对像素坐标换算成格子，用于落点/点击放置。
func PixelToCell(px, py, cellSize float64) (int, int) {
	if cellSize <= 0 {
		return 0, 0
	}
	return int(math.Floor(px / cellSize)), int(math.Floor(py / cellSize))
}

func CellToPixel(cx, cy int, cellSize float64) (float64, float64) {
	return float64(cx) * cellSize, float64(cy) * cellSize
}

// ClampFootprint 把左上角夹到使 w×h 矩形留在网格内的位置。
func ClampFootprint(x, y, w, h, gridSize int) (int, int) {
	return clamp(x, 0, gridSize-w), clamp(y, 0, gridSize-h)
}

// SnapDelta 把拖拽累计位移换算成格数：四舍五入，.5 向上。
func SnapDelta(deltaPx, cellSize float64) int {
	if cellSize <= 0 {
		return 0
	}
	return int(math.Floor(deltaPx/cellSize + 0.5))
}

func ClampCellSize(px float64) float64 {
	return math.Max(MinCellSize, math.Min(MaxCellSize, px))
}

// PinchCellSize 根据双指距离变化计算新的格子尺寸；变化不足阈值时 changed=false。
func PinchCellSize(current, initialCell, initialDistance, currentDistance float64) (size float64, changed bool) {
	if initialDistance <= 0 || currentDistance <= 0 {
		return current, false
	}
	size = ClampCellSize(initialCell * currentDistance / initialDistance)
	if math.Abs(size-current) <= pinchThreshold {
		return current, false
	}
	return size, true
}

// clamp 在 hi < lo 时以 lo 为准（矩形比网格还大时贴左上角）。
func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
