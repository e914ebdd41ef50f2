package domain

import "AlliancePlanner/modules/kit/errx"

type Code = errx.Code

const (
	CodeOverlap         Code = "PLACEMENT_OVERLAP"
	CodeOutOfBounds     Code = "PLACEMENT_OUT_OF_BOUNDS"
	CodeLimitReached    Code = "BUILDING_LIMIT_REACHED"
	CodeUnknownType     Code = "BUILDING_UNKNOWN_TYPE"
	CodeNotFound        Code = "BUILDING_NOT_FOUND"
	CodeNotResizable    Code = "BUILDING_NOT_RESIZABLE"
	CodeNotNameable     Code = "BUILDING_NOT_NAMEABLE"
	CodeInvalidExtent   Code = "BUILDING_INVALID_EXTENT"
	CodeInvalidGridSize Code = "GRID_SIZE_INVALID"
	CodeGridTooSmall    Code = "GRID_TOO_SMALL"
	CodeInvalidCellSize Code = "GRID_CELL_SIZE_INVALID"
	CodeCannotShift     Code = "SHIFT_OUT_OF_BOUNDS"
)

// 领域错误全部是业务类：拒绝变更、状态保持不变。
var (
	ErrOverlap         = errx.NewBiz(CodeOverlap, "建筑不能重叠")
	ErrOutOfBounds     = errx.NewBiz(CodeOutOfBounds, "超出网格范围")
	ErrLimitReached    = errx.NewBiz(CodeLimitReached, "该类型建筑已达上限")
	ErrUnknownType     = errx.NewBiz(CodeUnknownType, "未知建筑类型")
	ErrNotFound        = errx.NewBiz(CodeNotFound, "建筑不存在")
	ErrNotResizable    = errx.NewBiz(CodeNotResizable, "该建筑不可调整大小")
	ErrNotNameable     = errx.NewBiz(CodeNotNameable, "该建筑不可命名")
	ErrInvalidExtent   = errx.NewBiz(CodeInvalidExtent, "建筑尺寸至少为 1x1")
	ErrInvalidGridSize = errx.NewBiz(CodeInvalidGridSize, "网格尺寸必须在 10 到 100 之间")
	ErrGridTooSmall    = errx.NewBiz(CodeGridTooSmall, "网格过小，已有建筑放不下")
	ErrInvalidCellSize = errx.NewBiz(CodeInvalidCellSize, "格子尺寸必须大于 0")
	ErrCannotShift     = errx.NewBiz(CodeCannotShift, "无法继续平移建筑")
)

const CodeLayoutNotFound Code = "LAYOUT_NOT_FOUND"

// ErrLayoutNotFound 由存储实现返回，表示 id 不存在。
var ErrLayoutNotFound = errx.NewBiz(CodeLayoutNotFound, "布局不存在")
