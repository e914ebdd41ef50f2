package codec

import "AlliancePlanner/modules/kit/errx"

const (
	CodeLayoutCorrupted errx.Code = "LAYOUT_CORRUPTED"
	CodeEncodeFailed    errx.Code = "LAYOUT_ENCODE_FAILED"
)

var (
	// ErrLayoutCorrupted 所有格式都解析失败，cause 里是各格式的错误。
	ErrLayoutCorrupted = errx.NewBiz(CodeLayoutCorrupted, "布局数据已损坏，无法加载")
	ErrEncodeFailed    = errx.NewSys(CodeEncodeFailed, "布局编码失败")
)
