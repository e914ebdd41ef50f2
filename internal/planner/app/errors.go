package app

import "AlliancePlanner/modules/kit/errx"

// Code 表示应用层错误码。
type Code = errx.Code

const (
	CodeEditForbidden  Code = "LAYOUT_EDIT_FORBIDDEN"
	CodeInvalidLayout  Code = "LAYOUT_INVALID"
	CodeBoardNotFound  Code = "BOARD_NOT_FOUND"
	CodeInternalServer Code = errx.CodeInternal
	CodeUnavailable    Code = errx.CodeUnavailable
)

type Error = errx.Error

// 哨兵错误：通过 WithData/WithCause 派生新对象使用。
var (
	ErrEditForbidden  = errx.NewBiz(CodeEditForbidden, "没有编辑该布局的权限")
	ErrInvalidLayout  = errx.NewBiz(CodeInvalidLayout, "布局数据无效")
	ErrInternalServer = errx.ErrInternal
	ErrUnavailable    = errx.ErrUnavailable
)
