package dto

import (
	"fmt"
	"strings"

	"AlliancePlanner/internal/planner/domain"
	"AlliancePlanner/internal/planner/interaction"
)

type JoinReq struct {
	Board string `json:"board"`
}

// BeginReq 用于 beginMove / beginResize，坐标是网格容器内的像素
type BeginReq struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Modality string  `json:"modality"`
}

type BeginPlaceReq struct {
	Type     string `json:"type"`
	Source   string `json:"source"` // drag | select
	Modality string `json:"modality"`
}

// PointerReq 走 mapstructure 宽松解码，前端可能把坐标发成字符串
type PointerReq struct {
	Kind     string  `mapstructure:"kind"`
	X        float64 `mapstructure:"x"`
	Y        float64 `mapstructure:"y"`
	Modality string  `mapstructure:"modality"`
}

type IDReq struct {
	ID string `json:"id"`
}

type RenameReq struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ShiftReq struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

type GridSizeReq struct {
	Size int `json:"size"`
}

type PinchReq struct {
	InitialCell     float64 `json:"initialCell"`
	InitialDistance float64 `json:"initialDistance"`
	Distance        float64 `json:"distance"`
}

type ShareReq struct {
	Base string `json:"base"`
}

type ShareResp struct {
	Locator string `json:"locator"`
}

type LoadReq struct {
	Locator string `json:"locator"`
}

type ToggleResp struct {
	On bool `json:"on"`
}

type PinchResp struct {
	Applied bool `json:"applied"`
}

type CancelResp struct {
	Cancelled bool `json:"cancelled"`
}

// ParseModality 空串按鼠标处理
func ParseModality(s string) (interaction.Modality, error) {
	switch strings.ToLower(s) {
	case "", "mouse":
		return interaction.ModalityMouse, nil
	case "touch":
		return interaction.ModalityTouch, nil
	}
	return 0, fmt.Errorf("unknown modality %q", s)
}

func ParseEventKind(s string) (interaction.EventKind, error) {
	switch strings.ToLower(s) {
	case "move":
		return interaction.EventMove, nil
	case "release", "up":
		return interaction.EventRelease, nil
	case "leave":
		return interaction.EventLeave, nil
	case "touchcancel", "cancel":
		return interaction.EventTouchCancel, nil
	}
	return 0, fmt.Errorf("unknown pointer kind %q", s)
}

func ParseSource(s string) (interaction.Source, error) {
	switch strings.ToLower(s) {
	case "", "drag":
		return interaction.SourceToolbarDrag, nil
	case "select":
		return interaction.SourceToolSelect, nil
	}
	return 0, fmt.Errorf("unknown source %q", s)
}

// ParseType 先按全名再按短码解析
func ParseType(s string) (domain.BuildingType, error) {
	if t, ok := domain.ParseBuildingType(s); ok {
		return t, nil
	}
	if t, ok := domain.BuildingTypeFromCode(s); ok {
		return t, nil
	}
	return domain.TypeUnknown, domain.ErrUnknownType.WithData("type", s)
}

func (r PointerReq) Event() (interaction.PointerEvent, error) {
	kind, err := ParseEventKind(r.Kind)
	if err != nil {
		return interaction.PointerEvent{}, err
	}
	m, err := ParseModality(r.Modality)
	if err != nil {
		return interaction.PointerEvent{}, err
	}
	return interaction.PointerEvent{Kind: kind, X: r.X, Y: r.Y, Modality: m}, nil
}
