package app

import (
	"context"

	"AlliancePlanner/internal/planner/domain"
)

// LayoutRepository 保存布局快照。不存在时 Load 返回 domain.ErrLayoutNotFound。
type LayoutRepository interface {
	Load(ctx context.Context, id string) (domain.Layout, error)
	Save(ctx context.Context, l domain.Layout) error
}

// Prefs 是本地用户偏好（网格尺寸）。
type Prefs interface {
	GridSize() (int, bool)
	SaveGridSize(n int) error
}

// EventSink 接收 board 事件，生产环境推送到 websocket。
type EventSink interface {
	Push(ev Event)
}

type Event struct {
	Name string `json:"name"`
	Data any    `json:"data,omitempty"`
}

// 对外推送的事件名
const (
	EventCreated     = "buildingCreated"
	EventMoved       = "buildingMoved"
	EventResized     = "buildingResized"
	EventDeleted     = "buildingDeleted"
	EventRenamed     = "buildingRenamed"
	EventGhost       = "ghost"
	EventRejected    = "rejected"
	EventViewChanged = "viewChanged"
)

type IDGenerator func() (int64, error)

type TokenIssuer func(layoutID string) (string, error)

// TokenVerifier 校验令牌并返回其中的布局 id。
type TokenVerifier func(token string) (string, error)
