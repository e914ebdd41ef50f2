package domain

import "time"

// Layout 是存储侧的布局快照，Payload 是分享格式的编码串。
// 已发布布局用 snowflake id，board 自身状态用 board id。
type Layout struct {
	ID        string
	Payload   string
	GridSize  int
	CellSize  float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
