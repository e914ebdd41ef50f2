package model

import (
	"time"

	"AlliancePlanner/internal/planner/domain"
)

// LayoutDoc 是 mongodb 中的布局文档
type LayoutDoc struct {
	ID        string    `bson:"_id"`
	Payload   string    `bson:"payload"`
	GridSize  int       `bson:"grid_size"`
	CellSize  float64   `bson:"cell_size"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// LayoutRow 是 mysql 中的布局行
type LayoutRow struct {
	ID        string    `gorm:"column:id;type:varchar(64);primaryKey;not null;" json:"id"`
	Payload   string    `gorm:"column:payload;type:mediumtext;comment:分享串;not null;" json:"payload"`
	GridSize  int       `gorm:"column:grid_size;type:int UNSIGNED;comment:网格边长;not null;" json:"grid_size"`
	CellSize  float64   `gorm:"column:cell_size;type:double;comment:单元像素;not null;" json:"cell_size"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;not null;default:CURRENT_TIMESTAMP;" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp;not null;default:CURRENT_TIMESTAMP;" json:"updated_at"`
}

func (m *LayoutRow) TableName() string {
	return "planner_layout"
}

func LayoutToDoc(l domain.Layout) LayoutDoc {
	return LayoutDoc{
		ID:        l.ID,
		Payload:   l.Payload,
		GridSize:  l.GridSize,
		CellSize:  l.CellSize,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func DocToLayout(d LayoutDoc) domain.Layout {
	return domain.Layout{
		ID:        d.ID,
		Payload:   d.Payload,
		GridSize:  d.GridSize,
		CellSize:  d.CellSize,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func LayoutToRow(l domain.Layout) LayoutRow {
	return LayoutRow(LayoutToDoc(l))
}

func RowToLayout(r LayoutRow) domain.Layout {
	return DocToLayout(LayoutDoc(r))
}
