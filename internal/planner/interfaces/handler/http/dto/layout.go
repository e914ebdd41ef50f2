package dto

import (
	"time"

	"AlliancePlanner/internal/planner/domain"
)

type ShareReq struct {
	Base string `json:"base"`
}

type ShareResp struct {
	Locator string `json:"locator"`
}

type LocatorReq struct {
	Locator string `json:"locator" binding:"required"`
}

type PublishReq struct {
	Payload  string `json:"payload" binding:"required"`
	GridSize int    `json:"grid_size"`
}

type UpdateReq struct {
	Payload string `json:"payload" binding:"required"`
}

type LayoutResp struct {
	ID        string    `json:"id"`
	Payload   string    `json:"payload"`
	GridSize  int       `json:"grid_size"`
	CellSize  float64   `json:"cell_size,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewLayoutResp(l domain.Layout) LayoutResp {
	return LayoutResp{
		ID:        l.ID,
		Payload:   l.Payload,
		GridSize:  l.GridSize,
		CellSize:  l.CellSize,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

type DecodeResp struct {
	Format    string            `json:"format"`
	Buildings []domain.Building `json:"buildings"`
	Warnings  []string          `json:"warnings,omitempty"`
}
