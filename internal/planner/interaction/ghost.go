package interaction

import "AlliancePlanner/internal/planner/domain"

// Ghost 是拖拽过程中的预览，只用于反馈，不是权威状态。零值表示隐藏。
type Ghost struct {
	Visible   bool                `json:"visible"`
	Kind      SessionKind         `json:"kind"`
	Type      domain.BuildingType `json:"type"`
	SubjectID domain.BuildingID   `json:"subjectId,omitempty"`
	X         int                 `json:"x"`
	Y         int                 `json:"y"`
	Width     int                 `json:"width"`
	Height    int                 `json:"height"`
	AreaSize  int                 `json:"areaSize,omitempty"`
	AreaX     int                 `json:"areaX,omitempty"`
	AreaY     int                 `json:"areaY,omitempty"`
	Valid     bool                `json:"valid"`
}

func (k SessionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func ghostFor(s *Session, catalog *domain.Catalog) Ghost {
	if s == nil {
		return Ghost{}
	}
	var rect domain.Rect
	switch s.Kind {
	case KindMove, KindResize:
		rect = s.LastValid
	case KindPlace:
		if !s.InsideGrid {
			return Ghost{}
		}
		rect = s.Candidate
	default:
		return Ghost{}
	}
	g := Ghost{
		Visible:   true,
		Kind:      s.Kind,
		Type:      s.PendingType,
		SubjectID: s.SubjectID,
		X:         rect.X,
		Y:         rect.Y,
		Width:     rect.W,
		Height:    rect.H,
		Valid:     s.Valid,
	}
	if spec, ok := catalog.Lookup(s.PendingType); ok && spec.AreaSize > 0 {
		off := spec.AreaOffset()
		g.AreaSize = spec.AreaSize
		g.AreaX = rect.X - off
		g.AreaY = rect.Y - off
	}
	return g
}
