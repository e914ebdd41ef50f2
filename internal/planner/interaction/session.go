package interaction

import "AlliancePlanner/internal/planner/domain"

type SessionKind uint8

const (
	KindNone SessionKind = iota
	KindMove
	KindResize
	KindPlace
)

func (k SessionKind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindResize:
		return "resize"
	case KindPlace:
		return "place"
	default:
		return "none"
	}
}

// Source 区分新建筑的来源：桌面工具栏拖拽，或移动端先选工具再点网格。
type Source uint8

const (
	SourceNone Source = iota
	SourceToolbarDrag
	SourceToolSelect
)

// Session 是一次拖拽手势的全部状态。构造时挂监听，结束时全部撤掉。
type Session struct {
	Kind        SessionKind
	SubjectID   domain.BuildingID
	PendingType domain.BuildingType
	Source      Source
	Modality    Modality

	StartX, StartY float64
	Origin         domain.Rect
	LastValid      domain.Rect
	Candidate      domain.Rect
	Valid          bool
	// PlaceNew 时指针是否在网格上
	InsideGrid bool

	handles []Handle
}

func (s *Session) sameAs(kind SessionKind, id domain.BuildingID, t domain.BuildingType) bool {
	if s == nil || s.Kind != kind {
		return false
	}
	if kind == KindPlace {
		return s.PendingType == t
	}
	return s.SubjectID == id
}

func (s *Session) listen(bus *Bus, kind EventKind, fn func(PointerEvent)) {
	s.handles = append(s.handles, bus.Subscribe(kind, fn))
}

func (s *Session) close() {
	for _, h := range s.handles {
		h.Remove()
	}
	s.handles = nil
}
