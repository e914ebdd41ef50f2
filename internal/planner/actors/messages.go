package actors

import (
	"AlliancePlanner/internal/planner/app"
	"AlliancePlanner/internal/planner/domain"
	"AlliancePlanner/internal/planner/interaction"
)

// BoardMessage 是所有发往 board actor 的请求，manager 按 BoardID 路由。
type BoardMessage interface {
	BoardID() string
}

type BoardBase struct {
	Board string
}

func (b BoardBase) BoardID() string {
	return b.Board
}

// Reply 是 board actor 的统一应答。
type Reply struct {
	Data any
	Err  error
}

type Join struct {
	BoardBase
	ConnID string
	Sink   app.EventSink
}

type Leave struct {
	BoardBase
	ConnID string
}

type BeginMove struct {
	BoardBase
	ID       domain.BuildingID
	X, Y     float64
	Modality interaction.Modality
}

type BeginResize struct {
	BoardBase
	ID       domain.BuildingID
	X, Y     float64
	Modality interaction.Modality
}

type BeginPlace struct {
	BoardBase
	Type     domain.BuildingType
	Source   interaction.Source
	Modality interaction.Modality
}

type Pointer struct {
	BoardBase
	Event interaction.PointerEvent
}

type Cancel struct {
	BoardBase
}

type Select struct {
	BoardBase
	ID domain.BuildingID
}

type Delete struct {
	BoardBase
	ID domain.BuildingID
}

type Rename struct {
	BoardBase
	ID   domain.BuildingID
	Name string
}

type Shift struct {
	BoardBase
	DX, DY int
}

type GridSize struct {
	BoardBase
	Size int
}

type Pinch struct {
	BoardBase
	InitialCell     float64
	InitialDistance float64
	Distance        float64
}

type Rotate struct {
	BoardBase
}

type Distance struct {
	BoardBase
}

type Share struct {
	BoardBase
	Base string
}

type Load struct {
	BoardBase
	Locator string
}

type GetView struct {
	BoardBase
}
