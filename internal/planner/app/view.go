package app

import (
	"AlliancePlanner/internal/planner/domain"
	"AlliancePlanner/internal/planner/interaction"
)

type DistanceView struct {
	domain.DistanceReport
	Average    float64 `json:"average"`
	HasAverage bool    `json:"hasAverage"`
}

// View 是渲染端需要的整块状态。
type View struct {
	Board     string              `json:"board"`
	Grid      domain.GridConfig   `json:"grid"`
	Buildings []domain.Building   `json:"buildings"`
	Selected  domain.BuildingID   `json:"selected,omitempty"`
	Rotated   bool                `json:"rotated"`
	Ghost     interaction.Ghost   `json:"ghost"`
	Session   string              `json:"session"`
	Distances *DistanceView       `json:"distances,omitempty"`
	Counts    map[string]TypeLeft `json:"counts"`
}

// TypeLeft 给工具栏用：已放置数量和上限，Limit<=0 表示不限。
type TypeLeft struct {
	Placed int `json:"placed"`
	Limit  int `json:"limit"`
}

func (b *Board) View() View {
	snap := b.reg.Snapshot()
	v := View{
		Board:     b.id,
		Grid:      b.reg.Grid(),
		Buildings: snap,
		Selected:  b.selected,
		Rotated:   b.rotated,
		Ghost:     b.ctl.Ghost(),
		Session:   interaction.KindNone.String(),
		Counts:    make(map[string]TypeLeft),
	}
	if s, ok := b.ctl.Active(); ok {
		v.Session = s.Kind.String()
	}
	cat := b.reg.Catalog()
	for _, t := range cat.Types() {
		spec, _ := cat.Lookup(t)
		v.Counts[t.String()] = TypeLeft{Placed: b.reg.CountOf(t), Limit: spec.Limit}
	}
	if b.showDistance {
		avg, ok := domain.AverageCastleDistance(snap)
		v.Distances = &DistanceView{
			DistanceReport: domain.CastleDistances(snap),
			Average:        avg,
			HasAverage:     ok,
		}
	}
	return v
}
