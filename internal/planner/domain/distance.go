package domain

import "math"

type CastleDistance struct {
	ID         BuildingID `json:"id"`
	PlayerName string     `json:"playerName,omitempty"`
	Distance   float64    `json:"distance"`
}

type DistanceReport struct {
	HellgatesPlaced bool             `json:"hellgatesPlaced"`
	Castles         []CastleDistance `json:"castles"`
}

func center(b Building) (float64, float64) {
	return float64(b.X) + float64(b.Width)/2, float64(b.Y) + float64(b.Height)/2
}

func firstOfType(buildings []Building, t BuildingType) (Building, bool) {
	for _, b := range buildings {
		if b.Type == t {
			return b, true
		}
	}
	return Building{}, false
}

// CastleDistances 计算每座城堡中心到第一个地狱之门中心的欧氏距离（单位：格）。
func CastleDistances(buildings []Building) DistanceReport {
	hg, ok := firstOfType(buildings, TypeHellgates)
	if !ok {
		return DistanceReport{}
	}
	hx, hy := center(hg)
	rep := DistanceReport{HellgatesPlaced: true}
	for _, b := range buildings {
		if b.Type != TypeCastle {
			continue
		}
		cx, cy := center(b)
		rep.Castles = append(rep.Castles, CastleDistance{
			ID:         b.ID,
			PlayerName: b.PlayerName,
			Distance:   math.Hypot(cx-hx, cy-hy),
		})
	}
	return rep
}

func AverageCastleDistance(buildings []Building) (float64, bool) {
	rep := CastleDistances(buildings)
	if !rep.HellgatesPlaced || len(rep.Castles) == 0 {
		return 0, false
	}
	var sum float64
	for _, c := range rep.Castles {
		sum += c.Distance
	}
	return sum / float64(len(rep.Castles)), true
}
