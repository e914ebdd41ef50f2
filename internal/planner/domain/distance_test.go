package domain

import (
	"math"
	"testing"
)

func TestCastleDistances_中心到中心(t *testing.T) {
	bs := []Building{
		{ID: "hg", Type: TypeHellgates, X: 0, Y: 0, Width: 3, Height: 3},
		{ID: "c1", Type: TypeCastle, X: 3, Y: 4, Width: 2, Height: 2},
		{ID: "c2", Type: TypeCastle, X: 10, Y: 0, Width: 2, Height: 2},
	}
	rep := CastleDistances(bs)
	if !rep.HellgatesPlaced || len(rep.Castles) != 2 {
		t.Fatalf("报告不符: %+v", rep)
	}
	// (4,5) 到 (1.5,1.5)
	want := math.Hypot(2.5, 3.5)
	if math.Abs(rep.Castles[0].Distance-want) > 1e-9 {
		t.Fatalf("期望 %v, got=%v", want, rep.Castles[0].Distance)
	}
	avg, ok := AverageCastleDistance(bs)
	if !ok {
		t.Fatalf("期望有平均值")
	}
	wantAvg := (want + math.Hypot(9.5, 0.5)) / 2
	if math.Abs(avg-wantAvg) > 1e-9 {
		t.Fatalf("期望平均 %v, got=%v", wantAvg, avg)
	}
}

func TestAverageCastleDistance_缺少地狱之门(t *testing.T) {
	bs := []Building{{ID: "c1", Type: TypeCastle, X: 3, Y: 4, Width: 2, Height: 2}}
	if rep := CastleDistances(bs); rep.HellgatesPlaced {
		t.Fatalf("期望 HellgatesPlaced=false")
	}
	if _, ok := AverageCastleDistance(bs); ok {
		t.Fatalf("期望 ok=false")
	}
	if _, ok := AverageCastleDistance([]Building{{Type: TypeHellgates, Width: 3, Height: 3}}); ok {
		t.Fatalf("没有城堡时期望 ok=false")
	}
}
