package domain

import "fmt"

// seqIDs 生成 b1, b2, ... 这样可预测的 id。
func seqIDs() func() BuildingID {
	n := 0
	return func() BuildingID {
		n++
		return BuildingID(fmt.Sprintf("b%d", n))
	}
}

func newTestRegistry(gridSize int) *Registry {
	r, err := NewRegistry(DefaultCatalog(), GridConfig{GridSize: gridSize, CellSize: DefaultCellSize}, WithIDGenerator(seqIDs()))
	if err != nil {
		panic(err)
	}
	return r
}

func assertNoOverlapWithin(snap []Building, gridSize int) error {
	for i := range snap {
		if !snap[i].Rect().Within(gridSize) {
			return fmt.Errorf("建筑 %s 越界: %+v", snap[i].ID, snap[i])
		}
		for j := i + 1; j < len(snap); j++ {
			if snap[i].Rect().Overlaps(snap[j].Rect()) {
				return fmt.Errorf("建筑 %s 与 %s 重叠", snap[i].ID, snap[j].ID)
			}
		}
	}
	return nil
}
