package domain

// 放置判定层：只读，不修改任何建筑。

// Overlaps 判断候选矩形是否与除 exclude 之外的任一建筑相交。
func Overlaps(candidate Rect, buildings []Building, exclude BuildingID) bool {
	for _, b := range buildings {
		if exclude != "" && b.ID == exclude {
			continue
		}
		if candidate.Overlaps(b.Rect()) {
			return true
		}
	}
	return false
}

func CanPlace(candidate Rect, buildings []Building, exclude BuildingID, gridSize int) bool {
	return candidate.Within(gridSize) && !Overlaps(candidate, buildings, exclude)
}

// CanShiftAll 只检查平移后是否越界；整体平移不改变相对位置，无需再查重叠。
// 空集合返回 false，整体平移没有可移动的对象。
func CanShiftAll(dx, dy int, buildings []Building, gridSize int) bool {
	if len(buildings) == 0 {
		return false
	}
	for _, b := range buildings {
		if !b.Rect().Translate(dx, dy).Within(gridSize) {
			return false
		}
	}
	return true
}
