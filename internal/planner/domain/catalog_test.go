package domain

import "testing"

func TestDefaultCatalog_能力表(t *testing.T) {
	c := DefaultCatalog()
	if len(c.Types()) != 8 {
		t.Fatalf("期望 8 种类型, got=%d", len(c.Types()))
	}
	f, _ := c.Lookup(TypeFortress)
	if f.Size != 3 || f.AreaSize != 15 || f.Limit != 1 || f.AreaOffset() != 6 {
		t.Fatalf("fortress 能力不符: %+v", f)
	}
	o, _ := c.Lookup(TypeOutpost)
	if o.AreaOffset() != 4 || o.Limit != 5 {
		t.Fatalf("outpost 能力不符: %+v", o)
	}
	d, _ := c.Lookup(TypeDeadzone)
	if !d.Resizable || !d.Nameable || !d.Unlimited() {
		t.Fatalf("deadzone 能力不符: %+v", d)
	}
}

func TestNewCatalog_校验(t *testing.T) {
	if _, err := NewCatalog(); err == nil {
		t.Fatalf("期望空表报错")
	}
	if _, err := NewCatalog(TypeSpec{Type: TypeFarm, Size: 0}); err == nil {
		t.Fatalf("期望 size=0 报错")
	}
	if _, err := NewCatalog(TypeSpec{Type: TypeFarm, Size: 3, AreaSize: 2}); err == nil {
		t.Fatalf("期望作用范围小于占地报错")
	}
	if _, err := NewCatalog(TypeSpec{Type: TypeFarm, Size: 2}, TypeSpec{Type: TypeFarm, Size: 2}); err == nil {
		t.Fatalf("期望重复类型报错")
	}
}

func TestBuildingType_短码和全名(t *testing.T) {
	for _, bt := range AllTypes() {
		got, ok := BuildingTypeFromCode(bt.Code())
		if !ok || got != bt {
			t.Fatalf("短码 %q 解析失败", bt.Code())
		}
		got, ok = ParseBuildingType(bt.String())
		if !ok || got != bt {
			t.Fatalf("全名 %q 解析失败", bt.String())
		}
	}
	if _, ok := BuildingTypeFromCode("zz"); ok {
		t.Fatalf("期望未知短码失败")
	}
	var bt BuildingType
	if err := bt.UnmarshalText([]byte("Castle")); err != nil || bt != TypeCastle {
		t.Fatalf("期望大小写不敏感, got=%v err=%v", bt, err)
	}
}
