package domain

import "strings"

// BuildingType 是建筑类型的枚举，能力信息统一放在 TypeSpec 里。
type BuildingType uint8

const (
	TypeUnknown BuildingType = iota
	TypeFortress
	TypeOutpost
	TypeHellgates
	TypeHospital
	TypeFarm
	TypeWarehouse
	TypeCastle
	TypeDeadzone
)

var typeNames = [...]string{
	TypeUnknown:   "",
	TypeFortress:  "fortress",
	TypeOutpost:   "outpost",
	TypeHellgates: "hellgates",
	TypeHospital:  "hospital",
	TypeFarm:      "farm",
	TypeWarehouse: "warehouse",
	TypeCastle:    "castle",
	TypeDeadzone:  "deadzone",
}

// 分享链接里使用的短类型码。
var typeCodes = [...]string{
	TypeUnknown:   "",
	TypeFortress:  "f",
	TypeOutpost:   "o",
	TypeHellgates: "hg",
	TypeHospital:  "hp",
	TypeFarm:      "fm",
	TypeWarehouse: "wh",
	TypeCastle:    "c",
	TypeDeadzone:  "d",
}

// AllTypes 按工具栏顺序返回全部已知类型。
func AllTypes() []BuildingType {
	return []BuildingType{
		TypeFortress, TypeOutpost, TypeHellgates, TypeHospital,
		TypeFarm, TypeWarehouse, TypeCastle, TypeDeadzone,
	}
}

func (t BuildingType) String() string {
	if int(t) >= len(typeNames) {
		return ""
	}
	return typeNames[t]
}

// Code 返回短类型码，未知类型为空串。
func (t BuildingType) Code() string {
	if int(t) >= len(typeCodes) {
		return ""
	}
	return typeCodes[t]
}

func (t BuildingType) Known() bool {
	return t > TypeUnknown && int(t) < len(typeNames)
}

// ParseBuildingType 按全名解析（大小写不敏感）。
func ParseBuildingType(name string) (BuildingType, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return TypeUnknown, false
	}
	for i, n := range typeNames {
		if n == name {
			return BuildingType(i), true
		}
	}
	return TypeUnknown, false
}

// BuildingTypeFromCode 按短类型码解析。
func BuildingTypeFromCode(code string) (BuildingType, bool) {
	if code == "" {
		return TypeUnknown, false
	}
	for i, c := range typeCodes {
		if c == code {
			return BuildingType(i), true
		}
	}
	return TypeUnknown, false
}

func (t BuildingType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *BuildingType) UnmarshalText(b []byte) error {
	parsed, ok := ParseBuildingType(string(b))
	if !ok {
		return ErrUnknownType.WithData("type", string(b))
	}
	*t = parsed
	return nil
}
