package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type Category string

const (
	CategoryAlliance Category = "alliance"
	CategoryPlayer   Category = "player"
	CategorySpecial  Category = "special"
)

// TypeSpec 是某个建筑类型的静态能力记录，由配置侧提供，核心只读。
type TypeSpec struct {
	Type      BuildingType
	Size      int
	AreaSize  int
	Limit     int // <=0 表示不限
	Resizable bool
	Nameable  bool
	Category  Category
	Icon      string
	Color     string
	// NameTemplate 中的 '#' 会被替换为同类数量+1，例如 "Castle #"。
	NameTemplate string
}

func (s TypeSpec) Unlimited() bool {
	return s.Limit <= 0
}

// AreaOffset 是作用范围相对占地左上角向外扩的格数。
func (s TypeSpec) AreaOffset() int {
	if s.AreaSize <= 0 {
		return 0
	}
	return (s.AreaSize - s.Size) / 2
}

func (s TypeSpec) validate() error {
	switch {
	case !s.Type.Known():
		return fmt.Errorf("unknown building type %d", s.Type)
	case s.Size < 1:
		return fmt.Errorf("%s: size must be >= 1, got %d", s.Type, s.Size)
	case s.AreaSize != 0 && s.AreaSize < s.Size:
		return fmt.Errorf("%s: area size %d smaller than footprint %d", s.Type, s.AreaSize, s.Size)
	}
	return nil
}

// Catalog 是类型 -> 能力记录的只读表。
type Catalog struct {
	specs map[BuildingType]TypeSpec
}

func NewCatalog(specs ...TypeSpec) (*Catalog, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("catalog: at least one building type is required")
	}
	c := &Catalog{specs: make(map[BuildingType]TypeSpec, len(specs))}
	for _, s := range specs {
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		if _, dup := c.specs[s.Type]; dup {
			return nil, fmt.Errorf("catalog: duplicate type %s", s.Type)
		}
		c.specs[s.Type] = s
	}
	return c, nil
}

// DefaultCatalog 是内置的类型表，和 configs/buildings.yml 保持一致。
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(
		TypeSpec{Type: TypeFortress, Size: 3, AreaSize: 15, Limit: 1, Category: CategoryAlliance, Icon: "🏰"},
		TypeSpec{Type: TypeOutpost, Size: 2, AreaSize: 10, Limit: 5, Category: CategoryAlliance, Icon: "🚩"},
		TypeSpec{Type: TypeHellgates, Size: 3, Limit: 1, Category: CategoryAlliance, Icon: "👹"},
		TypeSpec{Type: TypeHospital, Size: 2, Limit: 1, Category: CategoryAlliance, Icon: "🏥"},
		TypeSpec{Type: TypeFarm, Size: 2, Limit: 1, Category: CategoryAlliance, Icon: "🌾"},
		TypeSpec{Type: TypeWarehouse, Size: 2, Limit: 1, Category: CategoryAlliance, Icon: "🏭"},
		TypeSpec{Type: TypeCastle, Size: 2, Limit: -1, Nameable: true, Category: CategoryPlayer, Icon: "🏯", NameTemplate: "Castle #"},
		TypeSpec{Type: TypeDeadzone, Size: 1, Limit: -1, Resizable: true, Nameable: true, Category: CategorySpecial, Icon: "⚠️", Color: "rgba(144, 238, 144, 0.5)"},
	)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Lookup(t BuildingType) (TypeSpec, bool) {
	if c == nil {
		return TypeSpec{}, false
	}
	s, ok := c.specs[t]
	return s, ok
}

// Types 按枚举顺序返回表中的类型。
func (c *Catalog) Types() []BuildingType {
	out := make([]BuildingType, 0, len(c.specs))
	for t := range c.specs {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DefaultName 生成新建筑的默认名称，existing 为已有同类数量。
func (s TypeSpec) DefaultName(existing int) string {
	if !s.Nameable || s.NameTemplate == "" {
		return ""
	}
	n := strconv.Itoa(existing + 1)
	if strings.Contains(s.NameTemplate, "#") {
		return strings.TrimSpace(strings.Replace(s.NameTemplate, "#", n, 1))
	}
	return strings.TrimSpace(s.NameTemplate + " " + n)
}
