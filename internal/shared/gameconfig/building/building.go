package building

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"AlliancePlanner/internal/planner/domain"
)

// Cfg 是 buildings.yml 中的一条类型配置
type Cfg struct {
	Type         string `yaml:"type"`
	Code         string `yaml:"code"`
	Icon         string `yaml:"icon"`
	Color        string `yaml:"color"`
	Size         int    `yaml:"size"`
	AreaSize     int    `yaml:"area_size"`
	Limit        int    `yaml:"limit"` // 0 表示不限
	Resizable    bool   `yaml:"resizable"`
	Nameable     bool   `yaml:"nameable"`
	Category     string `yaml:"category"`
	NameTemplate string `yaml:"name_template"`
}

type buildingConf struct {
	Title string `yaml:"title"`
	List  []Cfg  `yaml:"list"`
}

// Load 读取类型表。文件不存在时回退到内置表。
func Load(path string) (*domain.Catalog, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.DefaultCatalog(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load building config failed: read %q: %w", path, err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*domain.Catalog, error) {
	var conf buildingConf
	if err := yaml.Unmarshal(raw, &conf); err != nil {
		return nil, fmt.Errorf("load building config failed: unmarshal: %w", err)
	}

	specs := make([]domain.TypeSpec, 0, len(conf.List))
	for i, c := range conf.List {
		t, ok := domain.ParseBuildingType(c.Type)
		if !ok {
			return nil, fmt.Errorf("load building config failed: list[%d] unknown type %q", i, c.Type)
		}
		// 短码固定在枚举上，配置里只做校验
		if c.Code != "" && c.Code != t.Code() {
			return nil, fmt.Errorf("load building config failed: %s code %q, expected %q", t, c.Code, t.Code())
		}
		specs = append(specs, domain.TypeSpec{
			Type:         t,
			Size:         c.Size,
			AreaSize:     c.AreaSize,
			Limit:        c.Limit,
			Resizable:    c.Resizable,
			Nameable:     c.Nameable,
			Category:     domain.Category(c.Category),
			Icon:         c.Icon,
			Color:        c.Color,
			NameTemplate: c.NameTemplate,
		})
	}
	return domain.NewCatalog(specs...)
}
