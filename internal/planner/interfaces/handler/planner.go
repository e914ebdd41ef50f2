package handler

import (
	"context"

	"AlliancePlanner/internal/planner/actors"
	"AlliancePlanner/internal/planner/app"
	"AlliancePlanner/internal/planner/domain"
	"AlliancePlanner/modules/kit/logx"
)

// BoardAsker 把请求投递给 board actor 并等待应答
type BoardAsker interface {
	Ask(ctx context.Context, msg actors.BoardMessage) (any, error)
}

// Planner 聚合接口层需要的全部应用服务，http/ws/rpc 共用。
type Planner struct {
	Boards    BoardAsker
	Layouts   *app.LayoutService
	Catalog   *domain.Catalog
	ShareBase string
	Log       logx.Logger
}

func NewPlanner(boards BoardAsker, layouts *app.LayoutService, catalog *domain.Catalog, shareBase string, log logx.Logger) *Planner {
	return &Planner{
		Boards:    boards,
		Layouts:   layouts,
		Catalog:   catalog,
		ShareBase: shareBase,
		Log:       logx.OrNop(log),
	}
}

// CatalogItem 是工具栏展示的一条类型信息
type CatalogItem struct {
	Type      domain.BuildingType `json:"type"`
	Code      string              `json:"code"`
	Icon      string              `json:"icon"`
	Color     string              `json:"color,omitempty"`
	Size      int                 `json:"size"`
	AreaSize  int                 `json:"areaSize"`
	Limit     int                 `json:"limit"`
	Resizable bool                `json:"resizable"`
	Nameable  bool                `json:"nameable"`
	Category  domain.Category     `json:"category"`
}

func (p *Planner) CatalogItems() []CatalogItem {
	types := p.Catalog.Types()
	out := make([]CatalogItem, 0, len(types))
	for _, t := range types {
		s, _ := p.Catalog.Lookup(t)
		limit := s.Limit
		if s.Unlimited() {
			limit = 0
		}
		out = append(out, CatalogItem{
			Type:      t,
			Code:      t.Code(),
			Icon:      s.Icon,
			Color:     s.Color,
			Size:      s.Size,
			AreaSize:  s.AreaSize,
			Limit:     limit,
			Resizable: s.Resizable,
			Nameable:  s.Nameable,
			Category:  s.Category,
		})
	}
	return out
}

// View 读取 board 视图
func (p *Planner) View(ctx context.Context, board string) (app.View, error) {
	res, err := p.Boards.Ask(ctx, &actors.GetView{BoardBase: actors.BoardBase{Board: board}})
	if err != nil {
		return app.View{}, err
	}
	return as[app.View](res)
}

// Share 生成分享链接，base 为空时使用配置的地址
func (p *Planner) Share(ctx context.Context, board, base string) (string, error) {
	if base == "" {
		base = p.ShareBase
	}
	res, err := p.Boards.Ask(ctx, &actors.Share{BoardBase: actors.BoardBase{Board: board}, Base: base})
	if err != nil {
		return "", err
	}
	return as[string](res)
}

func (p *Planner) Load(ctx context.Context, board, locator string) (app.LoadReport, error) {
	res, err := p.Boards.Ask(ctx, &actors.Load{BoardBase: actors.BoardBase{Board: board}, Locator: locator})
	if err != nil {
		return app.LoadReport{}, err
	}
	return as[app.LoadReport](res)
}

// as 把 actor 应答断言成具体类型，类型不符视为内部错误
func as[T any](res any) (T, error) {
	v, ok := res.(T)
	if !ok {
		var zero T
		return zero, app.ErrInternalServer.WithData("reply", res)
	}
	return v, nil
}
