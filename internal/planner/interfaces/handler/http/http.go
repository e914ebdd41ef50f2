package http

import (
	"context"
	nethttp "net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"AlliancePlanner/internal/planner/interfaces/handler"
	"AlliancePlanner/internal/planner/interfaces/handler/http/dto"
	"AlliancePlanner/internal/shared/transport"
	"AlliancePlanner/internal/shared/transport/http/middleware"
)

type HttpHandler struct {
	planner *handler.Planner
}

func NewHttpHandler(p *handler.Planner) *HttpHandler {
	return &HttpHandler{planner: p}
}

func (h *HttpHandler) RegisterRoutes(group *gin.RouterGroup) {
	api := group.Group("/api")
	api.GET("/catalog", h.Catalog)

	boards := api.Group("/boards")
	boards.GET("/:board", h.View)
	boards.POST("/:board/share", h.Share)
	boards.POST("/:board/load", h.Load)

	layouts := api.Group("/layouts")
	layouts.POST("", h.Publish)
	layouts.GET("/:id", h.GetLayout)
	layouts.PUT("/:id", h.UpdateLayout)

	api.POST("/codec/decode", h.Decode)
}

func (h *HttpHandler) Catalog(c *gin.Context) {
	h.ok(c, h.planner.CatalogItems())
}

func (h *HttpHandler) View(c *gin.Context) {
	ctx := c.Request.Context()
	v, err := h.planner.View(ctx, c.Param("board"))
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, v)
}

func (h *HttpHandler) Share(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ShareReq
	// body 可以为空
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.fail(c, transport.InvalidParam, "参数有误")
			return
		}
	}

	locator, err := h.planner.Share(ctx, c.Param("board"), req.Base)
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, dto.ShareResp{Locator: locator})
}

func (h *HttpHandler) Load(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LocatorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}

	report, err := h.planner.Load(ctx, c.Param("board"), req.Locator)
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, report)
}

func (h *HttpHandler) Publish(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.PublishReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}

	res, err := h.planner.Layouts.Publish(ctx, req.Payload, req.GridSize)
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, res)
}

func (h *HttpHandler) GetLayout(c *gin.Context) {
	ctx := c.Request.Context()

	l, err := h.planner.Layouts.Get(ctx, c.Param("id"))
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, dto.NewLayoutResp(l))
}

func (h *HttpHandler) UpdateLayout(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}

	token := bearerToken(c.GetHeader("Authorization"))
	l, err := h.planner.Layouts.Update(ctx, c.Param("id"), token, req.Payload)
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, dto.NewLayoutResp(l))
}

func (h *HttpHandler) Decode(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LocatorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}

	res, err := h.planner.Layouts.Decode(req.Locator)
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, dto.DecodeResp{Format: res.Format, Buildings: res.Buildings, Warnings: res.Warnings})
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

func (h *HttpHandler) ok(c *gin.Context, data any) {
	middleware.SetBizCode(c, transport.OK)
	c.JSON(nethttp.StatusOK, dto.Success(transport.OK, data))
}

func (h *HttpHandler) fail(c *gin.Context, code int, msg string) {
	middleware.SetBizCode(c, code)
	c.JSON(nethttp.StatusOK, dto.Error(code, msg))
}

func (h *HttpHandler) error(ctx context.Context, c *gin.Context, err error) {
	code, msg := handler.HandleError(ctx, h.planner.Log, err)
	h.fail(c, code, msg)
}
