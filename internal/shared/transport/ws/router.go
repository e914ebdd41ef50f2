package ws

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"AlliancePlanner/internal/shared/logs"
	"AlliancePlanner/internal/shared/metrics"
	"AlliancePlanner/internal/shared/transport"
	"AlliancePlanner/modules/kit/logx"

	"go.uber.org/zap"
)

type HandlerFunc func(ctx context.Context, req *WsMsgReq, resp *WsMsgResp)

// Group 只是注册时的前缀，路由最终都平铺在 Router.routes 里
type Group struct {
	prefix string
	r      *Router
}

// Handle 重复注册同名路由直接 panic，启动阶段就能发现
func (g *Group) Handle(name string, h HandlerFunc) {
	if name == "" || strings.Contains(name, ".") {
		panic(fmt.Sprintf("ws: bad handler name %q", name))
	}
	full := g.prefix + "." + name
	if _, dup := g.r.routes[full]; dup {
		panic("ws: duplicate route " + full)
	}
	g.r.routes[full] = h
	g.r.groups[g.prefix] = append(g.r.groups[g.prefix], name)
}

type Router struct {
	routes map[string]HandlerFunc
	groups map[string][]string
	log    logx.Logger
}

func NewRouter(l logx.Logger) *Router {
	if l == nil {
		l = logx.NewZapLogger(logs.Logger())
	}
	return &Router{
		routes: make(map[string]HandlerFunc),
		groups: make(map[string][]string),
		log:    l,
	}
}

func (r *Router) Group(prefix string) *Group {
	if prefix == "" || strings.Contains(prefix, ".") {
		panic(fmt.Sprintf("ws: bad group prefix %q", prefix))
	}
	if _, ok := r.groups[prefix]; !ok {
		r.groups[prefix] = nil
	}
	return &Group{prefix: prefix, r: r}
}

// Dispatch 按 req.Body.Name 分发，名字形如 board.pointer
func (r *Router) Dispatch(req *WsMsgReq, resp *WsMsgResp) {
	if req == nil || req.Body == nil || resp == nil || resp.Body == nil {
		setError(resp, transport.InvalidParam, "参数有误")
		return
	}

	route := req.Body.Name
	ctx := transport.NewContext("WS " + route)
	start := time.Now()
	// handler 漏设业务码时按系统错误返回
	resp.Body.Code = transport.SystemError
	resp.Body.Msg = nil
	defer func() {
		if p := recover(); p != nil {
			r.log.Error("ws handler panic", zap.String("route", route), zap.Any("panic", p))
			setError(resp, transport.SystemError, "服务内部错误")
		}
		r.finish(ctx, route, start, resp.Body.Code)
	}()

	h, ok := r.routes[route]
	if !ok {
		if _, _, valid := parseRouteName(route); !valid {
			setError(resp, transport.RouteMissing, "路由参数有误")
		} else {
			setError(resp, transport.RouteMissing, "路由不存在")
		}
		return
	}
	h(ctx, req, resp)
}

// Routes 返回已注册的路由名，按组分组并排序
func (r *Router) Routes() map[string][]string {
	out := make(map[string][]string, len(r.groups))
	for prefix, names := range r.groups {
		sorted := append([]string(nil), names...)
		sort.Strings(sorted)
		out[prefix] = sorted
	}
	return out
}

func parseRouteName(name string) (string, string, bool) {
	prefix, handler, ok := strings.Cut(name, ".")
	if !ok || prefix == "" || handler == "" || strings.Contains(handler, ".") {
		return "", "", false
	}
	return prefix, handler, true
}

func setError(resp *WsMsgResp, code int, msg string) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = code
	resp.Body.Msg = msg
}

func (r *Router) finish(ctx context.Context, route string, start time.Time, code int) {
	// 未注册的路由统一归到 unknown，避免客户端随便发名字撑爆 label
	label := route
	if _, ok := r.routes[route]; !ok {
		label = "unknown"
	}
	metrics.WSDispatch.WithLabelValues(label, strconv.Itoa(code)).Observe(time.Since(start).Seconds())

	transport.SetBizCode(ctx, transport.BizCode(code))
	transport.WriteAccessLog(ctx, r.log)
}
