package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"AlliancePlanner/internal/shared/metrics"
	"AlliancePlanner/internal/shared/transport"
	"AlliancePlanner/modules/kit/logx"
)

const bizCodeKey = "planner.biz_code"

// SetBizCode 由 handler 在写响应时记下业务码，访问日志按它分级
func SetBizCode(c *gin.Context, code int) {
	c.Set(bizCodeKey, code)
}

// AccessLog 给每个请求开一个带 trace 的 ctx，结束时写访问日志和请求计数
func AccessLog(log logx.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		ctx := transport.NewContextWithParent(c.Request.Context(), c.Request.Method+" "+route)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		status := c.Writer.Status()
		transport.SetBizCode(ctx, transport.BizCode(bizCodeOf(c, status)))
		transport.WriteAccessLog(ctx, log)
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
	}
}

// 没记业务码的请求按 http 状态归类
func bizCodeOf(c *gin.Context, status int) int {
	if code, ok := c.Get(bizCodeKey); ok {
		if n, ok := code.(int); ok {
			return n
		}
	}
	switch {
	case status == http.StatusNotFound:
		return transport.RouteMissing
	case status >= http.StatusInternalServerError:
		return transport.SystemError
	case status >= http.StatusBadRequest:
		return transport.InvalidParam
	default:
		return transport.OK
	}
}
