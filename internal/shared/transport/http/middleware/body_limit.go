package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxBodyBytes 布局负载上限 1 MiB，留出 JSON 外壳的余量
const MaxBodyBytes = 2 << 20

// BodyLimit 超过 n 字节的请求体在读取时报错，handler 按参数错误处理
func BodyLimit(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}
