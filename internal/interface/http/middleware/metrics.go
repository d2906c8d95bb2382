package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/todo/pkg/metrics"
)

// Metrics 记录HTTP请求指标
// path使用路由模板（/api/todoitems/:id），未匹配路由记为unmatched，避免高基数
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		done := metrics.RequestStarted()
		start := time.Now()

		c.Next()

		done()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
