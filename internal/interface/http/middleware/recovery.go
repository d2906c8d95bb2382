package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xiebiao/todo/pkg/response"
)

// Recovery 捕获panic，记录日志并返回500
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.Error("请求处理panic",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(response.RequestIDKey)),
			zap.Stack("stack"),
		)
		response.InternalError(c, "Internal server error")
		c.Abort()
	})
}
