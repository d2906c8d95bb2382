package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xiebiao/todo/pkg/response"
	"github.com/xiebiao/todo/pkg/tracing"
)

// RequestIDHeader 请求ID响应头（请求中已带时沿用）
const RequestIDHeader = "X-Request-ID"

// slowRequestThreshold 慢请求阈值
const slowRequestThreshold = 3 * time.Second

// Logger 请求日志中间件
//
// 教学要点：
// 1. 记录每个请求的基本信息（方法、路径、耗时、状态码）
// 2. 生成唯一的请求ID，写入gin.Context和响应头
// 3. 结构化日志输出（zap）
//
// DON'T：记录请求体、Authorization等敏感信息
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 请求ID
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(response.RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		// 2. 处理请求
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		// 3. 按状态码选择级别
		status := c.Writer.Status()
		level := zapcore.InfoLevel
		switch {
		case status >= 500:
			level = zapcore.ErrorLevel
		case status >= 400 || latency > slowRequestThreshold:
			level = zapcore.WarnLevel
		}

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		}
		if traceID := tracing.ExtractTraceID(c.Request.Context()); traceID != "" {
			fields = append(fields, zap.String("trace_id", traceID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		if ce := logger.Check(level, "HTTP请求"); ce != nil {
			ce.Write(fields...)
		}
	}
}
