package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/xiebiao/todo/pkg/errors"
)

// Response 错误响应结构
// 设计说明：
// 1. 成功响应直接返回资源本身（数组/对象），不包裹在Response中
// 2. Code是业务错误码，Message是固定的、不含内部细节的提示
// 3. 内部错误原因只写日志，不出现在响应里
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Fail 以指定HTTP状态码返回错误
func Fail(c *gin.Context, status, code int, message string) {
	c.JSON(status, Response{
		Code:    code,
		Message: message,
	})
}

// InternalError 500响应，message为该操作的固定提示
// 用法：
//
//	items, err := h.service.List(ctx)
//	if err != nil {
//	    h.logger.Error(msgListFailed, zap.Error(err))
//	    response.InternalError(c, msgListFailed)
//	    return
//	}
func InternalError(c *gin.Context, message string) {
	Fail(c, http.StatusInternalServerError, apperrors.ErrCodeInternal, message)
}

// =========================================
// 校验失败响应（problem details）
// =========================================

const (
	problemContentType = "application/problem+json; charset=utf-8"
	problemType        = "https://tools.ietf.org/html/rfc9110#section-15.5.1"
	problemTitle       = "One or more validation errors occurred."
)

// Problem 校验失败响应体
// errors的键为字段名，值为该字段的全部错误描述
type Problem struct {
	Type    string              `json:"type"`
	Title   string              `json:"title"`
	Status  int                 `json:"status"`
	Errors  map[string][]string `json:"errors"`
	TraceID string              `json:"traceId,omitempty"`
}

// NewProblem 创建400校验失败响应体
func NewProblem(errs map[string][]string) Problem {
	if errs == nil {
		errs = map[string][]string{}
	}
	return Problem{
		Type:   problemType,
		Title:  problemTitle,
		Status: http.StatusBadRequest,
		Errors: errs,
	}
}

// ValidationProblem 400响应，traceId取请求ID
func ValidationProblem(c *gin.Context, errs map[string][]string) {
	problem := NewProblem(errs)
	problem.TraceID = c.GetString(RequestIDKey)

	c.Header("Content-Type", problemContentType)
	c.JSON(http.StatusBadRequest, problem)
}

// RequestIDKey 请求ID在gin.Context中的键（由日志中间件写入）
const RequestIDKey = "request_id"
