package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler 存活检查
type HealthHandler struct{}

// NewHealthHandler 创建存活检查处理器
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check 存活检查
// @Summary  存活检查
// @Tags     系统
// @Success  200 "服务正常"
// @Router   /api/health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	c.Status(http.StatusOK)
}
