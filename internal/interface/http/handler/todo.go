package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xiebiao/todo/internal/domain/todo"
	"github.com/xiebiao/todo/internal/interface/http/dto"
	"github.com/xiebiao/todo/pkg/response"
)

// 500响应中的固定提示(不包含内部错误细节)
const (
	msgListFailed   = "Error retrieving todo items"
	msgGetFailed    = "An error occurred while retrieving todo item"
	msgCreateFailed = "Error creating todo item"
	msgUpdateFailed = "An error occurred while updating todo item"
	msgDeleteFailed = "An error occurred while deleting todo item"
	msgBulkFailed   = "Error deleting todo items"
)

// TodoItemHandler 待办事项HTTP处理器
// 每个方法都是一个失败边界:服务层返回任何错误都记录日志并返回500
type TodoItemHandler struct {
	service todo.Service
	logger  *zap.Logger
}

// NewTodoItemHandler 创建待办事项处理器
func NewTodoItemHandler(service todo.Service, logger *zap.Logger) *TodoItemHandler {
	return &TodoItemHandler{
		service: service,
		logger:  logger,
	}
}

// List 查询全部待办事项
// @Summary      查询待办事项列表
// @Description  返回全部待办事项,没有时返回空数组
// @Tags         待办事项
// @Produce      json
// @Success      200 {array}  dto.TodoItemResponse
// @Failure      500 {object} response.Response
// @Router       /api/todoitems [get]
func (h *TodoItemHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.log(c).Error(msgListFailed, zap.Error(err))
		response.InternalError(c, msgListFailed)
		return
	}

	h.log(c).Info("Retrieved todo items", zap.Int("count", len(items)))
	c.JSON(http.StatusOK, dto.NewTodoItemListResponse(items))
}

// Get 根据ID查询
// @Summary      查询待办事项
// @Tags         待办事项
// @Produce      json
// @Param        id  path     int true "待办事项ID"
// @Success      200 {object} dto.TodoItemResponse
// @Failure      400 {object} response.Problem "ID格式错误"
// @Failure      404 "不存在"
// @Failure      500 {object} response.Response
// @Router       /api/todoitems/{id} [get]
func (h *TodoItemHandler) Get(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	item, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.log(c).Error("Error retrieving todo item", zap.Int("id", id), zap.Error(err))
		response.InternalError(c, msgGetFailed)
		return
	}
	if item == nil {
		c.Status(http.StatusNotFound)
		return
	}

	c.JSON(http.StatusOK, dto.NewTodoItemResponse(item))
}

// Create 新建待办事项
// @Summary      新建待办事项
// @Description  id必须为0或省略,由存储分配
// @Tags         待办事项
// @Accept       json
// @Produce      json
// @Param        request body     dto.TodoItemRequest true "待办事项"
// @Success      201     {object} dto.TodoItemResponse
// @Header       201     {string} Location "api/todoitems/{id}"
// @Failure      400     {object} response.Problem "参数校验失败"
// @Failure      500     {object} response.Response
// @Router       /api/todoitems [post]
func (h *TodoItemHandler) Create(c *gin.Context) {
	// 1. 参数绑定与验证
	var req dto.TodoItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationProblem(c, dto.ValidationErrors(err))
		return
	}

	// 2. 调用领域服务
	created, err := h.service.Create(c.Request.Context(), req.ToEntity())
	if err != nil {
		h.log(c).Error(msgCreateFailed, zap.Error(err))
		response.InternalError(c, msgCreateFailed)
		return
	}

	// 3. 201 + Location
	h.log(c).Info("Created todo item", zap.Int("id", created.ID))
	c.Header("Location", fmt.Sprintf("api/todoitems/%d", created.ID))
	c.JSON(http.StatusCreated, dto.NewTodoItemResponse(created))
}

// Update 更新待办事项
// @Summary      更新待办事项
// @Description  路径中的id必须与请求体中的id一致
// @Tags         待办事项
// @Accept       json
// @Produce      json
// @Param        id      path     int                 true "待办事项ID"
// @Param        request body     dto.TodoItemRequest true "待办事项"
// @Success      200     {object} dto.TodoItemResponse
// @Failure      400     "ID不一致或参数校验失败"
// @Failure      500     {object} response.Response
// @Router       /api/todoitems/{id} [put]
func (h *TodoItemHandler) Update(c *gin.Context) {
	// 1. 参数绑定与验证
	id, ok := bindID(c)
	if !ok {
		return
	}
	var req dto.TodoItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationProblem(c, dto.ValidationErrors(err))
		return
	}

	// 2. 路径ID与请求体ID必须一致
	if id != req.ID {
		c.Status(http.StatusBadRequest)
		return
	}

	// 3. 调用领域服务
	updated, err := h.service.Update(c.Request.Context(), req.ToEntity())
	if err != nil {
		h.log(c).Error("Error updating todo item", zap.Int("id", id), zap.Error(err))
		response.InternalError(c, msgUpdateFailed)
		return
	}

	h.log(c).Info("Updated todo item", zap.Int("id", id))
	c.JSON(http.StatusOK, dto.NewTodoItemResponse(updated))
}

// Delete 删除单条
// @Summary      删除待办事项
// @Tags         待办事项
// @Param        id  path int true "待办事项ID"
// @Success      204 "已删除"
// @Failure      404 "不存在"
// @Failure      500 {object} response.Response
// @Router       /api/todoitems/{id} [delete]
func (h *TodoItemHandler) Delete(c *gin.Context) {
	id, ok := bindID(c)
	if !ok {
		return
	}

	deleted, err := h.service.DeleteOne(c.Request.Context(), id)
	if err != nil {
		h.log(c).Error("Error deleting todo item", zap.Int("id", id), zap.Error(err))
		response.InternalError(c, msgDeleteFailed)
		return
	}
	if !deleted {
		c.Status(http.StatusNotFound)
		return
	}

	h.log(c).Info("Deleted todo item", zap.Int("id", id))
	c.Status(http.StatusNoContent)
}

// DeleteMany 批量删除
// @Summary      批量删除待办事项
// @Description  不存在的ID被忽略,返回实际删除的ID
// @Tags         待办事项
// @Accept       json
// @Produce      json
// @Param        ids body     []int true "待删除的ID"
// @Success      200 {array}  int
// @Failure      400 {object} response.Problem "参数校验失败"
// @Failure      500 {object} response.Response
// @Router       /api/todoitems [delete]
func (h *TodoItemHandler) DeleteMany(c *gin.Context) {
	var ids []int
	if err := c.ShouldBindJSON(&ids); err != nil {
		response.ValidationProblem(c, dto.ValidationErrors(err))
		return
	}

	deleted, err := h.service.DeleteMany(c.Request.Context(), ids)
	if err != nil {
		h.log(c).Error(msgBulkFailed, zap.Error(err))
		response.InternalError(c, msgBulkFailed)
		return
	}
	if deleted == nil {
		deleted = []int{}
	}

	h.log(c).Info("Deleted todo items", zap.Int("count", len(deleted)))
	c.JSON(http.StatusOK, deleted)
}

// bindID 解析路径参数id,失败时已写入400响应
func bindID(c *gin.Context) (int, bool) {
	raw := c.Param("id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		response.ValidationProblem(c, dto.InvalidParam("id", raw))
		return 0, false
	}
	return id, true
}

// log 附带请求ID的日志
func (h *TodoItemHandler) log(c *gin.Context) *zap.Logger {
	if id := c.GetString(response.RequestIDKey); id != "" {
		return h.logger.With(zap.String("request_id", id))
	}
	return h.logger
}
