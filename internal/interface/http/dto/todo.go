package dto

import (
	"time"

	"github.com/xiebiao/todo/internal/domain/todo"
)

// TodoItemRequest 新建/更新请求体
// validator tag说明:
// - notblank: 标题不能为空，也不能只有空白字符
// - max=40: 按字符数计(与todo.TitleMaxLength一致)
// 新建时id应为0(或省略);更新时必须与路径中的id一致
type TodoItemRequest struct {
	ID     int    `json:"id" example:"0"`
	Title  string `json:"title" binding:"notblank,max=40" example:"Buy milk"`
	IsDone bool   `json:"isDone" example:"false"`
}

// ToEntity 请求 → 领域实体
func (r *TodoItemRequest) ToEntity() *todo.TodoItem {
	return &todo.TodoItem{
		ID:     r.ID,
		Title:  r.Title,
		IsDone: r.IsDone,
	}
}

// TodoItemResponse 待办事项响应
type TodoItemResponse struct {
	ID        int       `json:"id" example:"43"`
	Title     string    `json:"title" example:"Buy milk"`
	IsDone    bool      `json:"isDone" example:"false"`
	CreatedAt time.Time `json:"createdAt" example:"2024-01-15T10:30:00.000Z"`
	UpdatedAt time.Time `json:"updatedAt" example:"2024-01-15T10:30:00.000Z"`
}

// NewTodoItemResponse 领域实体 → 响应
func NewTodoItemResponse(item *todo.TodoItem) TodoItemResponse {
	return TodoItemResponse{
		ID:        item.ID,
		Title:     item.Title,
		IsDone:    item.IsDone,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

// NewTodoItemListResponse 列表响应,空列表序列化为[]而不是null
func NewTodoItemListResponse(items []*todo.TodoItem) []TodoItemResponse {
	resp := make([]TodoItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, NewTodoItemResponse(item))
	}
	return resp
}
