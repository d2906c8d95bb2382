package todo

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventType 生命周期事件类型(同时用作路由键)
type EventType string

const (
	EventItemCreated EventType = "todo.item.created"
	EventItemUpdated EventType = "todo.item.updated"
	EventItemDeleted EventType = "todo.item.deleted"
)

// Event 待办事项生命周期事件
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	ItemIDs    []int     `json:"itemIds"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewEvent 创建事件
func NewEvent(eventType EventType, ids []int) Event {
	return Event{
		ID:         uuid.New().String(),
		Type:       eventType,
		ItemIDs:    ids,
		OccurredAt: time.Now().UTC(),
	}
}

// EventPublisher 事件发布接口
// 发布失败不影响已提交的业务结果
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}
