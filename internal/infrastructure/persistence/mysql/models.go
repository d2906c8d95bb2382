package mysql

import (
	"time"

	"github.com/xiebiao/todo/internal/domain/todo"
)

// TodoItemModel GORM待办事项模型
// 设计说明:
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/todo/entity.go是领域实体，不依赖GORM
// 3. 时间戳由提交前钩子写入，关闭GORM的自动时间戳
// 4. 删除为物理删除，没有DeletedAt
type TodoItemModel struct {
	ID        int       `gorm:"primaryKey;autoIncrement"`
	Title     string    `gorm:"size:40;not null;comment:标题"`
	IsDone    bool      `gorm:"not null;comment:是否完成"`
	CreatedAt time.Time `gorm:"autoCreateTime:false;precision:3;not null;comment:创建时间"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false;precision:3;not null;comment:更新时间"`
}

// TableName 指定表名
func (TodoItemModel) TableName() string {
	return "todo_items"
}

// toTodoModel 领域实体 → GORM模型
func toTodoModel(item *todo.TodoItem) *TodoItemModel {
	return &TodoItemModel{
		ID:        item.ID,
		Title:     item.Title,
		IsDone:    item.IsDone,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

// toTodoEntity GORM模型 → 领域实体
func toTodoEntity(model *TodoItemModel) *todo.TodoItem {
	return &todo.TodoItem{
		ID:        model.ID,
		Title:     model.Title,
		IsDone:    model.IsDone,
		CreatedAt: model.CreatedAt.UTC(),
		UpdatedAt: model.UpdatedAt.UTC(),
	}
}

func toTodoEntities(models []TodoItemModel) []*todo.TodoItem {
	items := make([]*todo.TodoItem, 0, len(models))
	for i := range models {
		items = append(items, toTodoEntity(&models[i]))
	}
	return items
}
