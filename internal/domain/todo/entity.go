package todo

import (
	"time"
)

// TitleMaxLength 标题最大长度（按字符计）
const TitleMaxLength = 40

// TodoItem 待办事项实体
// 设计说明:
// 1. ID为0表示尚未持久化,由存储层在创建时分配
// 2. CreatedAt/UpdatedAt只在持久化边界(提交前钩子)统一写入
// 3. 更新只允许修改Title和IsDone,CreatedAt保持不变
type TodoItem struct {
	ID        int
	Title     string
	IsDone    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTodoItem 创建新的待办事项(工厂方法)
func NewTodoItem(title string, isDone bool) *TodoItem {
	return &TodoItem{
		Title:  title,
		IsDone: isDone,
	}
}

// IsPersisted 是否已持久化
func (i *TodoItem) IsPersisted() bool {
	return i.ID != 0
}

// SetCreatedAt 实现Timestamped能力,仅由持久化钩子调用
func (i *TodoItem) SetCreatedAt(t time.Time) {
	i.CreatedAt = t
}

// SetUpdatedAt 实现Timestamped能力,仅由持久化钩子调用
func (i *TodoItem) SetUpdatedAt(t time.Time) {
	i.UpdatedAt = t
}

// SameContent 判断可修改字段是否一致
func (i *TodoItem) SameContent(other *TodoItem) bool {
	return i.Title == other.Title && i.IsDone == other.IsDone
}

// ApplyChanges 将other的可修改字段复制到当前实体
// ID和CreatedAt不会被覆盖
func (i *TodoItem) ApplyChanges(other *TodoItem) {
	i.Title = other.Title
	i.IsDone = other.IsDone
}

// IDs 提取实体ID列表(保持输入顺序)
func IDs(items []*TodoItem) []int {
	ids := make([]int, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}
