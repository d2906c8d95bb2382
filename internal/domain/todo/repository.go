package todo

import (
	"context"
)

// Repository 待办事项仓储接口(一个工作单元)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. Add/Update/RemoveRange只暂存变更,必须调用Persist才会写入存储
// 3. 一个Repository实例只服务于一次业务操作,不在请求之间共享
type Repository interface {
	// GetAll 查询全部待办事项(不保证顺序)
	GetAll(ctx context.Context) ([]*TodoItem, error)

	// GetByID 根据ID查询,不存在时返回nil, nil
	GetByID(ctx context.Context, id int) (*TodoItem, error)

	// GetByIDs 根据ID集合查询,未匹配的ID被静默忽略
	GetByIDs(ctx context.Context, ids []int) ([]*TodoItem, error)

	// Add 暂存新增,item.ID必须为0,否则返回ErrItemIDAssigned
	Add(ctx context.Context, item *TodoItem) error

	// Update 暂存修改
	// - 不存在返回ErrItemNotFound
	// - Title和IsDone均未变化时直接返回已存储记录,不暂存任何变更
	Update(ctx context.Context, item *TodoItem) (*TodoItem, error)

	// RemoveRange 暂存删除,空输入为no-op
	RemoveRange(ctx context.Context, items []*TodoItem) error

	// HasChanges 是否存在尚未提交的变更
	HasChanges() bool

	// Persist 在一个事务中提交全部暂存变更,并在提交前写入时间戳
	Persist(ctx context.Context) error
}

// Store 仓储工厂
// 每次业务操作通过NewRepository获取独立的工作单元
type Store interface {
	NewRepository() Repository
}
