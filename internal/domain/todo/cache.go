package todo

import "context"

// ItemCache 单条待办事项缓存(旁路缓存)
// 写操作提交后删除缓存,下次读取时重新加载
type ItemCache interface {
	// Get 未命中返回nil, nil
	Get(ctx context.Context, id int) (*TodoItem, error)
	Set(ctx context.Context, item *TodoItem) error
	Delete(ctx context.Context, ids ...int) error
}
