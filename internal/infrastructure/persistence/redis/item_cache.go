package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/todo/internal/domain/todo"
	apperrors "github.com/xiebiao/todo/pkg/errors"
)

// DefaultKeyPrefix 默认缓存键前缀，完整键如 todo:item:42
const DefaultKeyPrefix = "todo:item:"

// ItemCache 单条待办事项缓存（Cache-Aside）
//
// 一致性策略：更新数据库后删除缓存，下次读取时重新加载。
// 列表查询不缓存：任何一次写都会使列表失效，命中率很低。
type ItemCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewItemCache 创建缓存
func NewItemCache(client redis.UniversalClient, prefix string, ttl time.Duration) *ItemCache {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &ItemCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// cachedItem 缓存中的JSON结构
type cachedItem struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	IsDone    bool      `json:"isDone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Get 未命中返回nil, nil
func (c *ItemCache) Get(ctx context.Context, id int) (*todo.TodoItem, error) {
	val, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "读取缓存失败")
	}

	var cached cachedItem
	if err := json.Unmarshal(val, &cached); err != nil {
		return nil, apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "缓存反序列化失败")
	}

	return &todo.TodoItem{
		ID:        cached.ID,
		Title:     cached.Title,
		IsDone:    cached.IsDone,
		CreatedAt: cached.CreatedAt,
		UpdatedAt: cached.UpdatedAt,
	}, nil
}

// Set 写入缓存并设置过期时间
func (c *ItemCache) Set(ctx context.Context, item *todo.TodoItem) error {
	val, err := json.Marshal(cachedItem{
		ID:        item.ID,
		Title:     item.Title,
		IsDone:    item.IsDone,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	})
	if err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "缓存序列化失败")
	}

	if err := c.client.Set(ctx, c.key(item.ID), val, c.ttl).Err(); err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "写入缓存失败")
	}
	return nil
}

// Delete 删除缓存（一条DEL命令）
func (c *ItemCache) Delete(ctx context.Context, ids ...int) error {
	if len(ids) == 0 {
		return nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, c.key(id))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "删除缓存失败")
	}
	return nil
}

func (c *ItemCache) key(id int) string {
	return c.prefix + strconv.Itoa(id)
}
