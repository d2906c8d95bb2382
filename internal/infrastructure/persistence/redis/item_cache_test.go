package redis

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/todo/internal/domain/todo"
	"github.com/xiebiao/todo/internal/infrastructure/config"
	apperrors "github.com/xiebiao/todo/pkg/errors"
)

func setupCache(t *testing.T) (*ItemCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewItemCache(client, "", 10*time.Minute), mr
}

func TestItemCache(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("未命中返回nil", func(t *testing.T) {
		cache, _ := setupCache(t)
		item, err := cache.Get(ctx, 1)
		assert.NoError(t, err)
		assert.Nil(t, item)
	})

	t.Run("写入后读取", func(t *testing.T) {
		cache, mr := setupCache(t)
		item := &todo.TodoItem{ID: 42, Title: "cache me", IsDone: true, CreatedAt: created, UpdatedAt: created}

		require.NoError(t, cache.Set(ctx, item))
		assert.True(t, mr.Exists("todo:item:42"))
		assert.Equal(t, 10*time.Minute, mr.TTL("todo:item:42"))

		got, err := cache.Get(ctx, 42)
		require.NoError(t, err)
		assert.Equal(t, item, got)
	})

	t.Run("过期后未命中", func(t *testing.T) {
		cache, mr := setupCache(t)
		require.NoError(t, cache.Set(ctx, &todo.TodoItem{ID: 1, Title: "x"}))

		mr.FastForward(11 * time.Minute)
		got, err := cache.Get(ctx, 1)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("批量删除", func(t *testing.T) {
		cache, mr := setupCache(t)
		require.NoError(t, cache.Set(ctx, &todo.TodoItem{ID: 1}))
		require.NoError(t, cache.Set(ctx, &todo.TodoItem{ID: 2}))

		require.NoError(t, cache.Delete(ctx, 1, 2, 3))
		assert.False(t, mr.Exists("todo:item:1"))
		assert.False(t, mr.Exists("todo:item:2"))

		assert.NoError(t, cache.Delete(ctx))
	})

	t.Run("脏数据返回错误", func(t *testing.T) {
		cache, mr := setupCache(t)
		require.NoError(t, mr.Set("todo:item:9", "not json"))

		_, err := cache.Get(ctx, 9)
		assert.Equal(t, apperrors.ErrCodeRedisError, apperrors.CodeOf(err))
	})

	t.Run("Redis不可用返回错误", func(t *testing.T) {
		cache, mr := setupCache(t)
		mr.Close()

		_, err := cache.Get(ctx, 1)
		assert.Equal(t, apperrors.ErrCodeRedisError, apperrors.CodeOf(err))
	})
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	cfg := config.RedisConfig{Host: mr.Host(), Port: port}
	client, err := NewClient(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Ping(context.Background()).Err())
}
