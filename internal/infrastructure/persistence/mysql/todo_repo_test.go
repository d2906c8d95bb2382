package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/todo/internal/domain/todo"
)

// seed 通过一个工作单元写入若干记录
func seed(t *testing.T, store *TodoStore, titles ...string) []*todo.TodoItem {
	t.Helper()
	ctx := context.Background()
	repo := store.NewRepository()

	items := make([]*todo.TodoItem, 0, len(titles))
	for _, title := range titles {
		item := todo.NewTodoItem(title, false)
		require.NoError(t, repo.Add(ctx, item))
		items = append(items, item)
	}
	require.NoError(t, repo.Persist(ctx))
	return items
}

func TestTodoRepository_Add(t *testing.T) {
	ctx := context.Background()
	store := NewTodoStore(newTestDB(t))

	t.Run("提交后分配ID且两个时间戳相等", func(t *testing.T) {
		repo := store.NewRepository()
		item := todo.NewTodoItem("Buy milk", false)

		require.NoError(t, repo.Add(ctx, item))
		assert.True(t, repo.HasChanges())
		assert.Zero(t, item.ID, "提交前不分配ID")

		require.NoError(t, repo.Persist(ctx))
		assert.NotZero(t, item.ID)
		assert.False(t, item.CreatedAt.IsZero())
		assert.Equal(t, item.CreatedAt, item.UpdatedAt)
		assert.False(t, repo.HasChanges())

		stored, err := repo.GetByID(ctx, item.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "Buy milk", stored.Title)
		assert.True(t, stored.CreatedAt.Equal(stored.UpdatedAt))
		assert.True(t, stored.CreatedAt.Equal(item.CreatedAt))
	})

	t.Run("未提交时不可见", func(t *testing.T) {
		repo := store.NewRepository()
		require.NoError(t, repo.Add(ctx, todo.NewTodoItem("staged", false)))

		all, err := store.NewRepository().GetAll(ctx)
		require.NoError(t, err)
		for _, item := range all {
			assert.NotEqual(t, "staged", item.Title)
		}
	})

	t.Run("ID不为0时拒绝", func(t *testing.T) {
		repo := store.NewRepository()
		err := repo.Add(ctx, &todo.TodoItem{ID: 5, Title: "x"})
		assert.ErrorIs(t, err, todo.ErrItemIDAssigned)
		assert.False(t, repo.HasChanges())
	})

	t.Run("nil实体", func(t *testing.T) {
		err := store.NewRepository().Add(ctx, nil)
		assert.ErrorIs(t, err, todo.ErrNilItem)
	})
}

func TestTodoRepository_Get(t *testing.T) {
	ctx := context.Background()
	store := NewTodoStore(newTestDB(t))
	items := seed(t, store, "a", "b", "c")
	repo := store.NewRepository()

	t.Run("GetAll", func(t *testing.T) {
		all, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("GetByID不存在返回nil", func(t *testing.T) {
		item, err := repo.GetByID(ctx, 999)
		assert.NoError(t, err)
		assert.Nil(t, item)
	})

	t.Run("GetByIDs忽略不存在的ID", func(t *testing.T) {
		got, err := repo.GetByIDs(ctx, []int{items[0].ID, items[2].ID, 999})
		require.NoError(t, err)
		assert.Equal(t, []int{items[0].ID, items[2].ID}, todo.IDs(got))
	})

	t.Run("GetByIDs空输入", func(t *testing.T) {
		got, err := repo.GetByIDs(ctx, nil)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestTodoRepository_GetAll_Empty(t *testing.T) {
	all, err := NewTodoStore(newTestDB(t)).NewRepository().GetAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestTodoRepository_Update(t *testing.T) {
	ctx := context.Background()
	store := NewTodoStore(newTestDB(t))

	// 固定时钟，便于比较时间戳
	clock := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }
	item := seed(t, store, "write tests")[0]

	t.Run("不存在返回ErrItemNotFound", func(t *testing.T) {
		repo := store.NewRepository()
		_, err := repo.Update(ctx, &todo.TodoItem{ID: 999, Title: "x"})
		assert.ErrorIs(t, err, todo.ErrItemNotFound)
		assert.False(t, repo.HasChanges())
	})

	t.Run("内容相同不登记变更", func(t *testing.T) {
		repo := store.NewRepository()
		got, err := repo.Update(ctx, &todo.TodoItem{ID: item.ID, Title: "write tests"})
		require.NoError(t, err)
		assert.Equal(t, item.ID, got.ID)
		assert.False(t, repo.HasChanges())
		require.NoError(t, repo.Persist(ctx))
	})

	t.Run("修改后刷新UpdatedAt并保留CreatedAt", func(t *testing.T) {
		clock = clock.Add(time.Hour)
		repo := store.NewRepository()

		got, err := repo.Update(ctx, &todo.TodoItem{
			ID:        item.ID,
			Title:     "write more tests",
			IsDone:    true,
			CreatedAt: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), // 会被忽略
		})
		require.NoError(t, err)
		assert.True(t, repo.HasChanges())
		require.NoError(t, repo.Persist(ctx))

		assert.Equal(t, clock, got.UpdatedAt)

		stored, err := repo.GetByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, "write more tests", stored.Title)
		assert.True(t, stored.IsDone)
		assert.True(t, stored.CreatedAt.Equal(item.CreatedAt))
		assert.True(t, stored.UpdatedAt.Equal(clock))
		assert.True(t, stored.UpdatedAt.After(stored.CreatedAt))
	})

	t.Run("加载后被并发删除时提交失败", func(t *testing.T) {
		target := seed(t, store, "to be raced")[0]

		repo := store.NewRepository()
		_, err := repo.Update(ctx, &todo.TodoItem{ID: target.ID, Title: "changed"})
		require.NoError(t, err)

		// 另一个工作单元先删除
		other := store.NewRepository()
		require.NoError(t, other.RemoveRange(ctx, []*todo.TodoItem{target}))
		require.NoError(t, other.Persist(ctx))

		err = repo.Persist(ctx)
		assert.ErrorIs(t, err, todo.ErrItemNotFound)
	})
}

func TestTodoRepository_RemoveRange(t *testing.T) {
	ctx := context.Background()
	store := NewTodoStore(newTestDB(t))
	items := seed(t, store, "one", "two", "three")

	t.Run("空输入为no-op", func(t *testing.T) {
		repo := store.NewRepository()
		require.NoError(t, repo.RemoveRange(ctx, nil))
		assert.False(t, repo.HasChanges())
		require.NoError(t, repo.Persist(ctx))
	})

	t.Run("批量删除", func(t *testing.T) {
		repo := store.NewRepository()
		require.NoError(t, repo.RemoveRange(ctx, items[:2]))
		require.NoError(t, repo.Persist(ctx))

		all, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int{items[2].ID}, todo.IDs(all))
	})

	t.Run("重复登记同一记录只删除一次", func(t *testing.T) {
		repo := store.NewRepository()
		require.NoError(t, repo.RemoveRange(ctx, []*todo.TodoItem{items[2], items[2]}))
		require.NoError(t, repo.Persist(ctx))

		got, err := repo.GetByID(ctx, items[2].ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestTodoRepository_PersistRollback(t *testing.T) {
	ctx := context.Background()
	store := NewTodoStore(newTestDB(t))
	existing := seed(t, store, "keep me")[0]

	repo := store.NewRepository()
	added := todo.NewTodoItem("rolled back", false)
	require.NoError(t, repo.Add(ctx, added))
	// 删除一条不存在的记录使事务失败
	require.NoError(t, repo.RemoveRange(ctx, []*todo.TodoItem{{ID: 999}}))

	err := repo.Persist(ctx)
	assert.ErrorIs(t, err, todo.ErrItemNotFound)
	assert.Zero(t, added.ID, "回滚后撤销回填的ID")

	all, err := store.NewRepository().GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{existing.ID}, todo.IDs(all))
}
