package todo

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// mockRepository Repository的mock实现
type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) GetAll(ctx context.Context) ([]*TodoItem, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]*TodoItem)
	return items, args.Error(1)
}

func (m *mockRepository) GetByID(ctx context.Context, id int) (*TodoItem, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*TodoItem)
	return item, args.Error(1)
}

func (m *mockRepository) GetByIDs(ctx context.Context, ids []int) ([]*TodoItem, error) {
	args := m.Called(ctx, ids)
	items, _ := args.Get(0).([]*TodoItem)
	return items, args.Error(1)
}

func (m *mockRepository) Add(ctx context.Context, item *TodoItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockRepository) Update(ctx context.Context, item *TodoItem) (*TodoItem, error) {
	args := m.Called(ctx, item)
	updated, _ := args.Get(0).(*TodoItem)
	return updated, args.Error(1)
}

func (m *mockRepository) RemoveRange(ctx context.Context, items []*TodoItem) error {
	return m.Called(ctx, items).Error(0)
}

func (m *mockRepository) HasChanges() bool {
	return m.Called().Bool(0)
}

func (m *mockRepository) Persist(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// mockStore 每次返回同一个mockRepository
type mockStore struct {
	repo *mockRepository
}

func (s *mockStore) NewRepository() Repository {
	return s.repo
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, id int) (*TodoItem, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*TodoItem)
	return item, args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, item *TodoItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockCache) Delete(ctx context.Context, ids ...int) error {
	return m.Called(ctx, ids).Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event Event) error {
	return m.Called(ctx, event).Error(0)
}
