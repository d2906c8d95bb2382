package todo

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/todo/pkg/metrics"
	"github.com/xiebiao/todo/pkg/tracing"
)

const tracerName = "github.com/xiebiao/todo/internal/domain/todo"

// Service 待办事项领域服务接口
// 设计说明:
// 1. 每次操作通过Store获取独立的Repository(工作单元),提交后即丢弃
// 2. 读取不存在的记录返回nil, nil;写路径的错误(ErrItemNotFound等)原样返回
// 3. 缓存、事件是提交成功之后的附加动作,失败只记录日志,不改变操作结果
type Service interface {
	// List 查询全部待办事项
	List(ctx context.Context) ([]*TodoItem, error)

	// GetByID 根据ID查询,不存在返回nil
	GetByID(ctx context.Context, id int) (*TodoItem, error)

	// Create 新建待办事项,返回带有存储分配ID的实体
	Create(ctx context.Context, item *TodoItem) (*TodoItem, error)

	// Update 更新Title和IsDone
	Update(ctx context.Context, item *TodoItem) (*TodoItem, error)

	// DeleteOne 删除单条,返回是否真的删除了
	DeleteOne(ctx context.Context, id int) (bool, error)

	// DeleteMany 批量删除
	// 业务规则:
	// - 只删除实际存在的记录,不存在的ID被忽略
	// - 一条都不存在时不开启事务
	// - 返回实际删除的ID
	DeleteMany(ctx context.Context, ids []int) ([]int, error)
}

// ServiceOption 服务可选依赖
type ServiceOption func(*service)

// WithCache 启用单条缓存
func WithCache(cache ItemCache) ServiceOption {
	return func(s *service) {
		s.cache = cache
	}
}

// WithPublisher 启用生命周期事件
func WithPublisher(publisher EventPublisher) ServiceOption {
	return func(s *service) {
		s.publisher = publisher
	}
}

// WithLogger 设置日志
func WithLogger(logger *zap.Logger) ServiceOption {
	return func(s *service) {
		s.logger = logger
	}
}

// service 领域服务实现
type service struct {
	store     Store
	cache     ItemCache
	publisher EventPublisher
	logger    *zap.Logger
}

// NewService 创建待办事项领域服务
func NewService(store Store, opts ...ServiceOption) Service {
	s := &service{
		store:  store,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List 查询全部
func (s *service) List(ctx context.Context) (items []*TodoItem, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "todo.Service/List")
	defer func() { tracing.EndSpan(span, err) }()

	items, err = s.store.NewRepository().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("todo.item_count", len(items)))
	return items, nil
}

// GetByID 根据ID查询(旁路缓存)
func (s *service) GetByID(ctx context.Context, id int) (item *TodoItem, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "todo.Service/GetByID")
	span.SetAttributes(attribute.Int("todo.item_id", id))
	defer func() { tracing.EndSpan(span, err) }()

	// 1. 先查缓存,缓存故障降级为直接查库
	if s.cache != nil {
		cached, cacheErr := s.cache.Get(ctx, id)
		switch {
		case cacheErr != nil:
			metrics.CacheLookup("error")
			s.logger.Warn("读取缓存失败", zap.Int("id", id), zap.Error(cacheErr))
		case cached != nil:
			metrics.CacheLookup("hit")
			return cached, nil
		default:
			metrics.CacheLookup("miss")
		}
	}

	// 2. 查库
	item, err = s.store.NewRepository().GetByID(ctx, id)
	if err != nil || item == nil {
		return nil, err
	}

	// 3. 回填缓存
	if s.cache != nil {
		if cacheErr := s.cache.Set(ctx, item); cacheErr != nil {
			s.logger.Warn("写入缓存失败", zap.Int("id", id), zap.Error(cacheErr))
		}
	}
	return item, nil
}

// Create 新建
func (s *service) Create(ctx context.Context, item *TodoItem) (_ *TodoItem, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "todo.Service/Create")
	defer func() { tracing.EndSpan(span, err) }()

	// 1. 暂存新增(校验ID必须为0)
	repo := s.store.NewRepository()
	if err := repo.Add(ctx, item); err != nil {
		return nil, err
	}

	// 2. 提交,存储层回写ID和时间戳
	if err := repo.Persist(ctx); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("todo.item_id", item.ID))
	s.afterCommit(ctx, EventItemCreated, []int{item.ID})
	return item, nil
}

// Update 更新
func (s *service) Update(ctx context.Context, item *TodoItem) (_ *TodoItem, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "todo.Service/Update")
	defer func() { tracing.EndSpan(span, err) }()

	if item == nil {
		return nil, ErrNilItem
	}
	span.SetAttributes(attribute.Int("todo.item_id", item.ID))

	// 1. 暂存修改,内容未变化时不会暂存任何东西
	repo := s.store.NewRepository()
	updated, err := repo.Update(ctx, item)
	if err != nil {
		return nil, err
	}
	changed := repo.HasChanges()

	// 2. 提交(无变更时为no-op)
	if err := repo.Persist(ctx); err != nil {
		return nil, err
	}

	if changed {
		s.afterCommit(ctx, EventItemUpdated, []int{updated.ID})
	}
	return updated, nil
}

// DeleteOne 删除单条
func (s *service) DeleteOne(ctx context.Context, id int) (bool, error) {
	deleted, err := s.DeleteMany(ctx, []int{id})
	if err != nil {
		return false, err
	}
	for _, deletedID := range deleted {
		if deletedID == id {
			return true, nil
		}
	}
	return false, nil
}

// DeleteMany 批量删除
func (s *service) DeleteMany(ctx context.Context, ids []int) (_ []int, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "todo.Service/DeleteMany")
	span.SetAttributes(attribute.Int("todo.requested_count", len(ids)))
	defer func() { tracing.EndSpan(span, err) }()

	// 1. 找出实际存在的记录
	repo := s.store.NewRepository()
	matched, err := repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// 2. 一条都没有,直接返回
	if len(matched) == 0 {
		return []int{}, nil
	}

	// 3. 暂存删除并提交
	if err := repo.RemoveRange(ctx, matched); err != nil {
		return nil, err
	}
	if err := repo.Persist(ctx); err != nil {
		return nil, err
	}

	deleted := IDs(matched)
	span.SetAttributes(attribute.Int("todo.deleted_count", len(deleted)))
	s.afterCommit(ctx, EventItemDeleted, deleted)
	return deleted, nil
}

// afterCommit 提交成功后的附加动作:指标、缓存失效、发布事件
func (s *service) afterCommit(ctx context.Context, eventType EventType, ids []int) {
	metrics.ItemsMutated(string(eventType), len(ids))

	// 新建的记录不可能在缓存中
	if s.cache != nil && eventType != EventItemCreated {
		if err := s.cache.Delete(ctx, ids...); err != nil {
			s.logger.Warn("删除缓存失败", zap.Ints("ids", ids), zap.Error(err))
		}
	}

	if s.publisher != nil {
		event := NewEvent(eventType, ids)
		err := s.publisher.Publish(ctx, event)
		metrics.EventPublished(string(eventType), err == nil)
		if err != nil {
			s.logger.Warn("发布事件失败",
				zap.String("type", string(eventType)),
				zap.String("event_id", event.ID),
				zap.Error(err),
			)
		}
	}
}
