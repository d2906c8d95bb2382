package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/todo/internal/domain/todo"
)

// TodoStore 待办事项仓储工厂
// 每次NewRepository返回一个新的工作单元，共享底层连接池
type TodoStore struct {
	db    *gorm.DB
	tx    *TxManager
	hooks []PreCommitHook
	now   func() time.Time
}

// NewTodoStore 创建仓储工厂，默认注册时间戳钩子
func NewTodoStore(db *gorm.DB) *TodoStore {
	return &TodoStore{
		db:    db,
		tx:    NewTxManager(db),
		hooks: []PreCommitHook{TimestampHook},
		now:   time.Now,
	}
}

// NewRepository 创建工作单元
func (s *TodoStore) NewRepository() todo.Repository {
	return &todoRepository{
		db:    s.db,
		tx:    s.tx,
		hooks: s.hooks,
		now:   s.now,
	}
}

// todoRepository 待办事项仓储实现(GORM)
// 设计说明:
// 1. 实现domain/todo/repository.go定义的接口
// 2. 查询直接访问数据库；Add/Update/RemoveRange只登记到changeSet
// 3. Persist在一个事务内按登记顺序写入，提交前执行钩子
// 4. 不是并发安全的，只在一次业务操作内使用
type todoRepository struct {
	db      *gorm.DB
	tx      *TxManager
	hooks   []PreCommitHook
	now     func() time.Time
	changes changeSet
}

// GetAll 查询全部(按ID排序)
func (r *todoRepository) GetAll(ctx context.Context) ([]*todo.TodoItem, error) {
	var models []TodoItemModel
	if err := r.getDB(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, wrapDBError(err, "查询待办事项列表失败")
	}
	return toTodoEntities(models), nil
}

// GetByID 根据ID查询，不存在返回nil, nil
func (r *todoRepository) GetByID(ctx context.Context, id int) (*todo.TodoItem, error) {
	var model TodoItemModel
	err := r.getDB(ctx).First(&model, id).Error
	if err != nil {
		if isRecordNotFound(err) {
			return nil, nil
		}
		return nil, wrapDBError(err, "查询待办事项失败")
	}
	return toTodoEntity(&model), nil
}

// GetByIDs 根据ID集合查询
func (r *todoRepository) GetByIDs(ctx context.Context, ids []int) ([]*todo.TodoItem, error) {
	if len(ids) == 0 {
		return []*todo.TodoItem{}, nil
	}

	var models []TodoItemModel
	if err := r.getDB(ctx).Where("id IN ?", ids).Order("id").Find(&models).Error; err != nil {
		return nil, wrapDBError(err, "批量查询待办事项失败")
	}
	return toTodoEntities(models), nil
}

// Add 登记新增
func (r *todoRepository) Add(ctx context.Context, item *todo.TodoItem) error {
	if item == nil {
		return todo.ErrNilItem
	}
	if item.IsPersisted() {
		return todo.ErrItemIDAssigned
	}
	r.changes.track(StateAdded, item)
	return nil
}

// Update 登记修改
func (r *todoRepository) Update(ctx context.Context, item *todo.TodoItem) (*todo.TodoItem, error) {
	if item == nil {
		return nil, todo.ErrNilItem
	}

	// 1. 加载已存储的记录
	stored, err := r.GetByID(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, todo.NotFoundError(item.ID)
	}

	// 2. 内容未变化，不登记
	if stored.SameContent(item) {
		return stored, nil
	}

	// 3. 复制可修改字段并登记
	stored.ApplyChanges(item)
	r.changes.track(StateModified, stored)
	return stored, nil
}

// RemoveRange 登记删除
func (r *todoRepository) RemoveRange(ctx context.Context, items []*todo.TodoItem) error {
	for _, item := range items {
		if item == nil {
			continue
		}
		r.changes.track(StateDeleted, item)
	}
	return nil
}

// HasChanges 是否有未提交变更
func (r *todoRepository) HasChanges() bool {
	return r.changes.len() > 0
}

// Persist 提交全部暂存变更
func (r *todoRepository) Persist(ctx context.Context) error {
	if !r.HasChanges() {
		return nil
	}

	// 1. 提交前钩子(精度与datetime(3)一致)
	now := r.now().UTC().Truncate(time.Millisecond)
	for _, hook := range r.hooks {
		hook(r.changes.entries, now)
	}

	// 2. 事务内写入
	err := r.tx.Transaction(ctx, func(ctx context.Context) error {
		return r.write(ctx)
	})
	if err != nil {
		r.rollbackIDs()
		return wrapDBError(err, "提交待办事项变更失败")
	}

	// 3. 清空已提交的变更
	r.changes.reset()
	return nil
}

// write 按登记顺序写入，删除合并为一条语句
func (r *todoRepository) write(ctx context.Context) error {
	db := r.getDB(ctx)
	var deleteIDs []int
	deleting := make(map[int]struct{})

	for _, e := range r.changes.entries {
		item := e.Entity.(*todo.TodoItem)

		switch e.State {
		case StateAdded:
			model := toTodoModel(item)
			if err := db.Create(model).Error; err != nil {
				return err
			}
			// 回填自增ID
			item.ID = model.ID

		case StateModified:
			result := db.Model(&TodoItemModel{}).
				Where("id = ?", item.ID).
				Updates(map[string]interface{}{
					"title":      item.Title,
					"is_done":    item.IsDone,
					"updated_at": item.UpdatedAt,
				})
			if result.Error != nil {
				return result.Error
			}
			// 加载之后被并发删除
			if result.RowsAffected == 0 {
				return todo.NotFoundError(item.ID)
			}

		case StateDeleted:
			if _, ok := deleting[item.ID]; !ok {
				deleting[item.ID] = struct{}{}
				deleteIDs = append(deleteIDs, item.ID)
			}
		}
	}

	if len(deleteIDs) == 0 {
		return nil
	}
	result := db.Delete(&TodoItemModel{}, deleteIDs)
	if result.Error != nil {
		return result.Error
	}
	if int(result.RowsAffected) != len(deleteIDs) {
		return todo.ErrItemNotFound
	}
	return nil
}

// rollbackIDs 事务回滚后撤销已回填的自增ID
func (r *todoRepository) rollbackIDs() {
	for _, e := range r.changes.entries {
		if e.State == StateAdded {
			e.Entity.(*todo.TodoItem).ID = 0
		}
	}
}

// getDB 获取DB实例(支持事务)
func (r *todoRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}
