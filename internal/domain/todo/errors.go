package todo

import (
	apperrors "github.com/xiebiao/todo/pkg/errors"
)

// 待办事项领域错误定义
// 说明:读取不存在的记录返回nil而不是错误,以下错误只用于写路径
var (
	// ErrItemNotFound 更新时目标记录不存在
	ErrItemNotFound = apperrors.New(apperrors.ErrCodeItemNotFound, "TodoItem was not found")

	// ErrItemIDAssigned 新建时已带ID(ID必须由存储层分配)
	ErrItemIDAssigned = apperrors.New(apperrors.ErrCodeInvalidState, "TodoItem.Id must be 0 when adding a new item")

	// ErrNilItem 传入了空实体
	ErrNilItem = apperrors.New(apperrors.ErrCodeInvalidParams, "TodoItem must not be nil")
)

// NotFoundError 返回带ID信息的不存在错误,errors.Is(err, ErrItemNotFound)为true
func NotFoundError(id int) error {
	return apperrors.Newf(apperrors.ErrCodeItemNotFound, "TodoItem with id %d was not found", id)
}
