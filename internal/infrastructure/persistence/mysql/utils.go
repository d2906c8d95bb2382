package mysql

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/xiebiao/todo/pkg/errors"
)

// wrapDBError 将驱动错误包装为数据库错误(50001)
// 已经是AppError的错误(如ErrItemNotFound)原样返回
func wrapDBError(err error, message string) error {
	if err == nil {
		return nil
	}
	if apperrors.IsAppError(err) {
		return err
	}
	return apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, message)
}

// isRecordNotFound 判断是否为记录不存在
func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
