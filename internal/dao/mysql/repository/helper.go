package repository

import (
	"errors"

	"forum_server/pkg/errorx"

	"gorm.io/gorm"
)

// ==================== 错误包装辅助函数 ====================

// wrapDBError 包装数据库错误
// 根据错误类型返回不同的错误码：
//   - ErrRecordNotFound -> CodeNotFound
//   - ErrDuplicatedKey -> CodeConflict
//   - 其他错误 -> CodeDBError
func wrapDBError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errorx.Wrap(err, dbErrorCode(err), msg)
}

// wrapDBErrorf 包装数据库错误（支持格式化消息）
func wrapDBErrorf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return errorx.Wrapf(err, dbErrorCode(err), format, args...)
}

func dbErrorCode(err error) int {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errorx.CodeNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return errorx.CodeConflict
	default:
		return errorx.CodeDBError
	}
}

// requireAffected 条件更新未命中任何行时返回 CodeConflict
// 用于 "WHERE status = ?" 这类前置条件写入：并发竞争中落败的一方会看到 0 行
func requireAffected(result *gorm.DB, format string, args ...any) error {
	if result.Error != nil {
		return wrapDBErrorf(result.Error, format, args...)
	}
	if result.RowsAffected == 0 {
		return errorx.Newf(errorx.CodeConflict, format, args...)
	}
	return nil
}
