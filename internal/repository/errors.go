package repository

import "errors"

// 仓储层统一错误，服务层通过 errors.Is 判断并映射为 HTTP 状态码
var (
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("record not found")

	// ErrConflict 唯一性约束冲突（名称重复、引用未清理等）
	ErrConflict = errors.New("record conflict")

	// ErrInvalidSortKey 排序字段不在白名单内
	ErrInvalidSortKey = errors.New("invalid sort key")

	// ErrVersionConflict 乐观锁版本冲突，调用方需要重读后重试
	ErrVersionConflict = errors.New("version conflict")
)
