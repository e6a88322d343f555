package appraisal

import "errors"

// 业务层错误，handler 通过 errors.Is 映射为 HTTP 状态码
var (
	// ErrSubmissionClosed 作答记录已标记完成，答案不可再修改
	ErrSubmissionClosed = errors.New("submission is completed and closed for updates")

	// ErrGroupNotFound 答案文档中不存在指定的组
	ErrGroupNotFound = errors.New("answer group not found")

	// ErrFieldNotFound 答案组中不存在指定的字段
	ErrFieldNotFound = errors.New("answer field not found")

	// ErrInvalidAnswerData 批量答案载荷的结构不合法
	ErrInvalidAnswerData = errors.New("invalid answer data")

	// ErrYearMismatch 周期年份必须是当前年份
	ErrYearMismatch = errors.New("cycle year must be the current year")
)
