package service

import "errors"

// 业务错误分类，API 层据此映射 HTTP 状态码
var (
	// ErrNotFound 所引用的用户、规则或记录不存在，或对调用者不可见
	ErrNotFound = errors.New("记录不存在")
	// ErrInvalidRule 定期规则违反频率字段约束
	ErrInvalidRule = errors.New("无效的定期规则")
	// ErrInvalidStateTransition 预定收支的非法状态迁移
	ErrInvalidStateTransition = errors.New("非法的状态迁移")
	// ErrValidation 写入参数缺失或越界
	ErrValidation = errors.New("参数校验失败")
	// ErrStoreUnavailable 底层存储不可用，核心不做重试
	ErrStoreUnavailable = errors.New("存储不可用")
)
