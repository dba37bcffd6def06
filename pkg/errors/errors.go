package errors

import (
	"errors"
	"fmt"
)

// ErrNotFound 标识符未命中任何有效（未软删除）记录
// 各模块的“不存在”错误都应包装它，便于 Handler 统一映射为 404
var ErrNotFound = errors.New("记录不存在")

// ValidationError 请求参数缺失或非法，在访问存储之前检出
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidation 创建校验错误
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// PersistenceError 存储层失败（含事务失败），保留原始错误用于诊断
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s 失败: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Persistence 包装存储层错误；err 为 nil 时返回 nil
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

// IsValidation 判断是否为校验错误
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsPersistence 判断是否为存储层错误
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
