// Package apperr 定义服务层对外暴露的错误种类
// 调用方只通过 errors.Is 判断种类，不解析错误消息
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidToken       = errors.New("Token无效")
	ErrTokenExpired       = errors.New("Token已过期")
	ErrUnknownUser        = errors.New("用户不存在")
	ErrNotFound           = errors.New("资源不存在")
	ErrValidation         = errors.New("参数校验失败")
	ErrInvalidPage        = errors.New("分页参数无效")
	ErrStoreFailure       = errors.New("存储服务异常")
	ErrConflict           = errors.New("资源已存在")
	ErrForbidden          = errors.New("无权操作")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrTooManyRequests    = errors.New("操作太频繁，请稍后再试")
)

// Error 带说明的错误，Kind 为上面的某个哨兵错误
type Error struct {
	Kind   error
	Detail string
	Err    error // 原始错误（可选）
}

func (e *Error) Error() string {
	switch {
	case e.Detail != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	case e.Detail != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.Error()
	}
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// New 生成指定种类的错误
func New(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Validation 参数校验错误
func Validation(format string, args ...any) error {
	return New(ErrValidation, format, args...)
}

// InvalidPage 分页参数错误
func InvalidPage(format string, args ...any) error {
	return New(ErrInvalidPage, format, args...)
}

// NotFound 资源不存在
func NotFound(format string, args ...any) error {
	return New(ErrNotFound, format, args...)
}

// Store 包装存储层错误，保留原始错误链
func Store(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: ErrStoreFailure, Err: err}
}

// DetailOf 返回错误说明，没有时为空
func DetailOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Detail
	}
	return ""
}
