package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind 错误类别枚举（代替按错误文案做字符串匹配）。
type Kind int

const (
	KindInternal     Kind = iota // 未分类的服务端错误
	KindValidation               // 参数缺失 / 非法
	KindNotFound                 // 记录不存在
	KindConflict                 // 唯一约束冲突（邮箱、证件号等）
	KindUnauthorized             // 未认证 / 凭证无效
	KindForbidden                // 已认证但权限不足
)

// Error 携带 Kind 的业务错误，支持 errors.Is / errors.As / Unwrap 链。
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New 创建带类别的错误。
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap 包装底层错误并附加类别。
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf 提取错误类别；非 *Error 一律视为 Internal。
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Is 判断错误是否属于指定类别。
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus Kind -> HTTP 状态码映射。
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
