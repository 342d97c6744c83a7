package errors

import (
	"builderboard/pkg/errors/ecode"
	stderrors "errors"
	"fmt"

	"go.uber.org/multierr"
)

// codeError 带业务错误码的错误，cause 保留原始错误链
type codeError struct {
	code  int
	msg   string
	cause error
}

func (e *codeError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *codeError) Unwrap() error {
	return e.cause
}

func New(msg string) error {
	return stderrors.New(msg)
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// WithCode 创建一个带错误码的错误
func WithCode(code int, msg string) error {
	if msg == "" {
		msg = ecode.Message(code)
	}
	return &codeError{code: code, msg: msg}
}

// Wrap 给已有错误附加错误码和提示
func Wrap(err error, code int, msg string) error {
	if err == nil {
		return nil
	}
	if msg == "" {
		msg = ecode.Message(code)
	}
	return &codeError{code: code, msg: msg, cause: err}
}

func Wrapf(err error, code int, format string, args ...interface{}) error {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// Code 取出错误链上最近的错误码，没有则为 Unknown
func Code(err error) int {
	if err == nil {
		return ecode.Success
	}
	var ce *codeError
	if stderrors.As(err, &ce) {
		return ce.code
	}
	return ecode.Unknown
}

// DecodeErr 解析错误，返回错误码和提示信息
func DecodeErr(err error) (int, string) {
	if err == nil {
		return ecode.Success, ecode.Message(ecode.Success)
	}
	var ce *codeError
	if stderrors.As(err, &ce) {
		return ce.code, ce.Error()
	}
	return ecode.Unknown, err.Error()
}

// Combine 合并多个错误，nil 会被忽略
func Combine(errs ...error) error {
	return multierr.Combine(errs...)
}

// Errors 拆开 Combine 的结果
func Errors(err error) []error {
	return multierr.Errors(err)
}
