// Package packet
package packet

import (
	"errors"
	"fmt"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
	"strings"
)

var (
	ErrRequiredField  = errors.New("required field is empty")
	ErrIllegalField   = errors.New("field contains illegal character")
	ErrEmptyLine      = errors.New("empty line")
	ErrTooFewTokens   = errors.New("too few tokens")
	ErrMalformedField = errors.New("malformed field")
)

// FieldError 编码时调用方提供的数据不合法
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ParseError 解码失败, 只会被记录, 不会中断处理循环
type ParseError struct {
	Command fsd.ClientCommand
	Line    string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Command == "" {
		return fmt.Sprintf("parse %q: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s packet %q: %v", e.Command, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func requiredField(name string, value string) error {
	if value == "" {
		return &FieldError{Field: name, Err: ErrRequiredField}
	}
	if strings.ContainsAny(value, illegalCharacters) {
		return &FieldError{Field: name, Err: ErrIllegalField}
	}
	return nil
}

// optionalField 允许为空, 但不能包含分隔符
func optionalField(name string, value string) error {
	if strings.ContainsAny(value, illegalCharacters) {
		return &FieldError{Field: name, Err: ErrIllegalField}
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func malformed(field string, value string) error {
	return fmt.Errorf("%w %s=%q", ErrMalformedField, field, value)
}
