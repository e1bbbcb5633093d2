// Package service
package service

import (
	. "github.com/half-nothing/simple-fsd-client/internal/interfaces/service"
	"strings"
)

type FieldValidator struct {
	Min, Max          int
	ErrShort, ErrLong *ApiStatus
}

func (v *FieldValidator) CheckString(value string) *ApiStatus {
	length := len(value)
	if length > v.Max {
		return v.ErrLong
	}
	if length < v.Min {
		return v.ErrShort
	}
	return nil
}

var (
	ErrIllegalCharacter = ApiStatus{StatusName: "ILLEGAL_CHARACTER", Description: "内容包含报文分隔符", HttpCode: BadRequest}

	operatorValidator = &FieldValidator{
		Min:      1,
		Max:      32,
		ErrShort: &ErrLackParam,
		ErrLong:  &ApiStatus{StatusName: "OPERATOR_TOO_LONG", Description: "操作者名称过长", HttpCode: BadRequest},
	}
	callsignValidator = &FieldValidator{
		Min:      2,
		Max:      16,
		ErrShort: &ApiStatus{StatusName: "CALLSIGN_TOO_SHORT", Description: "呼号过短", HttpCode: BadRequest},
		ErrLong:  &ApiStatus{StatusName: "CALLSIGN_TOO_LONG", Description: "呼号过长", HttpCode: BadRequest},
	}
	messageValidator = &FieldValidator{
		Min:      1,
		Max:      480,
		ErrShort: &ErrLackParam,
		ErrLong:  &ApiStatus{StatusName: "MESSAGE_TOO_LONG", Description: "消息过长", HttpCode: BadRequest},
	}
)

// checkWireField 字段会被直接写入报文, 不允许包含换行
func checkWireField(validator *FieldValidator, value string) *ApiStatus {
	if status := validator.CheckString(value); status != nil {
		return status
	}
	if strings.ContainsAny(value, "\r\n") {
		return &ErrIllegalCharacter
	}
	return nil
}
