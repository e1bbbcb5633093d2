// Package fsd_client
package fsd_client

import (
	"github.com/half-nothing/simple-fsd-client/internal/fsd_client/packet"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
	"time"
)

// Event 分发给回调的事件, 解码出的报文本身就是事件
type Event interface {
	Category() fsd.Category
}

// StateChange 会话状态变化
type StateChange struct {
	From fsd.ConnectionStatus
	To   fsd.ConnectionStatus
	// ErrorCode 仅在进入 StatusError 时有意义
	ErrorCode string
}

func (e *StateChange) Category() fsd.Category { return fsd.CategoryStateChange }

// LogonSent 身份识别与登录报文已经入队, 此后才允许发送
type LogonSent struct {
	ClientType fsd.ClientType
	Callsign   string
}

func (e *LogonSent) Category() fsd.Category { return fsd.CategoryLogon }

// RawLine 收到的每一行原始报文, 先于解码结果分发
type RawLine struct {
	Direction fsd.Direction
	Line      string
}

func (e *RawLine) Category() fsd.Category { return fsd.CategoryRawLine }

// DecodeFailure 无法解析的报文
type DecodeFailure struct {
	Line string
	Err  error
}

func (e *DecodeFailure) Category() fsd.Category { return fsd.CategoryDecodeFailure }

// PongReceived $PO 回复以及由时间戳计算出的往返时间
type PongReceived struct {
	*packet.Pong
	Elapsed time.Duration
}

// ControllerAtis 收到 E 行后汇总的完整 ATIS
type ControllerAtis struct {
	From string
	Atis fsd.ControllerAtis
}

func (e *ControllerAtis) Category() fsd.Category { return fsd.CategoryControllerAtis }
