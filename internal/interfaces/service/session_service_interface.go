// Package service
package service

import (
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
)

// SessionHandle 控制接口需要的会话操作
type SessionHandle interface {
	Status() fsd.ConnectionStatus
	NetworkErrorCode() string
	SessionId() string
	Callsign() string
	LocalCapabilities() fsd.CapabilityFlags
	RemoteCapabilities(callsign string) (fsd.CapabilityFlags, bool)
	RemoteCallsigns() []string
	SendPrivateMessage(to string, message string) error
	SendRadioMessage(frequencies []fsd.Frequency, message string) error
	SendBroadcastMessage(message string) error
}

type SessionServiceInterface interface {
	GetStatus() *ApiResponse[SessionStatus]
	SendMessage(req *RequestSendMessage) *ApiResponse[ResponseSendMessage]
	GetRemotes() *ApiResponse[ResponseRemotes]
	GetRemoteCapabilities(req *RequestRemoteCapabilities) *ApiResponse[RemoteCapabilities]
}

type SessionStatus struct {
	SessionId    string   `json:"session_id"`
	Callsign     string   `json:"callsign"`
	Status       string   `json:"status"`
	NetworkError string   `json:"network_error"`
	Capabilities []string `json:"capabilities"`
	Recording    bool     `json:"recording"`
}

// RequestSendMessage To 为呼号时发送私聊, 为 @频率[&频率] 时发送无线电消息, 为 * 时广播
type RequestSendMessage struct {
	JwtHeader
	To      string `json:"to"`
	Message string `json:"message"`
}

type ResponseSendMessage bool

type ResponseRemotes []string

type RequestRemoteCapabilities struct {
	JwtHeader
	Callsign string `param:"callsign"`
}

type RemoteCapabilities struct {
	Callsign     string   `json:"callsign"`
	Capabilities []string `json:"capabilities"`
}
