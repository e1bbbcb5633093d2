// Package fsd
package fsd

import "strings"

// ServerType 决定登录流程
type ServerType int

const (
	// ServerLegacy 连接建立后立即发送登录报文
	ServerLegacy ServerType = iota
	// ServerVatsim 等待服务器发送 $DI 后再进行身份识别与登录
	ServerVatsim
)

var serverTypeString = []string{"legacy", "vatsim"}

func ParseServerType(value string) (ServerType, bool) {
	for i, name := range serverTypeString {
		if strings.EqualFold(name, value) {
			return ServerType(i), true
		}
	}
	return ServerLegacy, false
}

func (t ServerType) String() string {
	if t < 0 || int(t) >= len(serverTypeString) {
		return serverTypeString[ServerLegacy]
	}
	return serverTypeString[t]
}

func (t ServerType) Index() int {
	return int(t)
}

// ClientType 登录身份
type ClientType int

const (
	ClientUnknown ClientType = iota
	ClientPilot
	ClientAtc
)

var clientTypeString = []string{"unknown", "pilot", "atc"}

func ParseClientType(value string) (ClientType, bool) {
	for i, name := range clientTypeString {
		if i > 0 && strings.EqualFold(name, value) {
			return ClientType(i), true
		}
	}
	return ClientUnknown, false
}

func (t ClientType) String() string {
	if t < 0 || int(t) >= len(clientTypeString) {
		return clientTypeString[ClientUnknown]
	}
	return clientTypeString[t]
}

func (t ClientType) Index() int {
	return int(t)
}

// SimType 模拟器类型标记, 原样透传
type SimType int

const (
	SimUnknown SimType = iota
	SimMSFS95
	SimMSFS98
	SimMSCFS
	SimXPlane
	SimAS2
	SimPS1
)

var simTypeString = []string{"Unknown", "MSFS95", "MSFS98", "MSCFS", "XPLANE", "AS2", "PS1"}

func ParseSimType(value string) (SimType, bool) {
	for i, name := range simTypeString {
		if strings.EqualFold(name, value) {
			return SimType(i), true
		}
	}
	return SimUnknown, false
}

func (t SimType) String() string {
	if t < 0 || int(t) >= len(simTypeString) {
		return simTypeString[SimUnknown]
	}
	return simTypeString[t]
}

type PilotConnection struct {
	Callsign string
	RealName string
	SimType  SimType
	Rating   PilotRating
}

type AtcConnection struct {
	Callsign string
	RealName string
	Rating   AtcRating
}

// LoginInfo 登录信息, Pilot 与 Atc 只会有一个非空
type LoginInfo struct {
	Host     string
	Port     uint
	Cid      string
	Password string
	Pilot    *PilotConnection
	Atc      *AtcConnection
}

func (info *LoginInfo) ClientType() ClientType {
	switch {
	case info == nil:
		return ClientUnknown
	case info.Pilot != nil:
		return ClientPilot
	case info.Atc != nil:
		return ClientAtc
	default:
		return ClientUnknown
	}
}

func (info *LoginInfo) Callsign() string {
	switch info.ClientType() {
	case ClientPilot:
		return info.Pilot.Callsign
	case ClientAtc:
		return info.Atc.Callsign
	default:
		return ""
	}
}

// SessionInfo 创建会话时提供的客户端信息
type SessionInfo struct {
	ServerType     ServerType
	ClientName     string
	VersionMajor   int
	VersionMinor   int
	HostApp        string
	PublicClientId uint16
	PrivateKey     string
	Capabilities   CapabilityFlags
}
