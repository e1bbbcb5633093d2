// Package fsd
package fsd

type ConnectionStatus int

const (
	// Idle 没有会话
	Idle ConnectionStatus = iota
	// SessionCreated 会话已创建, 尚未连接
	SessionCreated
	Connecting
	Connected
	Disconnecting
	Disconnected
	// StatusError 传输层出错, 直到重新 Connect 或销毁会话前保持不变
	StatusError
)

var connectionStatusString = []string{"Idle", "SessionCreated", "Connecting", "Connected", "Disconnecting",
	"Disconnected", "Error"}

func (s ConnectionStatus) String() string {
	if s < 0 || int(s) >= len(connectionStatusString) {
		return "Unknown"
	}
	return connectionStatusString[s]
}

func (s ConnectionStatus) Index() int {
	return int(s)
}

// Connectable 是否可以发起新的连接
func (s ConnectionStatus) Connectable() bool {
	return s == SessionCreated || s == Disconnected || s == StatusError
}

// Online 传输层是否处于可用状态
func (s ConnectionStatus) Online() bool {
	return s == Connected || s == Disconnecting
}
