// Package fsd
package fsd

// Direction 流量记录的方向
type Direction byte

const (
	Inbound Direction = iota
	Outbound
)

func (d Direction) String() string {
	if d == Outbound {
		return "<-"
	}
	return "->"
}

// TrafficRecorder 记录会话收发的每一行原始报文
type TrafficRecorder interface {
	Record(sessionId string, callsign string, direction Direction, command ClientCommand, line string)
	Close() error
}
