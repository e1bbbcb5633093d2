// Package operation
package operation

import (
	"errors"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
	"time"
)

var (
	ErrTrafficLimit   = errors.New("traffic limit must be greater than zero")
	ErrEmptySessionId = errors.New("session id must not be empty")
)

// TrafficRecord 会话收发的一行原始报文
type TrafficRecord struct {
	ID        uint              `gorm:"primarykey" json:"id"`
	SessionId string            `gorm:"size:32;index;not null" json:"session_id"`
	Callsign  string            `gorm:"size:16;index" json:"callsign"`
	Direction fsd.Direction     `gorm:"not null" json:"direction"`
	Command   fsd.ClientCommand `gorm:"size:8" json:"command"`
	Line      string            `gorm:"type:text;not null" json:"line"`
	CreatedAt time.Time         `gorm:"index" json:"created_at"`
}

// TrafficOperationInterface 流量记录操作接口定义
type TrafficOperationInterface interface {
	// NewTrafficRecord 创建流量记录(不提交数据库)
	NewTrafficRecord(sessionId string, callsign string, direction fsd.Direction, command fsd.ClientCommand, line string) (record *TrafficRecord)
	// SaveTrafficRecords 批量写入流量记录, 当err为nil时写入成功
	SaveTrafficRecords(records []*TrafficRecord) (err error)
	// GetRecentTraffic 获取最近的limit条记录, 按时间倒序, 当err为nil时返回值records有效
	GetRecentTraffic(limit int) (records []*TrafficRecord, err error)
	// GetSessionTraffic 获取指定会话最近的limit条记录, 按时间倒序, 当err为nil时返回值records有效
	GetSessionTraffic(sessionId string, limit int) (records []*TrafficRecord, err error)
	// DeleteTrafficBefore 删除before之前的记录, 返回删除的条数
	DeleteTrafficBefore(before time.Time) (rows int64, err error)
}
