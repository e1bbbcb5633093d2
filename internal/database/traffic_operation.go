package database

import (
	"context"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
	. "github.com/half-nothing/simple-fsd-client/internal/interfaces/operation"
	"gorm.io/gorm"
	"time"
)

// trafficInsertBatch 单条 INSERT 语句最多包含的记录数
const trafficInsertBatch = 100

type TrafficOperation struct {
	db           *gorm.DB
	queryTimeout time.Duration
}

func NewTrafficOperation(db *gorm.DB, queryTimeout time.Duration) *TrafficOperation {
	return &TrafficOperation{db: db, queryTimeout: queryTimeout}
}

func (trafficOperation *TrafficOperation) NewTrafficRecord(sessionId string, callsign string, direction fsd.Direction, command fsd.ClientCommand, line string) (record *TrafficRecord) {
	return &TrafficRecord{
		SessionId: sessionId,
		Callsign:  callsign,
		Direction: direction,
		Command:   command,
		Line:      line,
		CreatedAt: time.Now(),
	}
}

func (trafficOperation *TrafficOperation) SaveTrafficRecords(records []*TrafficRecord) (err error) {
	if len(records) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), trafficOperation.queryTimeout)
	defer cancel()
	return trafficOperation.db.WithContext(ctx).CreateInBatches(records, trafficInsertBatch).Error
}

func (trafficOperation *TrafficOperation) GetRecentTraffic(limit int) (records []*TrafficRecord, err error) {
	if limit <= 0 {
		return nil, ErrTrafficLimit
	}
	ctx, cancel := context.WithTimeout(context.Background(), trafficOperation.queryTimeout)
	defer cancel()
	records = make([]*TrafficRecord, 0, limit)
	err = trafficOperation.db.WithContext(ctx).Order("id desc").Limit(limit).Find(&records).Error
	return
}

func (trafficOperation *TrafficOperation) GetSessionTraffic(sessionId string, limit int) (records []*TrafficRecord, err error) {
	if sessionId == "" {
		return nil, ErrEmptySessionId
	}
	if limit <= 0 {
		return nil, ErrTrafficLimit
	}
	ctx, cancel := context.WithTimeout(context.Background(), trafficOperation.queryTimeout)
	defer cancel()
	records = make([]*TrafficRecord, 0, limit)
	err = trafficOperation.db.WithContext(ctx).Where("session_id = ?", sessionId).Order("id desc").Limit(limit).Find(&records).Error
	return
}

func (trafficOperation *TrafficOperation) DeleteTrafficBefore(before time.Time) (rows int64, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), trafficOperation.queryTimeout)
	defer cancel()
	result := trafficOperation.db.WithContext(ctx).Where("created_at < ?", before).Delete(&TrafficRecord{})
	return result.RowsAffected, result.Error
}

var _ TrafficOperationInterface = (*TrafficOperation)(nil)
