// Package recorder
package recorder

import (
	"context"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/log"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/operation"
	"sync"
	"sync/atomic"
	"time"
)

// DatabaseRecorder 异步批量写入数据库
// Record 不会阻塞, 缓冲区满时丢弃新记录
type DatabaseRecorder struct {
	logger        log.LoggerInterface
	operation     operation.TrafficOperationInterface
	batchSize     int
	flushInterval time.Duration
	records       chan *operation.TrafficRecord
	mu            sync.RWMutex
	closed        bool
	dropped       atomic.Uint64
	done          chan struct{}
}

func NewDatabaseRecorder(
	logger log.LoggerInterface,
	trafficOperation operation.TrafficOperationInterface,
	batchSize int,
	flushInterval time.Duration,
) *DatabaseRecorder {
	if batchSize <= 0 {
		batchSize = 64
	}
	if flushInterval <= 0 {
		flushInterval = time.Second
	}
	recorder := &DatabaseRecorder{
		logger:        logger,
		operation:     trafficOperation,
		batchSize:     batchSize,
		flushInterval: flushInterval,
		records:       make(chan *operation.TrafficRecord, batchSize*4),
		done:          make(chan struct{}),
	}
	go recorder.run()
	return recorder
}

func (r *DatabaseRecorder) Record(sessionId string, callsign string, direction fsd.Direction, command fsd.ClientCommand, line string) {
	record := r.operation.NewTrafficRecord(sessionId, callsign, direction, command, line)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return
	}
	select {
	case r.records <- record:
	default:
		if r.dropped.Add(1) == 1 {
			r.logger.Warn("Traffic recorder buffer full, records are being dropped")
		}
	}
}

// Dropped 因缓冲区满被丢弃的记录数
func (r *DatabaseRecorder) Dropped() uint64 { return r.dropped.Load() }

func (r *DatabaseRecorder) run() {
	defer close(r.done)
	ticker := time.NewTicker(r.flushInterval)
	defer ticker.Stop()
	batch := make([]*operation.TrafficRecord, 0, r.batchSize)
	for {
		select {
		case record, ok := <-r.records:
			if !ok {
				r.flush(batch)
				return
			}
			batch = append(batch, record)
			if len(batch) >= r.batchSize {
				batch = r.flush(batch)
			}
		case <-ticker.C:
			batch = r.flush(batch)
		}
	}
}

func (r *DatabaseRecorder) flush(batch []*operation.TrafficRecord) []*operation.TrafficRecord {
	if len(batch) == 0 {
		return batch
	}
	if err := r.operation.SaveTrafficRecords(batch); err != nil {
		r.logger.ErrorF("Fail to save %d traffic records, %v", len(batch), err)
	}
	return make([]*operation.TrafficRecord, 0, r.batchSize)
}

// Close 停止接收并写出剩余记录
func (r *DatabaseRecorder) Close() error {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.records)
	}
	r.mu.Unlock()
	<-r.done
	return nil
}

// Invoke 作为退出回调使用
func (r *DatabaseRecorder) Invoke(_ context.Context) error { return r.Close() }

var _ fsd.TrafficRecorder = (*DatabaseRecorder)(nil)
