// Package recorder
package recorder

import (
	"context"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/config"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/global"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/log"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/natefinch/lumberjack.v2"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DumpRecord 转储文件中的一条记录, 文件为连续的 msgpack 对象流
type DumpRecord struct {
	Time      int64             `msgpack:"t"` // Unix 纳秒
	SessionId string            `msgpack:"s"`
	Callsign  string            `msgpack:"c"`
	Direction fsd.Direction     `msgpack:"d"`
	Command   fsd.ClientCommand `msgpack:"k"`
	Line      string            `msgpack:"l"`
}

func (r *DumpRecord) Timestamp() time.Time { return time.Unix(0, r.Time) }

// FileRecorder 将流量写入按大小滚动的转储文件
type FileRecorder struct {
	logger log.LoggerInterface
	clock  func() time.Time
	mu     sync.Mutex
	file   *lumberjack.Logger
	closed bool
}

func NewFileRecorder(logger log.LoggerInterface, config *config.RecorderConfig) (*FileRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(config.FilePath), global.DefaultDirectoryPermission); err != nil {
		return nil, err
	}
	return &FileRecorder{
		logger: logger,
		clock:  time.Now,
		file: &lumberjack.Logger{
			Filename:   config.FilePath,
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxBackups,
			Compress:   config.Compress,
		},
	}, nil
}

func (r *FileRecorder) Record(sessionId string, callsign string, direction fsd.Direction, command fsd.ClientCommand, line string) {
	data, err := msgpack.Marshal(&DumpRecord{
		Time:      r.clock().UnixNano(),
		SessionId: sessionId,
		Callsign:  callsign,
		Direction: direction,
		Command:   command,
		Line:      line,
	})
	if err != nil {
		r.logger.ErrorF("Fail to encode traffic record, %v", err)
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	// 一条记录一次写入, 保证滚动不会截断记录
	if _, err := r.file.Write(data); err != nil {
		r.logger.ErrorF("Fail to write traffic record, %v", err)
	}
}

func (r *FileRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	return r.file.Close()
}

func (r *FileRecorder) Invoke(_ context.Context) error { return r.Close() }

var _ fsd.TrafficRecorder = (*FileRecorder)(nil)
