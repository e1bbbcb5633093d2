// Package recorder
package recorder

import (
	"errors"
	c "github.com/half-nothing/simple-fsd-client/internal/interfaces/config"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/global"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/log"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/operation"
)

var ErrNoTrafficOperation = errors.New("database recorder requires a traffic operation")

// Recorder 可以注册为退出回调的流量记录器
type Recorder interface {
	fsd.TrafficRecorder
	global.Callable
}

// NewRecorder 根据配置创建记录器, 未启用时返回 nil
func NewRecorder(logger log.LoggerInterface, config *c.RecorderConfig, trafficOperation operation.TrafficOperationInterface) (Recorder, error) {
	if config == nil || !config.Enabled {
		return nil, nil
	}
	switch config.RecorderType {
	case c.RecorderDatabase:
		if trafficOperation == nil {
			return nil, ErrNoTrafficOperation
		}
		logger.InfoF("Recording traffic to database, batch size %d, flush interval %s", config.BatchSize, config.FlushDuration)
		return NewDatabaseRecorder(logger, trafficOperation, config.BatchSize, config.FlushDuration), nil
	default:
		logger.InfoF("Recording traffic to %s", config.FilePath)
		recorder, err := NewFileRecorder(logger, config)
		if err != nil {
			return nil, err
		}
		return recorder, nil
	}
}
