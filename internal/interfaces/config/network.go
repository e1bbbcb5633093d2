// Package config
package config

import (
	"errors"
	"fmt"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/global"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/log"
	"time"
)

type NetworkConfig struct {
	Host                string        `json:"host"`
	Port                uint          `json:"port"`
	Address             string        `json:"-"`
	ConnectTimeout      string        `json:"connect_timeout"`
	ConnectDuration     time.Duration `json:"-"`
	TickInterval        string        `json:"tick_interval"` // 处理循环的间隔
	TickDuration        time.Duration `json:"-"`
	LogoffTimeout       string        `json:"logoff_timeout"` // 发送注销报文后等待服务器断开的时间
	LogoffDuration      time.Duration `json:"-"`
	SendQueueSize       int           `json:"send_queue_size"`
	ReceiveQueueSize    int           `json:"receive_queue_size"`
	ReceiveBatchSize    int           `json:"receive_batch_size"` // 每次处理的最大行数
	Async               bool          `json:"async"`
	RemoteCapsCacheSize int           `json:"remote_caps_cache_size"`
}

func defaultNetworkConfig() *NetworkConfig {
	return &NetworkConfig{
		Host:                "127.0.0.1",
		Port:                global.FSDDefaultPort,
		ConnectTimeout:      "10s",
		TickInterval:        global.DefaultTickInterval.String(),
		LogoffTimeout:       global.DefaultLogoffTimeout.String(),
		SendQueueSize:       256,
		ReceiveQueueSize:    1024,
		ReceiveBatchSize:    128,
		Async:               true,
		RemoteCapsCacheSize: 512,
	}
}

func (config *NetworkConfig) checkValid(logger log.LoggerInterface) *ValidResult {
	if config.Host == "" {
		return ValidFail(errors.New("network.host must not be empty"))
	}
	if result := checkPort(config.Port); result.IsFail() {
		if config.Port == 0 || config.Port > 65535 {
			return result
		}
		logger.Warn(result.Error().Error())
	}
	config.Address = fmt.Sprintf("%s:%d", config.Host, config.Port)

	if duration, err := time.ParseDuration(config.ConnectTimeout); err != nil {
		return ValidFailWith(errors.New("invalid json field network.connect_timeout"), err)
	} else {
		config.ConnectDuration = duration
	}

	if duration, err := time.ParseDuration(config.TickInterval); err != nil {
		return ValidFailWith(errors.New("invalid json field network.tick_interval"), err)
	} else if duration <= 0 {
		return ValidFail(errors.New("network.tick_interval must be greater than zero"))
	} else {
		config.TickDuration = duration
	}

	if duration, err := time.ParseDuration(config.LogoffTimeout); err != nil {
		return ValidFailWith(errors.New("invalid json field network.logoff_timeout"), err)
	} else {
		config.LogoffDuration = duration
	}

	if config.SendQueueSize <= 0 || config.ReceiveQueueSize <= 0 {
		return ValidFail(errors.New("network queue sizes must be greater than zero"))
	}
	if config.ReceiveBatchSize <= 0 {
		config.ReceiveBatchSize = config.ReceiveQueueSize
	}
	if config.RemoteCapsCacheSize <= 0 {
		return ValidFail(errors.New("network.remote_caps_cache_size must be greater than zero"))
	}
	return ValidPass()
}
