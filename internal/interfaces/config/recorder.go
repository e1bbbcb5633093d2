// Package config
package config

import (
	"errors"
	"fmt"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/log"
	"slices"
	"time"
)

type RecorderType string

const (
	RecorderDatabase RecorderType = "database"
	RecorderFile     RecorderType = "file"
)

var allowedRecorderType = []RecorderType{RecorderDatabase, RecorderFile}

type RecorderConfig struct {
	Enabled       bool            `json:"enabled"`
	Type          string          `json:"type"`
	RecorderType  RecorderType    `json:"-"`
	FilePath      string          `json:"file_path"`
	MaxSize       int             `json:"max_size"` // 单个文件大小, 单位 MB
	MaxBackups    int             `json:"max_backups"`
	Compress      bool            `json:"compress"`
	BatchSize     int             `json:"batch_size"` // 数据库批量写入的条数
	FlushInterval string          `json:"flush_interval"`
	FlushDuration time.Duration   `json:"-"`
	Database      *DatabaseConfig `json:"database"`
}

func defaultRecorderConfig() *RecorderConfig {
	return &RecorderConfig{
		Enabled:       false,
		Type:          string(RecorderFile),
		FilePath:      "./logs/traffic.dump",
		MaxSize:       64,
		MaxBackups:    5,
		Compress:      true,
		BatchSize:     64,
		FlushInterval: "1s",
		Database:      defaultDatabaseConfig(),
	}
}

func (config *RecorderConfig) checkValid(logger log.LoggerInterface) *ValidResult {
	if !config.Enabled {
		return ValidPass()
	}

	config.RecorderType = RecorderType(config.Type)
	if !slices.Contains(allowedRecorderType, config.RecorderType) {
		return ValidFail(fmt.Errorf("recorder type %s is not allowed, support recorder is %v", config.Type, allowedRecorderType))
	}

	if config.BatchSize <= 0 {
		return ValidFail(errors.New("recorder.batch_size must be greater than zero"))
	}

	if duration, err := time.ParseDuration(config.FlushInterval); err != nil {
		return ValidFailWith(errors.New("invalid json field recorder.flush_interval"), err)
	} else if duration <= 0 {
		return ValidFail(errors.New("recorder.flush_interval must be greater than zero"))
	} else {
		config.FlushDuration = duration
	}

	switch config.RecorderType {
	case RecorderFile:
		if config.FilePath == "" {
			return ValidFail(errors.New("recorder.file_path must not be empty"))
		}
		if config.MaxSize <= 0 {
			return ValidFail(errors.New("recorder.max_size must be greater than zero"))
		}
	case RecorderDatabase:
		if config.Database == nil {
			return ValidFail(errors.New("recorder.database is required when recorder type is database"))
		}
		return config.Database.checkValid(logger)
	}
	return ValidPass()
}
