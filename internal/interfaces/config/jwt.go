// Package config
package config

import (
	"errors"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/log"
	"github.com/thanhpk/randstr"
	"time"
)

type JWTConfig struct {
	Secret          string        `json:"secret"`
	ExpiresTime     string        `json:"expires_time"`
	ExpiresDuration time.Duration `json:"-"`
}

func defaultJWTConfig() *JWTConfig {
	return &JWTConfig{
		Secret:      randstr.String(64),
		ExpiresTime: "1h",
	}
}

func (config *JWTConfig) checkValid(logger log.LoggerInterface) *ValidResult {
	if duration, err := time.ParseDuration(config.ExpiresTime); err != nil {
		return ValidFailWith(errors.New("invalid json field http_server.jwt.expires_time"), err)
	} else if duration <= 0 {
		return ValidFail(errors.New("http_server.jwt.expires_time must be greater than zero"))
	} else {
		config.ExpiresDuration = duration
	}

	if config.Secret == "" {
		config.Secret = randstr.String(64)
		logger.Debug("JWT secret is empty, generated a random one for this run")
	}

	return ValidPass()
}
