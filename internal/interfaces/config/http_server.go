// Package config
package config

import (
	"errors"
	"fmt"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/log"
	"golang.org/x/crypto/bcrypt"
)

type HttpServerConfig struct {
	Enabled      bool       `json:"enabled"`
	Host         string     `json:"host"`
	Port         uint       `json:"port"`
	Address      string     `json:"-"`
	PasswordHash string     `json:"password_hash"` // 控制接口密码的 bcrypt 哈希
	BcryptCost   int        `json:"bcrypt_cost"`
	BodyLimit    string     `json:"body_limit"`
	TrafficLimit int        `json:"traffic_limit"` // /api/traffic 单次最多返回的条数
	JWT          *JWTConfig `json:"jwt"`
}

func defaultHttpServerConfig() *HttpServerConfig {
	return &HttpServerConfig{
		Enabled:      false,
		Host:         "127.0.0.1",
		Port:         6810,
		PasswordHash: "",
		BcryptCost:   12,
		BodyLimit:    "1MB",
		TrafficLimit: 200,
		JWT:          defaultJWTConfig(),
	}
}

func (config *HttpServerConfig) checkValid(logger log.LoggerInterface) *ValidResult {
	if !config.Enabled {
		return ValidPass()
	}

	if result := checkPort(config.Port); result.IsFail() {
		return result
	}
	config.Address = fmt.Sprintf("%s:%d", config.Host, config.Port)

	if config.BcryptCost < bcrypt.MinCost || config.BcryptCost > bcrypt.MaxCost {
		return ValidFail(errors.New("http_server.bcrypt_cost out of range, must between 4 and 31"))
	}

	if config.PasswordHash == "" {
		return ValidFail(errors.New("http_server.password_hash must not be empty when control api is enabled"))
	} else if cost, err := bcrypt.Cost([]byte(config.PasswordHash)); err != nil {
		return ValidFailWith(errors.New("http_server.password_hash is not a valid bcrypt hash"), err)
	} else if cost < config.BcryptCost {
		logger.WarnF("http_server.password_hash uses cost %d, lower than configured %d", cost, config.BcryptCost)
	}

	if config.BodyLimit == "" {
		logger.WarnF("body_limit is empty, where the length of the request body is not restricted. This is a very dangerous behavior")
	}

	if config.TrafficLimit <= 0 {
		config.TrafficLimit = 200
	}

	if config.JWT == nil {
		config.JWT = defaultJWTConfig()
	}
	if result := config.JWT.checkValid(logger); result.IsFail() {
		return result
	}
	return ValidPass()
}

// HashPassword 生成用于配置文件的密码哈希
func (config *HttpServerConfig) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), config.BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
