// Package config
package config

import (
	"errors"
	"fmt"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/log"
)

type Config struct {
	ConfigVersion string            `json:"config_version"`
	Client        *ClientConfig     `json:"client"`
	Network       *NetworkConfig    `json:"network"`
	Login         *LoginConfig      `json:"login"`
	Recorder      *RecorderConfig   `json:"recorder"`
	HttpServer    *HttpServerConfig `json:"http_server"`
}

func DefaultConfig() *Config {
	return &Config{
		ConfigVersion: ConfVersion.String(),
		Client:        defaultClientConfig(),
		Network:       defaultNetworkConfig(),
		Login:         defaultLoginConfig(),
		Recorder:      defaultRecorderConfig(),
		HttpServer:    defaultHttpServerConfig(),
	}
}

func (c *Config) CheckValid(logger log.LoggerInterface) *ValidResult {
	if version, err := newVersion(c.ConfigVersion); err != nil {
		return ValidFailWith(errors.New("version string parse fail"), err)
	} else if result := ConfVersion.checkVersion(version); result != AllMatch {
		return ValidFail(fmt.Errorf("config version mismatch, expected %s, got %s", ConfVersion.String(), version.String()))
	}
	if c.Client == nil || c.Network == nil || c.Login == nil {
		return ValidFail(errors.New("client, network and login sections are required"))
	}
	if c.Recorder == nil {
		c.Recorder = defaultRecorderConfig()
	}
	if c.HttpServer == nil {
		c.HttpServer = defaultHttpServerConfig()
	}
	if result := c.Client.checkValid(logger); result.IsFail() {
		return result
	}
	if result := c.Network.checkValid(logger); result.IsFail() {
		return result
	}
	if result := c.Login.checkValid(logger); result.IsFail() {
		return result
	}
	if result := c.Recorder.checkValid(logger); result.IsFail() {
		return result
	}
	if result := c.HttpServer.checkValid(logger); result.IsFail() {
		return result
	}
	return ValidPass()
}
