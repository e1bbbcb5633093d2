// Package config
package config

import (
	"errors"
	"fmt"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/log"
	"strconv"
)

type ClientConfig struct {
	Name            string              `json:"name"`
	VersionMajor    int                 `json:"version_major"`
	VersionMinor    int                 `json:"version_minor"`
	HostApplication string              `json:"host_application"`
	PublicClientId  string              `json:"public_client_id"` // 十六进制
	ClientId        uint16              `json:"-"`
	PrivateKey      string              `json:"private_key"`
	Capabilities    []string            `json:"capabilities"`
	CapabilityFlags fsd.CapabilityFlags `json:"-"`
	ServerType      string              `json:"server_type"`
	Server          fsd.ServerType      `json:"-"`
}

func defaultClientConfig() *ClientConfig {
	return &ClientConfig{
		Name:            "Simple-Fsd-Client",
		VersionMajor:    0,
		VersionMinor:    3,
		HostApplication: "",
		PublicClientId:  "0000",
		PrivateKey:      "",
		Capabilities:    []string{"ATCINFO", "SECPOS", "MODELDESC"},
		ServerType:      fsd.ServerLegacy.String(),
	}
}

func (config *ClientConfig) checkValid(logger log.LoggerInterface) *ValidResult {
	if config.Name == "" {
		return ValidFail(errors.New("client.name must not be empty"))
	}
	if config.VersionMajor < 0 || config.VersionMinor < 0 {
		return ValidFail(errors.New("client version must not be negative"))
	}

	if id, err := strconv.ParseUint(config.PublicClientId, 16, 16); err != nil {
		return ValidFailWith(fmt.Errorf("invalid json field client.public_client_id %q", config.PublicClientId), err)
	} else {
		config.ClientId = uint16(id)
	}

	flags, unknown := fsd.CapabilitiesFromNames(config.Capabilities)
	for _, name := range unknown {
		logger.WarnF("Unknown capability %s in client.capabilities, ignored", name)
	}
	config.CapabilityFlags = flags

	if serverType, ok := fsd.ParseServerType(config.ServerType); !ok {
		return ValidFail(fmt.Errorf("client.server_type %s is not allowed, must be legacy or vatsim", config.ServerType))
	} else {
		config.Server = serverType
	}

	if config.Server == fsd.ServerVatsim && config.PrivateKey == "" {
		logger.Warn("client.private_key is empty, authentication challenges from the server will fail")
	}
	return ValidPass()
}

// SessionInfo 创建会话使用的客户端信息
func (config *ClientConfig) SessionInfo() fsd.SessionInfo {
	return fsd.SessionInfo{
		ServerType:     config.Server,
		ClientName:     config.Name,
		VersionMajor:   config.VersionMajor,
		VersionMinor:   config.VersionMinor,
		HostApp:        config.HostApplication,
		PublicClientId: config.ClientId,
		PrivateKey:     config.PrivateKey,
		Capabilities:   config.CapabilityFlags,
	}
}
