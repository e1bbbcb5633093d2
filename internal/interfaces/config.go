// Package interfaces
package interfaces

import (
	. "github.com/half-nothing/simple-fsd-client/internal/interfaces/config"
)

type ConfigManagerInterface interface {
	Config() *Config
	SaveConfig() error
	// Reload 丢弃缓存, 下一次 Config 重新读取文件
	Reload()
}
