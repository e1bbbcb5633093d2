package base

import (
	"encoding/json"
	"errors"
	. "github.com/half-nothing/simple-fsd-client/internal/interfaces/config"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/global"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/log"
	"github.com/half-nothing/simple-fsd-client/internal/utils"
	"os"
	"path/filepath"
)

var ErrConfigCreated = errors.New("the configuration file does not exist and has been created. Please try again after editing the configuration file")

func readConfig(logger log.LoggerInterface, path string) (*Config, *ValidResult) {
	config := DefaultConfig()

	if bytes, err := os.ReadFile(path); err != nil {
		// 配置文件不存在时写出默认配置, 由用户修改后重新启动
		if err := saveConfig(path, config); err != nil {
			return nil, ValidFailWith(errors.New("fail to save configuration file while creating configuration file"), err)
		}
		return nil, ValidFail(ErrConfigCreated)
	} else if err := json.Unmarshal(bytes, config); err != nil {
		return nil, ValidFailWith(errors.New("the configuration file does not contain valid JSON"), err)
	} else if result := config.CheckValid(logger); result.IsFail() {
		return nil, result
	}
	return config, ValidPass()
}

func saveConfig(path string, config *Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, global.DefaultDirectoryPermission); err != nil {
			return err
		}
	}
	if writer, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, global.DefaultFilePermissions); err != nil {
		return err
	} else if data, err := json.MarshalIndent(config, "", "\t"); err != nil {
		_ = writer.Close()
		return err
	} else if _, err = writer.Write(data); err != nil {
		_ = writer.Close()
		return err
	} else if err := writer.Close(); err != nil {
		return err
	}
	return nil
}

// Manager 缓存解析后的配置, 读取失败视为致命错误
type Manager struct {
	path   string
	config *utils.CachedValue[Config]
	logger log.LoggerInterface
}

func NewManager(logger log.LoggerInterface, path string) *Manager {
	manager := &Manager{
		path:   path,
		logger: logger,
	}
	manager.config = utils.NewCachedValue(0, manager.getConfig)
	return manager
}

// Load 读取并校验配置, 不会终止进程, 成功后写入缓存
func (manager *Manager) Load() (*Config, *ValidResult) {
	config, result := readConfig(manager.logger, manager.path)
	if result.IsFail() {
		return nil, result
	}
	manager.config = utils.NewCachedValue(0, func() *Config {
		if config != nil {
			cached := config
			config = nil
			return cached
		}
		return manager.getConfig()
	})
	return manager.config.GetValue(), result
}

func (manager *Manager) getConfig() *Config {
	if config, result := readConfig(manager.logger, manager.path); result.IsFail() {
		manager.logger.Fatal(result.Error().Error())
		panic(result.OriginErr())
	} else {
		return config
	}
}

func (manager *Manager) Config() *Config {
	return manager.config.GetValue()
}

func (manager *Manager) Reload() {
	manager.config.Invalidate()
}

func (manager *Manager) SaveConfig() error {
	return saveConfig(manager.path, manager.Config())
}
