// Package global
package global

import (
	"flag"
	"time"
)

var (
	DebugMode      = flag.Bool("debug", false, "Enable debug mode")
	ConfigFilePath = flag.String("config", "./config.json", "Path to configuration file")
	LogFilePath    = flag.String("log", "./logs/fsd-client.log", "Path to log file")
)

const (
	AppVersion    = "0.3.0"
	ConfigVersion = "0.3.0"

	DefaultFilePermissions     = 0644
	DefaultDirectoryPermission = 0755

	FSDServerName      = "SERVER"
	FSDProtocolVersion = 9
	FSDLineSeparator   = "\r\n"
	FSDDefaultPort     = 6809

	// FSDSpecialTarget 共享状态, 追踪等命令的广播目标
	FSDSpecialTarget = "@94835"
	// FSDBroadcastTarget 飞行员之间的广播目标
	FSDBroadcastTarget = "@94836"
	// FSDAtcChannel 管制员频道
	FSDAtcChannel = "@49999"

	DefaultTickInterval  = 50 * time.Millisecond
	DefaultLogoffTimeout = 5 * time.Second
)
