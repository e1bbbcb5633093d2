// Package fsd_client
package fsd_client

import (
	"fmt"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/log"
	"sync"
)

// Severity 网络日志等级, 数值越大输出越多
type Severity int

const (
	SeverityNone Severity = iota
	SeverityError
	SeverityWarning
	SeverityInfo
	SeverityDebug
)

var severityString = []string{"None", "Error", "Warning", "Info", "Debug"}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityString) {
		return "Unknown"
	}
	return severityString[s]
}

func (s Severity) Index() int {
	return int(s)
}

// NetworkLogHandler source 为产生日志的会话编号或模块名
type NetworkLogHandler func(severity Severity, source string, message string)

// 进程级别的日志配置, 所有会话共享, 不随会话销毁
var (
	networkLogMu       sync.RWMutex
	networkLogSeverity = SeverityNone
	networkLogHandler  NetworkLogHandler
)

// SetNetworkLogHandler 设置全局网络日志处理函数, handler 为 nil 时关闭网络日志
func SetNetworkLogHandler(severity Severity, handler NetworkLogHandler) {
	networkLogMu.Lock()
	defer networkLogMu.Unlock()
	networkLogSeverity = severity
	networkLogHandler = handler
}

// LoggerHandler 将网络日志转发到 LoggerInterface
func LoggerHandler(logger log.LoggerInterface) NetworkLogHandler {
	return func(severity Severity, source string, message string) {
		switch severity {
		case SeverityError:
			logger.ErrorF("[%s] %s", source, message)
		case SeverityWarning:
			logger.WarnF("[%s] %s", source, message)
		case SeverityInfo:
			logger.InfoF("[%s] %s", source, message)
		case SeverityDebug:
			logger.DebugF("[%s] %s", source, message)
		default:
		}
	}
}

func networkLogEnabled(severity Severity) bool {
	networkLogMu.RLock()
	defer networkLogMu.RUnlock()
	return networkLogHandler != nil && severity != SeverityNone && severity <= networkLogSeverity
}

func networkLog(severity Severity, source string, format string, v ...interface{}) {
	if !networkLogEnabled(severity) {
		return
	}
	networkLogMu.RLock()
	handler := networkLogHandler
	networkLogMu.RUnlock()
	if handler != nil {
		handler(severity, source, fmt.Sprintf(format, v...))
	}
}
