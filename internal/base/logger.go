package base

import (
	"context"
	"fmt"
	"github.com/fatih/color"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/global"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/log"
	"gopkg.in/natefinch/lumberjack.v2"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	logMaxSize    = 32 // MB
	logMaxBackups = 3
	timeLayout    = "2006-01-02 15:04:05.000"
	levelFatal    = slog.LevelError + 4
)

var levelColors = map[slog.Level]*color.Color{
	slog.LevelDebug: color.New(color.FgHiBlack),
	slog.LevelInfo:  color.New(color.FgGreen),
	slog.LevelWarn:  color.New(color.FgYellow),
	slog.LevelError: color.New(color.FgRed, color.Bold),
	levelFatal:      color.New(color.BgRed, color.FgWhite),
}

// consoleHandler 控制台输出, 等级标签带颜色
type consoleHandler struct {
	mu     *sync.Mutex
	writer io.Writer
	level  *slog.LevelVar
	attrs  []slog.Attr
}

func newConsoleHandler(writer io.Writer, level *slog.LevelVar) *consoleHandler {
	return &consoleHandler{mu: &sync.Mutex{}, writer: writer, level: level}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	tag := record.Level.String()
	if record.Level == levelFatal {
		tag = "FATAL"
	}
	if c, ok := levelColors[record.Level]; ok {
		tag = c.Sprintf("%-5s", tag)
	}
	line := fmt.Sprintf("%s %s %s", record.Time.Format(timeLayout), tag, record.Message)
	for _, attr := range h.attrs {
		line += fmt.Sprintf(" %s=%v", attr.Key, attr.Value)
	}
	record.Attrs(func(attr slog.Attr) bool {
		line += fmt.Sprintf(" %s=%v", attr.Key, attr.Value)
		return true
	})
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintln(h.writer, line)
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &consoleHandler{mu: h.mu, writer: h.writer, level: h.level, attrs: append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)}
}

func (h *consoleHandler) WithGroup(_ string) slog.Handler { return h }

// fanoutHandler 同时写入控制台与日志文件
type fanoutHandler []slog.Handler

func (f fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for _, h := range f {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (f fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make(fanoutHandler, len(f))
	for i, h := range f {
		handlers[i] = h.WithAttrs(attrs)
	}
	return handlers
}

func (f fanoutHandler) WithGroup(name string) slog.Handler {
	handlers := make(fanoutHandler, len(f))
	for i, h := range f {
		handlers[i] = h.WithGroup(name)
	}
	return handlers
}

// Logger 基于 slog 的日志实现
// 未调用 Init 时只输出到控制台
type Logger struct {
	level  *slog.LevelVar
	logger *slog.Logger
	file   *lumberjack.Logger
}

func NewLogger() *Logger {
	level := &slog.LevelVar{}
	level.Set(slog.LevelInfo)
	return &Logger{
		level:  level,
		logger: slog.New(newConsoleHandler(os.Stdout, level)),
	}
}

// Init 打开日志文件, debug 为 true 时输出调试日志
func (l *Logger) Init(debug bool) {
	if debug {
		l.level.Set(slog.LevelDebug)
	}
	// 控制接口的请求日志通过 slog.Default 输出
	defer func() { slog.SetDefault(l.logger) }()
	if l.file != nil || *global.LogFilePath == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(*global.LogFilePath), global.DefaultDirectoryPermission); err != nil {
		l.WarnF("Fail to create log directory, %v", err)
		return
	}
	l.file = &lumberjack.Logger{
		Filename:   *global.LogFilePath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackups,
		Compress:   true,
	}
	l.logger = slog.New(fanoutHandler{
		newConsoleHandler(os.Stdout, l.level),
		slog.NewJSONHandler(l.file, &slog.HandlerOptions{Level: l.level}),
	})
	l.DebugF("Log file opened at %s", *global.LogFilePath)
}

type loggerShutdown struct {
	logger *Logger
}

func (s *loggerShutdown) Invoke(_ context.Context) error {
	if s.logger.file == nil {
		return nil
	}
	s.logger.logger = slog.New(newConsoleHandler(os.Stdout, s.logger.level))
	return s.logger.file.Close()
}

func (l *Logger) ShutdownCallback() global.Callable {
	return &loggerShutdown{logger: l}
}

func (l *Logger) DebugEnabled() bool {
	return l.level.Level() <= slog.LevelDebug
}

func (l *Logger) log(level slog.Level, msg string) {
	if !l.logger.Enabled(context.Background(), level) {
		return
	}
	record := slog.NewRecord(time.Now(), level, msg, 0)
	_ = l.logger.Handler().Handle(context.Background(), record)
}

func (l *Logger) Debug(msg string, v ...interface{}) { l.log(slog.LevelDebug, fmt.Sprint(append([]interface{}{msg}, v...)...)) }

func (l *Logger) DebugF(msg string, v ...interface{}) { l.log(slog.LevelDebug, fmt.Sprintf(msg, v...)) }

func (l *Logger) Info(msg string, v ...interface{}) { l.log(slog.LevelInfo, fmt.Sprint(append([]interface{}{msg}, v...)...)) }

func (l *Logger) InfoF(msg string, v ...interface{}) { l.log(slog.LevelInfo, fmt.Sprintf(msg, v...)) }

func (l *Logger) Warn(msg string, v ...interface{}) { l.log(slog.LevelWarn, fmt.Sprint(append([]interface{}{msg}, v...)...)) }

func (l *Logger) WarnF(msg string, v ...interface{}) { l.log(slog.LevelWarn, fmt.Sprintf(msg, v...)) }

func (l *Logger) Error(msg string, v ...interface{}) { l.log(slog.LevelError, fmt.Sprint(append([]interface{}{msg}, v...)...)) }

func (l *Logger) ErrorF(msg string, v ...interface{}) { l.log(slog.LevelError, fmt.Sprintf(msg, v...)) }

func (l *Logger) Fatal(msg string, v ...interface{}) {
	l.log(levelFatal, fmt.Sprint(append([]interface{}{msg}, v...)...))
}

func (l *Logger) FatalF(msg string, v ...interface{}) { l.log(levelFatal, fmt.Sprintf(msg, v...)) }

var _ log.LoggerInterface = (*Logger)(nil)
