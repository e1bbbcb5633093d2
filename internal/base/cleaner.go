package base

import (
	"context"
	"fmt"
	. "github.com/half-nothing/simple-fsd-client/internal/interfaces/global"
	. "github.com/half-nothing/simple-fsd-client/internal/interfaces/log"
	"github.com/half-nothing/simple-fsd-client/internal/utils"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

const (
	cleanerTimeout  = 10 * time.Second
	shutdownTimeout = 3 * time.Second
)

// Cleaner 按注册的逆序执行退出回调, 最后关闭日志
type Cleaner struct {
	cleaners       []Callable
	mu             sync.Mutex
	cleaning       bool
	once           sync.Once
	done           chan struct{}
	loggerShutdown Callable
	logger         LoggerInterface
}

func NewCleaner(logger LoggerInterface) *Cleaner {
	return &Cleaner{
		cleaners:       make([]Callable, 0),
		done:           make(chan struct{}),
		loggerShutdown: logger.ShutdownCallback(),
		logger:         logger,
	}
}

func (c *Cleaner) Add(callable Callable) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cleaning {
		c.logger.Debug("Cleaner is already shutting down, ignoring new cleaner")
		return
	}
	c.cleaners = append(c.cleaners, callable)
	c.logger.DebugF("Adding cleaner #%d (%T)", len(c.cleaners), callable)
}

// Clean 只会执行一次, 重复调用直接返回
func (c *Cleaner) Clean() {
	c.once.Do(c.clean)
}

func (c *Cleaner) clean() {
	c.mu.Lock()
	c.cleaning = true // 标记为清理中，阻止后续Add操作
	cleanersCopy := make([]Callable, len(c.cleaners))
	copy(cleanersCopy, c.cleaners)
	c.mu.Unlock()

	c.logger.DebugF("Starting cleanup of %d registered functions", len(cleanersCopy))

	var errs []error
	utils.ReverseForEach(cleanersCopy, func(idx int, callback Callable) {
		c.logger.DebugF("Invoking cleaner #%d (%T)", idx+1, callback)
		timeoutCtx, cancelFunc := context.WithTimeout(context.Background(), cleanerTimeout)
		defer cancelFunc()
		if err := callback.Invoke(timeoutCtx); err != nil {
			c.logger.ErrorF("Cleaner #%d (%T) failed: %v", idx+1, callback, err)
			errs = append(errs, err)
		}
	})

	if len(errs) > 0 {
		c.logger.ErrorF("%d errors occurred during cleanup:", len(errs))
		for i, err := range errs {
			c.logger.ErrorF("Error %d: %v", i+1, err)
		}
	} else {
		c.logger.Debug("All cleaners executed successfully")
	}
	c.logger.Info("Cleanup finished, client offline")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := c.loggerShutdown.Invoke(shutdownCtx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "LOGGER SHUTDOWN ERROR: %v\n", err)
	}
	close(c.done)
}

// Done 清理完成后关闭
func (c *Cleaner) Done() <-chan struct{} {
	return c.done
}

// Init 收到中断信号时执行清理
func (c *Cleaner) Init() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	go func() {
		defer stop()
		select {
		case <-ctx.Done():
			c.logger.Info("Received interrupt signal, shutting down")
			c.Clean()
		case <-c.done:
		}
	}()
}
