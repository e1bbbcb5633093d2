package middleware

import (
	. "github.com/half-nothing/simple-fsd-client/internal/interfaces/service"
	"github.com/labstack/echo/v4"
	"sync"
	"time"
)

// SlidingWindowLimiter 滑动窗口限流器
type SlidingWindowLimiter struct {
	windowSize     time.Duration
	maxRequests    int
	requestRecords map[string][]time.Time
	mu             sync.Mutex
	clock          func() time.Time
	stop           chan struct{}
	stopOnce       sync.Once
}

// NewSlidingWindowLimiter 创建滑动窗口限流器
func NewSlidingWindowLimiter(windowSize time.Duration, maxRequests int) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		windowSize:     windowSize,
		maxRequests:    maxRequests,
		requestRecords: make(map[string][]time.Time),
		clock:          time.Now,
		stop:           make(chan struct{}),
	}
}

// Allow 检查是否允许请求
func (l *SlidingWindowLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	windowStart := now.Add(-l.windowSize)
	records := l.requestRecords[key]
	for len(records) > 0 && !records[0].After(windowStart) {
		records = records[1:]
	}

	if len(records) >= l.maxRequests {
		l.requestRecords[key] = records
		return false
	}

	l.requestRecords[key] = append(records, now)
	return true
}

// StartCleanup 定期删除长时间没有请求的键, 直到 Stop
func (l *SlidingWindowLimiter) StartCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.cleanup()
			case <-l.stop:
				return
			}
		}
	}()
}

func (l *SlidingWindowLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func (l *SlidingWindowLimiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	threshold := l.clock().Add(-2 * l.windowSize)
	for key, records := range l.requestRecords {
		if len(records) == 0 || records[len(records)-1].Before(threshold) {
			delete(l.requestRecords, key)
		}
	}
}

// RateLimitMiddleware 创建 Echo 限流中间件
func RateLimitMiddleware(limiter *SlidingWindowLimiter, keyFunc func(c echo.Context) string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow(keyFunc(c)) {
				return NewErrorResponse(c, &ErrRateLimited)
			}
			return next(c)
		}
	}
}

// IPKeyFunc 基于客户端IP生成键
func IPKeyFunc(c echo.Context) string {
	return c.RealIP()
}

// CombinedKeyFunc 组合IP和端点生成键
func CombinedKeyFunc(c echo.Context) string {
	return c.RealIP() + "|" + c.Path()
}
