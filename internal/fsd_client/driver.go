// Package fsd_client
package fsd_client

import (
	"context"
	"errors"
	"github.com/half-nothing/simple-fsd-client/internal/fsd_client/packet"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/global"
	"golang.org/x/sync/errgroup"
	"time"
)

// Tick 处理一次网络事件, 不会等待数据到达
// 顺序: 应用传输层事件, 处理本批次收到的行, 执行回调中请求的生命周期操作, 发送队列, 检查注销超时
func (c *Client) Tick() error {
	c.mu.Lock()
	switch {
	case c.destroyed:
		c.mu.Unlock()
		return ErrInvalidObject
	case c.async != nil:
		c.mu.Unlock()
		return ErrAsyncRunning
	}
	c.mu.Unlock()
	return c.tick()
}

func (c *Client) tick() error {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return ErrInvalidObject
	}
	if c.callback {
		c.mu.Unlock()
		return ErrReentrantCall
	}
	c.waitIdleLocked()
	if c.destroyed {
		c.mu.Unlock()
		return ErrInvalidObject
	}
	c.ticking = true
	defer func() {
		c.mu.Lock()
		c.ticking = false
		c.idle.Broadcast()
		c.mu.Unlock()
	}()

	s := c.session
	c.applyDialResultLocked(s)
	lines, closed := c.drainLinesLocked(s)
	events := c.takePendingLocked()
	c.mu.Unlock()

	if c.dispatch(events) {
		c.processLines(s, lines)
	}

	c.mu.Lock()
	if closed && c.session == s && !c.destroyed {
		c.transportClosedLocked(s)
	}
	c.runDeferredLocked()
	c.mu.Unlock()

	c.flush()

	c.mu.Lock()
	c.checkLogoffLocked()
	events = c.takePendingLocked()
	c.mu.Unlock()

	c.dispatch(events)

	c.mu.Lock()
	c.runDeferredLocked()
	c.mu.Unlock()
	return nil
}

func (c *Client) applyDialResultLocked(s *session) {
	if s == nil || s.dialResult == nil {
		return
	}
	var result dialResult
	select {
	case result = <-s.dialResult:
	default:
		return
	}
	s.dialResult = nil
	s.dialCancel = nil
	if c.status != fsd.Connecting {
		if result.transport != nil {
			_ = result.transport.Close()
		}
		return
	}
	if result.err != nil {
		s.networkErr = result.err
		c.logger.WarnF("[%s](%s) Fail to connect, %v", s.id, s.callsign(), result.err)
		networkLog(SeverityError, s.id, "connect failed: %v", result.err)
		_ = c.setStatus(fsd.StatusError)
		return
	}
	s.transport = result.transport
	s.networkErr = nil
	s.loggedOn = false
	c.logger.InfoF("[%s](%s) Connection established", s.id, s.callsign())
	_ = c.setStatus(fsd.Connected)
	if s.info.ServerType == fsd.ServerLegacy {
		c.logonLocked(s, "")
	}
}

func (c *Client) drainLinesLocked(s *session) ([][]byte, bool) {
	if s == nil || s.transport == nil {
		return nil, false
	}
	source := s.transport.Lines()
	lines := make([][]byte, 0)
	for len(lines) < c.options.ReceiveBatchSize {
		select {
		case line, ok := <-source:
			if !ok {
				return lines, true
			}
			lines = append(lines, line)
		default:
			return lines, false
		}
	}
	return lines, false
}

func (c *Client) processLines(s *session, lines [][]byte) {
	for _, raw := range lines {
		if c.batchStopped() {
			return
		}
		line := string(raw)
		c.record(s, fsd.Inbound, line)
		if c.logger.DebugEnabled() {
			c.logger.DebugF("[%s](%s) -> %s", s.id, s.callsign(), line)
		}
		networkLog(SeverityDebug, s.id, "-> %s", line)
		if !c.dispatch(c.handleLine(s, line)) {
			return
		}
	}
}

// transportClosedLocked 服务器关闭了连接或读取出错
func (c *Client) transportClosedLocked(s *session) {
	err := s.transport.Err()
	c.closeTransport(s)
	switch c.status {
	case fsd.Disconnecting:
		c.logger.InfoF("[%s](%s) Connection closed by server after logoff", s.id, s.callsign())
		_ = c.setStatus(fsd.Disconnected)
	case fsd.Connected:
		if err == nil {
			err = ErrTransportClosed
		}
		s.networkErr = err
		c.logger.WarnF("[%s](%s) Connection lost, %v", s.id, s.callsign(), err)
		networkLog(SeverityError, s.id, "connection lost: %v", err)
		_ = c.setStatus(fsd.StatusError)
	}
}

// flush 按调用顺序写出发送队列
func (c *Client) flush() {
	c.mu.Lock()
	s := c.session
	if s == nil || s.transport == nil || len(s.sendQueue) == 0 {
		c.mu.Unlock()
		return
	}
	queue := s.sendQueue
	s.sendQueue = nil
	transport := s.transport
	c.mu.Unlock()

	for _, line := range queue {
		if err := transport.Write(line); err != nil {
			c.mu.Lock()
			if c.session == s && s.transport == transport {
				s.networkErr = err
				c.logger.WarnF("[%s](%s) Fail to write, %v", s.id, s.callsign(), err)
				networkLog(SeverityError, s.id, "write failed: %v", err)
				c.closeTransport(s)
				if c.status == fsd.Disconnecting {
					_ = c.setStatus(fsd.Disconnected)
				} else {
					_ = c.setStatus(fsd.StatusError)
				}
			}
			c.mu.Unlock()
			return
		}
		text := string(line)
		c.record(s, fsd.Outbound, text)
		if c.logger.DebugEnabled() {
			c.logger.DebugF("[%s](%s) <- %s", s.id, s.callsign(), text)
		}
		networkLog(SeverityDebug, s.id, "<- %s", text)
	}
}

func (c *Client) checkLogoffLocked() {
	s := c.session
	if s == nil || c.status != fsd.Disconnecting || s.logoffForever {
		return
	}
	if c.options.Clock().Before(s.logoffDeadline) {
		return
	}
	c.logger.DebugF("[%s](%s) Logoff timeout reached, closing connection", s.id, s.callsign())
	c.closeTransport(s)
	_ = c.setStatus(fsd.Disconnected)
}

func (c *Client) record(s *session, direction fsd.Direction, line string) {
	if c.options.Recorder == nil {
		return
	}
	command, _ := packet.ParseCommandLine(line)
	c.options.Recorder.Record(s.id, s.callsign(), direction, command, line)
}

type asyncWorker struct {
	cancel context.CancelFunc
	group  *errgroup.Group
}

// ExecuteAsync 在独立协程中以 interval 为周期执行 Tick, 回调将在该协程中执行
func (c *Client) ExecuteAsync(interval time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.destroyed:
		return ErrInvalidObject
	case c.async != nil:
		return ErrAsyncRunning
	}
	if interval <= 0 {
		interval = global.DefaultTickInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	group, ctx := errgroup.WithContext(ctx)
	c.async = &asyncWorker{cancel: cancel, group: group}
	// 工作协程不属于任何回调
	worker := &Client{clientCore: c.clientCore}
	group.Go(func() error {
		return worker.runAsync(ctx, interval)
	})
	c.logger.DebugF("[%s](%s) Asynchronous execution started, interval %v", c.sessionIdLocked(), c.session.callsign(), interval)
	return nil
}

func (c *Client) runAsync(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		case <-c.wake:
		}
		if err := c.tick(); err != nil {
			if errors.Is(err, ErrInvalidObject) {
				return nil
			}
			return err
		}
	}
}

// StopAsync 停止异步执行, 在回调中调用时不等待工作协程退出
func (c *Client) StopAsync() error {
	c.mu.Lock()
	worker := c.async
	c.async = nil
	inside := c.callback
	c.mu.Unlock()
	if worker == nil {
		return nil
	}
	worker.cancel()
	if inside {
		return nil
	}
	return worker.group.Wait()
}

// AsyncRunning 是否处于异步执行模式
func (c *Client) AsyncRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.async != nil
}
