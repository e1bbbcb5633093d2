// Package fsd_client
package fsd_client

import (
	"bufio"
	"context"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/global"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

var (
	splitSign    = []byte(global.FSDLineSeparator)
	splitSignLen = len(splitSign)
)

// Transport 一条已经建立的连接
// Lines 在连接关闭且所有已读取的行被取走后关闭, 之后 Err 返回关闭原因
type Transport interface {
	Lines() <-chan []byte
	Write(line []byte) error
	Err() error
	Close() error
}

// DialFunc 建立连接, 在后台协程中调用
type DialFunc func(ctx context.Context, address string, queueSize int) (Transport, error)

// tcpTransport 读写各使用一个协程, Write 只把数据放入写缓冲, 不会等待对端
type tcpTransport struct {
	conn    net.Conn
	lines   chan []byte
	outbox  chan []byte
	done    chan struct{}
	writeMu sync.Mutex
	closed  atomic.Bool
	err     error
	errMu   sync.Mutex
	timeout time.Duration
}

// DialTCP 默认的 TCP 传输层, timeout 同时作为单次写入的超时时间
func DialTCP(timeout time.Duration) DialFunc {
	return func(ctx context.Context, address string, queueSize int) (Transport, error) {
		dialer := &net.Dialer{Timeout: timeout, KeepAlive: 30 * time.Second}
		conn, err := dialer.DialContext(ctx, "tcp", address)
		if err != nil {
			return nil, err
		}
		transport := &tcpTransport{
			conn:    conn,
			lines:   make(chan []byte, queueSize),
			outbox:  make(chan []byte, queueSize),
			done:    make(chan struct{}),
			timeout: timeout,
		}
		go transport.readLoop()
		go transport.writeLoop()
		return transport, nil
	}
}

func (t *tcpTransport) readLoop() {
	defer close(t.lines)
	scanner := bufio.NewScanner(t.conn)
	scanner.Split(createSplitFunc(splitSign))
	for scanner.Scan() {
		// Scanner 会复用缓冲区, 必须复制
		line := make([]byte, len(scanner.Bytes()))
		copy(line, scanner.Bytes())
		select {
		case t.lines <- line:
		case <-t.done:
			t.setErr(ErrTransportClosed)
			return
		}
	}
	if err := scanner.Err(); err != nil && !(t.closed.Load() && isNetClosedError(err)) {
		t.setErr(err)
	} else {
		t.setErr(ErrTransportClosed)
	}
}

// writeLoop Close 之后仍会写完缓冲中的数据, 然后关闭连接
func (t *tcpTransport) writeLoop() {
	defer func() { _ = t.conn.Close() }()
	failed := false
	for data := range t.outbox {
		if failed {
			continue
		}
		if t.timeout > 0 {
			_ = t.conn.SetWriteDeadline(time.Now().Add(t.timeout))
		}
		if _, err := t.conn.Write(data); err != nil {
			t.setErr(err)
			failed = true
			// 关闭连接让读协程退出, 客户端随后会调用 Close
			_ = t.conn.Close()
		}
	}
}

func (t *tcpTransport) setErr(err error) {
	t.errMu.Lock()
	defer t.errMu.Unlock()
	if t.err == nil {
		t.err = err
	}
}

func (t *tcpTransport) Lines() <-chan []byte { return t.lines }

func (t *tcpTransport) Write(line []byte) error {
	data := make([]byte, 0, len(line)+splitSignLen)
	data = append(append(data, line...), splitSign...)
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	if t.closed.Load() {
		return ErrTransportClosed
	}
	select {
	case t.outbox <- data:
		return nil
	default:
		return ErrWriteBacklog
	}
}

func (t *tcpTransport) Err() error {
	t.errMu.Lock()
	defer t.errMu.Unlock()
	return t.err
}

func (t *tcpTransport) Close() error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	if !t.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(t.done)
	close(t.outbox)
	return nil
}
