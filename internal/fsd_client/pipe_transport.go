// Package fsd_client
package fsd_client

import (
	"context"
	"sync"
)

// PipeTransport 内存中的传输层, 用于测试以及离线回放
// Push 模拟服务器发送的数据, Written 返回客户端写出的所有行
type PipeTransport struct {
	mu       sync.Mutex
	lines    chan []byte
	written  []string
	closed   bool
	remote   bool
	err      error
	dialErr  error
	dialed   chan struct{}
	dialOnce sync.Once
}

func NewPipeTransport(queueSize int) *PipeTransport {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &PipeTransport{
		lines:  make(chan []byte, queueSize),
		dialed: make(chan struct{}),
	}
}

// FailDial 下一次拨号返回指定错误
func (p *PipeTransport) FailDial(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dialErr = err
}

// Dialer 返回始终连接到该管道的 DialFunc
func (p *PipeTransport) Dialer() DialFunc {
	return func(ctx context.Context, _ string, _ int) (Transport, error) {
		p.mu.Lock()
		err := p.dialErr
		p.mu.Unlock()
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p.dialOnce.Do(func() { close(p.dialed) })
		return p, nil
	}
}

// Dialed 拨号成功后关闭
func (p *PipeTransport) Dialed() <-chan struct{} { return p.dialed }

// Push 服务器向客户端发送数据, 连接关闭后忽略
// 接收队列已满时丢弃剩余的行并返回 ErrWriteBacklog, 需要先 Tick 取走
func (p *PipeTransport) Push(lines ...string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.remote || p.closed {
		return nil
	}
	for _, line := range lines {
		select {
		case p.lines <- []byte(line):
		default:
			return ErrWriteBacklog
		}
	}
	return nil
}

// CloseRemote 模拟服务器断开连接, err 为 nil 表示正常关闭
func (p *PipeTransport) CloseRemote(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.remote || p.closed {
		return
	}
	p.remote = true
	if err == nil {
		err = ErrTransportClosed
	}
	p.err = err
	close(p.lines)
}

// Written 客户端已经写出的行, 不含换行符
func (p *PipeTransport) Written() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	written := make([]string, len(p.written))
	copy(written, p.written)
	return written
}

// Closed 客户端是否已经关闭连接
func (p *PipeTransport) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func (p *PipeTransport) Lines() <-chan []byte { return p.lines }

func (p *PipeTransport) Write(line []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.remote {
		return ErrTransportClosed
	}
	p.written = append(p.written, string(line))
	return nil
}

func (p *PipeTransport) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *PipeTransport) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	if !p.remote {
		p.err = ErrTransportClosed
		close(p.lines)
	}
	return nil
}
