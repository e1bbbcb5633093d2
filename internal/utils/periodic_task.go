// Package utils
package utils

import (
	"context"
	"sync"
	"time"
)

type TaskFunc func(ctx context.Context) error

// PeriodicTask 按固定间隔执行任务, 直到 Stop 或 ctx 结束
type PeriodicTask struct {
	interval time.Duration
	task     TaskFunc
	onError  func(err error)
	cancel   context.CancelFunc
	done     chan struct{}
	once     sync.Once
}

func NewPeriodicTask(interval time.Duration, task TaskFunc, onError func(err error)) *PeriodicTask {
	return &PeriodicTask{
		interval: interval,
		task:     task,
		onError:  onError,
		done:     make(chan struct{}),
	}
}

func (p *PeriodicTask) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	go func() {
		defer close(p.done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := p.task(ctx); err != nil && p.onError != nil {
					p.onError(err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop 停止任务并等待当前执行结束, 可重复调用
func (p *PeriodicTask) Stop() {
	p.once.Do(func() {
		if p.cancel == nil {
			close(p.done)
			return
		}
		p.cancel()
		<-p.done
	})
}

// Invoke 实现 global.Callable, 便于注册到 Cleaner
func (p *PeriodicTask) Invoke(ctx context.Context) error {
	stopped := make(chan struct{})
	go func() {
		p.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
