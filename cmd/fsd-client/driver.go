package main

import (
	"context"
	"errors"
	"github.com/half-nothing/simple-fsd-client/internal/fsd_client"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/config"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/global"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/log"
	"github.com/half-nothing/simple-fsd-client/internal/utils"
	"time"
)

const shutdownPollInterval = 20 * time.Millisecond

// startDriver async 模式使用会话内部的工作协程, 否则由 PeriodicTask 调用 Tick
func startDriver(logger log.LoggerInterface, client *fsd_client.Client, network *config.NetworkConfig) (global.Callable, error) {
	if network.Async {
		if err := client.ExecuteAsync(network.TickDuration); err != nil {
			return nil, err
		}
		return &asyncStop{client: client}, nil
	}
	task := utils.NewPeriodicTask(network.TickDuration, func(_ context.Context) error {
		return client.Tick()
	}, func(err error) {
		if !errors.Is(err, fsd_client.ErrInvalidObject) {
			logger.ErrorF("Tick failed, %v", err)
		}
	})
	task.Start(context.Background())
	return task, nil
}

type asyncStop struct {
	client *fsd_client.Client
}

func (a *asyncStop) Invoke(_ context.Context) error {
	return a.client.StopAsync()
}

// clientShutdown 注销并等待服务器断开, 超时后强制销毁会话
type clientShutdown struct {
	logger  log.LoggerInterface
	client  *fsd_client.Client
	timeout time.Duration
}

func newClientShutdown(logger log.LoggerInterface, client *fsd_client.Client, timeout time.Duration) *clientShutdown {
	return &clientShutdown{logger: logger, client: client, timeout: timeout}
}

func (s *clientShutdown) Invoke(ctx context.Context) error {
	if s.client.Destroyed() {
		return nil
	}
	if s.client.Status() == fsd.Connected {
		if err := s.client.Disconnect(s.timeout); err != nil {
			s.logger.WarnF("Fail to log off, %v", err)
		}
		ticker := time.NewTicker(shutdownPollInterval)
		defer ticker.Stop()
	wait:
		for s.client.Status() == fsd.Disconnecting {
			select {
			case <-ctx.Done():
				s.logger.Warn("Timeout while waiting for the server to close the connection")
				break wait
			case <-ticker.C:
			}
		}
	}
	err := s.client.Destroy()
	if errors.Is(err, fsd_client.ErrInvalidObject) {
		return nil
	}
	return err
}
