package main

import (
	"context"
	"errors"
	"github.com/half-nothing/simple-fsd-client/internal/fsd_client"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/config"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/log"
	"github.com/half-nothing/simple-fsd-client/internal/utils"
)

// positionReporter 登录后按固定间隔上报配置文件中的位置
// 飞行员每发送 interim_ratio 次临时位置后发送一次完整位置
type positionReporter struct {
	logger  log.LoggerInterface
	client  *fsd_client.Client
	login   *config.LoginConfig
	trigger *utils.OverflowTrigger
	task    *utils.PeriodicTask
}

func newPositionReporter(logger log.LoggerInterface, client *fsd_client.Client, login *config.LoginConfig) *positionReporter {
	reporter := &positionReporter{
		logger: logger,
		client: client,
		login:  login,
	}
	reporter.trigger = utils.NewOverflowTrigger(login.InterimRatio+1, reporter.sendFull)
	reporter.task = utils.NewPeriodicTask(login.ReportDuration, reporter.report, func(err error) {
		logger.WarnF("Position report failed, %v", err)
	})
	reporter.task.Start(context.Background())
	return reporter
}

func (r *positionReporter) report(_ context.Context) error {
	if r.client.Status() != fsd.Connected {
		return nil
	}
	if r.login.ClientType == fsd.ClientAtc {
		return r.ignoreOffline(r.client.SendAtcPosition(r.login.AtcPosition()))
	}
	if r.trigger.Tick() {
		return nil
	}
	position := r.login.PilotPosition()
	return r.ignoreOffline(r.client.SendInterimPilotPosition("", position.Interim()))
}

func (r *positionReporter) sendFull() {
	if err := r.ignoreOffline(r.client.SendPilotPosition(r.login.PilotPosition())); err != nil {
		r.logger.WarnF("Position report failed, %v", err)
	}
}

// ignoreOffline 会话在两次检查之间断开时不视为错误
func (r *positionReporter) ignoreOffline(err error) error {
	if errors.Is(err, fsd_client.ErrNotConnected) || errors.Is(err, fsd_client.ErrNoSession) || errors.Is(err, fsd_client.ErrInvalidObject) {
		return nil
	}
	return err
}

// LoggedOn 登录报文入队后立即发送一次完整位置
func (r *positionReporter) LoggedOn() {
	r.trigger.Reset()
	if r.login.ClientType == fsd.ClientAtc {
		if err := r.ignoreOffline(r.client.SendAtcPosition(r.login.AtcPosition())); err != nil {
			r.logger.WarnF("Position report failed, %v", err)
		}
		return
	}
	r.sendFull()
}

func (r *positionReporter) Invoke(ctx context.Context) error {
	return r.task.Invoke(ctx)
}
