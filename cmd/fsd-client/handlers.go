package main

import (
	"github.com/half-nothing/simple-fsd-client/internal/fsd_client"
	"github.com/half-nothing/simple-fsd-client/internal/fsd_client/packet"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/log"
	"strings"
)

// installHandlers 把会话事件写入日志, 连接丢失后退出进程
func installHandlers(logger log.LoggerInterface, client *fsd_client.Client, reporter *positionReporter, cleaner interfaces.CleanerInterface) {
	install := func(category fsd.Category, handler fsd_client.Handler) {
		if err := client.Install(category, handler); err != nil {
			logger.ErrorF("Fail to install %s handler, %v", category, err)
		}
	}

	install(fsd.CategoryStateChange, fsd_client.Handle(func(c *fsd_client.Client, event *fsd_client.StateChange) {
		logger.InfoF("[%s](%s) %s -> %s", c.SessionId(), c.Callsign(), event.From, event.To)
		switch event.To {
		case fsd.StatusError:
			logger.ErrorF("[%s](%s) Connection failed, error code %s", c.SessionId(), c.Callsign(), event.ErrorCode)
			// Clean 会等待处理循环退出, 不能在回调中同步执行
			go cleaner.Clean()
		case fsd.Disconnected:
			go cleaner.Clean()
		default:
		}
	}))

	install(fsd.CategoryLogon, fsd_client.Handle(func(c *fsd_client.Client, event *fsd_client.LogonSent) {
		logger.InfoF("[%s](%s) Logged on as %s", c.SessionId(), event.Callsign, event.ClientType)
		reporter.LoggedOn()
	}))

	install(fsd.CategoryServerError, fsd_client.Handle(func(c *fsd_client.Client, event *packet.ServerErrorMessage) {
		if event.Code.Fatal() {
			logger.ErrorF("[%s](%s) Server error %s", c.SessionId(), c.Callsign(), event.Error())
			return
		}
		logger.WarnF("[%s](%s) Server error %s", c.SessionId(), c.Callsign(), event.Error())
	}))

	install(fsd.CategoryKill, fsd_client.Handle(func(c *fsd_client.Client, event *packet.Kill) {
		logger.WarnF("[%s](%s) Kicked by %s, reason: %s", c.SessionId(), c.Callsign(), event.From, event.Reason)
	}))

	install(fsd.CategoryPrivateMessage, fsd_client.Handle(func(c *fsd_client.Client, event *packet.PrivateMessage) {
		logger.InfoF("[%s](%s) Message from %s: %s", c.SessionId(), c.Callsign(), event.From, event.Message)
	}))

	install(fsd.CategoryBroadcastMessage, fsd_client.Handle(func(c *fsd_client.Client, event *packet.BroadcastMessage) {
		logger.InfoF("[%s](%s) Broadcast from %s: %s", c.SessionId(), c.Callsign(), event.From, event.Message)
	}))

	install(fsd.CategoryControllerAtis, fsd_client.Handle(func(c *fsd_client.Client, event *fsd_client.ControllerAtis) {
		logger.InfoF("[%s](%s) ATIS of %s: %s", c.SessionId(), c.Callsign(), event.From, strings.Join(event.Atis.TextLines, " "))
	}))

	install(fsd.CategoryPong, fsd_client.Handle(func(c *fsd_client.Client, event *fsd_client.PongReceived) {
		logger.DebugF("[%s](%s) Pong from %s in %v", c.SessionId(), c.Callsign(), event.From, event.Elapsed)
	}))

	install(fsd.CategoryDecodeFailure, fsd_client.Handle(func(c *fsd_client.Client, event *fsd_client.DecodeFailure) {
		logger.DebugF("[%s](%s) Fail to decode %q, %v", c.SessionId(), c.Callsign(), event.Line, event.Err)
	}))
}
