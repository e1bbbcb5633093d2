// Package fsd_client
package fsd_client

import (
	"fmt"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
	"slices"
)

// transitions 合法的状态迁移, 任何状态都可以通过 DestroySession 回到 Idle
var transitions = map[fsd.ConnectionStatus][]fsd.ConnectionStatus{
	fsd.Idle:           {fsd.SessionCreated},
	fsd.SessionCreated: {fsd.Connecting, fsd.Idle},
	fsd.Connecting:     {fsd.Connected, fsd.StatusError, fsd.Disconnected, fsd.Idle},
	fsd.Connected:      {fsd.Disconnecting, fsd.StatusError, fsd.Idle},
	fsd.Disconnecting:  {fsd.Disconnected, fsd.StatusError, fsd.Idle},
	fsd.Disconnected:   {fsd.Connecting, fsd.Idle},
	fsd.StatusError:    {fsd.Connecting, fsd.Idle},
}

// CanTransition 状态迁移是否合法
func CanTransition(from fsd.ConnectionStatus, to fsd.ConnectionStatus) bool {
	return slices.Contains(transitions[from], to)
}

// setStatus 调用方需要持有锁, 状态变化事件在下一次分发时送出
func (c *Client) setStatus(to fsd.ConnectionStatus) error {
	from := c.status
	if from == to {
		return nil
	}
	if !CanTransition(from, to) {
		c.logger.WarnF("[%s](%s) Illegal state transition %s -> %s", c.sessionIdLocked(), c.session.callsign(), from, to)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidState, from, to)
	}
	c.status = to
	event := &StateChange{From: from, To: to}
	if to == fsd.StatusError && c.session != nil {
		event.ErrorCode = NormalizeNetworkError(c.session.networkErr)
	}
	c.pending = append(c.pending, event)
	c.logger.DebugF("[%s](%s) Status %s -> %s", c.sessionIdLocked(), c.session.callsign(), from, to)
	networkLog(SeverityInfo, c.sessionIdLocked(), "status %s -> %s", from, to)
	return nil
}

func (c *Client) takePendingLocked() []Event {
	events := c.pending
	c.pending = nil
	return events
}
