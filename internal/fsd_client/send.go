// Package fsd_client
package fsd_client

import (
	"github.com/half-nothing/simple-fsd-client/internal/fsd_client/packet"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/global"
	"strconv"
)

// enqueueLocked 编码并放入发送队列, 队列在 Tick 中按顺序写出
func (c *Client) enqueueLocked(s *session, p packet.Packet) error {
	line, err := packet.Encode(p)
	if err != nil {
		return err
	}
	if len(s.sendQueue) >= c.options.SendQueueSize {
		return ErrSendQueueFull
	}
	s.sendQueue = append(s.sendQueue, line)
	c.signalWake()
	return nil
}

// sendableLocked 只有 Connected 且登录报文已经入队后才允许发送
// vatsim 服务器要等到 $DI 才会登录, 在此之前发出的报文会排在 $ID 前面
func (c *Client) sendableLocked() error {
	switch {
	case c.destroyed:
		return ErrInvalidObject
	case c.session == nil:
		return ErrNoSession
	case c.status != fsd.Connected || c.session.transport == nil || !c.session.loggedOn:
		return ErrNotConnected
	}
	return nil
}

// send 所有发送函数的公共入口
// build 在持有锁的情况下调用, 参数为本机呼号
func (c *Client) send(build func(callsign string) packet.Packet) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.sendableLocked(); err != nil {
		return err
	}
	return c.enqueueLocked(c.session, build(c.session.callsign()))
}

// SendPacket 发送任意报文, 发送方字段由调用方填写
func (c *Client) SendPacket(p packet.Packet) error {
	return c.send(func(string) packet.Packet { return p })
}

func (c *Client) SendPrivateMessage(to string, message string) error {
	return c.send(func(callsign string) packet.Packet {
		return &packet.PrivateMessage{From: callsign, To: to, Message: message}
	})
}

func (c *Client) SendRadioMessage(frequencies []fsd.Frequency, message string) error {
	return c.send(func(callsign string) packet.Packet {
		return &packet.RadioMessage{From: callsign, Frequencies: frequencies, Message: message}
	})
}

// SendAtcChannelMessage 发往管制员公共频道 @49999
func (c *Client) SendAtcChannelMessage(message string) error {
	channel, _ := fsd.ParseFrequency(global.FSDAtcChannel[1:])
	return c.SendRadioMessage([]fsd.Frequency{channel}, message)
}

func (c *Client) SendBroadcastMessage(message string) error {
	return c.send(func(callsign string) packet.Packet {
		return &packet.BroadcastMessage{From: callsign, Message: message}
	})
}

// SendWallop 向在线监督员求助
func (c *Client) SendWallop(message string) error {
	return c.send(func(callsign string) packet.Packet {
		return &packet.BroadcastMessage{From: callsign, Wallop: true, Message: message}
	})
}

func (c *Client) SendPilotPosition(position fsd.PilotPosition) error {
	return c.send(func(callsign string) packet.Packet {
		return &packet.PilotPositionUpdate{From: callsign, Position: position}
	})
}

// SendInterimPilotPosition to 为空时发给所有支持临时位置的客户端
func (c *Client) SendInterimPilotPosition(to string, position fsd.InterimPilotPosition) error {
	if to == "" {
		to = global.FSDBroadcastTarget
	}
	return c.send(func(callsign string) packet.Packet {
		return &packet.InterimPilotPositionUpdate{From: callsign, To: to, Position: position}
	})
}

func (c *Client) SendAtcPosition(position fsd.AtcPosition) error {
	return c.send(func(callsign string) packet.Packet {
		return &packet.AtcPositionUpdate{From: callsign, Position: position}
	})
}

func (c *Client) SendSecondaryAtcPosition(position fsd.SecondaryAtcPosition) error {
	return c.send(func(callsign string) packet.Packet {
		return &packet.SecondaryAtcPositionUpdate{From: callsign, Position: position}
	})
}

func (c *Client) SendFlightPlan(plan fsd.FlightPlan) error {
	return c.send(func(callsign string) packet.Packet {
		return &packet.FlightPlanMessage{From: callsign, To: global.FSDServerName, Plan: plan}
	})
}

// SendAmendedFlightPlan 管制员修改 target 的飞行计划
func (c *Client) SendAmendedFlightPlan(target string, plan fsd.FlightPlan) error {
	return c.send(func(callsign string) packet.Packet {
		return &packet.AmendedFlightPlan{From: callsign, To: global.FSDServerName, Target: target, Plan: plan}
	})
}

func (c *Client) SendClientQuery(to string, queryType fsd.ClientQueryType, payload ...string) error {
	return c.send(func(callsign string) packet.Packet {
		return &packet.ClientQuery{From: callsign, To: to, Type: queryType, Payload: payload}
	})
}

func (c *Client) SendClientQueryResponse(to string, queryType fsd.ClientQueryType, payload ...string) error {
	return c.send(func(callsign string) packet.Packet {
		return &packet.ClientQueryResponse{From: callsign, To: to, Type: queryType, Payload: payload}
	})
}

// RequestCapabilities 询问远端支持的能力, 回复会更新 RemoteCapabilities
func (c *Client) RequestCapabilities(to string) error {
	return c.SendClientQuery(to, fsd.QueryCapabilities)
}

// SendAtis 按 V, T, Z, E 的顺序回复 ATIS, E 行携带包括自身在内的总行数
func (c *Client) SendAtis(to string, atis fsd.ControllerAtis) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.sendableLocked(); err != nil {
		return err
	}
	s := c.session
	callsign := s.callsign()
	lines := make([]*packet.AtisLine, 0, len(atis.TextLines)+3)
	if atis.VoiceServer != "" {
		lines = append(lines, &packet.AtisLine{From: callsign, To: to, Type: fsd.AtisVoiceServer, Text: atis.VoiceServer})
	}
	for _, text := range atis.TextLines {
		lines = append(lines, &packet.AtisLine{From: callsign, To: to, Type: fsd.AtisText, Text: text})
	}
	if atis.LogoffTime != "" {
		lines = append(lines, &packet.AtisLine{From: callsign, To: to, Type: fsd.AtisLogoffTime, Text: atis.LogoffTime})
	}
	lines = append(lines, &packet.AtisLine{From: callsign, To: to, Type: fsd.AtisEnd, Text: strconv.Itoa(len(lines) + 1)})
	if len(s.sendQueue)+len(lines) > c.options.SendQueueSize {
		return ErrSendQueueFull
	}
	for _, line := range lines {
		if err := c.enqueueLocked(s, line); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) SendHandoffRequest(to string, target string) error {
	return c.send(func(callsign string) packet.Packet {
		return &packet.HandoffRequest{From: callsign, To: to, Target: target}
	})
}

func (c *Client) SendHandoffAccept(to string, target string) error {
	return c.send(func(callsign string) packet.Packet {
		return &packet.HandoffAccept{From: callsign, To: to, Target: target}
	})
}

func (c *Client) SendHandoffCancel(to string, target string) error {
	return c.send(func(callsign string) packet.Packet {
		return &packet.HandoffCancel{From: callsign, To: to, Target: target}
	})
}

// SendSharedState to 为空时广播给所有管制员
func (c *Client) SendSharedState(to string, kind fsd.SharedStateKind, target string, value string) error {
	if to == "" {
		to = global.FSDSpecialTarget
	}
	return c.send(func(callsign string) packet.Packet {
		return &packet.SharedState{From: callsign, To: to, Kind: kind, Target: target, Value: value}
	})
}

func (c *Client) SendSharedStateId(to string, reply bool) error {
	return c.send(func(callsign string) packet.Packet {
		return &packet.SharedStateId{From: callsign, To: to, Reply: reply}
	})
}

func (c *Client) SendLandline(to string, landlineType fsd.LandlineType, command fsd.LandlineCommand, ip string, port int) error {
	return c.send(func(callsign string) packet.Packet {
		return &packet.Landline{From: callsign, To: to, Type: landlineType, Landline: command, IP: ip, Port: port}
	})
}

func (c *Client) SendTracking(to string, command fsd.TrackingCommand, target string) error {
	return c.send(func(callsign string) packet.Packet {
		return &packet.TrackingCommandMessage{From: callsign, To: to, Tracking: command, Target: target}
	})
}

func (c *Client) SendBreak(enabled bool) error {
	return c.send(func(callsign string) packet.Packet {
		return &packet.BreakCommand{From: callsign, Enabled: enabled}
	})
}

func (c *Client) SendHelp(enabled bool, message string) error {
	return c.send(func(callsign string) packet.Packet {
		return &packet.HelpCommand{From: callsign, Enabled: enabled, Message: message}
	})
}

func (c *Client) SendFlightStrip(to string, target string, format int, annotations []string) error {
	return c.send(func(callsign string) packet.Packet {
		return &packet.FlightStrip{From: callsign, To: to, Target: target, Format: format, Annotations: annotations}
	})
}

// SendNewInfo 通知其他管制员 ATIS 字母变化, text 非空时发送 NEWATIS
func (c *Client) SendNewInfo(letter string, text string) error {
	return c.send(func(callsign string) packet.Packet {
		return &packet.NewInfo{From: callsign, Letter: letter, Text: text}
	})
}

// SendAircraftConfig to 为空时广播
func (c *Client) SendAircraftConfig(to string, json string) error {
	return c.send(func(callsign string) packet.Packet {
		return &packet.AircraftConfig{From: callsign, To: to, Json: json}
	})
}

func (c *Client) SendAircraftInfoRequest(to string) error {
	return c.send(func(callsign string) packet.Packet {
		return &packet.AircraftInfoRequest{From: callsign, To: to}
	})
}

func (c *Client) SendAircraftInfo(to string, aircraftType string, airline string, livery string) error {
	return c.send(func(callsign string) packet.Packet {
		return &packet.AircraftInfo{From: callsign, To: to, AircraftType: aircraftType, Airline: airline, Livery: livery}
	})
}

func (c *Client) SendLegacyAircraftInfo(to string, engine fsd.EngineType, aircraftType string) error {
	return c.send(func(callsign string) packet.Packet {
		return &packet.LegacyAircraftInfo{From: callsign, To: to, Engine: engine, AircraftType: aircraftType}
	})
}

func (c *Client) SendCustomPilotPacket(to string, subtype string, tokens ...string) error {
	return c.send(func(callsign string) packet.Packet {
		return &packet.CustomPilotPacket{From: callsign, To: to, Subtype: subtype, Tokens: tokens}
	})
}

func (c *Client) SendCustomAtcPacket(to string, subtype string, tokens ...string) error {
	return c.send(func(callsign string) packet.Packet {
		return &packet.CustomAtcPacket{From: callsign, To: to, Subtype: subtype, Tokens: tokens}
	})
}

// SendPing 时间戳为秒级 Unix 时间, 收到 $PO 时计算往返时间
func (c *Client) SendPing(to string) error {
	if to == "" {
		to = global.FSDServerName
	}
	return c.send(func(callsign string) packet.Packet {
		now := c.options.Clock()
		timestamp := strconv.FormatInt(now.Unix(), 10)
		c.rememberPingLocked(c.session, timestamp, now)
		return &packet.Ping{From: callsign, To: to, Timestamp: timestamp}
	})
}

func (c *Client) SendKill(to string, reason string) error {
	return c.send(func(callsign string) packet.Packet {
		return &packet.Kill{From: callsign, To: to, Reason: reason}
	})
}

func (c *Client) RequestMetar(station string) error {
	return c.send(func(callsign string) packet.Packet {
		return &packet.MetarRequest{From: callsign, To: global.FSDServerName, Station: station}
	})
}

func (c *Client) RequestWeather(station string) error {
	return c.send(func(callsign string) packet.Packet {
		return &packet.WeatherRequest{From: callsign, To: global.FSDServerName, Station: station}
	})
}
