// Package fsd_client
package fsd_client

import (
	"github.com/half-nothing/simple-fsd-client/internal/fsd_client/packet"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/global"
	"github.com/thanhpk/randstr"
	"strconv"
	"strings"
	"time"
)

const (
	challengeLength = 16
	maxPendingPings = 64
)

// handleLine 解码一行报文, 完成自动回复, 返回需要分发的事件
func (c *Client) handleLine(s *session, line string) []Event {
	events := []Event{&RawLine{Direction: fsd.Inbound, Line: line}}

	message, err := packet.Decode(line)
	if err != nil {
		c.logger.WarnF("[%s](%s) Fail to decode %q, %v", s.id, s.callsign(), line, err)
		networkLog(SeverityWarning, s.id, "decode failed: %v", err)
		return append(events, &DecodeFailure{Line: line, Err: err})
	}
	if message == nil {
		// 未知的报文类型, 协议可能已经扩展, 直接丢弃
		networkLog(SeverityDebug, s.id, "unknown packet dropped: %s", line)
		return events
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != s {
		return events
	}
	c.autoReplyLocked(s, message)

	switch m := message.(type) {
	case *packet.Pong:
		events = append(events, &PongReceived{Pong: m, Elapsed: c.pongElapsedLocked(s, m.Timestamp)})
	case *packet.AtisLine:
		events = append(events, m)
		if atis := c.collectAtisLocked(s, m); atis != nil {
			events = append(events, atis)
		}
	default:
		events = append(events, message)
	}
	return events
}

// addressedToMe 报文是否发给本机
func addressedToMe(s *session, to string) bool {
	return strings.EqualFold(to, s.callsign())
}

// autoReplyLocked 在分发之前完成协议要求的自动应答
func (c *Client) autoReplyLocked(s *session, message packet.Packet) {
	callsign := s.callsign()
	var reply packet.Packet
	switch m := message.(type) {
	case *packet.Ping:
		if addressedToMe(s, m.To) || m.To == "*" {
			reply = &packet.Pong{From: callsign, To: m.From, Timestamp: m.Timestamp}
		}
	case *packet.ClientQuery:
		if m.Type == fsd.QueryCapabilities && addressedToMe(s, m.To) {
			reply = &packet.CapabilitiesReply{From: callsign, To: m.From, Flags: s.info.Capabilities}
		}
	case *packet.AuthChallenge:
		if addressedToMe(s, m.To) {
			reply = &packet.AuthResponse{From: callsign, To: m.From, Response: s.authenticator.Respond(m.Challenge)}
		}
	case *packet.AuthResponse:
		c.verifyServerLocked(s, m)
	case *packet.ServerIdentification:
		if s.info.ServerType == fsd.ServerVatsim && !s.loggedOn {
			s.challenge = randstr.Hex(challengeLength)
			c.logonLocked(s, s.challenge)
		}
	case *packet.CapabilitiesReply:
		s.remoteCaps.Add(m.From, m.Flags)
	case *packet.DeletePilot:
		s.remoteCaps.Remove(m.From)
	case *packet.DeleteAtc:
		s.remoteCaps.Remove(m.From)
		delete(s.atis, m.From)
	case *packet.ServerErrorMessage:
		if m.Code.Fatal() {
			c.logger.WarnF("[%s](%s) Server reported fatal error %03d %s (%s)", s.id, callsign, m.Code.Index(), m.Code, m.Parameter)
		} else {
			c.logger.InfoF("[%s](%s) Server reported %s (%s)", s.id, callsign, m.Code, m.Parameter)
		}
	case *packet.Kill:
		c.logger.WarnF("[%s](%s) Kicked by %s, reason: %s", s.id, callsign, m.From, m.Reason)
	}
	if reply == nil {
		return
	}
	if err := c.enqueueLocked(s, reply); err != nil {
		c.logger.WarnF("[%s](%s) Fail to queue automatic %s reply, %v", s.id, callsign, reply.Category(), err)
	}
}

// verifyServerLocked 校验服务器对本机初始质询的应答
func (c *Client) verifyServerLocked(s *session, m *packet.AuthResponse) {
	if s.challenge == "" || m.From != global.FSDServerName {
		return
	}
	expected := s.authenticator.Respond(s.challenge)
	s.challenge = ""
	if m.Response != expected {
		c.logger.WarnF("[%s](%s) Server authentication response mismatch", s.id, s.callsign())
		networkLog(SeverityWarning, s.id, "server authentication response mismatch")
	}
}

// logonLocked 发送身份识别与登录报文
func (c *Client) logonLocked(s *session, challenge string) {
	login := s.login
	identification := &packet.ClientIdentification{
		From:             login.Callsign(),
		To:               global.FSDServerName,
		ClientId:         s.info.PublicClientId,
		ClientName:       s.info.ClientName,
		VersionMajor:     s.info.VersionMajor,
		VersionMinor:     s.info.VersionMinor,
		Cid:              login.Cid,
		SysUid:           s.sysUid,
		InitialChallenge: challenge,
	}
	var logon packet.Packet
	switch login.ClientType() {
	case fsd.ClientPilot:
		logon = &packet.AddPilot{
			From:     login.Pilot.Callsign,
			To:       global.FSDServerName,
			Cid:      login.Cid,
			Password: login.Password,
			Rating:   login.Pilot.Rating,
			Protocol: global.FSDProtocolVersion,
			SimType:  login.Pilot.SimType,
			RealName: login.Pilot.RealName,
		}
	case fsd.ClientAtc:
		logon = &packet.AddAtc{
			From:     login.Atc.Callsign,
			To:       global.FSDServerName,
			RealName: login.Atc.RealName,
			Cid:      login.Cid,
			Password: login.Password,
			Rating:   login.Atc.Rating,
			Protocol: global.FSDProtocolVersion,
		}
	}
	for _, p := range []packet.Packet{identification, logon} {
		if p == nil {
			continue
		}
		if err := c.enqueueLocked(s, p); err != nil {
			c.logger.ErrorF("[%s](%s) Fail to queue logon packet %s, %v", s.id, s.callsign(), p.Command(), err)
			return
		}
	}
	s.loggedOn = true
	c.pending = append(c.pending, &LogonSent{ClientType: login.ClientType(), Callsign: login.Callsign()})
	c.logger.InfoF("[%s](%s) Logon sent as %s", s.id, s.callsign(), login.ClientType())
}

// pongElapsedLocked 优先使用本机记录的发送时间, 否则按秒级时间戳计算
func (c *Client) pongElapsedLocked(s *session, timestamp string) time.Duration {
	now := c.options.Clock()
	if sentAt, ok := s.pings[timestamp]; ok {
		delete(s.pings, timestamp)
		return now.Sub(sentAt)
	}
	seconds, err := strconv.ParseInt(strings.TrimSpace(timestamp), 10, 64)
	if err != nil {
		return 0
	}
	if elapsed := now.Sub(time.Unix(seconds, 0)); elapsed > 0 {
		return elapsed
	}
	return 0
}

func (c *Client) rememberPingLocked(s *session, timestamp string, sentAt time.Time) {
	if len(s.pings) >= maxPendingPings {
		s.pings = make(map[string]time.Time)
	}
	if _, ok := s.pings[timestamp]; !ok {
		s.pings[timestamp] = sentAt
	}
}

// collectAtisLocked 汇总同一发送方的 ATIS 行, 收到 E 行时返回完整结果
func (c *Client) collectAtisLocked(s *session, line *packet.AtisLine) *ControllerAtis {
	atis, ok := s.atis[line.From]
	if !ok {
		atis = &fsd.ControllerAtis{TextLines: make([]string, 0)}
		s.atis[line.From] = atis
	}
	switch line.Type {
	case fsd.AtisVoiceServer:
		atis.VoiceServer = line.Text
	case fsd.AtisText:
		atis.TextLines = append(atis.TextLines, line.Text)
	case fsd.AtisLogoffTime:
		atis.LogoffTime = line.Text
	case fsd.AtisEnd:
		atis.LineCount = line.LineCount()
		delete(s.atis, line.From)
		return &ControllerAtis{From: line.From, Atis: *atis}
	}
	return nil
}
