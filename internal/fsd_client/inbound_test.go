// Package fsd_client
package fsd_client

import (
	"errors"
	"github.com/half-nothing/simple-fsd-client/internal/fsd_client/packet"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
	"strings"
	"testing"
	"time"
)

// 收到 3 行正文与 E 行, 回调按顺序调用 4 次
func TestAtisSequence(t *testing.T) {
	h := newHarness(t, fsd.ServerLegacy)
	h.connect()

	var lines []*packet.AtisLine
	var complete []*ControllerAtis
	_ = h.client.Install(fsd.CategoryAtisLine, Handle(func(_ *Client, line *packet.AtisLine) {
		lines = append(lines, line)
	}))
	_ = h.client.Install(fsd.CategoryControllerAtis, Handle(func(_ *Client, atis *ControllerAtis) {
		complete = append(complete, atis)
	}))
	h.push(
		"$CRLOWW_APP:N123:ATIS:T:Vienna approach",
		"$CRLOWW_APP:N123:ATIS:T:radar services available",
		"$CRLOWW_APP:N123:ATIS:T:information alpha",
		"$CRLOWW_APP:N123:ATIS:E:4",
	)

	if len(lines) != 4 {
		t.Fatalf("ATIS callback invoked %d times; expected 4", len(lines))
	}
	expected := []fsd.AtisLineType{fsd.AtisText, fsd.AtisText, fsd.AtisText, fsd.AtisEnd}
	for i, line := range lines {
		if line.Type != expected[i] {
			t.Errorf("line %d type = %s; expected %s", i, line.Type, expected[i])
		}
	}
	if lines[0].Text != "Vienna approach" {
		t.Errorf("first line = %q", lines[0].Text)
	}
	if count := lines[3].LineCount(); count != 4 {
		t.Errorf("terminator line count = %d; expected 4", count)
	}
	if len(complete) != 1 {
		t.Fatalf("complete ATIS callback invoked %d times; expected 1", len(complete))
	}
	if complete[0].From != "LOWW_APP" || len(complete[0].Atis.TextLines) != 3 || complete[0].Atis.LineCount != 4 {
		t.Errorf("complete ATIS = %#v", complete[0])
	}
}

func TestAutomaticReplies(t *testing.T) {
	h := newHarness(t, fsd.ServerLegacy)
	h.connect()

	expectedAuth := NewBlake2bAuthenticator(testKey).Respond("1a2b3c")
	tests := []struct {
		line     string
		expected string
	}{
		{"$PISERVER:N123:1700000000", "$PON123:SERVER:1700000000"},
		{"$PIN456:*:99", "$PON123:N456:99"},
		{"$ZCSERVER:N123:1a2b3c", "$ZRN123:SERVER:" + expectedAuth},
		{"$CQN456:N123:CAPS", "$CRN123:N456:CAPS:"},
		// 发给其他客户端的报文不应答
		{"$PIN456:N789:1", ""},
		{"$CQN456:N789:CAPS", ""},
	}

	pass := 0
	fail := 0
	for _, test := range tests {
		before := len(h.pipe.Written())
		h.push(test.line)
		written := h.pipe.Written()[before:]
		switch {
		case test.expected == "" && len(written) != 0:
			fail++
			t.Errorf("reply to %q = %q; expected none", test.line, written)
		case test.expected != "" && (len(written) != 1 || !strings.HasPrefix(written[0], test.expected)):
			fail++
			t.Errorf("reply to %q = %q; expected %q", test.line, written, test.expected)
		default:
			pass++
		}
	}
	t.Logf("TestAutomaticReplies: %d pass, %d fail", pass, fail)
}

func TestCapabilitiesReplyContent(t *testing.T) {
	h := newHarness(t, fsd.ServerLegacy)
	h.connect()

	h.push("$CQN456:N123:CAPS")
	decoded, err := packet.Decode(h.lastWritten())
	if err != nil {
		t.Fatalf("Decode(%q) error: %v", h.lastWritten(), err)
	}
	reply, ok := decoded.(*packet.CapabilitiesReply)
	if !ok {
		t.Fatalf("Decode(%q) = %T; expected *packet.CapabilitiesReply", h.lastWritten(), decoded)
	}
	if reply.Flags != h.client.LocalCapabilities() {
		t.Errorf("reply flags = %s; expected %s", reply.Flags, h.client.LocalCapabilities())
	}
}

func TestRemoteCapabilities(t *testing.T) {
	h := newHarness(t, fsd.ServerLegacy)
	h.connect()

	if _, ok := h.client.RemoteCapabilities("N456"); ok {
		t.Error("RemoteCapabilities before reply returned true")
	}
	if err := h.client.RequestCapabilities("N456"); err != nil {
		t.Fatalf("RequestCapabilities error: %v", err)
	}
	h.push("$CRN456:N123:CAPS:ATCINFO=1:SECPOS=0:NEWTHING=1")
	if line := h.pipe.Written()[len(h.pipe.Written())-1]; line != "$CQN123:N456:CAPS" {
		t.Errorf("capabilities request = %q", line)
	}
	flags, ok := h.client.RemoteCapabilities("N456")
	if !ok || flags != fsd.CapabilityAtcInfo {
		t.Errorf("RemoteCapabilities(N456) = %s, %v; expected ATCINFO", flags, ok)
	}
	if callsigns := h.client.RemoteCallsigns(); len(callsigns) != 1 || callsigns[0] != "N456" {
		t.Errorf("RemoteCallsigns() = %v", callsigns)
	}

	h.push("#DPN456:1000009")
	if _, ok := h.client.RemoteCapabilities("N456"); ok {
		t.Error("RemoteCapabilities after #DP returned true")
	}
}

// vatsim 服务器先发送 $DI, 客户端随后完成身份识别与登录
func TestVatsimLogon(t *testing.T) {
	h := newHarness(t, fsd.ServerVatsim)
	h.connect()

	if written := h.pipe.Written(); len(written) != 0 {
		t.Fatalf("written before $DI = %q; expected nothing", written)
	}
	h.push("$DISERVER:CLIENT:VATSIM FSD V3.13:abcdef")
	written := h.pipe.Written()
	if len(written) != 2 {
		t.Fatalf("written after $DI = %q; expected $ID and #AP", written)
	}
	fields := strings.Split(written[0], ":")
	if !strings.HasPrefix(written[0], "$IDN123:SERVER:de1e:") || len(fields) != 9 || len(fields[8]) != challengeLength {
		t.Errorf("identification = %q; expected a %d character challenge", written[0], challengeLength)
	}
	if !strings.HasPrefix(written[1], "#APN123:SERVER:1000001:") {
		t.Errorf("logon = %q", written[1])
	}

	// 服务器对初始质询的应答
	challenge := fields[8]
	h.push("$ZRSERVER:N123:" + NewBlake2bAuthenticator(testKey).Respond(challenge))
	h.client.mu.Lock()
	pending := h.client.session.challenge
	h.client.mu.Unlock()
	if pending != "" {
		t.Errorf("initial challenge still pending after server response")
	}

	// 重复的 $DI 不会再次登录
	h.push("$DISERVER:CLIENT:VATSIM FSD V3.13:abcdef")
	if count := len(h.pipe.Written()); count != 2 {
		t.Errorf("written after second $DI = %d lines; expected 2", count)
	}
}

// 登录报文入队之前不允许发送, 登录事件中发出的报文排在 $ID 与 #AP 之后
func TestSendAfterLogon(t *testing.T) {
	tests := []struct {
		serverType fsd.ServerType
		preLogon   []string
	}{
		{fsd.ServerVatsim, []string{"$DISERVER:CLIENT:VATSIM FSD V3.13:abcdef"}},
		{fsd.ServerLegacy, nil},
	}

	pass := 0
	fail := 0
	for _, test := range tests {
		h := newHarness(t, test.serverType)
		var logons []*LogonSent
		var sendErr error
		_ = h.client.Install(fsd.CategoryLogon, Handle(func(client *Client, event *LogonSent) {
			logons = append(logons, event)
			sendErr = client.SendPrivateMessage("N456", "hello")
		}))
		h.connect()

		if test.serverType == fsd.ServerVatsim {
			if err := h.client.SendPrivateMessage("N456", "too early"); !errors.Is(err, ErrNotConnected) {
				fail++
				t.Errorf("%s: send before logon = %v; expected ErrNotConnected", test.serverType, err)
				continue
			}
			if err := h.client.SendAtis("N456", fsd.ControllerAtis{TextLines: []string{"too early"}}); !errors.Is(err, ErrNotConnected) {
				fail++
				t.Errorf("%s: SendAtis before logon = %v; expected ErrNotConnected", test.serverType, err)
				continue
			}
		}
		for _, line := range test.preLogon {
			h.push(line)
		}
		h.tickUntil("private message", func() bool { return len(h.pipe.Written()) >= 3 })

		written := h.pipe.Written()
		switch {
		case len(logons) != 1 || logons[0].Callsign != testCallsign || logons[0].ClientType != fsd.ClientPilot:
			fail++
			t.Errorf("%s: logon events = %#v; expected one for %s", test.serverType, logons, testCallsign)
		case sendErr != nil:
			fail++
			t.Errorf("%s: send in logon callback = %v", test.serverType, sendErr)
		case len(written) != 3 || !strings.HasPrefix(written[0], "$IDN123:") ||
			!strings.HasPrefix(written[1], "#APN123:") || written[2] != "#TMN123:N456:hello":
			fail++
			t.Errorf("%s: written = %q; expected $ID, #AP then the message", test.serverType, written)
		default:
			pass++
		}
	}
	t.Logf("TestSendAfterLogon: %d pass, %d fail", pass, fail)
}

func TestDecodeFailureEvent(t *testing.T) {
	h := newHarness(t, fsd.ServerLegacy)
	h.connect()

	var raw []string
	var failures []*DecodeFailure
	_ = h.client.Install(fsd.CategoryRawLine, Handle(func(_ *Client, event *RawLine) {
		raw = append(raw, event.Line)
	}))
	_ = h.client.Install(fsd.CategoryDecodeFailure, Handle(func(_ *Client, event *DecodeFailure) {
		failures = append(failures, event)
	}))
	h.push("#TMN456:N123", "$XXN456:SERVER", "#TMN456:N123:still working")

	if len(raw) != 3 {
		t.Errorf("raw line callback invoked %d times; expected 3", len(raw))
	}
	if len(failures) != 1 || failures[0].Line != "#TMN456:N123" {
		t.Errorf("decode failures = %#v; expected one for #TMN456:N123", failures)
	}
	if status := h.client.Status(); status != fsd.Connected {
		t.Errorf("Status() = %s; expected Connected", status)
	}
}

func TestPongElapsed(t *testing.T) {
	h := newHarness(t, fsd.ServerLegacy)
	h.connect()

	var pongs []*PongReceived
	_ = h.client.Install(fsd.CategoryPong, Handle(func(_ *Client, event *PongReceived) {
		pongs = append(pongs, event)
	}))
	if err := h.client.SendPing(""); err != nil {
		t.Fatalf("SendPing error: %v", err)
	}
	_ = h.client.Tick()
	line := h.lastWritten()
	if line != "$PIN123:SERVER:1700000000" {
		t.Fatalf("ping = %q", line)
	}
	h.clock.Advance(250 * time.Millisecond)
	h.push("$POSERVER:N123:1700000000")

	if len(pongs) != 1 {
		t.Fatalf("pong callback invoked %d times; expected 1", len(pongs))
	}
	if pongs[0].Elapsed != 250*time.Millisecond || pongs[0].From != "SERVER" {
		t.Errorf("pong = %#v; expected elapsed 250ms", pongs[0])
	}

	// 未记录发送时间时按秒级时间戳计算
	h.push("$POSERVER:N123:1699999990")
	if len(pongs) != 2 || pongs[1].Elapsed != 10*time.Second+250*time.Millisecond {
		t.Errorf("pong without record = %v", pongs[len(pongs)-1].Elapsed)
	}
}

func TestSendApi(t *testing.T) {
	h := newHarness(t, fsd.ServerLegacy)
	h.connect()

	tests := []struct {
		send     func(client *Client) error
		expected []string
	}{
		{func(c *Client) error { return c.SendPrivateMessage("N456", "hello: there") },
			[]string{"#TMN123:N456:hello there"}},
		{func(c *Client) error { return c.SendRadioMessage([]fsd.Frequency{118300 * fsd.KHz}, "on frequency") },
			[]string{"#TMN123:@18300:on frequency"}},
		{func(c *Client) error { return c.SendAtcChannelMessage("coordination") },
			[]string{"#TMN123:@49999:coordination"}},
		{func(c *Client) error { return c.SendBroadcastMessage("notice") }, []string{"#TMN123:*:notice"}},
		{func(c *Client) error { return c.SendWallop("help") }, []string{"#TMN123:*S:help"}},
		{func(c *Client) error { return c.SendHandoffRequest("EDDM_APP", "N456") }, []string{"$HON123:EDDM_APP:N456"}},
		{func(c *Client) error { return c.SendHandoffCancel("EDDM_APP", "N456") },
			[]string{"#PCN123:EDDM_APP:CCP:HC:N456"}},
		{func(c *Client) error { return c.SendKill("N456", "bye") }, []string{"$!!N123:N456:bye"}},
		{func(c *Client) error { return c.RequestMetar("LOWW") }, []string{"$AXN123:SERVER:METAR:LOWW"}},
		{func(c *Client) error { return c.RequestWeather("LOWW") }, []string{"$RWN123:SERVER:LOWW"}},
		{func(c *Client) error { return c.SendBreak(true) }, []string{"$CQN123:@94835:BY"}},
		{func(c *Client) error { return c.SendAircraftInfoRequest("N456") }, []string{"#SBN123:N456:PIR"}},
		{func(c *Client) error {
			return c.SendAtis("N456", fsd.ControllerAtis{VoiceServer: "voice.example.com/loww_app",
				TextLines: []string{"line one", "line two"}, LogoffTime: "2000"})
		}, []string{
			"$CRN123:N456:ATIS:V:voice.example.com/loww_app",
			"$CRN123:N456:ATIS:T:line one",
			"$CRN123:N456:ATIS:T:line two",
			"$CRN123:N456:ATIS:Z:2000",
			"$CRN123:N456:ATIS:E:5",
		}},
	}

	pass := 0
	fail := 0
	for i, test := range tests {
		before := len(h.pipe.Written())
		if err := test.send(h.client); err != nil {
			fail++
			t.Errorf("send #%d error: %v", i, err)
			continue
		}
		_ = h.client.Tick()
		written := h.pipe.Written()[before:]
		if strings.Join(written, "\n") != strings.Join(test.expected, "\n") {
			fail++
			t.Errorf("send #%d wrote %q; expected %q", i, written, test.expected)
			continue
		}
		pass++
	}
	t.Logf("TestSendApi: %d pass, %d fail", pass, fail)
}

// 发送顺序与调用顺序一致
func TestSendOrder(t *testing.T) {
	h := newHarness(t, fsd.ServerLegacy)
	h.connect()

	before := len(h.pipe.Written())
	messages := []string{"one", "two", "three", "four"}
	for _, message := range messages {
		if err := h.client.SendPrivateMessage("N456", message); err != nil {
			t.Fatalf("SendPrivateMessage error: %v", err)
		}
	}
	_ = h.client.Tick()
	written := h.pipe.Written()[before:]
	if len(written) != len(messages) {
		t.Fatalf("written %q; expected %d lines", written, len(messages))
	}
	for i, message := range messages {
		if written[i] != "#TMN123:N456:"+message {
			t.Errorf("line %d = %q; expected message %q", i, written[i], message)
		}
	}
}
