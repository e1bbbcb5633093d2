// Package http_server
package http_server

import (
	"encoding/json"
	"github.com/half-nothing/simple-fsd-client/internal/base"
	"github.com/half-nothing/simple-fsd-client/internal/fsd_client"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces"
	c "github.com/half-nothing/simple-fsd-client/internal/interfaces/config"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/global"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/operation"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const testPassword = "control-password"

type staticConfigManager struct {
	config *c.Config
}

func (m *staticConfigManager) Config() *c.Config { return m.config }

func (m *staticConfigManager) SaveConfig() error { return nil }

func (m *staticConfigManager) Reload() {}

type nopCleaner struct{}

func (nopCleaner) Init() {}

func (nopCleaner) Add(global.Callable) {}

func (nopCleaner) Clean() {}

func (nopCleaner) Done() <-chan struct{} { return nil }

type sentMessage struct {
	kind        string
	to          string
	frequencies []fsd.Frequency
	message     string
}

type fakeSession struct {
	sendErr error
	sent    []sentMessage
	remotes map[string]fsd.CapabilityFlags
}

func (f *fakeSession) Status() fsd.ConnectionStatus { return fsd.Connected }

func (f *fakeSession) NetworkErrorCode() string { return "EOK" }

func (f *fakeSession) SessionId() string { return "session-1" }

func (f *fakeSession) Callsign() string { return "N123" }

func (f *fakeSession) LocalCapabilities() fsd.CapabilityFlags { return fsd.CapabilityAtcInfo }

func (f *fakeSession) RemoteCapabilities(callsign string) (fsd.CapabilityFlags, bool) {
	caps, ok := f.remotes[callsign]
	return caps, ok
}

func (f *fakeSession) RemoteCallsigns() []string {
	callsigns := make([]string, 0, len(f.remotes))
	for callsign := range f.remotes {
		callsigns = append(callsigns, callsign)
	}
	return callsigns
}

func (f *fakeSession) SendPrivateMessage(to string, message string) error {
	f.sent = append(f.sent, sentMessage{kind: "private", to: to, message: message})
	return f.sendErr
}

func (f *fakeSession) SendRadioMessage(frequencies []fsd.Frequency, message string) error {
	f.sent = append(f.sent, sentMessage{kind: "radio", frequencies: frequencies, message: message})
	return f.sendErr
}

func (f *fakeSession) SendBroadcastMessage(message string) error {
	f.sent = append(f.sent, sentMessage{kind: "broadcast", message: message})
	return f.sendErr
}

type fixedTraffic struct {
	records []*operation.TrafficRecord
	limit   int
	session string
}

func (f *fixedTraffic) NewTrafficRecord(string, string, fsd.Direction, fsd.ClientCommand, string) *operation.TrafficRecord {
	return nil
}

func (f *fixedTraffic) SaveTrafficRecords([]*operation.TrafficRecord) error { return nil }

func (f *fixedTraffic) GetRecentTraffic(limit int) ([]*operation.TrafficRecord, error) {
	f.limit = limit
	return f.records, nil
}

func (f *fixedTraffic) GetSessionTraffic(sessionId string, limit int) ([]*operation.TrafficRecord, error) {
	f.session = sessionId
	f.limit = limit
	return f.records[:1], nil
}

func (f *fixedTraffic) DeleteTrafficBefore(time.Time) (int64, error) { return 0, nil }

type apiResult struct {
	Code string          `json:"code"`
	Data json.RawMessage `json:"data"`
}

type testServer struct {
	t       *testing.T
	e       *echo.Echo
	session *fakeSession
	token   string
}

func newTestServer(t *testing.T, traffic operation.TrafficOperationInterface) *testServer {
	t.Helper()
	config := c.DefaultConfig()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	config.HttpServer.Enabled = true
	config.HttpServer.PasswordHash = string(hash)
	config.HttpServer.TrafficLimit = 50
	config.HttpServer.JWT.ExpiresDuration = time.Hour
	config.Recorder.Enabled = traffic != nil

	var operations *operation.DatabaseOperations
	if traffic != nil {
		operations = operation.NewDatabaseOperations(traffic)
	}
	app := interfaces.NewApplicationContent(&staticConfigManager{config}, nopCleaner{}, base.NewLogger(), operations)
	session := &fakeSession{remotes: map[string]fsd.CapabilityFlags{"N456": fsd.CapabilityAtcInfo | fsd.CapabilityInterimPos}}
	e, limiter := NewHttpServer(app, session)
	t.Cleanup(limiter.Stop)
	return &testServer{t: t, e: e, session: session}
}

func (s *testServer) do(method string, path string, body string, token string) (int, *apiResult) {
	s.t.Helper()
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		request.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		request.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	s.e.ServeHTTP(recorder, request)
	result := &apiResult{}
	if err := json.Unmarshal(recorder.Body.Bytes(), result); err != nil {
		s.t.Fatalf("%s %s returned invalid json %q", method, path, recorder.Body.String())
	}
	return recorder.Code, result
}

func (s *testServer) login() string {
	s.t.Helper()
	code, result := s.do(http.MethodPost, "/api/sessions", `{"operator":"tester","password":"`+testPassword+`"}`, "")
	if code != http.StatusOK {
		s.t.Fatalf("login status = %d, code %s", code, result.Code)
	}
	data := struct {
		Token string `json:"token"`
	}{}
	if err := json.Unmarshal(result.Data, &data); err != nil || data.Token == "" {
		s.t.Fatalf("login returned no token: %s", result.Data)
	}
	return data.Token
}

func TestLogin(t *testing.T) {
	server := newTestServer(t, nil)

	tests := []struct {
		body     string
		status   int
		expected string
	}{
		{`{"operator":"tester","password":"wrong"}`, http.StatusUnauthorized, "WRONG_PASSWORD"},
		{`{"operator":"tester"}`, http.StatusBadRequest, "PARAM_LACK_ERROR"},
		{`{"password":"` + testPassword + `"}`, http.StatusBadRequest, "PARAM_LACK_ERROR"},
		{`{"operator":"tester","password":"` + testPassword + `"}`, http.StatusOK, "LOGIN_SUCCESS"},
	}

	pass := 0
	fail := 0
	for _, test := range tests {
		status, result := server.do(http.MethodPost, "/api/sessions", test.body, "")
		if status != test.status || result.Code != test.expected {
			fail++
			t.Errorf("login %s = %d %s; expected %d %s", test.body, status, result.Code, test.status, test.expected)
		} else {
			pass++
		}
	}
	t.Logf("TestLogin: %d pass, %d fail", pass, fail)
}

func TestJwtRequired(t *testing.T) {
	server := newTestServer(t, nil)

	status, result := server.do(http.MethodGet, "/api/status", "", "")
	if status != http.StatusBadRequest || result.Code != "MISSING_OR_MALFORMED_JWT" {
		t.Errorf("status without token = %d %s", status, result.Code)
	}
	status, result = server.do(http.MethodGet, "/api/status", "", "not-a-token")
	if status != http.StatusUnauthorized || result.Code != "INVALID_OR_EXPIRED_JWT" {
		t.Errorf("status with bad token = %d %s", status, result.Code)
	}

	token := server.login()
	status, result = server.do(http.MethodGet, "/api/status", "", token)
	if status != http.StatusOK {
		t.Fatalf("status with token = %d %s", status, result.Code)
	}
	data := struct {
		Callsign string `json:"callsign"`
		Status   string `json:"status"`
	}{}
	_ = json.Unmarshal(result.Data, &data)
	if data.Callsign != "N123" || data.Status != fsd.Connected.String() {
		t.Errorf("status data = %s", result.Data)
	}
}

func TestSendMessage(t *testing.T) {
	server := newTestServer(t, nil)
	token := server.login()

	tests := []struct {
		body     string
		status   int
		kind     string
		to       string
		frequncy int
	}{
		{`{"to":"n456","message":"hello"}`, http.StatusOK, "private", "N456", 0},
		{`{"to":"@118.300","message":"hello"}`, http.StatusOK, "radio", "", 118300},
		{`{"to":"@18300&@121.500","message":"hello"}`, http.StatusOK, "radio", "", 118300},
		{`{"to":"*","message":"hello"}`, http.StatusOK, "broadcast", "", 0},
		{`{"to":"@abc","message":"hello"}`, http.StatusBadRequest, "", "", 0},
		{`{"to":"N456","message":""}`, http.StatusBadRequest, "", "", 0},
		{`{"to":"N456","message":"a\r\n#DPN123"}`, http.StatusBadRequest, "", "", 0},
		{`{"to":"N4:56","message":"hello"}`, http.StatusBadRequest, "", "", 0},
	}

	pass := 0
	fail := 0
	for _, test := range tests {
		server.session.sent = nil
		status, result := server.do(http.MethodPost, "/api/messages", test.body, token)
		ok := status == test.status
		if ok && test.kind != "" {
			ok = len(server.session.sent) == 1 && server.session.sent[0].kind == test.kind && server.session.sent[0].to == test.to
			if ok && test.frequncy != 0 {
				ok = server.session.sent[0].frequencies[0].KHz() == test.frequncy
			}
		}
		if !ok {
			fail++
			t.Errorf("send %s = %d %s, sent %+v", test.body, status, result.Code, server.session.sent)
		} else {
			pass++
		}
	}
	t.Logf("TestSendMessage: %d pass, %d fail", pass, fail)

	server.session.sendErr = fsd_client.ErrNotConnected
	if status, result := server.do(http.MethodPost, "/api/messages", `{"to":"N456","message":"hello"}`, token); status != http.StatusConflict || result.Code != "NOT_CONNECTED" {
		t.Errorf("send while disconnected = %d %s", status, result.Code)
	}
	server.session.sendErr = fsd_client.ErrSendQueueFull
	if status, _ := server.do(http.MethodPost, "/api/messages", `{"to":"N456","message":"hello"}`, token); status != http.StatusServiceUnavailable {
		t.Errorf("send with full queue = %d", status)
	}
}

func TestRemoteCapabilities(t *testing.T) {
	server := newTestServer(t, nil)
	token := server.login()

	status, result := server.do(http.MethodGet, "/api/remotes/n456/caps", "", token)
	if status != http.StatusOK {
		t.Fatalf("caps status = %d %s", status, result.Code)
	}
	data := struct {
		Callsign     string   `json:"callsign"`
		Capabilities []string `json:"capabilities"`
	}{}
	_ = json.Unmarshal(result.Data, &data)
	if data.Callsign != "N456" || strings.Join(data.Capabilities, ",") != "ATCINFO,INTERIMPOS" {
		t.Errorf("caps data = %s", result.Data)
	}

	if status, result = server.do(http.MethodGet, "/api/remotes/N789/caps", "", token); status != http.StatusNotFound {
		t.Errorf("unknown remote = %d %s", status, result.Code)
	}

	status, result = server.do(http.MethodGet, "/api/remotes", "", token)
	if status != http.StatusOK || string(result.Data) != `["N456"]` {
		t.Errorf("remotes = %d %s", status, result.Data)
	}
}

func TestTraffic(t *testing.T) {
	server := newTestServer(t, nil)
	token := server.login()
	if status, result := server.do(http.MethodGet, "/api/traffic", "", token); status != http.StatusNotFound || result.Code != "TRAFFIC_DISABLED" {
		t.Errorf("traffic without recorder = %d %s", status, result.Code)
	}

	traffic := &fixedTraffic{records: []*operation.TrafficRecord{
		{ID: 2, SessionId: "s1", Direction: fsd.Inbound, Command: fsd.Message, Line: "#TMSERVER:N123:hi"},
		{ID: 1, SessionId: "s1", Direction: fsd.Outbound, Command: fsd.AddPilot, Line: "#APN123:SERVER:1000001:pass:1:9:1:Test"},
	}}
	server = newTestServer(t, traffic)
	token = server.login()

	status, result := server.do(http.MethodGet, "/api/traffic?limit=1000", "", token)
	if status != http.StatusOK || traffic.limit != 50 {
		t.Errorf("traffic = %d %s, limit %d", status, result.Code, traffic.limit)
	}
	var records []*operation.TrafficRecord
	if err := json.Unmarshal(result.Data, &records); err != nil || len(records) != 2 {
		t.Errorf("traffic data = %s", result.Data)
	}

	status, _ = server.do(http.MethodGet, "/api/traffic?session=s1&limit=5", "", token)
	if status != http.StatusOK || traffic.session != "s1" || traffic.limit != 5 {
		t.Errorf("session traffic = %d, session %s, limit %d", status, traffic.session, traffic.limit)
	}

	if status, _ = server.do(http.MethodGet, "/api/traffic?limit=-1", "", token); status != http.StatusBadRequest {
		t.Errorf("negative limit = %d", status)
	}
}
