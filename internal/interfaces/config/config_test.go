// Package config
package config

import (
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/global"
	"testing"
	"time"
)

type nopLogger struct{}

func (nopLogger) Init(bool) {}
func (nopLogger) ShutdownCallback() global.Callable { return nil }
func (nopLogger) DebugEnabled() bool { return false }
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) DebugF(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{}) {}
func (nopLogger) InfoF(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{}) {}
func (nopLogger) WarnF(string, ...interface{}) {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) ErrorF(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}
func (nopLogger) FatalF(string, ...interface{}) {}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if result := c.CheckValid(nopLogger{}); result.IsFail() {
		t.Fatalf("DefaultConfig().CheckValid() failed: %v", result.Error())
	}
	if c.Network.Address != "127.0.0.1:6809" {
		t.Errorf("Network.Address = %s; expected 127.0.0.1:6809", c.Network.Address)
	}
	if c.Network.TickDuration <= 0 || c.Network.LogoffDuration <= 0 {
		t.Errorf("network durations not parsed: %v %v", c.Network.TickDuration, c.Network.LogoffDuration)
	}
	if c.Login.ClientType != fsd.ClientPilot {
		t.Errorf("Login.ClientType = %v; expected pilot", c.Login.ClientType)
	}
	if c.Login.ReportDuration != 5*time.Second {
		t.Errorf("Login.ReportDuration = %v; expected 5s", c.Login.ReportDuration)
	}
	if c.Client.Server != fsd.ServerLegacy {
		t.Errorf("Client.Server = %v; expected legacy", c.Client.Server)
	}
	if c.Client.CapabilityFlags == 0 {
		t.Error("Client.CapabilityFlags is empty")
	}
}

func TestCheckValidFailures(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"version mismatch", func(c *Config) { c.ConfigVersion = "0.0.0" }},
		{"bad version", func(c *Config) { c.ConfigVersion = "1" }},
		{"missing login", func(c *Config) { c.Login = nil }},
		{"empty client name", func(c *Config) { c.Client.Name = "" }},
		{"bad client id", func(c *Config) { c.Client.PublicClientId = "xyz" }},
		{"bad server type", func(c *Config) { c.Client.ServerType = "ivao" }},
		{"empty host", func(c *Config) { c.Network.Host = "" }},
		{"zero port", func(c *Config) { c.Network.Port = 0 }},
		{"zero tick", func(c *Config) { c.Network.TickInterval = "0s" }},
		{"bad logoff timeout", func(c *Config) { c.Network.LogoffTimeout = "soon" }},
		{"zero send queue", func(c *Config) { c.Network.SendQueueSize = 0 }},
		{"bad login type", func(c *Config) { c.Login.Type = "observer" }},
		{"callsign with colon", func(c *Config) { c.Login.Callsign = "AB:C" }},
		{"bad frequency", func(c *Config) { c.Login.Frequency = "abc" }},
		{"bad transponder", func(c *Config) { c.Login.Transponder = "9999" }},
		{"zero report interval", func(c *Config) { c.Login.ReportInterval = "0s" }},
		{"negative interim ratio", func(c *Config) { c.Login.InterimRatio = -1 }},
		{"bad recorder type", func(c *Config) {
			c.Recorder.Enabled = true
			c.Recorder.Type = "kafka"
		}},
		{"zero flush interval", func(c *Config) {
			c.Recorder.Enabled = true
			c.Recorder.FlushInterval = "0s"
		}},
		{"bad database type", func(c *Config) {
			c.Recorder.Enabled = true
			c.Recorder.Type = string(RecorderDatabase)
			c.Recorder.Database.Type = "oracle"
		}},
		{"database without host", func(c *Config) {
			c.Recorder.Enabled = true
			c.Recorder.Type = string(RecorderDatabase)
			c.Recorder.Database.Type = string(MySQL)
		}},
		{"http without password", func(c *Config) { c.HttpServer.Enabled = true }},
		{"http with plain password", func(c *Config) {
			c.HttpServer.Enabled = true
			c.HttpServer.PasswordHash = "123456"
		}},
	}

	pass := 0
	fail := 0
	for _, test := range tests {
		c := DefaultConfig()
		test.modify(c)
		if result := c.CheckValid(nopLogger{}); !result.IsFail() {
			fail++
			t.Errorf("%s: CheckValid() passed; expected failure", test.name)
		} else {
			pass++
		}
	}
	t.Logf("TestCheckValidFailures: %d pass, %d fail", pass, fail)
}

func TestOptionalSections(t *testing.T) {
	c := DefaultConfig()
	c.Recorder = nil
	c.HttpServer = nil
	if result := c.CheckValid(nopLogger{}); result.IsFail() {
		t.Fatalf("CheckValid() failed: %v", result.Error())
	}
	if c.Recorder == nil || c.HttpServer == nil {
		t.Error("missing optional sections were not filled with defaults")
	}
}

func TestHttpServerPassword(t *testing.T) {
	c := DefaultConfig()
	c.HttpServer.Enabled = true
	c.HttpServer.BcryptCost = 4
	c.HttpServer.JWT.Secret = ""
	hash, err := c.HttpServer.HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}
	c.HttpServer.PasswordHash = hash
	if result := c.CheckValid(nopLogger{}); result.IsFail() {
		t.Fatalf("CheckValid() failed: %v", result.Error())
	}
	if c.HttpServer.Address != "127.0.0.1:6810" {
		t.Errorf("HttpServer.Address = %s; expected 127.0.0.1:6810", c.HttpServer.Address)
	}
	if len(c.HttpServer.JWT.Secret) != 64 {
		t.Errorf("empty jwt secret was not regenerated, got %q", c.HttpServer.JWT.Secret)
	}
	if c.HttpServer.JWT.ExpiresDuration != time.Hour {
		t.Errorf("JWT.ExpiresDuration = %v; expected 1h", c.HttpServer.JWT.ExpiresDuration)
	}
}

func TestSessionInfo(t *testing.T) {
	c := DefaultConfig()
	c.Client.PublicClientId = "a1b2"
	c.Client.ServerType = fsd.ServerVatsim.String()
	if result := c.CheckValid(nopLogger{}); result.IsFail() {
		t.Fatalf("CheckValid() failed: %v", result.Error())
	}
	info := c.Client.SessionInfo()
	if info.PublicClientId != 0xa1b2 {
		t.Errorf("SessionInfo().PublicClientId = %x; expected a1b2", info.PublicClientId)
	}
	if info.ServerType != fsd.ServerVatsim {
		t.Errorf("SessionInfo().ServerType = %v; expected vatsim", info.ServerType)
	}
}
