// Package config
package config

import (
	"errors"
	"fmt"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/log"
	"strings"
	"time"
)

type LoginConfig struct {
	Type           string         `json:"type"`
	ClientType     fsd.ClientType `json:"-"`
	Callsign       string         `json:"callsign"`
	RealName       string         `json:"real_name"`
	Cid            string         `json:"cid"`
	Password       string         `json:"password"`
	Rating         int            `json:"rating"`
	SimulatorType  string         `json:"simulator_type"`
	Facility       int            `json:"facility"`
	Frequency      string         `json:"frequency"`
	FrequencyValue fsd.Frequency  `json:"-"`
	VisualRange    int            `json:"visual_range"`
	Latitude       float64        `json:"latitude"`
	Longitude      float64        `json:"longitude"`
	Altitude       int            `json:"altitude"`
	Transponder    string         `json:"transponder"`
	ReportInterval string         `json:"report_interval"` // 位置报告间隔
	ReportDuration time.Duration  `json:"-"`
	InterimRatio   int            `json:"interim_ratio"` // 每发送多少次临时位置后发送一次完整位置, 0 表示不发送临时位置
}

func defaultLoginConfig() *LoginConfig {
	return &LoginConfig{
		Type:           fsd.ClientPilot.String(),
		Callsign:       "TEST001",
		RealName:       "Simple Fsd Client",
		Cid:            "",
		Password:       "",
		Rating:         int(fsd.PilotStudent),
		SimulatorType:  fsd.SimMSFS98.String(),
		Facility:       int(fsd.FacilityUnknown),
		Frequency:      "122.800",
		VisualRange:    40,
		Latitude:       0,
		Longitude:      0,
		Altitude:       0,
		Transponder:    "2000",
		ReportInterval: "5s",
		InterimRatio:   0,
	}
}

func (config *LoginConfig) checkValid(logger log.LoggerInterface) *ValidResult {
	if clientType, ok := fsd.ParseClientType(config.Type); !ok {
		return ValidFail(fmt.Errorf("login.type %s is not allowed, must be pilot or atc", config.Type))
	} else {
		config.ClientType = clientType
	}

	config.Callsign = strings.ToUpper(strings.TrimSpace(config.Callsign))
	if config.Callsign == "" || strings.ContainsAny(config.Callsign, ":\r\n ") {
		return ValidFail(fmt.Errorf("login.callsign %q is invalid", config.Callsign))
	}
	if config.Cid == "" {
		logger.Warn("login.cid is empty, most servers will reject the logon")
	}

	if frequency, err := fsd.ParseFrequency(config.Frequency); err != nil {
		return ValidFailWith(errors.New("invalid json field login.frequency"), err)
	} else {
		config.FrequencyValue = frequency
	}

	if _, err := fsd.ParseTransponder(config.Transponder); err != nil {
		return ValidFailWith(errors.New("invalid json field login.transponder"), err)
	}

	if _, ok := fsd.ParseSimType(config.SimulatorType); !ok && config.ClientType == fsd.ClientPilot {
		logger.WarnF("Unknown login.simulator_type %s, fallback to %s", config.SimulatorType, fsd.SimUnknown)
	}

	if duration, err := time.ParseDuration(config.ReportInterval); err != nil {
		return ValidFailWith(errors.New("invalid json field login.report_interval"), err)
	} else if duration <= 0 {
		return ValidFail(errors.New("login.report_interval must be greater than zero"))
	} else {
		config.ReportDuration = duration
	}

	if config.InterimRatio < 0 {
		return ValidFail(errors.New("login.interim_ratio must not be negative"))
	}
	return ValidPass()
}

// Pilot 飞行员登录身份
func (config *LoginConfig) Pilot() fsd.PilotConnection {
	simType, _ := fsd.ParseSimType(config.SimulatorType)
	return fsd.PilotConnection{
		Callsign: config.Callsign,
		RealName: config.RealName,
		SimType:  simType,
		Rating:   fsd.ParsePilotRating(config.Rating),
	}
}

// Atc 管制员登录身份
func (config *LoginConfig) Atc() fsd.AtcConnection {
	return fsd.AtcConnection{
		Callsign: config.Callsign,
		RealName: config.RealName,
		Rating:   fsd.ParseAtcRating(config.Rating),
	}
}

// PilotPosition 配置文件中的初始飞行员位置
func (config *LoginConfig) PilotPosition() fsd.PilotPosition {
	transponder, _ := fsd.ParseTransponder(config.Transponder)
	return fsd.PilotPosition{
		Latitude:         config.Latitude,
		Longitude:        config.Longitude,
		AltitudeTrue:     config.Altitude,
		AltitudePressure: config.Altitude,
		OnGround:         config.Altitude == 0,
		Mode:             fsd.ModeCharlie,
		Transponder:      transponder,
		Rating:           fsd.ParsePilotRating(config.Rating),
	}
}

// AtcPosition 配置文件中的管制员席位
func (config *LoginConfig) AtcPosition() fsd.AtcPosition {
	return fsd.AtcPosition{
		Frequency:    config.FrequencyValue,
		Facility:     fsd.ParseFacility(config.Facility),
		VisibleRange: config.VisualRange,
		Rating:       fsd.ParseAtcRating(config.Rating),
		Latitude:     config.Latitude,
		Longitude:    config.Longitude,
	}
}
