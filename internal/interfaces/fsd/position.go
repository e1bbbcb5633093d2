// Package fsd
package fsd

import (
	"errors"
	"fmt"
	"strconv"
)

// TransponderMode 应答机模式, 作为 @ 报文的第一个字段
type TransponderMode byte

const (
	ModeStandby TransponderMode = 'S'
	ModeCharlie TransponderMode = 'N'
	ModeIdent   TransponderMode = 'Y'
)

var ErrIllegalTransponder = errors.New("illegal transponder code")

func ParseTransponderMode(value string) (TransponderMode, bool) {
	if len(value) != 1 {
		return ModeStandby, false
	}
	switch mode := TransponderMode(value[0]); mode {
	case ModeStandby, ModeCharlie, ModeIdent:
		return mode, true
	default:
		return ModeStandby, false
	}
}

func (m TransponderMode) String() string {
	switch m {
	case ModeCharlie:
		return "N"
	case ModeIdent:
		return "Y"
	default:
		return "S"
	}
}

// Transponder 四位应答机编码, 每一位都不能超过 7
type Transponder int

func ParseTransponder(value string) (Transponder, error) {
	if len(value) == 0 || len(value) > 4 {
		return 0, fmt.Errorf("%w %q", ErrIllegalTransponder, value)
	}
	for _, c := range value {
		if c < '0' || c > '7' {
			return 0, fmt.Errorf("%w %q", ErrIllegalTransponder, value)
		}
	}
	code, _ := strconv.Atoi(value)
	return Transponder(code), nil
}

func (t Transponder) Valid() bool {
	if t < 0 || t > 7777 {
		return false
	}
	for code := int(t); code > 0; code /= 10 {
		if code%10 > 7 {
			return false
		}
	}
	return true
}

func (t Transponder) String() string {
	return fmt.Sprintf("%04d", int(t))
}

// PilotPosition 完整的机组位置报告
type PilotPosition struct {
	Latitude         float64
	Longitude        float64
	AltitudeTrue     int
	AltitudePressure int
	GroundSpeed      int
	Heading          float64
	Bank             float64
	Pitch            float64
	OnGround         bool
	Mode             TransponderMode
	Transponder      Transponder
	Rating           PilotRating
}

// PressureDelta 报文中携带的是气压高度与真高之差
func (p *PilotPosition) PressureDelta() int {
	return p.AltitudePressure - p.AltitudeTrue
}

// InterimPilotPosition 两次完整报告之间的高频位置, 不携带应答机和等级
type InterimPilotPosition struct {
	Latitude     float64
	Longitude    float64
	AltitudeTrue int
	GroundSpeed  int
	Heading      float64
	Bank         float64
	Pitch        float64
	OnGround     bool
}

func (p *PilotPosition) Interim() InterimPilotPosition {
	return InterimPilotPosition{
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
		AltitudeTrue: p.AltitudeTrue,
		GroundSpeed:  p.GroundSpeed,
		Heading:      p.Heading,
		Bank:         p.Bank,
		Pitch:        p.Pitch,
		OnGround:     p.OnGround,
	}
}

type AtcPosition struct {
	Frequency    Frequency
	Facility     Facility
	VisibleRange int
	Rating       AtcRating
	Latitude     float64
	Longitude    float64
	Elevation    int
}

// SecondaryAtcPosition 额外的视程中心点
type SecondaryAtcPosition struct {
	Index     int
	Latitude  float64
	Longitude float64
}
