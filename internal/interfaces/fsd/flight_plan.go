// Package fsd
package fsd

import (
	"fmt"
	"strings"
)

type FlightRules byte

const (
	RulesIFR  FlightRules = 'I'
	RulesVFR  FlightRules = 'V'
	RulesSVFR FlightRules = 'S'
	RulesDVFR FlightRules = 'D'
)

const MaxRouteLength = 100

func ParseFlightRules(value string) FlightRules {
	if len(value) == 0 {
		return RulesIFR
	}
	switch rules := FlightRules(strings.ToUpper(value)[0]); rules {
	case RulesVFR, RulesSVFR, RulesDVFR:
		return rules
	default:
		return RulesIFR
	}
}

func (r FlightRules) String() string {
	switch r {
	case RulesVFR, RulesSVFR, RulesDVFR:
		return string(r)
	default:
		return string(RulesIFR)
	}
}

type FlightPlan struct {
	Rules               FlightRules
	AircraftType        string
	CruiseSpeed         int
	DepartureAirport    string
	DepartureTime       int
	ActualDepartureTime int
	CruiseAltitude      string
	DestinationAirport  string
	EnrouteHours        int
	EnrouteMinutes      int
	FuelHours           int
	FuelMinutes         int
	AlternateAirport    string
	Remarks             string
	Route               string
}

// SanitizeText 去掉会破坏报文结构的字符
func SanitizeText(value string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ':', '\r', '\n':
			return -1
		default:
			return r
		}
	}, value)
}

// NormalizeRoute 航路统一大写, 空格替换为点号, 超长截断
func NormalizeRoute(route string) string {
	route = strings.ToUpper(SanitizeText(strings.TrimSpace(route)))
	route = strings.Join(strings.Fields(route), ".")
	if len(route) > MaxRouteLength {
		route = route[:MaxRouteLength]
	}
	return route
}

// FormatTime 24 小时制的 HHMM
func FormatTime(hhmm int) string {
	if hhmm < 0 {
		hhmm = 0
	}
	return fmt.Sprintf("%04d", hhmm%2400)
}

// Normalize 在编码前调用, 返回处理后的副本
func (plan FlightPlan) Normalize() FlightPlan {
	plan.AircraftType = strings.ToUpper(SanitizeText(strings.TrimSpace(plan.AircraftType)))
	plan.DepartureAirport = strings.ToUpper(SanitizeText(strings.TrimSpace(plan.DepartureAirport)))
	plan.DestinationAirport = strings.ToUpper(SanitizeText(strings.TrimSpace(plan.DestinationAirport)))
	plan.AlternateAirport = strings.ToUpper(SanitizeText(strings.TrimSpace(plan.AlternateAirport)))
	plan.CruiseAltitude = strings.ToUpper(SanitizeText(strings.TrimSpace(plan.CruiseAltitude)))
	plan.Remarks = SanitizeText(plan.Remarks)
	plan.Route = NormalizeRoute(plan.Route)
	return plan
}

// CruiseAltitudeFeet 解析 FL350 或 35000 形式的巡航高度
func (plan *FlightPlan) CruiseAltitudeFeet() int {
	altitude := strings.ToUpper(strings.TrimSpace(plan.CruiseAltitude))
	if strings.HasPrefix(altitude, "FL") {
		level := 0
		if _, err := fmt.Sscanf(altitude[2:], "%d", &level); err != nil {
			return 0
		}
		return level * 100
	}
	feet := 0
	if _, err := fmt.Sscanf(altitude, "%d", &feet); err != nil {
		return 0
	}
	return feet
}
