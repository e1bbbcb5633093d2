// Package packet
package packet

import (
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
	"strings"
)

const (
	subtypeInfoRequest  = "PIR"
	subtypeInfo         = "PI"
	infoModern          = "GEN"
	infoLegacy          = "X"
	infoKeyEquipment    = "EQUIPMENT"
	infoKeyAirline      = "AIRLINE"
	infoKeyLivery       = "LIVERY"
	infoKeyAssign       = "="
	legacyInfoPlacehold = "0"
)

// AircraftInfoRequest #SB PIR 请求对方的机型信息
type AircraftInfoRequest struct {
	From string
	To   string
}

func (p *AircraftInfoRequest) Command() fsd.ClientCommand { return fsd.SquawkBox }
func (p *AircraftInfoRequest) Category() fsd.Category { return fsd.CategoryAircraftInfoRequest }

func (p *AircraftInfoRequest) Parts() ([]string, error) {
	if err := firstError(requiredField("callsign", p.From), requiredField("to", p.To)); err != nil {
		return nil, err
	}
	return []string{p.From, p.To, subtypeInfoRequest}, nil
}

// AircraftInfo #SB PI GEN 机型信息
type AircraftInfo struct {
	From         string
	To           string
	AircraftType string
	Airline      string
	Livery       string
}

func (p *AircraftInfo) Command() fsd.ClientCommand { return fsd.SquawkBox }
func (p *AircraftInfo) Category() fsd.Category { return fsd.CategoryAircraftInfo }

func (p *AircraftInfo) Parts() ([]string, error) {
	if err := firstError(
		requiredField("callsign", p.From),
		requiredField("to", p.To),
		requiredField("aircraft_type", p.AircraftType),
		optionalField("airline", p.Airline),
		optionalField("livery", p.Livery),
	); err != nil {
		return nil, err
	}
	parts := []string{p.From, p.To, subtypeInfo, infoModern, infoKeyEquipment + infoKeyAssign + p.AircraftType}
	if p.Airline != "" {
		parts = append(parts, infoKeyAirline+infoKeyAssign+p.Airline)
	}
	if p.Livery != "" {
		parts = append(parts, infoKeyLivery+infoKeyAssign+p.Livery)
	}
	return parts, nil
}

// LegacyAircraftInfo #SB PI X 旧版客户端使用的机型信息
type LegacyAircraftInfo struct {
	From         string
	To           string
	Engine       fsd.EngineType
	AircraftType string
}

func (p *LegacyAircraftInfo) Command() fsd.ClientCommand { return fsd.SquawkBox }
func (p *LegacyAircraftInfo) Category() fsd.Category { return fsd.CategoryLegacyAircraftInfo }

func (p *LegacyAircraftInfo) Parts() ([]string, error) {
	if err := firstError(
		requiredField("callsign", p.From),
		requiredField("to", p.To),
		requiredField("aircraft_type", p.AircraftType),
	); err != nil {
		return nil, err
	}
	return []string{p.From, p.To, subtypeInfo, infoLegacy, legacyInfoPlacehold, itoa(int(p.Engine)), p.AircraftType}, nil
}

// CustomPilotPacket #SB 未识别的子类型
type CustomPilotPacket struct {
	From    string
	To      string
	Subtype string
	Tokens  []string
}

func (p *CustomPilotPacket) Command() fsd.ClientCommand { return fsd.SquawkBox }
func (p *CustomPilotPacket) Category() fsd.Category { return fsd.CategoryCustomPilotPacket }

func (p *CustomPilotPacket) Parts() ([]string, error) {
	return customParts(p.From, p.To, p.Subtype, p.Tokens)
}

func decodeSquawkBox(tokens []string) (Packet, error) {
	r := newFieldReader(tokens)
	from, to, subtype := r.text(0), r.text(1), r.text(2)
	switch subtype {
	case interimSubtype:
		return decodeInterimPilotPosition(tokens)
	case subtypeInfoRequest:
		return &AircraftInfoRequest{From: from, To: to}, nil
	case subtypeInfo:
		switch r.text(3) {
		case infoModern:
			info := &AircraftInfo{From: from, To: to}
			for _, pair := range payload(tokens, 4) {
				key, value, _ := strings.Cut(pair, infoKeyAssign)
				switch strings.ToUpper(key) {
				case infoKeyEquipment:
					info.AircraftType = value
				case infoKeyAirline:
					info.Airline = value
				case infoKeyLivery:
					info.Livery = value
				}
			}
			return info, nil
		case infoLegacy:
			if !r.require(7) {
				return nil, r.err
			}
			return &LegacyAircraftInfo{
				From:         from,
				To:           to,
				Engine:       fsd.EngineType(r.integer(5, "engine")),
				AircraftType: r.text(6),
			}, r.err
		}
	}
	return &CustomPilotPacket{From: from, To: to, Subtype: subtype, Tokens: payload(tokens, 3)}, nil
}
