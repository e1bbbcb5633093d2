// Package packet
package packet

import (
	"fmt"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
	"strconv"
)

// AddPilot #AP 机组登录
type AddPilot struct {
	From     string
	To       string
	Cid      string
	Password string
	Rating   fsd.PilotRating
	Protocol int
	SimType  fsd.SimType
	RealName string
}

func (p *AddPilot) Command() fsd.ClientCommand { return fsd.AddPilot }
func (p *AddPilot) Category() fsd.Category { return fsd.CategoryAddPilot }

func (p *AddPilot) Parts() ([]string, error) {
	if err := firstError(
		requiredField("callsign", p.From),
		requiredField("to", p.To),
		requiredField("cid", p.Cid),
		optionalField("password", p.Password),
	); err != nil {
		return nil, err
	}
	return []string{p.From, p.To, p.Cid, p.Password, itoa(int(p.Rating)), itoa(p.Protocol),
		itoa(int(p.SimType)), fsd.SanitizeText(p.RealName)}, nil
}

func decodeAddPilot(tokens []string) (Packet, error) {
	r := newFieldReader(tokens)
	p := &AddPilot{
		From:     r.text(0),
		To:       r.text(1),
		Cid:      r.text(2),
		Password: r.text(3),
		Rating:   fsd.ParsePilotRating(r.integer(4, "rating")),
		Protocol: r.integer(5, "protocol"),
		SimType:  fsd.SimType(r.intOr(6, "simtype", 0)),
		RealName: r.rest(7),
	}
	return p, r.err
}

// AddAtc #AA 管制员登录
type AddAtc struct {
	From     string
	To       string
	RealName string
	Cid      string
	Password string
	Rating   fsd.AtcRating
	Protocol int
}

func (p *AddAtc) Command() fsd.ClientCommand { return fsd.AddAtc }
func (p *AddAtc) Category() fsd.Category { return fsd.CategoryAddAtc }

func (p *AddAtc) Parts() ([]string, error) {
	if err := firstError(
		requiredField("callsign", p.From),
		requiredField("to", p.To),
		requiredField("cid", p.Cid),
		optionalField("password", p.Password),
	); err != nil {
		return nil, err
	}
	return []string{p.From, p.To, fsd.SanitizeText(p.RealName), p.Cid, p.Password,
		itoa(int(p.Rating)), itoa(p.Protocol)}, nil
}

func decodeAddAtc(tokens []string) (Packet, error) {
	r := newFieldReader(tokens)
	p := &AddAtc{
		From:     r.text(0),
		To:       r.text(1),
		RealName: r.text(2),
		Cid:      r.text(3),
		Password: r.text(4),
		Rating:   fsd.ParseAtcRating(r.integer(5, "rating")),
		Protocol: r.integer(6, "protocol"),
	}
	return p, r.err
}

// DeletePilot #DP 机组下线
type DeletePilot struct {
	From string
	Cid  string
}

func (p *DeletePilot) Command() fsd.ClientCommand { return fsd.RemovePilot }
func (p *DeletePilot) Category() fsd.Category { return fsd.CategoryDeletePilot }

func (p *DeletePilot) Parts() ([]string, error) {
	if err := firstError(requiredField("callsign", p.From), optionalField("cid", p.Cid)); err != nil {
		return nil, err
	}
	return []string{p.From, p.Cid}, nil
}

func decodeDeletePilot(tokens []string) (Packet, error) {
	r := newFieldReader(tokens)
	return &DeletePilot{From: r.text(0), Cid: r.text(1)}, nil
}

// DeleteAtc #DA 管制员下线
type DeleteAtc struct {
	From string
	Cid  string
}

func (p *DeleteAtc) Command() fsd.ClientCommand { return fsd.RemoveAtc }
func (p *DeleteAtc) Category() fsd.Category { return fsd.CategoryDeleteAtc }

func (p *DeleteAtc) Parts() ([]string, error) {
	if err := firstError(requiredField("callsign", p.From), optionalField("cid", p.Cid)); err != nil {
		return nil, err
	}
	return []string{p.From, p.Cid}, nil
}

func decodeDeleteAtc(tokens []string) (Packet, error) {
	r := newFieldReader(tokens)
	return &DeleteAtc{From: r.text(0), Cid: r.text(1)}, nil
}

// ClientIdentification $ID 客户端身份识别
type ClientIdentification struct {
	From             string
	To               string
	ClientId         uint16
	ClientName       string
	VersionMajor     int
	VersionMinor     int
	Cid              string
	SysUid           string
	InitialChallenge string
}

func (p *ClientIdentification) Command() fsd.ClientCommand { return fsd.ClientIdentify }
func (p *ClientIdentification) Category() fsd.Category { return fsd.CategoryClientIdentification }

func (p *ClientIdentification) Parts() ([]string, error) {
	if err := firstError(
		requiredField("callsign", p.From),
		requiredField("to", p.To),
		requiredField("client_name", p.ClientName),
		optionalField("cid", p.Cid),
		optionalField("sysuid", p.SysUid),
		optionalField("challenge", p.InitialChallenge),
	); err != nil {
		return nil, err
	}
	parts := []string{p.From, p.To, fmt.Sprintf("%04x", p.ClientId), p.ClientName,
		itoa(p.VersionMajor), itoa(p.VersionMinor), p.Cid, p.SysUid}
	if p.InitialChallenge != "" {
		parts = append(parts, p.InitialChallenge)
	}
	return parts, nil
}

func decodeClientIdentification(tokens []string) (Packet, error) {
	r := newFieldReader(tokens)
	clientId, err := strconv.ParseUint(r.text(2), 16, 16)
	if err != nil {
		r.fail(malformed("client_id", r.text(2)))
	}
	p := &ClientIdentification{
		From:             r.text(0),
		To:               r.text(1),
		ClientId:         uint16(clientId),
		ClientName:       r.text(3),
		VersionMajor:     r.integer(4, "major"),
		VersionMinor:     r.integer(5, "minor"),
		Cid:              r.text(6),
		SysUid:           r.text(7),
		InitialChallenge: r.text(8),
	}
	return p, r.err
}

// ServerIdentification $DI 服务器下发的身份识别请求
type ServerIdentification struct {
	From      string
	To        string
	Version   string
	Challenge string
}

func (p *ServerIdentification) Command() fsd.ClientCommand { return fsd.ServerIdentify }
func (p *ServerIdentification) Category() fsd.Category { return fsd.CategoryServerIdentification }

func (p *ServerIdentification) Parts() ([]string, error) {
	from := serverOr(p.From)
	if err := firstError(
		requiredField("to", p.To),
		requiredField("challenge", p.Challenge),
		optionalField("version", p.Version),
	); err != nil {
		return nil, err
	}
	if p.Version == "" {
		return []string{from, p.To, p.Challenge}, nil
	}
	return []string{from, p.To, p.Version, p.Challenge}, nil
}

func decodeServerIdentification(tokens []string) (Packet, error) {
	r := newFieldReader(tokens)
	p := &ServerIdentification{From: r.text(0), To: r.text(1)}
	if len(tokens) >= 4 {
		p.Version = r.text(2)
		p.Challenge = r.text(3)
	} else {
		p.Challenge = r.text(2)
	}
	return p, nil
}

// AuthChallenge $ZC 质询
type AuthChallenge struct {
	From      string
	To        string
	Challenge string
}

func (p *AuthChallenge) Command() fsd.ClientCommand { return fsd.AuthChallenge }
func (p *AuthChallenge) Category() fsd.Category { return fsd.CategoryAuthChallenge }

func (p *AuthChallenge) Parts() ([]string, error) {
	if err := firstError(
		requiredField("callsign", p.From),
		requiredField("to", p.To),
		requiredField("challenge", p.Challenge),
	); err != nil {
		return nil, err
	}
	return []string{p.From, p.To, p.Challenge}, nil
}

func decodeAuthChallenge(tokens []string) (Packet, error) {
	r := newFieldReader(tokens)
	return &AuthChallenge{From: r.text(0), To: r.text(1), Challenge: r.text(2)}, nil
}

// AuthResponse $ZR 质询应答
type AuthResponse struct {
	From     string
	To       string
	Response string
}

func (p *AuthResponse) Command() fsd.ClientCommand { return fsd.AuthResponse }
func (p *AuthResponse) Category() fsd.Category { return fsd.CategoryAuthResponse }

func (p *AuthResponse) Parts() ([]string, error) {
	if err := firstError(
		requiredField("callsign", p.From),
		requiredField("to", p.To),
		requiredField("response", p.Response),
	); err != nil {
		return nil, err
	}
	return []string{p.From, p.To, p.Response}, nil
}

func decodeAuthResponse(tokens []string) (Packet, error) {
	r := newFieldReader(tokens)
	return &AuthResponse{From: r.text(0), To: r.text(1), Response: r.text(2)}, nil
}
