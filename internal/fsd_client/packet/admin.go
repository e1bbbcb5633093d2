// Package packet
package packet

import (
	"fmt"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/global"
	"strings"
)

const subtypeMetar = "METAR"

// Kill $!! 被服务器或监督员踢出
type Kill struct {
	From   string
	To     string
	Reason string
}

func (p *Kill) Command() fsd.ClientCommand { return fsd.KillClient }
func (p *Kill) Category() fsd.Category { return fsd.CategoryKill }

func (p *Kill) Parts() ([]string, error) {
	if err := firstError(requiredField("callsign", p.From), requiredField("to", p.To)); err != nil {
		return nil, err
	}
	return []string{p.From, p.To, fsd.SanitizeText(p.Reason)}, nil
}

func decodeKill(tokens []string) (Packet, error) {
	r := newFieldReader(tokens)
	return &Kill{From: r.text(0), To: r.text(1), Reason: r.rest(2)}, nil
}

// Ping $PI 对端需要原样回送时间戳
type Ping struct {
	From      string
	To        string
	Timestamp string
}

func (p *Ping) Command() fsd.ClientCommand { return fsd.Ping }
func (p *Ping) Category() fsd.Category { return fsd.CategoryPing }

func (p *Ping) Parts() ([]string, error) {
	return pingParts(p.From, p.To, p.Timestamp)
}

func decodePing(tokens []string) (Packet, error) {
	r := newFieldReader(tokens)
	return &Ping{From: r.text(0), To: r.text(1), Timestamp: r.rest(2)}, nil
}

// Pong $PO 回送的时间戳
type Pong struct {
	From      string
	To        string
	Timestamp string
}

func (p *Pong) Command() fsd.ClientCommand { return fsd.Pong }
func (p *Pong) Category() fsd.Category { return fsd.CategoryPong }

func (p *Pong) Parts() ([]string, error) {
	return pingParts(p.From, p.To, p.Timestamp)
}

func decodePong(tokens []string) (Packet, error) {
	r := newFieldReader(tokens)
	return &Pong{From: r.text(0), To: r.text(1), Timestamp: r.rest(2)}, nil
}

func pingParts(from, to, timestamp string) ([]string, error) {
	if err := firstError(
		requiredField("callsign", from),
		requiredField("to", to),
		optionalField("timestamp", timestamp),
	); err != nil {
		return nil, err
	}
	return []string{from, to, timestamp}, nil
}

// ServerErrorMessage $ER 服务器报告的错误
type ServerErrorMessage struct {
	From        string
	To          string
	Code        fsd.ServerError
	Parameter   string
	Description string
}

func (p *ServerErrorMessage) Command() fsd.ClientCommand { return fsd.Error }
func (p *ServerErrorMessage) Category() fsd.Category { return fsd.CategoryServerError }

func (p *ServerErrorMessage) Error() string {
	if p.Description == "" {
		return p.Code.String()
	}
	return fmt.Sprintf("%s: %s", p.Code.String(), p.Description)
}

func (p *ServerErrorMessage) Parts() ([]string, error) {
	from := serverOr(p.From)
	if err := requiredField("to", p.To); err != nil {
		return nil, err
	}
	return []string{from, p.To, fmt.Sprintf("%03d", p.Code.Index()), fsd.SanitizeText(p.Parameter),
		fsd.SanitizeText(p.Description)}, nil
}

func decodeServerError(tokens []string) (Packet, error) {
	r := newFieldReader(tokens)
	p := &ServerErrorMessage{
		From:        r.text(0),
		To:          r.text(1),
		Code:        fsd.ParseServerError(r.integer(2, "code")),
		Parameter:   r.text(3),
		Description: r.rest(4),
	}
	return p, r.err
}

// MetarRequest $AX 向服务器请求 METAR
type MetarRequest struct {
	From    string
	To      string
	Station string
}

func (p *MetarRequest) Command() fsd.ClientCommand { return fsd.RequestAcars }
func (p *MetarRequest) Category() fsd.Category { return fsd.CategoryMetarRequest }

func (p *MetarRequest) Parts() ([]string, error) {
	to := p.To
	if to == "" {
		to = global.FSDServerName
	}
	if err := firstError(requiredField("callsign", p.From), requiredField("station", p.Station)); err != nil {
		return nil, err
	}
	return []string{p.From, to, subtypeMetar, p.Station}, nil
}

func decodeMetarRequest(tokens []string) (Packet, error) {
	r := newFieldReader(tokens)
	if r.text(2) != subtypeMetar {
		return nil, malformed("subtype", r.text(2))
	}
	return &MetarRequest{From: r.text(0), To: r.text(1), Station: r.text(3)}, nil
}

// MetarResponse $AR 服务器返回的 METAR 报文
type MetarResponse struct {
	From  string
	To    string
	Metar string
}

func (p *MetarResponse) Command() fsd.ClientCommand { return fsd.ReplyAcars }
func (p *MetarResponse) Category() fsd.Category { return fsd.CategoryMetarResponse }

// Station METAR 的第一个词为机场代码
func (p *MetarResponse) Station() string {
	station, _, _ := strings.Cut(strings.TrimSpace(p.Metar), " ")
	return station
}

func (p *MetarResponse) Parts() ([]string, error) {
	from := serverOr(p.From)
	if err := firstError(requiredField("to", p.To), requiredField("metar", fsd.SanitizeText(p.Metar))); err != nil {
		return nil, err
	}
	return []string{from, p.To, subtypeMetar, fsd.SanitizeText(p.Metar)}, nil
}

func decodeMetarResponse(tokens []string) (Packet, error) {
	r := newFieldReader(tokens)
	if r.text(2) != subtypeMetar {
		return nil, malformed("subtype", r.text(2))
	}
	return &MetarResponse{From: r.text(0), To: r.text(1), Metar: r.rest(3)}, nil
}
