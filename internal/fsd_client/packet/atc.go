// Package packet
package packet

import "github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"

const (
	proControllerCCP    = "CCP"
	subtypeHandoffStop  = "HC"
	subtypeStateId      = "ID"
	subtypeStateIdReply = "DI"
	subtypeFlightStrip  = "ST"
	maxStripAnnotations = 9
)

// HandoffRequest $HO 请求移交
type HandoffRequest struct {
	From   string
	To     string
	Target string
}

func (p *HandoffRequest) Command() fsd.ClientCommand { return fsd.RequestHandoff }
func (p *HandoffRequest) Category() fsd.Category { return fsd.CategoryHandoffRequest }

func (p *HandoffRequest) Parts() ([]string, error) {
	return handoffParts(p.From, p.To, p.Target)
}

func decodeHandoffRequest(tokens []string) (Packet, error) {
	r := newFieldReader(tokens)
	return &HandoffRequest{From: r.text(0), To: r.text(1), Target: r.text(2)}, nil
}

// HandoffAccept $HA 接受移交
type HandoffAccept struct {
	From   string
	To     string
	Target string
}

func (p *HandoffAccept) Command() fsd.ClientCommand { return fsd.AcceptHandoff }
func (p *HandoffAccept) Category() fsd.Category { return fsd.CategoryHandoffAccepted }

func (p *HandoffAccept) Parts() ([]string, error) {
	return handoffParts(p.From, p.To, p.Target)
}

func decodeHandoffAccept(tokens []string) (Packet, error) {
	r := newFieldReader(tokens)
	return &HandoffAccept{From: r.text(0), To: r.text(1), Target: r.text(2)}, nil
}

// HandoffCancel #PC CCP HC 取消移交
type HandoffCancel struct {
	From   string
	To     string
	Target string
}

func (p *HandoffCancel) Command() fsd.ClientCommand { return fsd.ProController }
func (p *HandoffCancel) Category() fsd.Category { return fsd.CategoryHandoffCancelled }

func (p *HandoffCancel) Parts() ([]string, error) {
	parts, err := handoffParts(p.From, p.To, p.Target)
	if err != nil {
		return nil, err
	}
	return []string{parts[0], parts[1], proControllerCCP, subtypeHandoffStop, parts[2]}, nil
}

func handoffParts(from, to, target string) ([]string, error) {
	if err := firstError(
		requiredField("callsign", from),
		requiredField("to", to),
		requiredField("target", target),
	); err != nil {
		return nil, err
	}
	return []string{from, to, target}, nil
}

// SharedStateId #PC CCP ID 请求对方的共享状态标识, DI 为回复
type SharedStateId struct {
	From  string
	To    string
	Reply bool
}

func (p *SharedStateId) Command() fsd.ClientCommand { return fsd.ProController }
func (p *SharedStateId) Category() fsd.Category { return fsd.CategorySharedStateId }

func (p *SharedStateId) Parts() ([]string, error) {
	if err := firstError(requiredField("callsign", p.From), requiredField("to", p.To)); err != nil {
		return nil, err
	}
	if p.Reply {
		return []string{p.From, p.To, proControllerCCP, subtypeStateIdReply}, nil
	}
	return []string{p.From, p.To, proControllerCCP, subtypeStateId}, nil
}

// Landline #PC CCP 内部电话, 请求与批准时携带对方的地址
type Landline struct {
	From     string
	To       string
	Type     fsd.LandlineType
	Landline fsd.LandlineCommand
	IP       string
	Port     int
}

func (p *Landline) Command() fsd.ClientCommand { return fsd.ProController }
func (p *Landline) Category() fsd.Category { return fsd.CategoryLandlineCommand }

func (p *Landline) Parts() ([]string, error) {
	code := fsd.LandlineCode(p.Type, p.Landline)
	if err := firstError(
		requiredField("callsign", p.From),
		requiredField("to", p.To),
		requiredField("command", code),
		optionalField("ip", p.IP),
	); err != nil {
		return nil, err
	}
	parts := []string{p.From, p.To, proControllerCCP, code}
	if p.IP != "" {
		parts = append(parts, p.IP, itoa(p.Port))
	}
	return parts, nil
}

// FlightStrip #PC CCP ST 推送进程单, 最多 9 条批注
type FlightStrip struct {
	From        string
	To          string
	Target      string
	Format      int
	Annotations []string
}

func (p *FlightStrip) Command() fsd.ClientCommand { return fsd.ProController }
func (p *FlightStrip) Category() fsd.Category { return fsd.CategoryFlightStrip }

func (p *FlightStrip) Parts() ([]string, error) {
	if err := firstError(
		requiredField("callsign", p.From),
		requiredField("to", p.To),
		requiredField("target", p.Target),
	); err != nil {
		return nil, err
	}
	if len(p.Annotations) > maxStripAnnotations {
		return nil, &FieldError{Field: "annotations", Err: ErrIllegalField}
	}
	parts := []string{p.From, p.To, proControllerCCP, subtypeFlightStrip, p.Target}
	if p.Format == 0 && len(p.Annotations) == 0 {
		return parts, nil
	}
	parts = append(parts, itoa(p.Format))
	for _, annotation := range p.Annotations {
		parts = append(parts, fsd.SanitizeText(annotation))
	}
	return parts, nil
}

// CustomAtcPacket #PC 未识别的子类型, 原样交给应用处理
type CustomAtcPacket struct {
	From    string
	To      string
	Subtype string
	Tokens  []string
}

func (p *CustomAtcPacket) Command() fsd.ClientCommand { return fsd.ProController }
func (p *CustomAtcPacket) Category() fsd.Category { return fsd.CategoryCustomAtcPacket }

func (p *CustomAtcPacket) Parts() ([]string, error) {
	return customParts(p.From, p.To, p.Subtype, p.Tokens)
}

func customParts(from, to, subtype string, tokens []string) ([]string, error) {
	if err := firstError(
		requiredField("callsign", from),
		requiredField("to", to),
		requiredField("subtype", subtype),
	); err != nil {
		return nil, err
	}
	parts := make([]string, 0, 3+len(tokens))
	parts = append(parts, from, to, subtype)
	for i, token := range tokens {
		if err := optionalField("tokens", token); err != nil {
			return nil, &FieldError{Field: "tokens[" + itoa(i) + "]", Err: ErrIllegalField}
		}
		parts = append(parts, token)
	}
	return parts, nil
}

func decodeProController(tokens []string) (Packet, error) {
	r := newFieldReader(tokens)
	from, to := r.text(0), r.text(1)
	if r.text(2) != proControllerCCP || len(tokens) < 4 {
		return &CustomAtcPacket{From: from, To: to, Subtype: r.text(2), Tokens: payload(tokens, 3)}, nil
	}
	subtype := r.text(3)
	switch subtype {
	case subtypeHandoffStop:
		return &HandoffCancel{From: from, To: to, Target: r.text(4)}, nil
	case subtypeStateId, subtypeStateIdReply:
		return &SharedStateId{From: from, To: to, Reply: subtype == subtypeStateIdReply}, nil
	case subtypeFlightStrip:
		if !r.require(5) {
			return nil, r.err
		}
		strip := &FlightStrip{From: from, To: to, Target: r.text(4), Format: r.intOr(5, "format", 0)}
		strip.Annotations = payload(tokens, 6)
		if len(strip.Annotations) > maxStripAnnotations {
			strip.Annotations = strip.Annotations[:maxStripAnnotations]
		}
		return strip, r.err
	}
	if landlineType, command, ok := fsd.ParseLandlineCode(subtype); ok {
		landline := &Landline{From: from, To: to, Type: landlineType, Landline: command, IP: r.text(4)}
		landline.Port = r.intOr(5, "port", 0)
		return landline, r.err
	}
	if command, ok := fsd.ParseTrackingCode(subtype); ok && command.ViaProController() {
		return &TrackingCommandMessage{From: from, To: to, Tracking: command, Target: r.text(4)}, nil
	}
	return &CustomAtcPacket{From: from, To: to, Subtype: proControllerCCP, Tokens: payload(tokens, 3)}, nil
}
