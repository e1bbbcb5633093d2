// Package packet
package packet

import (
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/global"
	"strconv"
	"strings"
)

const (
	subtypeBreakOn        = "BY"
	subtypeBreakOff       = "HI"
	subtypeHelpOn         = "HLP"
	subtypeHelpOff        = "NOHLP"
	subtypeNewInfo        = "NEWINFO"
	subtypeNewAtis        = "NEWATIS"
	subtypeAircraftConfig = "ACC"
)

// ClientQuery $CQ 向其他客户端或服务器发起查询
type ClientQuery struct {
	From    string
	To      string
	Type    fsd.ClientQueryType
	Payload []string
}

func (p *ClientQuery) Command() fsd.ClientCommand { return fsd.ClientQuery }
func (p *ClientQuery) Category() fsd.Category { return fsd.CategoryClientQuery }

func (p *ClientQuery) Parts() ([]string, error) {
	return queryParts(p.From, p.To, p.Type, p.Payload)
}

// ClientQueryResponse $CR 查询的回复
type ClientQueryResponse struct {
	From    string
	To      string
	Type    fsd.ClientQueryType
	Payload []string
}

func (p *ClientQueryResponse) Command() fsd.ClientCommand { return fsd.ClientResponse }
func (p *ClientQueryResponse) Category() fsd.Category { return fsd.CategoryClientQueryResponse }

func (p *ClientQueryResponse) Parts() ([]string, error) {
	return queryParts(p.From, p.To, p.Type, p.Payload)
}

func queryParts(from, to string, queryType fsd.ClientQueryType, payload []string) ([]string, error) {
	if err := firstError(
		requiredField("callsign", from),
		requiredField("to", to),
		requiredField("type", string(queryType)),
	); err != nil {
		return nil, err
	}
	parts := make([]string, 0, 3+len(payload))
	parts = append(parts, from, to, string(queryType))
	for _, value := range payload {
		parts = append(parts, fsd.SanitizeText(value))
	}
	return parts, nil
}

// CapabilitiesReply $CR CAPS 能力回复, 未出现的能力视为不支持
type CapabilitiesReply struct {
	From  string
	To    string
	Flags fsd.CapabilityFlags
	Pairs []fsd.KeyValue
}

func (p *CapabilitiesReply) Command() fsd.ClientCommand { return fsd.ClientResponse }
func (p *CapabilitiesReply) Category() fsd.Category { return fsd.CategoryCapabilitiesReply }

func (p *CapabilitiesReply) Parts() ([]string, error) {
	if err := firstError(requiredField("callsign", p.From), requiredField("to", p.To)); err != nil {
		return nil, err
	}
	return append([]string{p.From, p.To, string(fsd.QueryCapabilities)}, p.Flags.Tokens()...), nil
}

// AtisLine $CR ATIS 回复中的一行, E 行的内容为总行数
type AtisLine struct {
	From string
	To   string
	Type fsd.AtisLineType
	Text string
}

func (p *AtisLine) Command() fsd.ClientCommand { return fsd.ClientResponse }
func (p *AtisLine) Category() fsd.Category { return fsd.CategoryAtisLine }

// LineCount 仅对 E 行有效
func (p *AtisLine) LineCount() int {
	if p.Type != fsd.AtisEnd {
		return 0
	}
	count, err := strconv.Atoi(strings.TrimSpace(p.Text))
	if err != nil {
		return 0
	}
	return count
}

func (p *AtisLine) Parts() ([]string, error) {
	text := fsd.SanitizeText(p.Text)
	if p.Type == fsd.AtisLogoffTime {
		// 下线时间形如 20:00, 冒号在报文中原样保留
		text = strings.NewReplacer("\r", "", "\n", "").Replace(p.Text)
	}
	if err := firstError(requiredField("callsign", p.From), requiredField("to", p.To)); err != nil {
		return nil, err
	}
	return []string{p.From, p.To, string(fsd.QueryAtis), p.Type.String(), text}, nil
}

// SharedState $CQ 管制员之间同步的目标属性, 未知类型原样保留
type SharedState struct {
	From   string
	To     string
	Kind   fsd.SharedStateKind
	Target string
	Value  string
}

func (p *SharedState) Command() fsd.ClientCommand { return fsd.ClientQuery }
func (p *SharedState) Category() fsd.Category { return fsd.CategorySharedState }

func (p *SharedState) Parts() ([]string, error) {
	if err := firstError(
		requiredField("callsign", p.From),
		requiredField("to", p.To),
		requiredField("kind", string(p.Kind)),
		requiredField("target", p.Target),
	); err != nil {
		return nil, err
	}
	return []string{p.From, p.To, string(p.Kind), p.Target, fsd.SanitizeText(p.Value)}, nil
}

// TrackingCommandMessage IT DR WH 经 $CQ 发送, IH PT DP 经 #PC CCP 发送
type TrackingCommandMessage struct {
	From     string
	To       string
	Tracking fsd.TrackingCommand
	Target   string
}

func (p *TrackingCommandMessage) Command() fsd.ClientCommand {
	if p.Tracking.ViaProController() {
		return fsd.ProController
	}
	return fsd.ClientQuery
}

func (p *TrackingCommandMessage) Category() fsd.Category { return fsd.CategoryTrackingCommand }

func (p *TrackingCommandMessage) Parts() ([]string, error) {
	to := p.To
	if to == "" && !p.Tracking.ViaProController() {
		to = global.FSDSpecialTarget
	}
	if err := firstError(
		requiredField("callsign", p.From),
		requiredField("to", to),
		requiredField("command", p.Tracking.Code()),
		requiredField("target", p.Target),
	); err != nil {
		return nil, err
	}
	if p.Tracking.ViaProController() {
		return []string{p.From, to, proControllerCCP, p.Tracking.Code(), p.Target}, nil
	}
	return []string{p.From, to, p.Tracking.Code(), p.Target}, nil
}

// BreakCommand 管制员申请或结束休息
type BreakCommand struct {
	From    string
	To      string
	Enabled bool
}

func (p *BreakCommand) Command() fsd.ClientCommand { return fsd.ClientQuery }
func (p *BreakCommand) Category() fsd.Category { return fsd.CategoryBreakCommand }

func (p *BreakCommand) Parts() ([]string, error) {
	to := defaultTarget(p.To)
	if err := requiredField("callsign", p.From); err != nil {
		return nil, err
	}
	if p.Enabled {
		return []string{p.From, to, subtypeBreakOn}, nil
	}
	return []string{p.From, to, subtypeBreakOff}, nil
}

// HelpCommand 管制员求助或取消求助
type HelpCommand struct {
	From    string
	To      string
	Enabled bool
	Message string
}

func (p *HelpCommand) Command() fsd.ClientCommand { return fsd.ClientQuery }
func (p *HelpCommand) Category() fsd.Category { return fsd.CategoryHelpCommand }

func (p *HelpCommand) Parts() ([]string, error) {
	to := defaultTarget(p.To)
	if err := requiredField("callsign", p.From); err != nil {
		return nil, err
	}
	subtype := subtypeHelpOff
	if p.Enabled {
		subtype = subtypeHelpOn
	}
	parts := []string{p.From, to, subtype}
	if message := fsd.SanitizeText(p.Message); message != "" {
		parts = append(parts, message)
	}
	return parts, nil
}

// NewInfo 管制员更新了 ATIS 字母, Text 非空时以 NEWATIS 形式发送
type NewInfo struct {
	From   string
	To     string
	Letter string
	Text   string
}

func (p *NewInfo) Command() fsd.ClientCommand { return fsd.ClientQuery }
func (p *NewInfo) Category() fsd.Category { return fsd.CategoryNewInfo }

func (p *NewInfo) Parts() ([]string, error) {
	to := defaultTarget(p.To)
	if err := firstError(requiredField("callsign", p.From), requiredField("letter", p.Letter)); err != nil {
		return nil, err
	}
	if text := fsd.SanitizeText(p.Text); text != "" {
		return []string{p.From, to, subtypeNewAtis, p.Letter, text}, nil
	}
	return []string{p.From, to, subtypeNewInfo, p.Letter}, nil
}

// AircraftConfig $CQ ACC 内容为 JSON, 其中的冒号原样保留
type AircraftConfig struct {
	From string
	To   string
	Json string
}

func (p *AircraftConfig) Command() fsd.ClientCommand { return fsd.ClientQuery }
func (p *AircraftConfig) Category() fsd.Category { return fsd.CategoryAircraftConfig }

func (p *AircraftConfig) Parts() ([]string, error) {
	to := p.To
	if to == "" {
		to = global.FSDBroadcastTarget
	}
	if err := firstError(requiredField("callsign", p.From), optionalField("to", to)); err != nil {
		return nil, err
	}
	if p.Json == "" {
		return nil, &FieldError{Field: "json", Err: ErrRequiredField}
	}
	if strings.ContainsAny(p.Json, "\r\n") {
		return nil, &FieldError{Field: "json", Err: ErrIllegalField}
	}
	return []string{p.From, to, subtypeAircraftConfig, p.Json}, nil
}

func defaultTarget(to string) string {
	if to == "" {
		return global.FSDSpecialTarget
	}
	return to
}

func decodeClientQuery(tokens []string) (Packet, error) {
	r := newFieldReader(tokens)
	from, to, subtype := r.text(0), r.text(1), r.text(2)
	switch subtype {
	case subtypeBreakOn, subtypeBreakOff:
		return &BreakCommand{From: from, To: to, Enabled: subtype == subtypeBreakOn}, nil
	case subtypeHelpOn, subtypeHelpOff:
		return &HelpCommand{From: from, To: to, Enabled: subtype == subtypeHelpOn, Message: r.rest(3)}, nil
	case subtypeNewInfo:
		return &NewInfo{From: from, To: to, Letter: r.text(3)}, nil
	case subtypeNewAtis:
		return &NewInfo{From: from, To: to, Letter: r.text(3), Text: r.rest(4)}, nil
	case subtypeAircraftConfig:
		return &AircraftConfig{From: from, To: to, Json: r.rest(3)}, nil
	}
	if command, ok := fsd.ParseTrackingCode(subtype); ok && !command.ViaProController() {
		return &TrackingCommandMessage{From: from, To: to, Tracking: command, Target: r.text(3)}, nil
	}
	if kind := fsd.SharedStateKind(subtype); kind.Known() || (to == global.FSDSpecialTarget && len(tokens) >= 4) {
		if _, isQuery := fsd.ParseClientQueryType(subtype); !isQuery {
			return &SharedState{From: from, To: to, Kind: kind, Target: r.text(3), Value: r.rest(4)}, nil
		}
	}
	queryType, _ := fsd.ParseClientQueryType(subtype)
	return &ClientQuery{From: from, To: to, Type: queryType, Payload: payload(tokens, 3)}, nil
}

func decodeClientResponse(tokens []string) (Packet, error) {
	r := newFieldReader(tokens)
	from, to, subtype := r.text(0), r.text(1), r.text(2)
	switch fsd.ClientQueryType(subtype) {
	case fsd.QueryCapabilities:
		flags, pairs := fsd.ParseCapabilityPairs(payload(tokens, 3))
		return &CapabilitiesReply{From: from, To: to, Flags: flags, Pairs: pairs}, nil
	case fsd.QueryAtis:
		if !r.require(4) {
			return nil, r.err
		}
		lineType, ok := fsd.ParseAtisLineType(r.text(3))
		if !ok {
			return nil, malformed("atis_type", r.text(3))
		}
		return &AtisLine{From: from, To: to, Type: lineType, Text: r.rest(4)}, nil
	}
	queryType, _ := fsd.ParseClientQueryType(subtype)
	return &ClientQueryResponse{From: from, To: to, Type: queryType, Payload: payload(tokens, 3)}, nil
}

func payload(tokens []string, from int) []string {
	if from >= len(tokens) {
		return []string{}
	}
	result := make([]string, len(tokens)-from)
	copy(result, tokens[from:])
	return result
}
