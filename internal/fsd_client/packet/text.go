// Package packet
package packet

import (
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/global"
	"strings"
)

const (
	frequencyPrefix    = "@"
	frequencySeparator = "&"
	broadcastTarget    = "*"
	wallopTarget       = "*S"
)

// PrivateMessage #TM 发往指定呼号的私聊
type PrivateMessage struct {
	From    string
	To      string
	Message string
}

func (p *PrivateMessage) Command() fsd.ClientCommand { return fsd.Message }
func (p *PrivateMessage) Category() fsd.Category { return fsd.CategoryPrivateMessage }

func (p *PrivateMessage) Parts() ([]string, error) {
	message := fsd.SanitizeText(p.Message)
	if err := firstError(
		requiredField("callsign", p.From),
		requiredField("to", p.To),
		requiredField("message", message),
	); err != nil {
		return nil, err
	}
	return []string{p.From, p.To, message}, nil
}

// RadioMessage #TM 发往一个或多个频率
type RadioMessage struct {
	From        string
	Frequencies []fsd.Frequency
	Message     string
}

func (p *RadioMessage) Command() fsd.ClientCommand { return fsd.Message }
func (p *RadioMessage) Category() fsd.Category { return fsd.CategoryRadioMessage }

// AtcChannel 是否发往管制员公共频道
func (p *RadioMessage) AtcChannel() bool {
	for _, frequency := range p.Frequencies {
		if frequencyPrefix+frequency.WireOffset() == global.FSDAtcChannel {
			return true
		}
	}
	return false
}

func (p *RadioMessage) Parts() ([]string, error) {
	message := fsd.SanitizeText(p.Message)
	if err := firstError(requiredField("callsign", p.From), requiredField("message", message)); err != nil {
		return nil, err
	}
	if len(p.Frequencies) == 0 {
		return nil, &FieldError{Field: "frequencies", Err: ErrRequiredField}
	}
	targets := make([]string, 0, len(p.Frequencies))
	for _, frequency := range p.Frequencies {
		targets = append(targets, frequencyPrefix+frequency.WireOffset())
	}
	return []string{p.From, strings.Join(targets, frequencySeparator), message}, nil
}

// BroadcastMessage #TM 全服广播, Wallop 为发给监督员的求助广播
type BroadcastMessage struct {
	From    string
	Wallop  bool
	Message string
}

func (p *BroadcastMessage) Command() fsd.ClientCommand { return fsd.Message }
func (p *BroadcastMessage) Category() fsd.Category { return fsd.CategoryBroadcastMessage }

func (p *BroadcastMessage) Parts() ([]string, error) {
	message := fsd.SanitizeText(p.Message)
	if err := firstError(requiredField("callsign", p.From), requiredField("message", message)); err != nil {
		return nil, err
	}
	target := broadcastTarget
	if p.Wallop {
		target = wallopTarget
	}
	return []string{p.From, target, message}, nil
}

func parseFrequencyTargets(target string) ([]fsd.Frequency, error) {
	items := strings.Split(target, frequencySeparator)
	frequencies := make([]fsd.Frequency, 0, len(items))
	for _, item := range items {
		item = strings.TrimPrefix(strings.TrimSpace(item), frequencyPrefix)
		if item == "" {
			continue
		}
		frequency, err := fsd.ParseFrequency(item)
		if err != nil {
			return nil, malformed("frequency", item)
		}
		frequencies = append(frequencies, frequency)
	}
	if len(frequencies) == 0 {
		return nil, malformed("frequency", target)
	}
	return frequencies, nil
}

func decodeTextMessage(tokens []string) (Packet, error) {
	r := newFieldReader(tokens)
	from, to, message := r.text(0), r.text(1), r.rest(2)
	switch {
	case strings.HasPrefix(to, frequencyPrefix):
		frequencies, err := parseFrequencyTargets(to)
		if err != nil {
			return nil, err
		}
		return &RadioMessage{From: from, Frequencies: frequencies, Message: message}, nil
	case to == broadcastTarget:
		return &BroadcastMessage{From: from, Message: message}, nil
	case to == wallopTarget:
		return &BroadcastMessage{From: from, Wallop: true, Message: message}, nil
	default:
		return &PrivateMessage{From: from, To: to, Message: message}, nil
	}
}
