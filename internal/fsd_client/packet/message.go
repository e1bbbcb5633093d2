// Package packet
package packet

import (
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
	"strconv"
	"strings"
)

// Message 解码后的报文, Category 决定分发到哪个回调
type Message interface {
	Command() fsd.ClientCommand
	Category() fsd.Category
}

// Packet 可以编码回报文的消息
type Packet interface {
	Message
	// Parts 不含前缀的字段列表, 第一个字段紧跟在前缀之后
	Parts() ([]string, error)
}

// Encode 生成一行报文, 不含换行符
func Encode(p Packet) ([]byte, error) {
	parts, err := p.Parts()
	if err != nil {
		return nil, err
	}
	return makePacket(p.Command(), parts...), nil
}

type decoderFunc func(tokens []string) (Packet, error)

var decoders = map[fsd.ClientCommand]decoderFunc{
	fsd.AddAtc:         decodeAddAtc,
	fsd.AddPilot:       decodeAddPilot,
	fsd.RemoveAtc:      decodeDeleteAtc,
	fsd.RemovePilot:    decodeDeletePilot,
	fsd.ProController:  decodeProController,
	fsd.SquawkBox:      decodeSquawkBox,
	fsd.Message:        decodeTextMessage,
	fsd.PilotPos:       decodePilotPosition,
	fsd.AtcPos:         decodeAtcPosition,
	fsd.AtcSubVisPoint: decodeSecondaryAtcPosition,
	fsd.RequestHandoff: decodeHandoffRequest,
	fsd.AcceptHandoff:  decodeHandoffAccept,
	fsd.Ping:           decodePing,
	fsd.Pong:           decodePong,
	fsd.Plan:           decodeFlightPlan,
	fsd.AtcEditPlan:    decodeAmendedFlightPlan,
	fsd.KillClient:     decodeKill,
	fsd.Error:          decodeServerError,
	fsd.ClientQuery:    decodeClientQuery,
	fsd.ClientResponse: decodeClientResponse,
	fsd.ClientIdentify: decodeClientIdentification,
	fsd.ServerIdentify: decodeServerIdentification,
	fsd.AuthChallenge:  decodeAuthChallenge,
	fsd.AuthResponse:   decodeAuthResponse,
	fsd.RequestWeather: decodeWeatherRequest,
	fsd.TempData:       decodeTemperatureData,
	fsd.WindData:       decodeWindData,
	fsd.CloudData:      decodeCloudData,
	fsd.RequestAcars:   decodeMetarRequest,
	fsd.ReplyAcars:     decodeMetarResponse,
}

// Decode 解析一行报文
// 未知前缀返回 nil, nil, 由调用方静默丢弃; 其余失败均返回 *ParseError
func Decode(line string) (Packet, error) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return nil, &ParseError{Line: line, Err: ErrEmptyLine}
	}
	command, tokens := ParseCommandLine(line)
	if command == "" {
		return nil, nil
	}
	if requirement, ok := fsd.CommandRequirements[command]; ok && len(tokens) < requirement.RequireLength {
		return nil, &ParseError{Command: command, Line: line, Err: ErrTooFewTokens}
	}
	decoder, ok := decoders[command]
	if !ok {
		return nil, nil
	}
	message, err := decoder(tokens)
	if err != nil {
		return nil, &ParseError{Command: command, Line: line, Err: err}
	}
	return message, nil
}

// fieldReader 按下标读取字段, 记录遇到的第一个错误
type fieldReader struct {
	tokens []string
	err    error
}

func newFieldReader(tokens []string) *fieldReader {
	return &fieldReader{tokens: tokens}
}

func (r *fieldReader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// require 字段数不足时记录错误
func (r *fieldReader) require(length int) bool {
	if len(r.tokens) < length {
		r.fail(ErrTooFewTokens)
		return false
	}
	return true
}

func (r *fieldReader) text(index int) string {
	if index < 0 || index >= len(r.tokens) {
		return ""
	}
	return r.tokens[index]
}

func (r *fieldReader) rest(index int) string {
	return joinRest(r.tokens, index)
}

func (r *fieldReader) integer(index int, name string) int {
	value := strings.TrimSpace(r.text(index))
	if result, err := strconv.Atoi(value); err == nil {
		return result
	}
	// 部分客户端以浮点数发送高度和速度
	if result, err := strconv.ParseFloat(value, 64); err == nil {
		return int(result)
	}
	r.fail(malformed(name, value))
	return 0
}

// intOr 可选数值字段, 为空时使用默认值
func (r *fieldReader) intOr(index int, name string, defaultValue int) int {
	if strings.TrimSpace(r.text(index)) == "" {
		return defaultValue
	}
	return r.integer(index, name)
}

func (r *fieldReader) decimal(index int, name string) float64 {
	value := strings.TrimSpace(r.text(index))
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		r.fail(malformed(name, value))
		return 0
	}
	return result
}

func (r *fieldReader) unsigned(index int, name string) uint32 {
	value := strings.TrimSpace(r.text(index))
	result, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		// 有的客户端会把 PBH 当作有符号数输出
		signed, signedErr := strconv.ParseInt(value, 10, 32)
		if signedErr != nil {
			r.fail(malformed(name, value))
			return 0
		}
		return uint32(signed)
	}
	return uint32(result)
}

func (r *fieldReader) flag(index int) bool {
	value := strings.TrimSpace(r.text(index))
	return value == "1" || strings.EqualFold(value, "true")
}

func boolToStr(value bool) string {
	if value {
		return "1"
	}
	return "0"
}

func itoa(value int) string {
	return strconv.Itoa(value)
}
