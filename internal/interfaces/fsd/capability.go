// Package fsd
package fsd

import (
	"strings"
)

// CapabilityFlags 协议扩展能力位图, 位图是唯一的可信来源, 文本形式总是由位图生成
type CapabilityFlags uint32

const (
	CapabilityNone    CapabilityFlags = 0
	CapabilityAtcInfo CapabilityFlags = 1 << iota
	CapabilitySecondaryPos
	CapabilityAircraftInfo
	CapabilityOngoingCoord
	CapabilityInterimPos
	CapabilityFastPos
	CapabilityStealth
	CapabilityAircraftConfig
)

type capabilityName struct {
	flag CapabilityFlags
	name string
}

// capabilityNames 顺序即 CAPS 报文中的输出顺序
var capabilityNames = []capabilityName{
	{CapabilityAtcInfo, "ATCINFO"},
	{CapabilitySecondaryPos, "SECPOS"},
	{CapabilityAircraftInfo, "MODELDESC"},
	{CapabilityOngoingCoord, "ONGOINGCOORD"},
	{CapabilityInterimPos, "INTERIMPOS"},
	{CapabilityFastPos, "FASTPOS"},
	{CapabilityStealth, "STEALTH"},
	{CapabilityAircraftConfig, "ACCONFIG"},
}

const (
	capabilitySeparator = ":"
	capabilityAssign    = "="
	capabilityEnabled   = "1"
)

// KeyValue CAPS 报文中的一对键值
type KeyValue struct {
	Key   string
	Value string
}

// CapabilityByName 未知名称返回 false
func CapabilityByName(name string) (CapabilityFlags, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for _, c := range capabilityNames {
		if c.name == name {
			return c.flag, true
		}
	}
	return CapabilityNone, false
}

func (c CapabilityFlags) Has(flag CapabilityFlags) bool {
	return flag != CapabilityNone && c&flag == flag
}

// Names 已设置能力的名称列表
func (c CapabilityFlags) Names() []string {
	names := make([]string, 0, len(capabilityNames))
	for _, capability := range capabilityNames {
		if c.Has(capability.flag) {
			names = append(names, capability.name)
		}
	}
	return names
}

// Pairs 生成 CAPS 报文使用的键值对, 只包含已设置的能力
func (c CapabilityFlags) Pairs() []KeyValue {
	names := c.Names()
	pairs := make([]KeyValue, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, KeyValue{Key: name, Value: capabilityEnabled})
	}
	return pairs
}

// Tokens CAPS 报文中跟在子类型之后的字段
func (c CapabilityFlags) Tokens() []string {
	pairs := c.Pairs()
	tokens := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		tokens = append(tokens, pair.Key+capabilityAssign+pair.Value)
	}
	return tokens
}

// Negotiate 生成 NAME=1:NAME=1 形式的能力字符串
func (c CapabilityFlags) Negotiate() string {
	return strings.Join(c.Tokens(), capabilitySeparator)
}

func (c CapabilityFlags) String() string {
	return c.Negotiate()
}

// ParseCapabilityPairs 解析 CAPS 回复中的键值对
// 未知名称被忽略, 未出现的能力视为不支持, 值不为 1 的能力同样视为不支持
func ParseCapabilityPairs(tokens []string) (CapabilityFlags, []KeyValue) {
	flags := CapabilityNone
	pairs := make([]KeyValue, 0, len(tokens))
	for _, token := range tokens {
		if token == "" {
			continue
		}
		key, value, _ := strings.Cut(token, capabilityAssign)
		pairs = append(pairs, KeyValue{Key: key, Value: value})
		if flag, ok := CapabilityByName(key); ok && strings.TrimSpace(value) == capabilityEnabled {
			flags |= flag
		}
	}
	return flags, pairs
}

// ParseCapabilities 解析 Negotiate 生成的字符串
func ParseCapabilities(wire string) CapabilityFlags {
	flags, _ := ParseCapabilityPairs(strings.Split(wire, capabilitySeparator))
	return flags
}

// CapabilitiesFromNames 从配置文件中的名称列表构建位图, 返回无法识别的名称
func CapabilitiesFromNames(names []string) (CapabilityFlags, []string) {
	flags := CapabilityNone
	unknown := make([]string, 0)
	for _, name := range names {
		if flag, ok := CapabilityByName(name); ok {
			flags |= flag
		} else {
			unknown = append(unknown, name)
		}
	}
	return flags, unknown
}
