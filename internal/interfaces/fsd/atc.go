// Package fsd
package fsd

// ClientQueryType $CQ 与 $CR 报文的第三个字段
type ClientQueryType string

var (
	QueryFlightPlan   = ClientQueryType("FP")
	QueryFrequency    = ClientQueryType("C?")
	QueryInfo         = ClientQueryType("INF")
	QueryAtis         = ClientQueryType("ATIS")
	QueryServer       = ClientQueryType("SV")
	QueryRealName     = ClientQueryType("RN")
	QueryIsValidAtc   = ClientQueryType("ATC")
	QueryCapabilities = ClientQueryType("CAPS")
	QueryIP           = ClientQueryType("IP")
)

var ClientQueryTypes = []ClientQueryType{
	QueryFlightPlan, QueryFrequency, QueryInfo, QueryAtis, QueryServer,
	QueryRealName, QueryIsValidAtc, QueryCapabilities, QueryIP,
}

func ParseClientQueryType(value string) (ClientQueryType, bool) {
	for _, queryType := range ClientQueryTypes {
		if string(queryType) == value {
			return queryType, true
		}
	}
	return ClientQueryType(value), false
}

func (q ClientQueryType) String() string {
	return string(q)
}

func (q ClientQueryType) Index() int {
	for i, queryType := range ClientQueryTypes {
		if queryType == q {
			return i
		}
	}
	return -1
}

// SharedStateKind 通过 $CQ 推送给其他管制员的属性
type SharedStateKind string

var (
	SharedScratchpad   = SharedStateKind("SC")
	SharedVoiceType    = SharedStateKind("VT")
	SharedBeaconCode   = SharedStateKind("BC")
	SharedFinalAlt     = SharedStateKind("FA")
	SharedTempAltitude = SharedStateKind("TA")
)

var SharedStateKinds = []SharedStateKind{
	SharedScratchpad, SharedVoiceType, SharedBeaconCode, SharedFinalAlt, SharedTempAltitude,
}

// Known 未知的属性类型也会原样保留
func (k SharedStateKind) Known() bool {
	for _, kind := range SharedStateKinds {
		if kind == k {
			return true
		}
	}
	return false
}

func (k SharedStateKind) String() string {
	return string(k)
}

type LandlineType int

const (
	LandlineIntercom LandlineType = iota
	LandlineOverride
	LandlineMonitor
)

type LandlineCommand int

const (
	LandlineRequest LandlineCommand = iota
	LandlineApprove
	LandlineReject
	LandlineEnd
)

var landlineCodes = [3][4]string{
	{"IC", "IK", "IB", "EC"},
	{"OV", "OK", "OB", "EO"},
	{"MN", "MK", "MB", "EM"},
}

var landlineTypeString = []string{"Intercom", "Override", "Monitor"}

var landlineCommandString = []string{"Request", "Approve", "Reject", "End"}

func (t LandlineType) String() string {
	if t < 0 || int(t) >= len(landlineTypeString) {
		return "Unknown"
	}
	return landlineTypeString[t]
}

func (c LandlineCommand) String() string {
	if c < 0 || int(c) >= len(landlineCommandString) {
		return "Unknown"
	}
	return landlineCommandString[c]
}

// LandlineCode #PC CCP 子命令
func LandlineCode(landlineType LandlineType, command LandlineCommand) string {
	if landlineType < 0 || int(landlineType) >= len(landlineCodes) ||
		command < 0 || int(command) >= len(landlineCodes[0]) {
		return ""
	}
	return landlineCodes[landlineType][command]
}

func ParseLandlineCode(code string) (LandlineType, LandlineCommand, bool) {
	for t, commands := range landlineCodes {
		for c, value := range commands {
			if value == code {
				return LandlineType(t), LandlineCommand(c), true
			}
		}
	}
	return LandlineIntercom, LandlineRequest, false
}

type TrackingCommand int

const (
	TrackingStart TrackingCommand = iota
	TrackingDrop
	TrackingWhoHas
	TrackingIHave
	TrackingPointOut
	TrackingPushToDeparture
)

var trackingCodes = []string{"IT", "DR", "WH", "IH", "PT", "DP"}

// ViaProController IH PT DP 通过 #PC 发送, 其余通过 $CQ 发往 @94835
func (c TrackingCommand) ViaProController() bool {
	return c >= TrackingIHave
}

func (c TrackingCommand) Code() string {
	if c < 0 || int(c) >= len(trackingCodes) {
		return ""
	}
	return trackingCodes[c]
}

func (c TrackingCommand) String() string {
	return c.Code()
}

func ParseTrackingCode(code string) (TrackingCommand, bool) {
	for i, value := range trackingCodes {
		if value == code {
			return TrackingCommand(i), true
		}
	}
	return TrackingStart, false
}

// AtisLineType $CR ATIS 回复的行类型
type AtisLineType byte

const (
	AtisVoiceServer AtisLineType = 'V'
	AtisText        AtisLineType = 'T'
	AtisLogoffTime  AtisLineType = 'Z'
	AtisEnd         AtisLineType = 'E'
)

func ParseAtisLineType(value string) (AtisLineType, bool) {
	if len(value) != 1 {
		return AtisText, false
	}
	switch lineType := AtisLineType(value[0]); lineType {
	case AtisVoiceServer, AtisText, AtisLogoffTime, AtisEnd:
		return lineType, true
	default:
		return AtisText, false
	}
}

func (t AtisLineType) String() string {
	return string(t)
}

// ControllerAtis 一次完整的 ATIS 回复
type ControllerAtis struct {
	VoiceServer string
	TextLines   []string
	LogoffTime  string
	LineCount   int
}

// EngineType 旧版机型信息中的发动机类型
type EngineType int

const (
	EnginePiston EngineType = iota
	EngineJet
	EngineNone
	EngineHelicopter
)

var engineTypeString = []string{"Piston", "Jet", "None", "Helicopter"}

func (e EngineType) String() string {
	if e < 0 || int(e) >= len(engineTypeString) {
		return "Unknown"
	}
	return engineTypeString[e]
}
