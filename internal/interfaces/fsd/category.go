// Package fsd
package fsd

// Category 回调分类, 每个分类最多只有一个处理函数
type Category int

const (
	CategoryStateChange Category = iota
	CategoryRawLine
	CategoryDecodeFailure
	CategoryPrivateMessage
	CategoryRadioMessage
	CategoryBroadcastMessage
	CategoryAddPilot
	CategoryAddAtc
	CategoryDeletePilot
	CategoryDeleteAtc
	CategoryPilotPosition
	CategoryInterimPilotPosition
	CategoryAtcPosition
	CategorySecondaryAtcPosition
	CategoryKill
	CategoryPing
	CategoryPong
	CategoryFlightPlan
	CategoryHandoffRequest
	CategoryHandoffAccepted
	CategoryHandoffCancelled
	CategoryMetarRequest
	CategoryMetarResponse
	CategoryClientQuery
	CategoryClientQueryResponse
	CategoryCapabilitiesReply
	CategoryAtisLine
	CategoryControllerAtis
	CategoryServerError
	CategoryTemperatureData
	CategoryWindData
	CategoryCloudData
	CategoryAircraftConfig
	CategoryCustomPilotPacket
	CategoryCustomAtcPacket
	CategoryAircraftInfoRequest
	CategoryAircraftInfo
	CategoryLegacyAircraftInfo
	CategorySharedState
	CategorySharedStateId
	CategoryLandlineCommand
	CategoryTrackingCommand
	CategoryBreakCommand
	CategoryHelpCommand
	CategoryFlightStrip
	CategoryNewInfo
	CategoryAuthChallenge
	CategoryAuthResponse
	CategoryClientIdentification
	CategoryServerIdentification
	CategoryWeatherRequest
	CategoryLogon
	// CategoryCount 分类总数, 用于分配回调表
	CategoryCount
)

var categoryString = []string{
	"StateChange", "RawLine", "DecodeFailure", "PrivateMessage", "RadioMessage", "BroadcastMessage",
	"AddPilot", "AddAtc", "DeletePilot", "DeleteAtc", "PilotPosition", "InterimPilotPosition",
	"AtcPosition", "SecondaryAtcPosition", "Kill", "Ping", "Pong", "FlightPlan", "HandoffRequest",
	"HandoffAccepted", "HandoffCancelled", "MetarRequest", "MetarResponse", "ClientQuery",
	"ClientQueryResponse", "CapabilitiesReply", "AtisLine", "ControllerAtis", "ServerError",
	"TemperatureData", "WindData", "CloudData", "AircraftConfig", "CustomPilotPacket",
	"CustomAtcPacket", "AircraftInfoRequest", "AircraftInfo", "LegacyAircraftInfo", "SharedState",
	"SharedStateId", "LandlineCommand", "TrackingCommand", "BreakCommand", "HelpCommand",
	"FlightStrip", "NewInfo", "AuthChallenge",
	"AuthResponse", "ClientIdentification", "ServerIdentification", "WeatherRequest",
	"Logon",
}

func (c Category) String() string {
	if c < 0 || c >= CategoryCount {
		return "Unknown"
	}
	return categoryString[c]
}

func (c Category) Index() int {
	return int(c)
}

func (c Category) Valid() bool {
	return c >= 0 && c < CategoryCount
}

func ParseCategory(value string) (Category, bool) {
	for i, name := range categoryString {
		if name == value {
			return Category(i), true
		}
	}
	return CategoryCount, false
}
