// Package fsd
package fsd

// ServerError $ER 报文中的错误码
type ServerError byte

const (
	ErrorNone ServerError = iota
	CallsignInUse
	CallsignInvalid
	AlreadyRegistered
	Syntax
	SourceCallsignInvalid
	AuthFail
	NoCallsignFound
	NoFlightPlan
	NoWeatherProfile
	InvalidProtocolVision
	RequestLevelTooHigh
	ServerFull
	UserBaned
	InvalidControl
	InvalidPositionForRating
	UnauthorizedSoftware
	WrongServerType
	UnknownError
)

var serverErrorsString = []string{"No error", "Callsign in use", "Invalid callsign", "Already registered",
	"Syntax error", "Invalid source callsign", "Invalid CID/password", "No such callsign", "No flightplan",
	"No such weather profile", "Invalid protocol revision", "Requested level too high", "Too many clients connected",
	"CID/PID was suspended", "Not valid control", "Rating too low for this position", "Unauthorized client software",
	"Wrong server type", "Unknown error"}

// informationalErrors 这些错误不会导致服务器断开连接
var informationalErrors = map[ServerError]bool{
	ErrorNone:        true,
	Syntax:           true,
	NoCallsignFound:  true,
	NoFlightPlan:     true,
	NoWeatherProfile: true,
}

// ParseServerError 未知的错误码统一归为 UnknownError
func ParseServerError(code int) ServerError {
	if code < 0 || code >= int(UnknownError) {
		return UnknownError
	}
	return ServerError(code)
}

func (e ServerError) String() string {
	if int(e) >= len(serverErrorsString) {
		return serverErrorsString[UnknownError]
	}
	return serverErrorsString[e]
}

func (e ServerError) Index() int {
	return int(e)
}

// Fatal 服务器发送该错误后客户端应当断开连接
func (e ServerError) Fatal() bool {
	return !informationalErrors[e]
}
