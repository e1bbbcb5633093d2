// Package fsd
package fsd

type ClientCommand string

var (
	AddAtc         = ClientCommand("#AA")
	RemoveAtc      = ClientCommand("#DA")
	AddPilot       = ClientCommand("#AP")
	RemovePilot    = ClientCommand("#DP")
	ProController  = ClientCommand("#PC")
	SquawkBox      = ClientCommand("#SB")
	Message        = ClientCommand("#TM")
	PilotPos       = ClientCommand("@")
	AtcPos         = ClientCommand("%")
	AtcSubVisPoint = ClientCommand("'")
	RequestHandoff = ClientCommand("$HO")
	AcceptHandoff  = ClientCommand("$HA")
	Ping           = ClientCommand("$PI")
	Pong           = ClientCommand("$PO")
	Plan           = ClientCommand("$FP")
	AtcEditPlan    = ClientCommand("$AM")
	KillClient     = ClientCommand("$!!")
	Error          = ClientCommand("$ER")
	ClientQuery    = ClientCommand("$CQ")
	ClientResponse = ClientCommand("$CR")
	ClientIdentify = ClientCommand("$ID")
	ServerIdentify = ClientCommand("$DI")
	AuthChallenge  = ClientCommand("$ZC")
	AuthResponse   = ClientCommand("$ZR")
	RequestWeather = ClientCommand("$RW")
	TempData       = ClientCommand("$TD")
	WindData       = ClientCommand("$WD")
	CloudData      = ClientCommand("$CD")
	RequestAcars   = ClientCommand("$AX")
	ReplyAcars     = ClientCommand("$AR")
)

// PossibleClientCommands 单字符前缀放在最后, 避免抢先匹配
var PossibleClientCommands = []ClientCommand{
	AddAtc, RemoveAtc, AddPilot, RemovePilot, ProController, SquawkBox, Message,
	RequestHandoff, AcceptHandoff, Ping, Pong, Plan, AtcEditPlan, KillClient, Error,
	ClientQuery, ClientResponse, ClientIdentify, ServerIdentify, AuthChallenge, AuthResponse,
	RequestWeather, TempData, WindData, CloudData, RequestAcars, ReplyAcars,
	PilotPos, AtcPos, AtcSubVisPoint,
}

type CommandRequirement struct {
	RequireLength int
}

// CommandRequirements 每种报文去掉前缀后至少需要的字段数
var CommandRequirements = map[ClientCommand]*CommandRequirement{
	AddAtc:         {7},
	AddPilot:       {8},
	RemoveAtc:      {1},
	RemovePilot:    {1},
	ProController:  {3},
	SquawkBox:      {3},
	Message:        {3},
	PilotPos:       {10},
	AtcPos:         {8},
	AtcSubVisPoint: {4},
	RequestHandoff: {3},
	AcceptHandoff:  {3},
	Ping:           {2},
	Pong:           {2},
	Plan:           {17},
	AtcEditPlan:    {18},
	KillClient:     {2},
	Error:          {4},
	ClientQuery:    {3},
	ClientResponse: {3},
	ClientIdentify: {8},
	ServerIdentify: {3},
	AuthChallenge:  {3},
	AuthResponse:   {3},
	RequestWeather: {3},
	TempData:       {11},
	WindData:       {26},
	CloudData:      {18},
	RequestAcars:   {4},
	ReplyAcars:     {4},
}

func (c ClientCommand) String() string {
	return string(c)
}

func (c ClientCommand) Index() int {
	for i, command := range PossibleClientCommands {
		if command == c {
			return i
		}
	}
	return -1
}

