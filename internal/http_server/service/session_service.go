// Package service
package service

import (
	"errors"
	"github.com/half-nothing/simple-fsd-client/internal/fsd_client"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/fsd"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/log"
	. "github.com/half-nothing/simple-fsd-client/internal/interfaces/service"
	"github.com/half-nothing/simple-fsd-client/internal/utils"
	"strings"
	"time"
)

const statusCacheDuration = time.Second

type SessionService struct {
	logger    log.LoggerInterface
	session   SessionHandle
	recording bool
	status    *utils.CachedValue[SessionStatus]
}

func NewSessionService(logger log.LoggerInterface, session SessionHandle, recording bool) *SessionService {
	service := &SessionService{
		logger:    logger,
		session:   session,
		recording: recording,
	}
	service.status = utils.NewCachedValue[SessionStatus](statusCacheDuration, func() *SessionStatus { return service.getStatus() })
	return service
}

func (sessionService *SessionService) getStatus() *SessionStatus {
	return &SessionStatus{
		SessionId:    sessionService.session.SessionId(),
		Callsign:     sessionService.session.Callsign(),
		Status:       sessionService.session.Status().String(),
		NetworkError: sessionService.session.NetworkErrorCode(),
		Capabilities: sessionService.session.LocalCapabilities().Names(),
		Recording:    sessionService.recording,
	}
}

var SuccessGetStatus = ApiStatus{StatusName: "GET_STATUS", Description: "获取会话状态成功", HttpCode: Ok}

func (sessionService *SessionService) GetStatus() *ApiResponse[SessionStatus] {
	return NewApiResponse(&SuccessGetStatus, Unsatisfied, sessionService.status.GetValue())
}

var (
	ErrNoSession         = ApiStatus{StatusName: "NO_SESSION", Description: "当前没有会话", HttpCode: Conflict}
	ErrNotConnected      = ApiStatus{StatusName: "NOT_CONNECTED", Description: "会话未连接", HttpCode: Conflict}
	ErrSendQueueFull     = ApiStatus{StatusName: "SEND_QUEUE_FULL", Description: "发送队列已满", HttpCode: ServiceUnavailable}
	ErrIllegalFrequency  = ApiStatus{StatusName: "ILLEGAL_FREQUENCY", Description: "频率不正确", HttpCode: BadRequest}
	ErrSendMessageFailed = ApiStatus{StatusName: "SEND_MESSAGE_FAIL", Description: "发送失败", HttpCode: ServerInternalError}
	SuccessSendMessage   = ApiStatus{StatusName: "SEND_MESSAGE", Description: "发送成功", HttpCode: Ok}
)

// parseFrequencies 解析 @118.300&@121.500 形式的目标
func parseFrequencies(target string) ([]fsd.Frequency, error) {
	parts := strings.Split(target, "&")
	frequencies := make([]fsd.Frequency, 0, len(parts))
	for _, part := range parts {
		frequency, err := fsd.ParseFrequency(strings.TrimPrefix(part, "@"))
		if err != nil {
			return nil, err
		}
		frequencies = append(frequencies, frequency)
	}
	return frequencies, nil
}

func sendErrorStatus(err error) *ApiStatus {
	switch {
	case errors.Is(err, fsd_client.ErrNoSession), errors.Is(err, fsd_client.ErrInvalidObject):
		return &ErrNoSession
	case errors.Is(err, fsd_client.ErrNotConnected):
		return &ErrNotConnected
	case errors.Is(err, fsd_client.ErrSendQueueFull):
		return &ErrSendQueueFull
	default:
		return &ErrSendMessageFailed
	}
}

func (sessionService *SessionService) SendMessage(req *RequestSendMessage) *ApiResponse[ResponseSendMessage] {
	req.To = strings.ToUpper(strings.TrimSpace(req.To))
	if req.To == "" {
		return NewApiResponse[ResponseSendMessage](&ErrLackParam, Unsatisfied, nil)
	}
	if status := checkWireField(messageValidator, req.Message); status != nil {
		return NewApiResponse[ResponseSendMessage](status, Unsatisfied, nil)
	}

	var err error
	switch {
	case req.To == "*":
		err = sessionService.session.SendBroadcastMessage(req.Message)
	case strings.HasPrefix(req.To, "@"):
		frequencies, parseErr := parseFrequencies(req.To)
		if parseErr != nil {
			return NewApiResponse[ResponseSendMessage](&ErrIllegalFrequency, Unsatisfied, nil)
		}
		err = sessionService.session.SendRadioMessage(frequencies, req.Message)
	default:
		if status := checkWireField(callsignValidator, req.To); status != nil {
			return NewApiResponse[ResponseSendMessage](status, Unsatisfied, nil)
		}
		if strings.Contains(req.To, ":") {
			return NewApiResponse[ResponseSendMessage](&ErrIllegalCharacter, Unsatisfied, nil)
		}
		err = sessionService.session.SendPrivateMessage(req.To, req.Message)
	}
	if err != nil {
		sessionService.logger.WarnF("Control api message from %s to %s failed, %v", req.Operator, req.To, err)
		return NewApiResponse[ResponseSendMessage](sendErrorStatus(err), Unsatisfied, nil)
	}
	sessionService.logger.InfoF("Control api message from %s sent to %s", req.Operator, req.To)
	data := ResponseSendMessage(true)
	return NewApiResponse(&SuccessSendMessage, Unsatisfied, &data)
}

var SuccessGetRemotes = ApiStatus{StatusName: "GET_REMOTES", Description: "获取远端客户端成功", HttpCode: Ok}

func (sessionService *SessionService) GetRemotes() *ApiResponse[ResponseRemotes] {
	data := ResponseRemotes(sessionService.session.RemoteCallsigns())
	if data == nil {
		data = ResponseRemotes{}
	}
	return NewApiResponse(&SuccessGetRemotes, Unsatisfied, &data)
}

var (
	ErrRemoteNotFound    = ApiStatus{StatusName: "REMOTE_NOT_FOUND", Description: "没有该客户端的能力信息", HttpCode: NotFound}
	SuccessGetRemoteCaps = ApiStatus{StatusName: "GET_REMOTE_CAPS", Description: "获取远端能力成功", HttpCode: Ok}
)

func (sessionService *SessionService) GetRemoteCapabilities(req *RequestRemoteCapabilities) *ApiResponse[RemoteCapabilities] {
	callsign := strings.ToUpper(req.Callsign)
	if status := checkWireField(callsignValidator, callsign); status != nil {
		return NewApiResponse[RemoteCapabilities](status, Unsatisfied, nil)
	}
	caps, ok := sessionService.session.RemoteCapabilities(callsign)
	if !ok {
		return NewApiResponse[RemoteCapabilities](&ErrRemoteNotFound, Unsatisfied, nil)
	}
	return NewApiResponse(&SuccessGetRemoteCaps, Unsatisfied, &RemoteCapabilities{
		Callsign:     callsign,
		Capabilities: caps.Names(),
	})
}

var _ SessionServiceInterface = (*SessionService)(nil)
