// Package controller
package controller

import (
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/log"
	. "github.com/half-nothing/simple-fsd-client/internal/interfaces/service"
	"github.com/labstack/echo/v4"
)

type SessionControllerInterface interface {
	GetStatus(ctx echo.Context) error
	SendMessage(ctx echo.Context) error
	GetRemotes(ctx echo.Context) error
	GetRemoteCapabilities(ctx echo.Context) error
}

type SessionController struct {
	logger         log.LoggerInterface
	sessionService SessionServiceInterface
}

func NewSessionController(logger log.LoggerInterface, sessionService SessionServiceInterface) *SessionController {
	return &SessionController{
		logger:         logger,
		sessionService: sessionService,
	}
}

func (controller *SessionController) GetStatus(ctx echo.Context) error {
	return controller.sessionService.GetStatus().Response(ctx)
}

func (controller *SessionController) SendMessage(ctx echo.Context) error {
	data := &RequestSendMessage{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("SessionController.SendMessage bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	data.JwtHeader = jwtHeader(ctx)
	return controller.sessionService.SendMessage(data).Response(ctx)
}

func (controller *SessionController) GetRemotes(ctx echo.Context) error {
	return controller.sessionService.GetRemotes().Response(ctx)
}

func (controller *SessionController) GetRemoteCapabilities(ctx echo.Context) error {
	data := &RequestRemoteCapabilities{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("SessionController.GetRemoteCapabilities bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	data.JwtHeader = jwtHeader(ctx)
	return controller.sessionService.GetRemoteCapabilities(data).Response(ctx)
}
