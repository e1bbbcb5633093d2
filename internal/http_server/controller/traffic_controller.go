// Package controller
package controller

import (
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/log"
	. "github.com/half-nothing/simple-fsd-client/internal/interfaces/service"
	"github.com/labstack/echo/v4"
)

type TrafficControllerInterface interface {
	GetTraffic(ctx echo.Context) error
}

type TrafficController struct {
	logger         log.LoggerInterface
	trafficService TrafficServiceInterface
}

func NewTrafficController(logger log.LoggerInterface, trafficService TrafficServiceInterface) *TrafficController {
	return &TrafficController{
		logger:         logger,
		trafficService: trafficService,
	}
}

func (controller *TrafficController) GetTraffic(ctx echo.Context) error {
	data := &RequestTraffic{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("TrafficController.GetTraffic bind error: %v", err)
		return NewErrorResponse(ctx, &ErrIllegalParam)
	}
	data.JwtHeader = jwtHeader(ctx)
	return controller.trafficService.GetTraffic(data).Response(ctx)
}
