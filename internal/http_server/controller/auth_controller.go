// Package controller
package controller

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/log"
	. "github.com/half-nothing/simple-fsd-client/internal/interfaces/service"
	"github.com/labstack/echo/v4"
)

type AuthControllerInterface interface {
	Login(ctx echo.Context) error
}

type AuthController struct {
	logger      log.LoggerInterface
	authService AuthServiceInterface
}

func NewAuthController(logger log.LoggerInterface, authService AuthServiceInterface) *AuthController {
	return &AuthController{
		logger:      logger,
		authService: authService,
	}
}

func (controller *AuthController) Login(ctx echo.Context) error {
	data := &RequestLogin{}
	if err := ctx.Bind(data); err != nil {
		controller.logger.ErrorF("AuthController.Login bind error: %v", err)
		return NewErrorResponse(ctx, &ErrLackParam)
	}
	data.Ip = ctx.RealIP()
	return controller.authService.Login(data).Response(ctx)
}

// jwtHeader 从 echo-jwt 写入的令牌中取出操作者
func jwtHeader(ctx echo.Context) JwtHeader {
	token, ok := ctx.Get("user").(*jwt.Token)
	if !ok {
		return JwtHeader{}
	}
	claim, ok := token.Claims.(*Claims)
	if !ok {
		return JwtHeader{}
	}
	return JwtHeader{Operator: claim.Operator}
}
