// Package service
package service

import (
	c "github.com/half-nothing/simple-fsd-client/internal/interfaces/config"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/log"
	. "github.com/half-nothing/simple-fsd-client/internal/interfaces/service"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	logger log.LoggerInterface
	config *c.HttpServerConfig
}

func NewAuthService(logger log.LoggerInterface, config *c.HttpServerConfig) *AuthService {
	return &AuthService{logger: logger, config: config}
}

var (
	ErrPassword  = ApiStatus{StatusName: "WRONG_PASSWORD", Description: "密码错误", HttpCode: Unauthorized}
	SuccessLogin = ApiStatus{StatusName: "LOGIN_SUCCESS", Description: "登录成功", HttpCode: Ok}
)

func (authService *AuthService) Login(req *RequestLogin) *ApiResponse[ResponseLogin] {
	if status := operatorValidator.CheckString(req.Operator); status != nil {
		return NewApiResponse[ResponseLogin](status, Unsatisfied, nil)
	}
	if req.Password == "" {
		return NewApiResponse[ResponseLogin](&ErrLackParam, Unsatisfied, nil)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(authService.config.PasswordHash), []byte(req.Password)); err != nil {
		authService.logger.WarnF("Control api login failed for %s from %s", req.Operator, req.Ip)
		return NewApiResponse[ResponseLogin](&ErrPassword, Unsatisfied, nil)
	}
	claims := NewClaims(authService.config.JWT, req.Operator)
	authService.logger.InfoF("Control api login by %s from %s", req.Operator, req.Ip)
	return NewApiResponse(&SuccessLogin, Unsatisfied, &ResponseLogin{
		Token:     claims.GenerateKey(),
		ExpiresAt: claims.ExpiresAt.Unix(),
	})
}

var _ AuthServiceInterface = (*AuthService)(nil)
