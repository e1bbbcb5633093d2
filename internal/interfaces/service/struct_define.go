// Package service
package service

import (
	"github.com/golang-jwt/jwt/v5"
	c "github.com/half-nothing/simple-fsd-client/internal/interfaces/config"
	"github.com/labstack/echo/v4"
	"time"
)

type HttpCode int

const (
	Unsatisfied         HttpCode = 0
	Ok                  HttpCode = 200
	BadRequest          HttpCode = 400
	Unauthorized        HttpCode = 401
	NotFound            HttpCode = 404
	Conflict            HttpCode = 409
	ServerInternalError HttpCode = 500
	TooManyRequests     HttpCode = 429
	ServiceUnavailable  HttpCode = 503
)

func (hc HttpCode) Code() int {
	return int(hc)
}

type ApiStatus struct {
	StatusName  string
	Description string
	HttpCode    HttpCode
}

type ApiResponse[T any] struct {
	HttpCode int    `json:"-"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Data     *T     `json:"data"`
}

// Claims 控制接口只有一个操作者, 令牌只标识签发的会话
type Claims struct {
	Operator string `json:"operator"`
	config   *c.JWTConfig
	jwt.RegisteredClaims
}

func NewClaims(config *c.JWTConfig, operator string) *Claims {
	now := time.Now()
	return &Claims{
		Operator: operator,
		config:   config,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "FsdClientControl",
			Subject:   operator,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(config.ExpiresDuration)),
		},
	}
}

func (claim *Claims) GenerateKey() string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claim)
	tokenString, _ := token.SignedString([]byte(claim.config.Secret))
	return tokenString
}

func (res *ApiResponse[T]) Response(ctx echo.Context) error {
	return ctx.JSON(res.HttpCode, res)
}

var (
	ErrIllegalParam          = ApiStatus{"PARAM_ERROR", "参数不正确", BadRequest}
	ErrLackParam             = ApiStatus{"PARAM_LACK_ERROR", "缺少参数", BadRequest}
	ErrDatabaseFail          = ApiStatus{"DATABASE_ERROR", "服务器内部错误", ServerInternalError}
	ErrMissingOrMalformedJwt = ApiStatus{"MISSING_OR_MALFORMED_JWT", "缺少JWT令牌或者令牌格式错误", BadRequest}
	ErrInvalidOrExpiredJwt   = ApiStatus{"INVALID_OR_EXPIRED_JWT", "无效或过期的JWT令牌", Unauthorized}
	ErrUnknown               = ApiStatus{"UNKNOWN_JWT_ERROR", "未知的JWT解析错误", ServerInternalError}
	ErrRateLimited           = ApiStatus{"RATE_LIMIT_EXCEEDED", "请求次数过多, 请稍后再试", TooManyRequests}
)

func NewErrorResponse(ctx echo.Context, codeStatus *ApiStatus) error {
	return NewApiResponse[any](codeStatus, Unsatisfied, nil).Response(ctx)
}

func NewApiResponse[T any](codeStatus *ApiStatus, httpCode HttpCode, data *T) *ApiResponse[T] {
	if httpCode == Unsatisfied {
		httpCode = codeStatus.HttpCode
	}
	if httpCode == Unsatisfied {
		httpCode = Ok
	}
	return &ApiResponse[T]{
		HttpCode: httpCode.Code(),
		Code:     codeStatus.StatusName,
		Message:  codeStatus.Description,
		Data:     data,
	}
}
