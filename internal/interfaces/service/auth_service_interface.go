// Package service
package service

type AuthServiceInterface interface {
	Login(req *RequestLogin) *ApiResponse[ResponseLogin]
}

// JwtHeader 由控制器从令牌中填入
type JwtHeader struct {
	Operator string
}

type RequestLogin struct {
	Operator string `json:"operator"`
	Password string `json:"password"`
	Ip       string
}

type ResponseLogin struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}
