// Package service
package service

import (
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/operation"
)

type TrafficServiceInterface interface {
	GetTraffic(req *RequestTraffic) *ApiResponse[ResponseTraffic]
}

type RequestTraffic struct {
	JwtHeader
	SessionId string `query:"session"`
	Limit     int    `query:"limit"`
}

type ResponseTraffic []*operation.TrafficRecord
