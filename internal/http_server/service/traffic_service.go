// Package service
package service

import (
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/log"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/operation"
	. "github.com/half-nothing/simple-fsd-client/internal/interfaces/service"
)

type TrafficService struct {
	logger           log.LoggerInterface
	maxLimit         int
	trafficOperation operation.TrafficOperationInterface
}

// NewTrafficService trafficOperation 为 nil 表示未启用数据库记录
func NewTrafficService(logger log.LoggerInterface, maxLimit int, trafficOperation operation.TrafficOperationInterface) *TrafficService {
	return &TrafficService{
		logger:           logger,
		maxLimit:         maxLimit,
		trafficOperation: trafficOperation,
	}
}

var (
	ErrTrafficDisabled = ApiStatus{StatusName: "TRAFFIC_DISABLED", Description: "未启用数据库流量记录", HttpCode: NotFound}
	SuccessGetTraffic  = ApiStatus{StatusName: "GET_TRAFFIC", Description: "获取流量记录成功", HttpCode: Ok}
)

func (trafficService *TrafficService) GetTraffic(req *RequestTraffic) *ApiResponse[ResponseTraffic] {
	if trafficService.trafficOperation == nil {
		return NewApiResponse[ResponseTraffic](&ErrTrafficDisabled, Unsatisfied, nil)
	}
	if req.Limit < 0 {
		return NewApiResponse[ResponseTraffic](&ErrIllegalParam, Unsatisfied, nil)
	}
	if req.Limit == 0 || req.Limit > trafficService.maxLimit {
		req.Limit = trafficService.maxLimit
	}

	var records []*operation.TrafficRecord
	var err error
	if req.SessionId == "" {
		records, err = trafficService.trafficOperation.GetRecentTraffic(req.Limit)
	} else {
		records, err = trafficService.trafficOperation.GetSessionTraffic(req.SessionId, req.Limit)
	}
	if err != nil {
		trafficService.logger.ErrorF("Fail to query traffic records, %v", err)
		return NewApiResponse[ResponseTraffic](&ErrDatabaseFail, Unsatisfied, nil)
	}
	data := ResponseTraffic(records)
	return NewApiResponse(&SuccessGetTraffic, Unsatisfied, &data)
}

var _ TrafficServiceInterface = (*TrafficService)(nil)
