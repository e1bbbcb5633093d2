// Package http_server
package http_server

import (
	"context"
	"errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/half-nothing/simple-fsd-client/internal/http_server/controller"
	mid "github.com/half-nothing/simple-fsd-client/internal/http_server/middleware"
	impl "github.com/half-nothing/simple-fsd-client/internal/http_server/service"
	. "github.com/half-nothing/simple-fsd-client/internal/interfaces"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/operation"
	"github.com/half-nothing/simple-fsd-client/internal/interfaces/service"
	"github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/samber/slog-echo"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	loginRateLimit       = 10
	loginRateLimitWindow = time.Minute
)

type HttpServerShutdownCallback struct {
	serverHandler *echo.Echo
	limiter       *mid.SlidingWindowLimiter
}

func NewHttpServerShutdownCallback(serverHandler *echo.Echo, limiter *mid.SlidingWindowLimiter) *HttpServerShutdownCallback {
	return &HttpServerShutdownCallback{
		serverHandler: serverHandler,
		limiter:       limiter,
	}
}

func (hc *HttpServerShutdownCallback) Invoke(ctx context.Context) error {
	hc.limiter.Stop()
	timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return hc.serverHandler.Shutdown(timeoutCtx)
}

// NewHttpServer 构建控制接口, 不监听端口
func NewHttpServer(applicationContent *ApplicationContent, session service.SessionHandle) (*echo.Echo, *mid.SlidingWindowLimiter) {
	config := applicationContent.ConfigManager().Config()
	logger := applicationContent.Logger()
	httpConfig := config.HttpServer

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetOutput(io.Discard)
	e.Logger.SetLevel(log.OFF)
	e.IPExtractor = echo.ExtractIPDirect()

	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{Timeout: 30 * time.Second}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(ctx echo.Context, err error, stack []byte) error {
			logger.ErrorF("Recovered from a fatal error: %v, stack: %s", err, string(stack))
			return err
		},
	}))

	loggerConfig := slogecho.Config{
		DefaultLevel:     slog.LevelDebug,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
	}
	e.Use(slogecho.NewWithConfig(slog.Default(), loggerConfig))
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
	}))
	if httpConfig.BodyLimit != "" {
		e.Use(middleware.BodyLimit(httpConfig.BodyLimit))
	}
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))

	jwtConfig := echojwt.Config{
		SigningKey:    []byte(httpConfig.JWT.Secret),
		TokenLookup:   "header:Authorization:Bearer ",
		SigningMethod: "HS512",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(service.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var data *service.ApiResponse[any]
			switch {
			case errors.Is(err, echojwt.ErrJWTMissing):
				data = service.NewApiResponse[any](&service.ErrMissingOrMalformedJwt, service.Unsatisfied, nil)
			case errors.Is(err, echojwt.ErrJWTInvalid):
				data = service.NewApiResponse[any](&service.ErrInvalidOrExpiredJwt, service.Unsatisfied, nil)
			default:
				data = service.NewApiResponse[any](&service.ErrUnknown, service.Unsatisfied, nil)
			}
			return data.Response(c)
		},
	}

	jwtMiddleware := echojwt.WithConfig(jwtConfig)

	loginLimiter := mid.NewSlidingWindowLimiter(loginRateLimitWindow, loginRateLimit)
	loginLimiter.StartCleanup(2 * loginRateLimitWindow)

	var trafficOperation operation.TrafficOperationInterface
	if applicationContent.Recording() {
		trafficOperation = applicationContent.Operations().TrafficOperation()
	}

	authService := impl.NewAuthService(logger, httpConfig)
	sessionService := impl.NewSessionService(logger, session, config.Recorder.Enabled)
	trafficService := impl.NewTrafficService(logger, httpConfig.TrafficLimit, trafficOperation)

	authController := controller.NewAuthController(logger, authService)
	sessionController := controller.NewSessionController(logger, sessionService)
	trafficController := controller.NewTrafficController(logger, trafficService)

	apiGroup := e.Group("/api")
	apiGroup.POST("/sessions", authController.Login, mid.RateLimitMiddleware(loginLimiter, mid.IPKeyFunc))
	apiGroup.GET("/status", sessionController.GetStatus, jwtMiddleware)
	apiGroup.POST("/messages", sessionController.SendMessage, jwtMiddleware)
	apiGroup.GET("/traffic", trafficController.GetTraffic, jwtMiddleware)

	remoteGroup := apiGroup.Group("/remotes", jwtMiddleware)
	remoteGroup.GET("", sessionController.GetRemotes)
	remoteGroup.GET("/:callsign/caps", sessionController.GetRemoteCapabilities)

	return e, loginLimiter
}

// StartHttpServer 阻塞直到服务关闭
func StartHttpServer(applicationContent *ApplicationContent, session service.SessionHandle) {
	logger := applicationContent.Logger()
	httpConfig := applicationContent.ConfigManager().Config().HttpServer

	e, limiter := NewHttpServer(applicationContent, session)
	applicationContent.Cleaner().Add(NewHttpServerShutdownCallback(e, limiter))

	logger.InfoF("Starting control api on %s", httpConfig.Address)
	if err := e.Start(httpConfig.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.ErrorF("Control api error: %v", err)
	}
}
