package router

import (
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"alumnidir/internal/auth"
	"alumnidir/internal/config"
	apperrors "alumnidir/internal/errors"
	"alumnidir/internal/logger"
	"alumnidir/internal/session"
)

// Register wires middleware and mounts the dispatcher under /api.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	dispatcher *Dispatcher,
	sessions *session.Manager,
	jwtService *auth.JWTService,
	log *zap.Logger,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("request_id", v.RequestID),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				log.Error("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.BodyLimit("8M"))

	// Add validator
	e.Validator = &CustomValidator{validator: dispatcher.validate}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Tokens are optional: anonymous visitors browse the directory, handlers
	// decide what needs a session.
	api := e.Group("/api", echojwt.WithConfig(echojwt.Config{
		SigningKey:  jwtService.Secret(),
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
	}))

	adapter := &httpAdapter{dispatcher: dispatcher, sessions: sessions, logger: log}
	api.Any("/*", adapter.serve)
}

type httpAdapter struct {
	dispatcher *Dispatcher
	sessions   *session.Manager
	logger     *zap.Logger
}

func (a *httpAdapter) serve(c echo.Context) error {
	r := c.Request()
	ctx := logger.WithRequestID(r.Context(), c.Response().Header().Get(echo.HeaderXRequestID))

	sess, err := a.sessions.Resolve(ctx, sessionID(c))
	if err != nil {
		a.logger.Warn("resolve session", zap.String("request_id", logger.RequestID(ctx)), zap.Error(err))
		sess = session.Anonymous("")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, Failure(apperrors.ErrValidationFailed))
	}

	resp := a.dispatcher.Handle(ctx, Request{
		Method:  r.Method,
		Path:    "/" + c.Param("*"),
		Query:   c.QueryParams(),
		Body:    body,
		Session: sess,
	})
	if resp.Status == http.StatusNoContent {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(resp.Status, resp)
}

// sessionID returns the session id carried by a valid bearer token, or "".
func sessionID(c echo.Context) string {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok || token == nil || !token.Valid {
		return ""
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return ""
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return ""
	}
	return claims.SessionID
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewCustomValidator creates a validator shared by echo and the dispatcher.
func NewCustomValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// Engine exposes the underlying validator.
func (cv *CustomValidator) Engine() *validator.Validate {
	return cv.validator
}
