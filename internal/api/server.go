// Package api exposes the assistant over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"grocery-assistant/internal/assistant"
	"grocery-assistant/internal/common/config"
	apperrors "grocery-assistant/internal/common/errors"
	"grocery-assistant/internal/common/logger"
	"grocery-assistant/internal/pricing"
	"grocery-assistant/internal/suggest"
)

// Check reports whether a backing service is usable.
type Check func(ctx context.Context) error

// Dependencies are served by the routes. Prices answers POST /price and
// Suggestions answers POST /suggest.
type Dependencies struct {
	Assistant   *assistant.Assistant
	Prices      pricing.Service
	Suggestions suggest.Service
	Checks      map[string]Check
}

type Server struct {
	echo   *echo.Echo
	config config.ServerConfig
	deps   Dependencies
	logger logger.Logger
}

func NewServer(cfg config.ServerConfig, deps Dependencies, log logger.Logger) *Server {
	s := &Server{
		echo:   echo.New(),
		config: cfg,
		deps:   deps,
		logger: log.WithFields(map[string]interface{}{"component": "api"}),
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.HTTPErrorHandler = s.handleError

	s.echo.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			s.logger.Error("handler panic", map[string]interface{}{
				"path":  c.Path(),
				"error": err.Error(),
				"stack": string(stack),
			})
			return err
		},
	}))
	s.echo.Use(RequestID)
	s.echo.Use(AccessLog(s.logger))
	if cfg.RateLimit > 0 {
		s.echo.Use(NewRateLimiter(cfg.RateLimit, cfg.Burst, "/health", "/ready", "/metrics").Middleware)
	}
	s.echo.Use(Timeout(config.GetDuration(cfg.RequestTimeout)))

	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.POST("/command", s.handleCommand)
	s.echo.POST("/price", s.handlePrice)
	s.echo.POST("/suggest", s.handleSuggest)
	s.echo.GET("/suggestions", s.handleSuggestions)

	s.echo.GET("/cart", s.handleListCart)
	s.echo.DELETE("/cart", s.handleClearCart)
	s.echo.DELETE("/cart/:id", s.handleRemoveLine)
	s.echo.PUT("/cart/:id", s.handleSetQuantity)

	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/ready", s.handleReady)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// Handler returns the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("http server listening", map[string]interface{}{"address": s.config.Address})
	if err := s.echo.Start(s.config.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		msg := http.StatusText(httpErr.Code)
		if m, ok := httpErr.Message.(string); ok {
			msg = m
		}
		_ = c.JSON(httpErr.Code, map[string]interface{}{"code": httpErr.Code, "message": msg})
		return
	}

	stdErr := apperrors.AsStandardError(err)
	status := StatusFor(stdErr.Code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", map[string]interface{}{
			"path":      c.Path(),
			"errorCode": stdErr.Code,
			"error":     err.Error(),
		})
	}
	_ = c.JSON(status, stdErr)
}

// StatusFor maps an error code onto an HTTP status.
func StatusFor(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case apperrors.ErrCodeItemNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeUnrecognizedCommand, apperrors.ErrCodeNoItemsInRange:
		return http.StatusUnprocessableEntity
	case apperrors.ErrCodePricingTimeout, apperrors.ErrCodeSuggestionTimeout, apperrors.ErrCodeLLMTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrCodePricingUnavailable, apperrors.ErrCodeSuggestionUnavailable,
		apperrors.ErrCodeLLMFailed, apperrors.ErrCodeSearchFailed:
		return http.StatusBadGateway
	case apperrors.ErrCodeCatalogLoadFailed, apperrors.ErrCodeCacheFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
