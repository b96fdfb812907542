package http

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/randomtoy/temple-go/internal/locale"
)

const (
	headerRequestID       = "X-Request-Id"
	headerContentLanguage = "Content-Language"
	headerAcceptLanguage  = "Accept-Language"
	cookieLanguage        = "language"

	ctxRequestID = "request_id"
	ctxSignals   = "locale_signals"
)

// RequestIDMiddleware ensures every request has a unique X-Request-Id.
func RequestIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(headerRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			c.Response().Header().Set(headerRequestID, id)
			c.Set(ctxRequestID, id)
			return next(c)
		}
	}
}

// LocaleMiddleware collects the language signals of the request: the path
// prefix, the language cookie, Content-Language and Accept-Language.
func LocaleMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			signals := locale.Signals{
				Path:     req.URL.Path,
				Document: req.Header.Get(headerContentLanguage),
				Browser:  locale.BrowserTag(req.Header.Get(headerAcceptLanguage)),
			}
			if cookie, err := c.Cookie(cookieLanguage); err == nil {
				signals.Stored = cookie.Value
			}
			c.Set(ctxSignals, signals)
			return next(c)
		}
	}
}

// LoggingMiddleware logs each request with structured fields.
func LoggingMiddleware(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			logger.InfoContext(c.Request().Context(), "request",
				"request_id", c.Get(ctxRequestID),
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"locale", locale.Resolve(signals(c)),
				"status", c.Response().Status,
				"latency_ms", time.Since(start).Milliseconds(),
			)
			return nil
		}
	}
}

func signals(c echo.Context) locale.Signals {
	s, _ := c.Get(ctxSignals).(locale.Signals)
	return s
}

func requestID(c echo.Context) string {
	id, _ := c.Get(ctxRequestID).(string)
	return id
}
