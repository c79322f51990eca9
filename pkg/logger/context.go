package logger

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const requestIDKey = "X-Request-ID"

// FromContext returns the request-scoped logger set by Middleware. When
// none was set it falls back to the global logger tagged with whatever
// request id can still be recovered.
func FromContext(c echo.Context) *zap.Logger {
	if l, ok := c.Get("logger").(*zap.Logger); ok {
		return l
	}

	id, ok := c.Get(requestIDKey).(string)
	if !ok || id == "" {
		id = c.Request().Header.Get(requestIDKey)
	}
	if id == "" {
		id = "unknown"
	}
	return GetLogger().With(zap.String("request_id", id))
}
