package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestIDKey is the header and context key for the request correlation id.
const RequestIDKey = "X-Request-ID"

// RequestID propagates an inbound X-Request-ID or mints a fresh one, and
// echoes it back on the response so clients can correlate log entries.
func RequestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Request().Header.Get(RequestIDKey)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(RequestIDKey, id)
		c.Response().Header().Set(RequestIDKey, id)
		return next(c)
	}
}
