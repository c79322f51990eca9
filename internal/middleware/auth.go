package middleware

import (
	"errors"
	"net/http"

	"devtinder-api/internal/model"
	"devtinder-api/internal/store"
	"devtinder-api/pkg/jwtutil"
	"devtinder-api/pkg/logger"
	"devtinder-api/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CookieName is the cookie carrying the auth token.
const CookieName = "token"

const userContextKey = "user"

// Auth validates the JWT from the request cookie and resolves the owning
// user. The resolved user, with the password hash never serialized, is set
// into the echo context for the route handlers. A single verification
// attempt per request; no refresh.
func Auth(users store.UserStore, secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				log.Debug("Missing auth cookie")
				prometheus.RecordAuthError("missing_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
			}

			claims, err := jwtutil.ValidateToken(cookie.Value, secret)
			if err != nil {
				log.Error("Invalid JWT token", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					log.Error("Token subject no longer exists", zap.Uint("user_id", claims.UserID))
					prometheus.RecordAuthError("user_not_found")
					return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
				}
				log.Error("Failed to resolve token subject", zap.Error(err))
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// UserFromContext returns the user resolved by the Auth middleware.
func UserFromContext(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(userContextKey).(*model.User)
	return user, ok
}
