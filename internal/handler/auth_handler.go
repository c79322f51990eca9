package handler

import (
	"errors"
	"net/http"
	"time"

	"devtinder-api/internal/middleware"
	"devtinder-api/internal/model"
	"devtinder-api/internal/store"
	"devtinder-api/internal/validation"
	"devtinder-api/pkg/config"
	"devtinder-api/pkg/jwtutil"
	"devtinder-api/pkg/logger"
	"devtinder-api/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthHandler serves signup, login and logout.
type AuthHandler struct {
	users  store.UserStore
	secret []byte
	ttl    time.Duration
}

func NewAuthHandler(users store.UserStore, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		users:  users,
		secret: []byte(cfg.JWT.Secret),
		ttl:    cfg.JWT.TTL,
	}
}

func (h *AuthHandler) Signup(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.SignupCounter.Inc()

	var req struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse signup request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if err := validation.ValidateSignup(req.FirstName, req.LastName, req.Email, req.Password); err != nil {
		log.Error("Invalid signup data", zap.String("email", req.Email), zap.Error(err))
		prometheus.RecordAuthError("invalid_signup_data")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	user := model.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	if err := user.SetPassword(req.Password); err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		prometheus.RecordAuthError("password_hash_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "signup failed"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if err := h.users.Create(c.Request().Context(), &user); err != nil {
		var verr *store.ValidationError
		switch {
		case errors.Is(err, store.ErrDuplicateEmail):
			log.Error("User already exists", zap.String("email", user.Email))
			prometheus.RecordAuthError("email_already_exists")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "User already exists"})
		case errors.As(err, &verr):
			prometheus.RecordAuthError("invalid_signup_data")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Reason})
		default:
			log.Error("Failed to create user", zap.Error(err))
			prometheus.RecordAuthError("user_creation_failed")
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "signup failed"})
		}
	}

	log.Info("User signed up", zap.String("email", user.Email), zap.Uint("user_id", user.ID))
	return c.JSON(http.StatusCreated, echo.Map{"message": "User created successfully"})
}

func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	user, err := h.users.FindByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Error("User not found", zap.String("email", req.Email))
			prometheus.RecordAuthError("user_not_found")
			return c.JSON(http.StatusNotFound, echo.Map{"error": "User not found"})
		}
		log.Error("Failed to look up user", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	if !user.CheckPassword(req.Password) {
		log.Error("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid credentials"})
	}

	token, err := jwtutil.GenerateToken(user.ID, user.Email, h.secret, h.ttl)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.ttl),
		HttpOnly: true,
	})
	prometheus.IncreaseActiveTokens()

	log.Info("User logged in", zap.String("email", user.Email), zap.Uint("user_id", user.ID))
	return c.JSON(http.StatusOK, echo.Map{"message": "Login successful"})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	log := logger.FromContext(c)

	// Overwrite the cookie with an already-expired one.
	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
	})
	prometheus.DecreaseActiveTokens()

	if user, ok := middleware.UserFromContext(c); ok {
		log.Info("User logged out", zap.String("email", user.Email), zap.Uint("user_id", user.ID))
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Logout successful"})
}
