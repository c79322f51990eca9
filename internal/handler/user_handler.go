package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"devtinder-api/internal/middleware"
	"devtinder-api/internal/store"
	"devtinder-api/pkg/logger"
	"devtinder-api/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// UserHandler serves profile, feed, update and delete.
type UserHandler struct {
	users store.UserStore
}

func NewUserHandler(users store.UserStore) *UserHandler {
	return &UserHandler{users: users}
}

// Profile returns the authenticated user's own record. The password hash
// is excluded from serialization by the model.
func (h *UserHandler) Profile(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordUserOperation("profile_access")

	user, ok := middleware.UserFromContext(c)
	if !ok {
		log.Error("No authenticated user in context")
		return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
	}

	return c.JSON(http.StatusOK, user)
}

// Feed returns all users.
func (h *UserHandler) Feed(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordUserOperation("feed_access")

	defer prometheus.TrackDBOperation("query")(time.Now())
	users, err := h.users.FindAll(c.Request().Context())
	if err != nil {
		log.Error("Failed to fetch feed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch users"})
	}
	if len(users) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "No users found"})
	}

	return c.JSON(http.StatusOK, users)
}

// Delete removes a user by the id in the request body and returns the
// deleted record.
func (h *UserHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordUserOperation("delete")

	var req struct {
		ID uint `json:"id"`
	}
	if err := c.Bind(&req); err != nil || req.ID == 0 {
		log.Error("Failed to parse delete request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	user, err := h.users.DeleteByID(c.Request().Context(), req.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Error("User not found", zap.Uint("user_id", req.ID))
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		log.Error("Failed to delete user", zap.Uint("user_id", req.ID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete user"})
	}

	log.Info("User deleted", zap.Uint("user_id", user.ID), zap.String("email", user.Email))
	return c.JSON(http.StatusOK, user)
}

// Update applies a partial update limited to age, photoUrl, bio and
// skills. A single disallowed field rejects the whole request.
func (h *UserHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordUserOperation("update")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid user id", zap.String("id", c.Param("id")))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	// Decode the body directly: Bind would also fill the map from the
	// :id path param, and a stray "id" key must not trip the whitelist.
	var fields map[string]any
	if err := json.NewDecoder(c.Request().Body).Decode(&fields); err != nil {
		log.Error("Failed to parse update request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if err := h.users.UpdateByID(c.Request().Context(), uint(id), fields); err != nil {
		var verr *store.ValidationError
		switch {
		case errors.As(err, &verr):
			log.Error("Rejected update", zap.Uint64("user_id", id), zap.String("reason", verr.Reason))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Reason})
		case errors.Is(err, store.ErrNotFound):
			log.Error("User not found", zap.Uint64("user_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		default:
			log.Error("Failed to update user", zap.Uint64("user_id", id), zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update user"})
		}
	}

	log.Info("User updated", zap.Uint64("user_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "User updated successfully"})
}
