package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"devtinder-api/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedUser(t *testing.T, e *echo.Echo, s *store.MemoryStore, email string) (uint, *http.Cookie) {
	t.Helper()
	signup(t, e, email)
	cookie := login(t, e, email, "Abcde1!")
	u, err := s.FindByEmail(context.Background(), email)
	require.NoError(t, err)
	return u.ID, cookie
}

func TestProfile(t *testing.T) {
	e, s := newTestServer()
	_, cookie := authedUser(t, e, s, "jane@x.com")

	rec := doJSON(e, http.MethodGet, "/user/profile", "", cookie)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "jane@x.com", body["email"])
	assert.Equal(t, "Jane", body["firstName"])
	assert.NotContains(t, body, "password")
}

func TestProfile_Unauthenticated(t *testing.T) {
	e, _ := newTestServer()

	rec := doJSON(e, http.MethodGet, "/user/profile", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
}

func TestFeed(t *testing.T) {
	e, s := newTestServer()
	_, cookie := authedUser(t, e, s, "jane@x.com")
	signup(t, e, "john@x.com")

	rec := doJSON(e, http.MethodGet, "/feed", "", cookie)

	require.Equal(t, http.StatusOK, rec.Code)

	var users []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 2)
	for _, u := range users {
		assert.NotContains(t, u, "password")
	}
}

func TestFeed_Empty(t *testing.T) {
	// The route cannot be reached with an empty store (auth needs a user),
	// so the empty case is exercised on the handler directly.
	h := NewUserHandler(store.NewMemoryStore())
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/feed", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Feed(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"No users found"}`, rec.Body.String())
}

func TestUpdate_WhitelistedFields(t *testing.T) {
	e, s := newTestServer()
	id, cookie := authedUser(t, e, s, "jane@x.com")

	rec := doJSON(e, http.MethodPatch, fmt.Sprintf("/user/%d", id),
		`{"age":28,"photoUrl":"https://example.com/jane.jpg","bio":"gopher","skills":["go","sql"]}`, cookie)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"message":"User updated successfully"}`, rec.Body.String())

	u, err := s.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, u.Age)
	assert.Equal(t, 28, *u.Age)
	assert.Equal(t, []string{"go", "sql"}, u.Skills)
}

func TestUpdate_DisallowedFieldRejectsWholeRequest(t *testing.T) {
	e, s := newTestServer()
	id, cookie := authedUser(t, e, s, "jane@x.com")

	rec := doJSON(e, http.MethodPatch, fmt.Sprintf("/user/%d", id),
		`{"bio":"gopher","email":"evil@x.com"}`, cookie)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Update not allowed for field: email"}`, rec.Body.String())

	u, err := s.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", u.Email)
	assert.NotEqual(t, "gopher", u.Bio, "a rejected update must not apply any field")
}

func TestUpdate_TooManySkills(t *testing.T) {
	e, s := newTestServer()
	id, cookie := authedUser(t, e, s, "jane@x.com")

	rec := doJSON(e, http.MethodPatch, fmt.Sprintf("/user/%d", id),
		`{"skills":["a","b","c","d","e","f"]}`, cookie)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Skills cannot have more than 5 entries"}`, rec.Body.String())

	u, err := s.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, u.Skills)
}

func TestUpdate_UnknownUser(t *testing.T) {
	e, s := newTestServer()
	_, cookie := authedUser(t, e, s, "jane@x.com")

	rec := doJSON(e, http.MethodPatch, "/user/999", `{"bio":"gopher"}`, cookie)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"User not found"}`, rec.Body.String())
}

func TestUpdate_BadID(t *testing.T) {
	e, s := newTestServer()
	_, cookie := authedUser(t, e, s, "jane@x.com")

	rec := doJSON(e, http.MethodPatch, "/user/abc", `{"bio":"gopher"}`, cookie)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDelete(t *testing.T) {
	e, s := newTestServer()
	id, cookie := authedUser(t, e, s, "jane@x.com")

	rec := doJSON(e, http.MethodDelete, "/user", fmt.Sprintf(`{"id":%d}`, id), cookie)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "jane@x.com", body["email"])
	assert.NotContains(t, body, "password")

	_, err := s.FindByID(context.Background(), id)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDelete_UnknownUser(t *testing.T) {
	e, s := newTestServer()
	_, cookie := authedUser(t, e, s, "jane@x.com")

	rec := doJSON(e, http.MethodDelete, "/user", `{"id":999}`, cookie)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"User not found"}`, rec.Body.String())
}

// End-to-end walk through the whole surface: signup, login, profile,
// rejected update, delete, and the dangling-cookie 404 afterwards.
func TestUserLifecycle(t *testing.T) {
	e, s := newTestServer()

	rec := doJSON(e, http.MethodPost, "/auth/signup",
		`{"firstName":"Jane","lastName":"Doe","email":"jane@x.com","password":"Abcde1!"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	cookie := login(t, e, "jane@x.com", "Abcde1!")

	rec = doJSON(e, http.MethodGet, "/user/profile", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"jane@x.com"`)
	assert.NotContains(t, rec.Body.String(), "password")

	u, err := s.FindByEmail(context.Background(), "jane@x.com")
	require.NoError(t, err)

	rec = doJSON(e, http.MethodPatch, fmt.Sprintf("/user/%d", u.ID),
		`{"skills":["a","b","c","d","e","f"]}`, cookie)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Skills cannot have more than 5 entries")

	rec = doJSON(e, http.MethodDelete, "/user", fmt.Sprintf(`{"id":%d}`, u.ID), cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/user/profile", "", cookie)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
