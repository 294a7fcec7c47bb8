package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mwauth "github.com/carecraft/storefront/internal/middleware/auth"
	"github.com/carecraft/storefront/internal/transport"
)

func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, ck := range rec.Result().Cookies() {
		if ck.Name == mwauth.CookieName {
			return ck
		}
	}
	return nil
}

func TestRegisterLoginFlow(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/register", transport.RegisterRequest{
		Name: "Maria", Email: "maria@example.com", Password: "s3cret",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var registered struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	env.decode(rec, &registered)
	assert.NotEmpty(t, registered.ID)
	assert.Equal(t, "maria@example.com", registered.Email)

	// Registration does not leak the password hash.
	assert.NotContains(t, rec.Body.String(), "password")

	rec = env.do(http.MethodPost, "/api/register", transport.RegisterRequest{
		Name: "Maria Again", Email: "maria@example.com", Password: "other",
	}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(http.MethodPost, "/api/login", transport.LoginRequest{
		Email: "maria@example.com", Password: "s3cret",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	ck := sessionCookieFrom(t, rec)
	require.NotNil(t, ck, "login sets the session cookie")
	assert.True(t, ck.HttpOnly)
	assert.Equal(t, "/", ck.Path)
	assert.NotEmpty(t, ck.Value)

	rec = env.do(http.MethodPost, "/api/login", transport.LoginRequest{
		Email: "maria@example.com", Password: "wrong",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMe(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	user := env.user("Maria", "maria@example.com", "buyer")

	rec := env.do(http.MethodGet, "/api/account/update/auth/me", nil, user)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		User *struct {
			ID    string `json:"id"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	env.decode(rec, &body)
	require.NotNil(t, body.User)
	assert.Equal(t, user.ID.String(), body.User.ID)
	assert.Equal(t, "maria@example.com", body.User.Email)

	rec = env.do(http.MethodGet, "/api/account/update/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"user":null}`, rec.Body.String())
}

func TestLogout_ExpiresCookie(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/logout", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	ck := sessionCookieFrom(t, rec)
	require.NotNil(t, ck)
	assert.Empty(t, ck.Value)
	assert.True(t, ck.Expires.Before(time.Now()))
}

func TestUpdateAccount_ReissuesToken(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	user := env.user("Maria", "maria@example.com", "buyer")

	rec := env.do(http.MethodPost, "/api/account/update", transport.UpdateAccountRequest{
		Name: "Maria K", Role: "seller",
	}, user)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Message string `json:"message"`
		User    struct {
			Name string `json:"name"`
			Role string `json:"role"`
		} `json:"user"`
	}
	env.decode(rec, &body)
	assert.Equal(t, "User updated", body.Message)
	assert.Equal(t, "Maria K", body.User.Name)
	assert.Equal(t, "seller", body.User.Role)

	ck := sessionCookieFrom(t, rec)
	require.NotNil(t, ck, "a fresh token replaces the stale one")
	assert.NotEmpty(t, ck.Value)

	rec = env.do(http.MethodPost, "/api/account/update", transport.UpdateAccountRequest{Name: "X"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateAccount_EmailTaken(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.user("Maria", "maria@example.com", "buyer")
	bob := env.user("Bob", "bob@example.com", "buyer")

	rec := env.do(http.MethodPost, "/api/account/update", transport.UpdateAccountRequest{
		Name: "Bob", Email: "maria@example.com",
	}, bob)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already exists")
}
