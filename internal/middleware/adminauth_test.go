package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithCookie(cookie *http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/admin/inventory", nil)
	if cookie != nil {
		r.AddCookie(cookie)
	}
	return r
}

func TestSessionRoundTrip(t *testing.T) {
	sessions := NewAdminSessions("test-secret", time.Hour)

	cookie, err := sessions.IssueCookie()
	require.NoError(t, err)
	assert.Equal(t, SessionCookie, cookie.Name)
	assert.True(t, cookie.HttpOnly)

	assert.True(t, sessions.Authenticated(requestWithCookie(cookie)))
}

func TestSessionRejectsWrongSecret(t *testing.T) {
	issuer := NewAdminSessions("secret-a", time.Hour)
	verifier := NewAdminSessions("secret-b", time.Hour)

	cookie, err := issuer.IssueCookie()
	require.NoError(t, err)

	assert.False(t, verifier.Authenticated(requestWithCookie(cookie)))
}

func TestSessionRejectsExpiredToken(t *testing.T) {
	sessions := NewAdminSessions("test-secret", -time.Minute)

	cookie, err := sessions.IssueCookie()
	require.NoError(t, err)

	assert.False(t, sessions.Authenticated(requestWithCookie(cookie)))
}

func TestSessionRejectsMissingOrGarbageCookie(t *testing.T) {
	sessions := NewAdminSessions("test-secret", time.Hour)

	assert.False(t, sessions.Authenticated(requestWithCookie(nil)))
	assert.False(t, sessions.Authenticated(requestWithCookie(&http.Cookie{
		Name: SessionCookie, Value: "not-a-token",
	})))
}

func TestEmptySecretDisablesAdminAccess(t *testing.T) {
	sessions := NewAdminSessions("", time.Hour)

	_, err := sessions.IssueCookie()
	assert.Error(t, err)
	assert.False(t, sessions.Authenticated(requestWithCookie(nil)))
}

func TestMiddlewareGatesRequests(t *testing.T) {
	sessions := NewAdminSessions("test-secret", time.Hour)
	var reached bool
	h := sessions.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	// No cookie: 401, inner handler never runs.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestWithCookie(nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
	assert.JSONEq(t, `{"error":"Authentication required"}`, rec.Body.String())

	// Valid cookie: request passes through.
	cookie, err := sessions.IssueCookie()
	require.NoError(t, err)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, requestWithCookie(cookie))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
}

func TestClearedCookieExpiresImmediately(t *testing.T) {
	sessions := NewAdminSessions("test-secret", time.Hour)

	cookie := sessions.ClearedCookie()
	assert.Equal(t, SessionCookie, cookie.Name)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)
}
