package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"hearthwick-api/pkg/apierror"
	"hearthwick-api/pkg/response"
)

// SessionCookie is the admin session cookie name.
const SessionCookie = "hw_admin_session"

// AdminSessions issues and verifies the admin panel session: an HMAC-signed
// (HS256) token with an embedded expiry, carried in an HttpOnly cookie.
type AdminSessions struct {
	secret []byte
	ttl    time.Duration
}

// NewAdminSessions creates the session manager. An empty secret disables
// admin access entirely (every check fails) rather than running unsigned.
func NewAdminSessions(secret string, ttl time.Duration) *AdminSessions {
	return &AdminSessions{secret: []byte(secret), ttl: ttl}
}

// IssueCookie mints a fresh session cookie.
func (s *AdminSessions) IssueCookie() (*http.Cookie, error) {
	if len(s.secret) == 0 {
		return nil, fmt.Errorf("admin session secret is not configured")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	return &http.Cookie{
		Name:     SessionCookie,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// ClearedCookie returns a cookie that removes the session.
func (s *AdminSessions) ClearedCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Authenticated reports whether the request carries a valid, unexpired session.
func (s *AdminSessions) Authenticated(r *http.Request) bool {
	if len(s.secret) == 0 {
		return false
	}
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return false
	}

	token, err := jwt.ParseWithClaims(cookie.Value, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
	)
	return err == nil && token.Valid
}

// Middleware gates every admin route: 401 before any sheet access happens.
func (s *AdminSessions) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.Authenticated(r) {
			response.Error(w, apierror.Unauthorized(""))
			return
		}
		next.ServeHTTP(w, r)
	})
}
