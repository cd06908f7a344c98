package handler

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"hearthwick-api/internal/middleware"
	"hearthwick-api/pkg/apierror"
	"hearthwick-api/pkg/response"
)

// AdminAuthHandler serves admin login/logout.
type AdminAuthHandler struct {
	sessions *middleware.AdminSessions
	password string
}

// NewAdminAuthHandler creates a new admin auth handler.
func NewAdminAuthHandler(sessions *middleware.AdminSessions, password string) *AdminAuthHandler {
	return &AdminAuthHandler{sessions: sessions, password: password}
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login handles POST /api/v1/admin/login
func (h *AdminAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.password == "" {
		response.Error(w, apierror.Internal("Admin access is not configured: set ADMIN_PASSWORD and ADMIN_SESSION_SECRET."))
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("Invalid JSON payload."))
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.password)) != 1 {
		response.Error(w, apierror.Unauthorized("Incorrect password."))
		return
	}

	cookie, err := h.sessions.IssueCookie()
	if err != nil {
		response.Error(w, apierror.Internal(err.Error()))
		return
	}

	http.SetCookie(w, cookie)
	response.OK(w, map[string]string{"status": "ok"})
}

// Logout handles POST /api/v1/admin/logout
func (h *AdminAuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessions.ClearedCookie())
	response.OK(w, map[string]string{"status": "ok"})
}

// Session handles GET /api/v1/admin/session. It lets the admin UI decide
// whether to show the login form without triggering a 401.
func (h *AdminAuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]bool{"authenticated": h.sessions.Authenticated(r)})
}
