package http

import (
	"log/slog"
	"net/http"

	"github.com/Thamizhjaisankar-git/amazon-clone/internal/store"
	"github.com/Thamizhjaisankar-git/amazon-clone/pkg/httputil"
	"github.com/Thamizhjaisankar-git/amazon-clone/pkg/validator"
)

// LoginRequest is the body of POST /api/v1/session/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterRequest is the body of POST /api/v1/session/register.
type RegisterRequest struct {
	Name            string `json:"name" validate:"required,min=2,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// SessionHandler serves the mock sign-in flow. Passwords are validated for
// shape only and then discarded.
type SessionHandler struct {
	stores *store.Factory
	logger *slog.Logger
}

func NewSessionHandler(stores *store.Factory, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{stores: stores, logger: logger}
}

func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) (*store.SessionStore, bool) {
	s, err := h.stores.Session(r.Context(), profileID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return nil, false
	}
	return s, true
}

// GetSession handles GET /api/v1/session
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	httputil.WriteData(w, newSessionView(s))
}

// Login handles POST /api/v1/session/login
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if _, err := s.Login(r.Context(), req.Email, req.Password); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, newSessionView(s))
}

// Register handles POST /api/v1/session/register
func (h *SessionHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if _, err := s.Register(r.Context(), req.Name, req.Email, req.Password); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: newSessionView(s)})
}

// Logout handles DELETE /api/v1/session
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.Logout(r.Context()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, newSessionView(s))
}
