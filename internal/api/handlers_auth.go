package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/flathive/flathive/internal/api/respond"
	"github.com/flathive/flathive/internal/api/validate"
	"github.com/flathive/flathive/internal/auth"
	"github.com/flathive/flathive/internal/store"
)

// AuthHandler serves register/login/profile.
type AuthHandler struct {
	authenticator *auth.PasswordAuthenticator
	jwt           *auth.JWTManager
	flatmates     store.Flatmates
}

func NewAuthHandler(a *auth.PasswordAuthenticator, jwt *auth.JWTManager, flatmates store.Flatmates) *AuthHandler {
	return &AuthHandler{authenticator: a, jwt: jwt, flatmates: flatmates}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Password string `json:"password"`
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := validate.Register(req.Email, req.Name, req.Password); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	mate, err := h.authenticator.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrWeakPassword):
			respond.WriteBadRequest(w, err.Error())
		case errors.Is(err, auth.ErrEmailExists):
			respond.WriteError(w, http.StatusConflict, err.Error())
		default:
			respond.WriteInternalError(w, err.Error())
		}
		return
	}
	token, err := h.jwt.Generate(mate)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"token":    token,
		"flatmate": mate,
	})
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	mate, err := h.authenticator.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		respond.WriteUnauthorized(w, auth.ErrInvalidCredentials.Error())
		return
	}
	token, err := h.jwt.Generate(mate)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"token":    token,
		"flatmate": mate,
	})
}

// Me GET /api/auth/me — the session flatmate's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess := auth.SessionFrom(r.Context())
	if sess == nil {
		respond.WriteUnauthorized(w, auth.ErrMissingToken.Error())
		return
	}
	mate, err := h.flatmates.Get(r.Context(), sess.FlatmateID)
	if err != nil {
		respond.WriteStoreError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, mate)
}
