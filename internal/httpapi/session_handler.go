package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/krishma/storefront/internal/auth"
)

type SessionHandler struct {
	sessions *auth.SessionManager
}

func NewSessionHandler(sessions *auth.SessionManager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type LoginRequestDTO struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role"`
}

// Login attaches an identity to the current session. Credential checking
// lives in the backend; this layer only records the asserted identity, which
// gates checkout and the back office.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		respondError(w, r, http.StatusBadRequest, "invalid_email", "email is required")
		return
	}

	role := auth.Role(req.Role)
	if role != auth.RoleCustomer && role != auth.RoleAdmin {
		respondError(w, r, http.StatusBadRequest, "invalid_role", "role must be customer or admin")
		return
	}

	identity := auth.Identity{Email: req.Email, Name: req.Name, Role: role}
	if !h.sessions.Login(sessionID(r.Context()), identity) {
		respondError(w, r, http.StatusUnauthorized, "session_expired", "session expired, retry")
		return
	}
	respondJSON(w, r, http.StatusOK, identity)
}

// Current returns the session's identity, or 204 for anonymous sessions.
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r.Context())
	if identity == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, r, http.StatusOK, identity)
}

// Logout clears the identity but keeps the session and its cart.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(sessionID(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}
