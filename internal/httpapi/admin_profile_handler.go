package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/krishma/storefront/internal/domain"
)

// ProfileAdminAPI is the backend surface for the admin account profile.
type ProfileAdminAPI interface {
	AdminProfile(ctx context.Context, username string) (*domain.AdminProfile, error)
	UpdateAdminProfile(ctx context.Context, username string, profile *domain.AdminProfile) error
	ChangeAdminPassword(ctx context.Context, username, current, updated string) error
}

type AdminProfileHandler struct {
	backend ProfileAdminAPI
	timeout time.Duration
}

func NewAdminProfileHandler(backend ProfileAdminAPI, timeout time.Duration) *AdminProfileHandler {
	return &AdminProfileHandler{backend: backend, timeout: timeout}
}

func (h *AdminProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	profile, err := h.backend.AdminProfile(ctx, identityFrom(ctx).Email)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, profile)
}

func (h *AdminProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var profile domain.AdminProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.backend.UpdateAdminProfile(ctx, identityFrom(ctx).Email, &profile); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, profile)
}

type ChangePasswordRequestDTO struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (h *AdminProfileHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ChangePasswordRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.NewPassword) == "" {
		respondError(w, r, http.StatusBadRequest, "invalid_password", "new password is required")
		return
	}

	err := h.backend.ChangeAdminPassword(ctx, identityFrom(ctx).Email, req.CurrentPassword, req.NewPassword)
	if err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
