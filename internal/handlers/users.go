package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/finwiser/finwiser/internal/auth"
	"github.com/finwiser/finwiser/internal/middleware"
	"github.com/finwiser/finwiser/internal/models"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates a new user account and returns an issued token.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	user, err := h.authenticator.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.logger.Warn("Registration failed", "email", req.Email, "error", err)
		switch {
		case errors.Is(err, auth.ErrEmailExists), errors.Is(err, auth.ErrUsernameExists):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, auth.ErrWeakPassword):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.internalError(w, err)
		}
		return
	}

	token, err := h.jwtManager.Generate(user)
	if err != nil {
		h.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		h.internalError(w, err)
		return
	}

	h.logger.Info("User registered", "user_id", user.ID, "email", user.Email)
	writeSuccess(w, http.StatusCreated, authResponse{Token: token, User: user})
}

// Login authenticates a user and returns a freshly issued token.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.authenticator.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Warn("Login failed", "email", req.Email, "error", err)
		writeError(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
		return
	}

	token, err := h.jwtManager.Generate(user)
	if err != nil {
		h.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		h.internalError(w, err)
		return
	}

	h.logger.Info("User logged in", "user_id", user.ID, "email", user.Email)
	writeSuccess(w, http.StatusOK, authResponse{Token: token, User: user})
}

// Profile returns the authenticated user's own record.
func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.store.GetUserByID(r.Context(), userID)
	if err != nil {
		h.internalError(w, err)
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	writeSuccess(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UpdateProfile updates the authenticated user's username and email.
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Username == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "username and email are required")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	// Uniqueness still holds after the update.
	if existing, err := h.store.GetUserByEmail(r.Context(), email); err == nil && existing != nil && existing.ID != userID {
		writeError(w, http.StatusConflict, auth.ErrEmailExists.Error())
		return
	}
	if existing, err := h.store.GetUserByUsername(r.Context(), username); err == nil && existing != nil && existing.ID != userID {
		writeError(w, http.StatusConflict, auth.ErrUsernameExists.Error())
		return
	}

	user, err := h.store.UpdateUserProfile(r.Context(), userID, username, email)
	if err != nil {
		h.storeError(w, err, "User not found")
		return
	}

	h.logger.Info("Profile updated", "user_id", userID)
	writeSuccess(w, http.StatusOK, user)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword verifies the current password and replaces it.
func (h *Handlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "current and new password are required")
		return
	}

	err := h.authenticator.ChangeCredential(r.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		h.logger.Warn("Password change failed", "user_id", userID, "error", err)
		switch {
		case errors.Is(err, auth.ErrWrongPassword):
			writeError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, auth.ErrWeakPassword):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, auth.ErrUserNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			h.internalError(w, err)
		}
		return
	}

	h.logger.Info("Password changed", "user_id", userID)
	writeMessage(w, http.StatusOK, "Password updated successfully")
}
