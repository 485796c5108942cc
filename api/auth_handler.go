package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aggroplatform/aggro-admin/auth"
	"github.com/aggroplatform/aggro-admin/store"
)

// SignupRequest represents the payload for admin self-registration
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the payload for admin login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest represents the payload for forgot password
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest represents the payload for resetting password
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type AuthHandler struct {
	sessions *auth.Manager
}

func NewAuthHandler(sessions *auth.Manager) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Signup handles self-registration. Self-registered accounts are always
// super admins; admin-created accounts go through the settings endpoints.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		RespondError(w, "Username, Email and Password are required", http.StatusBadRequest)
		return
	}

	principal, err := h.sessions.SignUp(r.Context(), req.Email, req.Password, store.Document{
		"username": req.Username,
		"role":     "Super Admin",
	})
	if err != nil {
		if errors.Is(err, auth.ErrEmailInUse) {
			RespondError(w, err.Error(), http.StatusConflict)
			return
		}
		RespondError(w, "Failed to create account", http.StatusInternalServerError)
		return
	}

	token, err := auth.GenerateToken(principal.UID)
	if err != nil {
		RespondError(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Account created successfully",
		"token":   token,
		"user":    principal,
	})
}

// Login handles admin login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		RespondError(w, "Email and Password are required", http.StatusBadRequest)
		return
	}

	principal, err := h.sessions.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			RespondError(w, "Invalid email or password", http.StatusUnauthorized)
		case errors.Is(err, auth.ErrProfileNotFound):
			RespondError(w, "User data not found", http.StatusForbidden)
		default:
			RespondError(w, "Login failed", http.StatusInternalServerError)
		}
		return
	}

	token, err := auth.GenerateToken(principal.UID)
	if err != nil {
		RespondError(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
		"user":    principal,
	})
}

// ForgotPassword handles forgot password requests
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" {
		RespondError(w, "Email is required", http.StatusBadRequest)
		return
	}

	if err := h.sessions.RequestPasswordReset(r.Context(), req.Email); err != nil {
		RespondError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]string{
		"message": "Password reset email sent! Please check your inbox.",
	})
}

// ResetPassword completes the reset flow with the emailed token.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Token == "" || req.NewPassword == "" {
		RespondError(w, "Email, token and new password are required", http.StatusBadRequest)
		return
	}

	if err := h.sessions.ResetPassword(r.Context(), req.Email, req.Token, req.NewPassword); err != nil {
		RespondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]string{
		"message": "Password reset successfully. Please login with your new password.",
	})
}

// Logout clears the server-side session state.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.SignOut()
	RespondJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}
