package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/seejay/userbase-be/internal/auth"
	"github.com/seejay/userbase-be/internal/http/respond"
	"github.com/seejay/userbase-be/internal/models/dto"
	"github.com/seejay/userbase-be/internal/users"
)

// AuthHandler owns the public register/login endpoints.
type AuthHandler struct {
	users *users.Service
	gate  *auth.Gate
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(userService *users.Service, gate *auth.Gate) *AuthHandler {
	return &AuthHandler{users: userService, gate: gate}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /auth/register", h.handleRegister)
	mux.HandleFunc("POST /auth/login", h.handleLogin)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if err := validateCredentials(req.Username, req.Email, req.Password); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.users.Register(r.Context(), strings.TrimSpace(req.Username), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidEmailFormat):
			respond.Error(w, http.StatusBadRequest, "invalid email format")
		case errors.Is(err, users.ErrEmailUnavailable):
			respond.Error(w, http.StatusConflict, "email already in use")
		default:
			slog.Error("register user", "error", err)
			respond.Error(w, http.StatusInternalServerError, "failed to create user")
		}
		return
	}

	respond.JSON(w, http.StatusCreated, "user created", created)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		respond.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	token, err := h.gate.Login(r.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidEmailFormat):
			respond.Error(w, http.StatusBadRequest, "invalid email format")
		case errors.Is(err, auth.ErrBadCredentials):
			respond.Error(w, http.StatusUnauthorized, "invalid credentials")
		default:
			slog.Error("login", "error", err)
			respond.Error(w, http.StatusInternalServerError, "failed to log in")
		}
		return
	}

	respond.JSON(w, http.StatusOK, "login successful", dto.LoginResponse{Token: token})
}

func validateCredentials(username, email, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" {
		return errors.New("username and email are required")
	}
	if len(password) < 8 || !utf8.ValidString(password) {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}
