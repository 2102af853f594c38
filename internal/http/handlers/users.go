package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/seejay/userbase-be/internal/http/respond"
	"github.com/seejay/userbase-be/internal/middleware"
	"github.com/seejay/userbase-be/internal/models/dto"
	"github.com/seejay/userbase-be/internal/storage"
	"github.com/seejay/userbase-be/internal/users"
)

// UsersHandler owns the protected account endpoints: self-service fetch and
// update, deletion by email, and the paginated account query.
type UsersHandler struct {
	users *users.Service
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(userService *users.Service) *UsersHandler {
	return &UsersHandler{users: userService}
}

// Register attaches user routes to the mux.
func (h *UsersHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /users/query", h.handleQuery)
	mux.HandleFunc("GET /users/{id}", h.handleGet)
	mux.HandleFunc("PUT /users/{id}", h.handleUpdate)
	mux.HandleFunc("DELETE /users", h.handleDelete)
}

func (h *UsersHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.users.Get(r.Context(), id, identity)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrAccessDenied):
			respond.Error(w, http.StatusForbidden, "you may only view your own account")
		case errors.Is(err, storage.ErrNotFound):
			respond.Error(w, http.StatusNotFound, "user not found")
		default:
			slog.Error("get user", "error", err)
			respond.Error(w, http.StatusInternalServerError, "failed to fetch user")
		}
		return
	}
	respond.JSON(w, http.StatusOK, "ok", user)
}

func (h *UsersHandler) handleQuery(w http.ResponseWriter, r *http.Request) {
	params := users.QueryParams{
		Username: r.URL.Query().Get("username"),
		Email:    r.URL.Query().Get("email"),
	}

	var err error
	if params.Limit, err = optionalInt(r, "limit"); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid limit")
		return
	}
	if params.Page, err = optionalInt(r, "page"); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid page")
		return
	}

	page, err := h.users.Query(r.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			respond.Error(w, http.StatusNotFound, "no matching users")
		case errors.Is(err, users.ErrInvalidQueryRequest),
			errors.Is(err, users.ErrNonPositiveInput),
			errors.Is(err, users.ErrOutOfBound):
			respond.Error(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("query users", "error", err)
			respond.Error(w, http.StatusInternalServerError, "failed to query users")
		}
		return
	}
	respond.JSON(w, http.StatusOK, "ok", page)
}

func (h *UsersHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	updated, err := h.users.Update(r.Context(), id, req.Username, req.Password, identity)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidUpdate):
			respond.Error(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, users.ErrAccessDenied):
			respond.Error(w, http.StatusForbidden, "you may only update your own account")
		case errors.Is(err, storage.ErrNotFound):
			respond.Error(w, http.StatusNotFound, "user not found")
		default:
			slog.Error("update user", "error", err)
			respond.Error(w, http.StatusInternalServerError, "failed to update user")
		}
		return
	}
	respond.JSON(w, http.StatusOK, "user updated", updated)
}

func (h *UsersHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req dto.DeleteUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		respond.Error(w, http.StatusBadRequest, "email is required")
		return
	}

	deleted, err := h.users.Delete(r.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		slog.Error("delete user", "error", err)
		respond.Error(w, http.StatusInternalServerError, "failed to delete user")
		return
	}
	respond.JSON(w, http.StatusOK, "ok", dto.DeleteUserResponse{Deleted: deleted})
}

func optionalInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
