// Package users holds the account business logic: registration, self-service
// reads and updates, deletion, and the paginated account query engine.
package users

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/seejay/userbase-be/internal/auth"
	"github.com/seejay/userbase-be/internal/models"
	"github.com/seejay/userbase-be/internal/storage"
)

var (
	// ErrEmailUnavailable indicates a registration against an email that is
	// already taken.
	ErrEmailUnavailable = errors.New("email already in use")

	// ErrAccessDenied indicates a caller touching an account that is not
	// their own.
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidUpdate indicates an update request with nothing to change.
	ErrInvalidUpdate = errors.New("at least one of username or password must be provided")
)

// Service implements account operations on top of a UserStore.
type Service struct {
	store    storage.UserStore
	hashCost int
}

// NewService creates a Service. hashCost is the bcrypt cost used for new
// password hashes.
func NewService(store storage.UserStore, hashCost int) *Service {
	return &Service{store: store, hashCost: hashCost}
}

// Register creates a new account. The email syntax check runs before any
// store access; a taken email fails with ErrEmailUnavailable.
func (s *Service) Register(ctx context.Context, username, email, password string) (models.User, error) {
	if !auth.CheckEmailSyntax(email) {
		return models.User{}, auth.ErrInvalidEmailFormat
	}
	if _, err := s.store.FindByEmail(ctx, email); err == nil {
		return models.User{}, ErrEmailUnavailable
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return models.User{}, err
	}

	created, err := s.store.CreateUser(ctx, models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		// the pre-check can lose a race with a concurrent registration
		if errors.Is(err, storage.ErrAlreadyExists) {
			return models.User{}, ErrEmailUnavailable
		}
		return models.User{}, err
	}
	return created, nil
}

// Get returns the account with the given id, but only when it belongs to the
// caller.
func (s *Service) Get(ctx context.Context, id int64, caller auth.Identity) (models.User, error) {
	requester, err := s.store.FindByEmail(ctx, caller.Email)
	if err != nil {
		return models.User{}, err
	}
	if requester.ID != id {
		return models.User{}, ErrAccessDenied
	}
	return requester, nil
}

// Update changes the caller's username and/or password. Id and email are
// immutable; empty fields are left untouched.
func (s *Service) Update(ctx context.Context, id int64, username, password string, caller auth.Identity) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" && password == "" {
		return models.User{}, ErrInvalidUpdate
	}

	requester, err := s.store.FindByEmail(ctx, caller.Email)
	if err != nil {
		return models.User{}, err
	}
	if requester.ID != id {
		return models.User{}, ErrAccessDenied
	}

	current, err := s.store.FindByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if username != "" {
		current.Username = username
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
		if err != nil {
			return models.User{}, err
		}
		current.PasswordHash = string(hash)
	}
	return s.store.UpdateUser(ctx, current)
}

// Delete removes the account registered under email. It reports whether a
// record was removed; an absent account is not an error.
func (s *Service) Delete(ctx context.Context, email string) (bool, error) {
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := s.store.DeleteUser(ctx, user.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
