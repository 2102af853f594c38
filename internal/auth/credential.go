package auth

import (
	"context"
	"errors"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"github.com/seejay/userbase-be/internal/models"
	"github.com/seejay/userbase-be/internal/storage"
)

// ErrInvalidEmailFormat indicates an email that fails the syntax check.
var ErrInvalidEmailFormat = errors.New("invalid email format")

// Conservative address pattern: word characters, '+', '-' or '.' in the
// local part, a domain containing at least one dot, and a 2+ letter TLD.
var emailPattern = regexp.MustCompile(`^[\w+.-]+@[\w+.-]+\.[a-zA-Z]{2,}$`)

// CheckEmailSyntax reports whether email matches the accepted address pattern.
func CheckEmailSyntax(email string) bool {
	return emailPattern.MatchString(email)
}

// VerifyPassword compares a plaintext password against a stored bcrypt hash.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// Verifier resolves stored account identities for authentication decisions.
type Verifier struct {
	store storage.UserStore
}

// NewVerifier creates a verifier backed by the given store.
func NewVerifier(store storage.UserStore) *Verifier {
	return &Verifier{store: store}
}

// ResolveByEmail validates the email syntax and looks up the account.
// Syntactically invalid emails never reach the store.
func (v *Verifier) ResolveByEmail(ctx context.Context, email string) (models.User, error) {
	if !CheckEmailSyntax(email) {
		return models.User{}, ErrInvalidEmailFormat
	}
	return v.store.FindByEmail(ctx, email)
}
