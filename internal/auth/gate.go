package auth

import (
	"context"
	"errors"
	"time"

	"github.com/seejay/userbase-be/internal/storage"
)

// ErrBadCredentials covers both an unknown email and a wrong password so the
// login response never reveals whether an account exists.
var ErrBadCredentials = errors.New("invalid credentials")

// Identity is the resolved caller identity for a single request. It is
// threaded explicitly through the request-handling call chain.
type Identity struct {
	Email string
}

// Gate is the per-request authentication decision point. It owns the login
// pipeline and bearer-token resolution; it never stores state between calls.
type Gate struct {
	verifier *Verifier
	tokens   *TokenManager
}

// NewGate wires the credential verifier and token manager together.
func NewGate(verifier *Verifier, tokens *TokenManager) *Gate {
	return &Gate{verifier: verifier, tokens: tokens}
}

// Login verifies plaintext credentials and issues a bearer token. The
// pipeline short-circuits at the first failing check.
func (g *Gate) Login(ctx context.Context, email, password string) (string, error) {
	user, err := g.verifier.ResolveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrBadCredentials
		}
		return "", err
	}
	if !VerifyPassword(password, user.PasswordHash) {
		return "", ErrBadCredentials
	}
	return g.tokens.Issue(user.Email, time.Now())
}

// ResolveToken verifies a bearer token as of now, re-resolves the subject's
// account, and returns the caller identity. The account lookup confirms the
// subject still exists; a token for a deleted account resolves to nothing.
func (g *Gate) ResolveToken(ctx context.Context, token string, now time.Time) (Identity, error) {
	subject, err := g.tokens.Verify(token, now)
	if err != nil {
		return Identity{}, err
	}
	user, err := g.verifier.ResolveByEmail(ctx, subject)
	if err != nil {
		return Identity{}, err
	}
	if user.Email != subject {
		return Identity{}, ErrTokenMalformed
	}
	return Identity{Email: user.Email}, nil
}
