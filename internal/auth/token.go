package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenMalformed indicates a token that cannot be parsed or whose
	// signature does not verify.
	ErrTokenMalformed = errors.New("malformed token")

	// ErrTokenExpired indicates a well-formed token past its expiry.
	ErrTokenExpired = errors.New("token expired")
)

// TokenManager issues and verifies RS256-signed bearer tokens. The subject is
// the account's email; tokens carry no other identity claims.
type TokenManager struct {
	keys     *KeyProvider
	validity time.Duration
}

// NewTokenManager creates a manager with the provided key pair and lifetime.
func NewTokenManager(keys *KeyProvider, validity time.Duration) *TokenManager {
	return &TokenManager{keys: keys, validity: validity}
}

// Issue signs a token for subject valid from now until now plus the
// configured validity window.
func (t *TokenManager) Issue(subject string, now time.Time) (string, error) {
	key, err := t.keys.SigningKey()
	if err != nil {
		return "", err
	}
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.validity)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(key)
}

// Verify checks the signature and expiry of tokenString as of now and returns
// the embedded subject. It does not compare the subject against anything;
// that is the caller's decision.
func (t *TokenManager) Verify(tokenString string, now time.Time) (string, error) {
	key, err := t.keys.VerificationKey()
	if err != nil {
		return "", err
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenMalformed
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrTokenMalformed
	}
	return claims.Subject, nil
}
