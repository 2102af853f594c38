package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/seejay/userbase-be/internal/auth"
	"github.com/seejay/userbase-be/internal/http/respond"
	"github.com/seejay/userbase-be/internal/storage"
)

type contextKey int

const identityKey contextKey = iota

// WithIdentity returns a copy of ctx carrying the resolved caller identity.
func WithIdentity(ctx context.Context, identity auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFrom extracts the caller identity attached by Authenticate.
func IdentityFrom(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(auth.Identity)
	return identity, ok
}

// Authenticate resolves a bearer token from the Authorization header and
// attaches the caller identity to the request context. A missing, malformed,
// or expired token is not an error here: the request simply continues
// unauthenticated and protected routes reject it downstream. Store failures
// are a different matter and surface as 500 rather than a silent downgrade.
// An identity already present on the context is never overwritten.
func Authenticate(gate *auth.Gate, next http.Handler) http.Handler {
	const prefix = "Bearer "

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFrom(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, prefix) {
			next.ServeHTTP(w, r)
			return
		}

		token := strings.TrimSpace(header[len(prefix):])
		identity, err := gate.ResolveToken(r.Context(), token, time.Now())
		if err != nil {
			if isCredentialError(err) {
				next.ServeHTTP(w, r)
				return
			}
			slog.Error("resolve bearer token", "error", err)
			respond.Error(w, http.StatusInternalServerError, "failed to authenticate request")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

// isCredentialError reports whether a token failed to resolve because of the
// credential itself rather than an infrastructure fault. Only credential
// failures downgrade to an unauthenticated request.
func isCredentialError(err error) bool {
	return errors.Is(err, auth.ErrTokenMalformed) ||
		errors.Is(err, auth.ErrTokenExpired) ||
		errors.Is(err, auth.ErrInvalidEmailFormat) ||
		errors.Is(err, storage.ErrNotFound)
}

// Guard rejects requests without an attached identity unless the path is on
// the public allowlist. Allowlist entries ending in "/" match as prefixes,
// other entries match exactly.
func Guard(publicRoutes []string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublic(publicRoutes, r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}
		if _, ok := IdentityFrom(r.Context()); !ok {
			respond.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func isPublic(routes []string, path string) bool {
	for _, route := range routes {
		if strings.HasSuffix(route, "/") {
			if strings.HasPrefix(path, route) {
				return true
			}
			continue
		}
		if path == route {
			return true
		}
	}
	return false
}
