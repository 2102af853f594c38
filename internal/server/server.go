package server

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/seejay/userbase-be/internal/auth"
	"github.com/seejay/userbase-be/internal/config"
	"github.com/seejay/userbase-be/internal/http/handlers"
	"github.com/seejay/userbase-be/internal/middleware"
	"github.com/seejay/userbase-be/internal/storage"
	"github.com/seejay/userbase-be/internal/users"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware and routes. It fails if the configured key
// material cannot be loaded; the service must not serve without valid keys.
func New(cfg config.Config, store storage.UserStore) (*Server, error) {
	keys := auth.NewKeyProvider(cfg.PrivateKeyPEM, cfg.PublicKeyPEM)
	if _, err := keys.SigningKey(); err != nil {
		return nil, err
	}
	if _, err := keys.VerificationKey(); err != nil {
		return nil, err
	}

	tokens := auth.NewTokenManager(keys, cfg.TokenValidity)
	gate := auth.NewGate(auth.NewVerifier(store), tokens)
	userService := users.NewService(store, bcrypt.DefaultCost)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now()).Register(mux)
	handlers.NewAuthHandler(userService, gate).Register(mux)
	handlers.NewUsersHandler(userService).Register(mux)

	handler := middleware.CORS(cfg.CORSOrigins,
		middleware.Logging(
			middleware.Authenticate(gate,
				middleware.Guard(cfg.PublicRoutes, mux))))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}, nil
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
