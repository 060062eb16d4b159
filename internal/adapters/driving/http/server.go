package http

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/storefront-labs/storefront-core/internal/core/ports/driven"
	"github.com/storefront-labs/storefront-core/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string
	logger     *slog.Logger

	// Services
	authService driving.AuthService
	userService driving.UserService

	// Principal resolution for the auth middleware
	userStore driven.UserStore

	// Infrastructure
	db          Pinger // PostgreSQL health check
	redisClient Pinger // Redis health check
}

// Config holds server configuration
type Config struct {
	Host    string
	Port    int
	Version string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:    "0.0.0.0",
		Port:    8080,
		Version: "dev",
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	authService driving.AuthService,
	userService driving.UserService,
	userStore driven.UserStore,
	db Pinger,
	redisClient Pinger,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		router:      http.NewServeMux(),
		version:     cfg.Version,
		logger:      logger,
		authService: authService,
		userService: userService,
		userStore:   userStore,
		db:          db,
		redisClient: redisClient,
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Both token-type authenticators share one error translator so every
	// rejection looks identical to the caller.
	translator := NewErrorTranslator(s.logger)
	accessAuth := NewAuthMiddleware(NewAccessAuthenticator(s.authService, s.userStore), translator)
	refreshAuth := NewAuthMiddleware(NewRefreshAuthenticator(s.authService, s.userStore), translator)

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Auth endpoints (public)
	s.router.HandleFunc("POST /api/v1/auth/join", s.handleJoin)
	s.router.HandleFunc("POST /api/v1/auth/login", s.handleLogin)

	// Refresh requires a live refresh token
	s.router.Handle("POST /api/v1/auth/refresh",
		refreshAuth.RequireAuth(http.HandlerFunc(s.handleRefresh)))

	// Logout requires a valid access token
	s.router.Handle("POST /api/v1/auth/logout",
		accessAuth.RequireAuth(http.HandlerFunc(s.handleLogout)))

	// User endpoints
	s.router.Handle("GET /api/v1/me",
		accessAuth.RequireAuth(http.HandlerFunc(s.handleGetMe)))
}

// Handler returns the server's root handler, for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-stop
	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
