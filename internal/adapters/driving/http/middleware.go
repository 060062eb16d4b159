package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/storefront-labs/storefront-core/internal/core/domain"
	"github.com/storefront-labs/storefront-core/internal/core/ports/driven"
	"github.com/storefront-labs/storefront-core/internal/core/ports/driving"
)

// Context keys
type contextKey string

const principalContextKey contextKey = "principal"

// Authenticator validates a bearer token and resolves its principal.
// AccessAuthenticator and RefreshAuthenticator differ only in which token
// type they accept; both share the same error translation.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Profile, error)
}

// AccessAuthenticator accepts access tokens
type AccessAuthenticator struct {
	authService driving.AuthService
	userStore   driven.UserStore
}

// NewAccessAuthenticator creates an Authenticator for access tokens
func NewAccessAuthenticator(authService driving.AuthService, userStore driven.UserStore) *AccessAuthenticator {
	return &AccessAuthenticator{authService: authService, userStore: userStore}
}

// Authenticate validates an access token and resolves its principal
func (a *AccessAuthenticator) Authenticate(ctx context.Context, token string) (*domain.Profile, error) {
	claims, err := a.authService.ValidateAccess(ctx, token)
	if err != nil {
		return nil, err
	}
	return resolvePrincipal(ctx, a.userStore, claims.UserID)
}

// RefreshAuthenticator accepts refresh tokens that match the live session
type RefreshAuthenticator struct {
	authService driving.AuthService
	userStore   driven.UserStore
}

// NewRefreshAuthenticator creates an Authenticator for refresh tokens
func NewRefreshAuthenticator(authService driving.AuthService, userStore driven.UserStore) *RefreshAuthenticator {
	return &RefreshAuthenticator{authService: authService, userStore: userStore}
}

// Authenticate validates a refresh token and resolves its principal
func (a *RefreshAuthenticator) Authenticate(ctx context.Context, token string) (*domain.Profile, error) {
	claims, err := a.authService.ValidateRefresh(ctx, token)
	if err != nil {
		return nil, err
	}
	return resolvePrincipal(ctx, a.userStore, claims.UserID)
}

// resolvePrincipal looks up the user a token's claims point at. Claims
// referencing a deleted account fail with ErrUnknownSubject.
func resolvePrincipal(ctx context.Context, userStore driven.UserStore, userID string) (*domain.Profile, error) {
	user, err := userStore.FindByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUnknownSubject
	}
	if err != nil {
		return nil, fmt.Errorf("resolve principal: %w", err)
	}
	return user.ToProfile(), nil
}

// ErrorTranslator maps authentication failures to HTTP responses. Every
// token validation failure gets the same uniform 401 body so callers
// cannot probe which check rejected them; the specific kind is logged.
// Anything outside the taxonomy is an infrastructure failure and gets 500.
type ErrorTranslator struct {
	logger *slog.Logger
}

// NewErrorTranslator creates an ErrorTranslator
func NewErrorTranslator(logger *slog.Logger) *ErrorTranslator {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorTranslator{logger: logger}
}

// Translate writes the HTTP response for an authentication failure
func (t *ErrorTranslator) Translate(w http.ResponseWriter, r *http.Request, err error) {
	if domain.IsTokenError(err) {
		t.logger.Warn("request rejected",
			"method", r.Method,
			"path", r.URL.Path,
			"reason", err.Error(),
		)
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	t.logger.Error("authentication infrastructure failure",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err.Error(),
	)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// AuthMiddleware mediates access to protected routes
type AuthMiddleware struct {
	authenticator Authenticator
	translator    *ErrorTranslator
}

// NewAuthMiddleware composes an Authenticator with shared error translation
func NewAuthMiddleware(authenticator Authenticator, translator *ErrorTranslator) *AuthMiddleware {
	return &AuthMiddleware{authenticator: authenticator, translator: translator}
}

// RequireAuth validates the request token and adds the principal to the
// request context
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			m.translator.Translate(w, r, domain.ErrMissingToken)
			return
		}

		principal, err := m.authenticator.Authenticate(r.Context(), token)
		if err != nil {
			m.translator.Translate(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), principalContextKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin ensures the authenticated principal is an admin
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := GetPrincipal(r.Context())
		if principal == nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		if principal.Role != domain.RoleAdmin {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetPrincipal retrieves the authenticated principal from request context
func GetPrincipal(ctx context.Context) *domain.Profile {
	if ctx == nil {
		return nil
	}
	principal, ok := ctx.Value(principalContextKey).(*domain.Profile)
	if !ok {
		return nil
	}
	return principal
}

// extractBearerToken extracts the Bearer token from Authorization header
func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}

	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// Logging middleware

// LoggingMiddleware logs HTTP requests
type LoggingMiddleware struct {
	logger *slog.Logger
}

// NewLoggingMiddleware creates a new LoggingMiddleware
func NewLoggingMiddleware(logger *slog.Logger) *LoggingMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingMiddleware{logger: logger}
}

// Handler wraps an http.Handler with request logging
func (m *LoggingMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap response writer to capture status code
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		m.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration", time.Since(start),
		)
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Recovery middleware

// RecoveryMiddleware recovers from panics
type RecoveryMiddleware struct {
	logger *slog.Logger
}

// NewRecoveryMiddleware creates a new RecoveryMiddleware
func NewRecoveryMiddleware(logger *slog.Logger) *RecoveryMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecoveryMiddleware{logger: logger}
}

// Handler wraps an http.Handler with panic recovery
func (m *RecoveryMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				m.logger.Error("panic recovered", "error", err, "path", r.URL.Path)
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// CORS middleware

// CORSMiddleware handles CORS
type CORSMiddleware struct {
	allowedOrigins []string
}

// NewCORSMiddleware creates a new CORSMiddleware
func NewCORSMiddleware(allowedOrigins []string) *CORSMiddleware {
	return &CORSMiddleware{
		allowedOrigins: allowedOrigins,
	}
}

// Handler wraps an http.Handler with CORS headers
func (m *CORSMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// Check if origin is allowed
		allowed := false
		for _, o := range m.allowedOrigins {
			if o == "*" || o == origin {
				allowed = true
				break
			}
		}

		if allowed {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "86400")
		}

		// Handle preflight
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
