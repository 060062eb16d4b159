package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/storefront-labs/storefront-core/internal/core/domain"
	"github.com/storefront-labs/storefront-core/internal/core/ports/driven/mocks"
	"github.com/storefront-labs/storefront-core/internal/core/ports/driving"
	"github.com/storefront-labs/storefront-core/internal/core/services"
)

// testEnv wires the auth core against mocks for middleware tests
type testEnv struct {
	userStore    *mocks.MockUserStore
	sessionStore *mocks.MockSessionStore
	codec        *mocks.MockTokenCodec
	authService  driving.AuthService
	access       *AuthMiddleware
	refresh      *AuthMiddleware
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	userStore := mocks.NewMockUserStore()
	sessionStore := mocks.NewMockSessionStore()
	codec := mocks.NewMockTokenCodec()
	authService := services.NewAuthService(userStore, sessionStore, codec, mocks.NewMockHasher())

	translator := NewErrorTranslator(slog.New(slog.DiscardHandler))
	return &testEnv{
		userStore:    userStore,
		sessionStore: sessionStore,
		codec:        codec,
		authService:  authService,
		access:       NewAuthMiddleware(NewAccessAuthenticator(authService, userStore), translator),
		refresh:      NewAuthMiddleware(NewRefreshAuthenticator(authService, userStore), translator),
	}
}

func (e *testEnv) seedUser(t *testing.T, id, email string) *domain.User {
	t.Helper()
	user := &domain.User{
		ID:           id,
		Email:        email,
		PasswordHash: "1234",
		Name:         "Test User",
		Role:         domain.RoleCustomer,
	}
	if err := e.userStore.Save(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

// okHandler records whether the middleware let the request through
func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(handler http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth_ValidAccessToken(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "1", "user1@example.com")

	token, err := env.codec.SignAccess(user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var principal *domain.Profile
	handler := env.access.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal = GetPrincipal(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := doRequest(handler, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if principal == nil || principal.ID != "1" {
		t.Errorf("expected principal 1 in context, got %+v", principal)
	}
}

func TestRequireAuth_Rejections(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "1", "user1@example.com")

	accessToken, _ := env.codec.SignAccess(user)
	refreshToken, _ := env.codec.SignRefresh(user)

	tests := []struct {
		name  string
		token string
	}{
		{name: "missing token", token: ""},
		{name: "garbage token", token: "not-a-token"},
		{name: "refresh token on access route", token: refreshToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			rec := doRequest(env.access.RequireAuth(okHandler(&called)), tt.token)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
			if called {
				t.Error("handler must not run for a rejected request")
			}
			// Uniform body regardless of which check failed
			if body := rec.Body.String(); body != "{\"error\":\"unauthorized\"}\n" {
				t.Errorf("unexpected body %q", body)
			}
		})
	}

	// The access token is still good
	var called bool
	if rec := doRequest(env.access.RequireAuth(okHandler(&called)), accessToken); rec.Code != http.StatusOK {
		t.Errorf("expected valid token to pass, got %d", rec.Code)
	}
}

func TestRequireAuth_DeletedSubject(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "1", "user1@example.com")

	token, _ := env.codec.SignAccess(user)

	if err := env.userStore.Delete(context.Background(), "1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var called bool
	rec := doRequest(env.access.RequireAuth(okHandler(&called)), token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for deleted subject, got %d", rec.Code)
	}
	if called {
		t.Error("handler must not run for a deleted subject")
	}
}

func TestRequireAuth_RefreshRoute(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "1", "user1@example.com")

	pair, err := env.authService.Login(context.Background(), domain.LoginRequest{Email: "user1@example.com", Password: "1234"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// Live refresh token passes
	var called bool
	if rec := doRequest(env.refresh.RequireAuth(okHandler(&called)), pair.RefreshToken); rec.Code != http.StatusOK {
		t.Fatalf("expected live refresh token to pass, got %d", rec.Code)
	}

	// An access token on the refresh route is rejected
	called = false
	if rec := doRequest(env.refresh.RequireAuth(okHandler(&called)), pair.AccessToken); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for access token on refresh route, got %d", rec.Code)
	}

	// A stray refresh token that never matched the session is rejected
	stray, _ := env.codec.SignRefresh(user)
	if rec := doRequest(env.refresh.RequireAuth(okHandler(&called)), stray); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for stray refresh token, got %d", rec.Code)
	}
}

func TestRequireAuth_StoreOutageIs500(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "1", "user1@example.com")

	pair, err := env.authService.Login(context.Background(), domain.LoginRequest{Email: "user1@example.com", Password: "1234"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	env.sessionStore.FailWith = context.DeadlineExceeded

	var called bool
	rec := doRequest(env.refresh.RequireAuth(okHandler(&called)), pair.RefreshToken)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 when the session store is down, got %d", rec.Code)
	}
	if called {
		t.Error("handler must not run when the store is down")
	}
}

func TestRequireAdmin(t *testing.T) {
	env := newTestEnv(t)

	admin := &domain.User{ID: "a", Email: "admin@example.com", PasswordHash: "x", Role: domain.RoleAdmin}
	customer := &domain.User{ID: "c", Email: "cust@example.com", PasswordHash: "x", Role: domain.RoleCustomer}
	_ = env.userStore.Save(context.Background(), admin)
	_ = env.userStore.Save(context.Background(), customer)

	adminToken, _ := env.codec.SignAccess(admin)
	customerToken, _ := env.codec.SignAccess(customer)

	var called bool
	chain := env.access.RequireAuth(env.access.RequireAdmin(okHandler(&called)))

	if rec := doRequest(chain, adminToken); rec.Code != http.StatusOK {
		t.Errorf("expected admin to pass, got %d", rec.Code)
	}
	if rec := doRequest(chain, customerToken); rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for customer, got %d", rec.Code)
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "no header", header: "", want: ""},
		{name: "bearer token", header: "Bearer abc123", want: "abc123"},
		{name: "lowercase scheme", header: "bearer abc123", want: "abc123"},
		{name: "wrong scheme", header: "Basic abc123", want: ""},
		{name: "no token", header: "Bearer", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if got := extractBearerToken(req); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
