package mocks

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"sync/atomic"
	"time"

	"github.com/storefront-labs/storefront-core/internal/core/domain"
	"github.com/storefront-labs/storefront-core/internal/core/ports/driven"
)

// Ensure MockTokenCodec implements TokenCodec
var _ driven.TokenCodec = (*MockTokenCodec)(nil)

const (
	mockAccessPrefix  = "access."
	mockRefreshPrefix = "refresh."
)

// mockEnvelope wraps claims with a nonce so two tokens minted within the
// same second are still distinct strings, like real salted signatures.
type mockEnvelope struct {
	Nonce  uint64          `json:"nonce"`
	Claims json.RawMessage `json:"claims"`
}

// MockTokenCodec is a TokenCodec for testing. Tokens are prefix-tagged
// base64 JSON. The prefix stands in for the independent secrets: parsing a
// token under the wrong prefix fails with ErrInvalidSignature, just like a
// real cross-secret verification would. NOT secure - only for testing.
type MockTokenCodec struct {
	AccessLifetime  time.Duration
	RefreshLifetime time.Duration
	nonce           atomic.Uint64
}

// NewMockTokenCodec creates a MockTokenCodec with short test lifetimes
func NewMockTokenCodec() *MockTokenCodec {
	return &MockTokenCodec{
		AccessLifetime:  15 * time.Minute,
		RefreshLifetime: 24 * time.Hour,
	}
}

func (m *MockTokenCodec) SignAccess(user *domain.User) (string, error) {
	now := time.Now()
	return m.EncodeAccess(&domain.AccessClaims{
		UserID:    user.ID,
		Name:      user.Name,
		Role:      user.Role,
		TokenType: domain.TokenTypeAccess,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(m.AccessLifetime).Unix(),
	})
}

func (m *MockTokenCodec) SignRefresh(user *domain.User) (string, error) {
	now := time.Now()
	return m.EncodeRefresh(&domain.RefreshClaims{
		UserID:    user.ID,
		TokenType: domain.TokenTypeRefresh,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(m.RefreshLifetime).Unix(),
	})
}

// EncodeAccess signs arbitrary access claims. Tests use it to craft
// expired or mistyped tokens.
func (m *MockTokenCodec) EncodeAccess(claims *domain.AccessClaims) (string, error) {
	return m.encode(mockAccessPrefix, claims)
}

// EncodeRefresh signs arbitrary refresh claims.
func (m *MockTokenCodec) EncodeRefresh(claims *domain.RefreshClaims) (string, error) {
	return m.encode(mockRefreshPrefix, claims)
}

func (m *MockTokenCodec) ParseAccess(token string) (*domain.AccessClaims, error) {
	var claims domain.AccessClaims
	if err := m.decode(token, mockAccessPrefix, &claims); err != nil {
		return nil, err
	}
	if time.Now().Unix() > claims.ExpiresAt {
		return nil, domain.ErrTokenExpired
	}
	return &claims, nil
}

func (m *MockTokenCodec) ParseRefresh(token string) (*domain.RefreshClaims, error) {
	var claims domain.RefreshClaims
	if err := m.decode(token, mockRefreshPrefix, &claims); err != nil {
		return nil, err
	}
	if time.Now().Unix() > claims.ExpiresAt {
		return nil, domain.ErrTokenExpired
	}
	return &claims, nil
}

func (m *MockTokenCodec) RefreshTTL() time.Duration {
	return m.RefreshLifetime
}

func (m *MockTokenCodec) encode(prefix string, claims any) (string, error) {
	raw, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(mockEnvelope{
		Nonce:  m.nonce.Add(1),
		Claims: raw,
	})
	if err != nil {
		return "", err
	}
	return prefix + base64.RawURLEncoding.EncodeToString(data), nil
}

func (m *MockTokenCodec) decode(token, prefix string, into any) error {
	if !strings.Contains(token, ".") {
		return domain.ErrMalformedToken
	}
	if !strings.HasPrefix(token, prefix) {
		return domain.ErrInvalidSignature
	}
	data, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(token, prefix))
	if err != nil {
		return domain.ErrMalformedToken
	}
	var env mockEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return domain.ErrMalformedToken
	}
	if err := json.Unmarshal(env.Claims, into); err != nil {
		return domain.ErrMalformedToken
	}
	return nil
}
