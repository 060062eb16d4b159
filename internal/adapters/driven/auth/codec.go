package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/storefront-labs/storefront-core/internal/core/domain"
	"github.com/storefront-labs/storefront-core/internal/core/ports/driven"
)

// Ensure Codec implements TokenCodec
var _ driven.TokenCodec = (*Codec)(nil)

// accessClaims is the wire form of an access token payload
type accessClaims struct {
	UserID    string      `json:"userId"`
	Name      string      `json:"username"`
	Role      domain.Role `json:"role"`
	TokenType string      `json:"tokenType"`
	jwt.RegisteredClaims
}

// refreshClaims is the wire form of a refresh token payload. Deliberately
// no role or profile data.
type refreshClaims struct {
	UserID    string `json:"userId"`
	TokenType string `json:"tokenType"`
	jwt.RegisteredClaims
}

// TokenConfig holds the signing parameters for one token type
type TokenConfig struct {
	Secret []byte
	Method string // HMAC algorithm name: HS256, HS384, HS512
	TTL    time.Duration
}

// signer binds a resolved signing method to its secret and lifetime
type signer struct {
	secret []byte
	method *jwt.SigningMethodHMAC
	ttl    time.Duration
}

// Codec signs and verifies JWTs. Access and refresh tokens carry
// independent secrets, algorithms, and lifetimes; neither validator
// accepts the other's tokens.
type Codec struct {
	access  signer
	refresh signer
}

// NewCodec creates a Codec from per-token-type configuration
func NewCodec(access, refresh TokenConfig) (*Codec, error) {
	a, err := newSigner(access)
	if err != nil {
		return nil, fmt.Errorf("access token config: %w", err)
	}
	r, err := newSigner(refresh)
	if err != nil {
		return nil, fmt.Errorf("refresh token config: %w", err)
	}
	return &Codec{access: a, refresh: r}, nil
}

func newSigner(cfg TokenConfig) (signer, error) {
	if len(cfg.Secret) == 0 {
		return signer{}, errors.New("secret must not be empty")
	}
	if cfg.TTL <= 0 {
		return signer{}, errors.New("ttl must be positive")
	}
	method, ok := jwt.GetSigningMethod(cfg.Method).(*jwt.SigningMethodHMAC)
	if !ok {
		return signer{}, fmt.Errorf("unsupported signing method %q", cfg.Method)
	}
	return signer{secret: cfg.Secret, method: method, ttl: cfg.TTL}, nil
}

// SignAccess builds and signs an access token for the principal
func (c *Codec) SignAccess(user *domain.User) (string, error) {
	now := time.Now()
	claims := accessClaims{
		UserID:    user.ID,
		Name:      user.Name,
		Role:      user.Role,
		TokenType: domain.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.access.ttl)),
		},
	}
	return jwt.NewWithClaims(c.access.method, claims).SignedString(c.access.secret)
}

// SignRefresh builds and signs a refresh token for the principal
func (c *Codec) SignRefresh(user *domain.User) (string, error) {
	now := time.Now()
	claims := refreshClaims{
		UserID:    user.ID,
		TokenType: domain.TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.refresh.ttl)),
		},
	}
	return jwt.NewWithClaims(c.refresh.method, claims).SignedString(c.refresh.secret)
}

// ParseAccess verifies signature and expiry under the access secret
func (c *Codec) ParseAccess(tokenString string) (*domain.AccessClaims, error) {
	var claims accessClaims
	if err := c.parse(tokenString, c.access, &claims); err != nil {
		return nil, err
	}
	return &domain.AccessClaims{
		UserID:    claims.UserID,
		Name:      claims.Name,
		Role:      claims.Role,
		TokenType: claims.TokenType,
		IssuedAt:  unixOrZero(claims.IssuedAt),
		ExpiresAt: unixOrZero(claims.ExpiresAt),
	}, nil
}

// ParseRefresh verifies signature and expiry under the refresh secret
func (c *Codec) ParseRefresh(tokenString string) (*domain.RefreshClaims, error) {
	var claims refreshClaims
	if err := c.parse(tokenString, c.refresh, &claims); err != nil {
		return nil, err
	}
	return &domain.RefreshClaims{
		UserID:    claims.UserID,
		TokenType: claims.TokenType,
		IssuedAt:  unixOrZero(claims.IssuedAt),
		ExpiresAt: unixOrZero(claims.ExpiresAt),
	}, nil
}

// RefreshTTL reports the configured refresh token lifetime
func (c *Codec) RefreshTTL() time.Duration {
	return c.refresh.ttl
}

func (c *Codec) parse(tokenString string, s signer, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Exact algorithm match, not just the HMAC family.
		if token.Method.Alg() != s.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuedAt(), jwt.WithExpirationRequired())
	if err != nil {
		return normalizeTokenError(err)
	}
	if !token.Valid {
		return domain.ErrMalformedToken
	}
	return nil
}

func unixOrZero(d *jwt.NumericDate) int64 {
	if d == nil {
		return 0
	}
	return d.Unix()
}

// normalizeTokenError collapses every signing-library failure into the
// domain taxonomy. This is the single place the library's error types are
// inspected; unrecognized errors default to ErrMalformedToken rather than
// falling through.
func normalizeTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return domain.ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return domain.ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenMalformed):
		return domain.ErrMalformedToken
	default:
		return domain.ErrMalformedToken
	}
}
