package driven

import (
	"time"

	"github.com/storefront-labs/storefront-core/internal/core/domain"
)

// TokenCodec signs and verifies compact signed tokens. Access and refresh
// tokens use independent secrets, signing methods, and TTLs.
//
// Parse methods normalize every signing-library failure to one of the
// domain token errors (ErrMalformedToken, ErrTokenExpired,
// ErrInvalidSignature) before returning; raw library errors never leak
// past this boundary. The token type claim is NOT checked here - that is
// the validator's job.
type TokenCodec interface {
	// SignAccess builds and signs an access token for the principal.
	SignAccess(user *domain.User) (string, error)

	// SignRefresh builds and signs a refresh token for the principal.
	SignRefresh(user *domain.User) (string, error)

	// ParseAccess verifies signature and expiry under the access secret
	// and returns the claims.
	ParseAccess(token string) (*domain.AccessClaims, error)

	// ParseRefresh verifies signature and expiry under the refresh secret
	// and returns the claims.
	ParseRefresh(token string) (*domain.RefreshClaims, error)

	// RefreshTTL reports the configured refresh token lifetime, used by
	// callers to TTL-bound the session record.
	RefreshTTL() time.Duration
}
