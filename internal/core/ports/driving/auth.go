package driving

import (
	"context"

	"github.com/storefront-labs/storefront-core/internal/core/domain"
)

// AuthService handles credential verification, token issuance and
// validation, and session revocation.
type AuthService interface {
	// Login verifies credentials, mints an access/refresh token pair, and
	// records the refresh token as the principal's single live session.
	Login(ctx context.Context, req domain.LoginRequest) (*domain.TokenPair, error)

	// Refresh exchanges a valid refresh token for a new access token. The
	// refresh token and its session record are left unchanged.
	Refresh(ctx context.Context, refreshToken string) (*domain.RefreshResponse, error)

	// Logout deletes the principal's session record. The client's refresh
	// token, though still well-signed, can no longer pass validation.
	Logout(ctx context.Context, userID string) error

	// ValidateAccess verifies signature, expiry, and token type of an
	// access token.
	ValidateAccess(ctx context.Context, token string) (*domain.AccessClaims, error)

	// ValidateRefresh verifies signature, expiry, and token type of a
	// refresh token, then requires it to exactly match the live session
	// record. A superseded or revoked token fails with ErrSessionMismatch.
	ValidateRefresh(ctx context.Context, token string) (*domain.RefreshClaims, error)
}
