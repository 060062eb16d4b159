package driven

import (
	"context"
	"time"
)

// SessionStore records the single refresh token currently considered live
// for each principal (Redis). A new Put for the same principal overwrites
// the prior record unconditionally: last write wins, one active session.
//
// Absence is reported as domain.ErrNotFound. Any other error is an
// infrastructure failure and must not be interpreted as "token invalid".
type SessionStore interface {
	// Put stores the live refresh token for a principal. The TTL must match
	// the refresh token's own lifetime so the record never outlives a token
	// that could still pass signature validation.
	Put(ctx context.Context, userID, refreshToken string, ttl time.Duration) error

	// Get returns the live refresh token for a principal, or
	// domain.ErrNotFound when no session record exists.
	Get(ctx context.Context, userID string) (string, error)

	// Delete removes the session record for a principal (logout).
	Delete(ctx context.Context, userID string) error
}
