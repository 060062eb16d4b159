package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storefront-labs/storefront-core/internal/core/domain"
	"github.com/storefront-labs/storefront-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SessionStore = (*SessionStore)(nil)

// Key prefix for session records, one record per principal
const sessionPrefix = "session:"

// defaultOpTimeout bounds every Redis round trip so a slow store cannot
// hold an auth request open indefinitely.
const defaultOpTimeout = 3 * time.Second

// SessionStore implements driven.SessionStore using Redis.
// Each principal holds at most one record; writes overwrite any previous
// session and Redis TTL handles expiry.
type SessionStore struct {
	client    *redis.Client
	opTimeout time.Duration
}

// NewSessionStore creates a new Redis-backed SessionStore
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client, opTimeout: defaultOpTimeout}
}

// NewSessionStoreWithTimeout creates a SessionStore with a custom per-operation timeout
func NewSessionStoreWithTimeout(client *redis.Client, opTimeout time.Duration) *SessionStore {
	if opTimeout <= 0 {
		opTimeout = defaultOpTimeout
	}
	return &SessionStore{client: client, opTimeout: opTimeout}
}

// Put stores the refresh token for a principal, replacing any existing
// record. The record expires with the token.
func (s *SessionStore) Put(ctx context.Context, userID, refreshToken string, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	if err := s.client.Set(ctx, sessionPrefix+userID, refreshToken, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Get retrieves the stored refresh token for a principal
func (s *SessionStore) Get(ctx context.Context, userID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	token, err := s.client.Get(ctx, sessionPrefix+userID).Result()
	if err == redis.Nil {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get session: %w", err)
	}
	return token, nil
}

// Delete removes the session record for a principal.
// Deleting an absent record is not an error.
func (s *SessionStore) Delete(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	if err := s.client.Del(ctx, sessionPrefix+userID).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
