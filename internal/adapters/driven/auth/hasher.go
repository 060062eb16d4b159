package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/storefront-labs/storefront-core/internal/core/domain"
	"github.com/storefront-labs/storefront-core/internal/core/ports/driven"
)

// Ensure Hasher implements PasswordHasher
var _ driven.PasswordHasher = (*Hasher)(nil)

// DefaultMaxConcurrent bounds how many bcrypt operations run at once so
// credential hashing cannot starve unrelated request handling.
const DefaultMaxConcurrent = 4

// Hasher performs bcrypt password hashing behind a concurrency limit.
// Callers waiting for a slot are aborted when their context is cancelled.
type Hasher struct {
	cost  int
	slots chan struct{}
}

// NewHasher creates a Hasher with the given bcrypt cost
func NewHasher(cost int) *Hasher {
	return NewHasherWithLimit(cost, DefaultMaxConcurrent)
}

// NewHasherWithLimit creates a Hasher with a custom concurrency limit
func NewHasherWithLimit(cost, maxConcurrent int) *Hasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	return &Hasher{
		cost:  cost,
		slots: make(chan struct{}, maxConcurrent),
	}
}

// Hash derives a salted bcrypt hash from a plaintext password
func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	if err := h.acquire(ctx); err != nil {
		return "", err
	}
	defer h.release()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(hash), nil
}

// Compare checks a plaintext password against a stored bcrypt hash.
// Any mismatch, including an unparseable stored hash, reports
// ErrInvalidCredentials.
func (h *Hasher) Compare(ctx context.Context, password, hash string) error {
	if err := h.acquire(ctx); err != nil {
		return err
	}
	defer h.release()

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return domain.ErrInvalidCredentials
	}
	return nil
}

func (h *Hasher) acquire(ctx context.Context) error {
	select {
	case h.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hasher) release() {
	<-h.slots
}
