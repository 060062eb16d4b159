package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/storefront-labs/storefront-core/internal/core/domain"
)

func TestHasher_HashAndCompare(t *testing.T) {
	h := NewHasherWithLimit(4, 2)
	ctx := context.Background()

	hash, err := h.Hash(ctx, "1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "1234" {
		t.Error("hash must not equal the plaintext password")
	}

	if err := h.Compare(ctx, "1234", hash); err != nil {
		t.Errorf("expected matching password to compare clean, got %v", err)
	}

	if err := h.Compare(ctx, "wrong", hash); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestHasher_InvalidStoredHash(t *testing.T) {
	h := NewHasher(0)

	err := h.Compare(context.Background(), "1234", "not-a-bcrypt-hash")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for garbage hash, got %v", err)
	}
}

func TestHasher_CancelledWhileWaiting(t *testing.T) {
	h := NewHasherWithLimit(4, 1)

	// Occupy the only slot so the next caller has to wait.
	h.slots <- struct{}{}
	defer func() { <-h.slots }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := h.Hash(ctx, "1234"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if err := h.Compare(ctx, "1234", "hash"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
