package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/storefront-labs/storefront-core/internal/core/domain"
)

// setupTestSessionStore creates a test Redis client and SessionStore
func setupTestSessionStore(t *testing.T) (*SessionStore, *miniredis.Miniredis, func()) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := NewSessionStore(client)

	return store, mr, func() {
		client.Close()
		mr.Close()
	}
}

func TestSessionStore_PutAndGet(t *testing.T) {
	store, mr, cleanup := setupTestSessionStore(t)
	defer cleanup()

	ctx := context.Background()

	err := store.Put(ctx, "1", "refresh-xyz", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error saving session: %v", err)
	}

	// The record lives under the principal's key
	if !mr.Exists("session:1") {
		t.Error("expected key session:1 to exist")
	}

	token, err := store.Get(ctx, "1")
	if err != nil {
		t.Fatalf("failed to retrieve saved session: %v", err)
	}
	if token != "refresh-xyz" {
		t.Errorf("expected token refresh-xyz, got %s", token)
	}
}

func TestSessionStore_Get_NotFound(t *testing.T) {
	store, _, cleanup := setupTestSessionStore(t)
	defer cleanup()

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionStore_Put_Overwrites(t *testing.T) {
	store, _, cleanup := setupTestSessionStore(t)
	defer cleanup()

	ctx := context.Background()

	if err := store.Put(ctx, "1", "first-token", time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Put(ctx, "1", "second-token", time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := store.Get(ctx, "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "second-token" {
		t.Errorf("expected the later write to win, got %s", token)
	}
}

func TestSessionStore_Delete(t *testing.T) {
	store, _, cleanup := setupTestSessionStore(t)
	defer cleanup()

	ctx := context.Background()

	if err := store.Put(ctx, "1", "refresh-xyz", time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Delete(ctx, "1"); err != nil {
		t.Fatalf("unexpected error deleting session: %v", err)
	}

	_, err := store.Get(ctx, "1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting an absent record is a no-op
	if err := store.Delete(ctx, "1"); err != nil {
		t.Errorf("expected deleting absent record to succeed, got %v", err)
	}
}

func TestSessionStore_TTLExpiry(t *testing.T) {
	store, mr, cleanup := setupTestSessionStore(t)
	defer cleanup()

	ctx := context.Background()

	if err := store.Put(ctx, "1", "refresh-xyz", time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after TTL expiry, got %v", err)
	}
}

func TestSessionStore_ConnectionFailure(t *testing.T) {
	store, mr, cleanup := setupTestSessionStore(t)
	defer cleanup()

	mr.Close()

	_, err := store.Get(context.Background(), "1")
	if err == nil {
		t.Fatal("expected error when Redis is unreachable")
	}
	if errors.Is(err, domain.ErrNotFound) {
		t.Error("connection failure must not be reported as ErrNotFound")
	}
}
