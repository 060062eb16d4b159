package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/storefront-labs/storefront-core/internal/core/domain"
	"github.com/storefront-labs/storefront-core/internal/core/ports/driven"
)

// Ensure MockSessionStore implements SessionStore
var _ driven.SessionStore = (*MockSessionStore)(nil)

type mockSessionRecord struct {
	token     string
	expiresAt time.Time
}

// MockSessionStore is an in-memory SessionStore for testing.
// Set FailWith to simulate an unreachable store: every call then returns
// that error, which callers must treat as an infrastructure failure.
type MockSessionStore struct {
	mu       sync.RWMutex
	records  map[string]mockSessionRecord
	FailWith error
}

// NewMockSessionStore creates a new MockSessionStore
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{
		records: make(map[string]mockSessionRecord),
	}
}

func (m *MockSessionStore) Put(ctx context.Context, userID, refreshToken string, ttl time.Duration) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[userID] = mockSessionRecord{
		token:     refreshToken,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (m *MockSessionStore) Get(ctx context.Context, userID string) (string, error) {
	if m.FailWith != nil {
		return "", m.FailWith
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[userID]
	if !ok || time.Now().After(rec.expiresAt) {
		return "", domain.ErrNotFound
	}
	return rec.token, nil
}

func (m *MockSessionStore) Delete(ctx context.Context, userID string) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, userID)
	return nil
}
