package mocks

import (
	"context"
	"sync"

	"github.com/storefront-labs/storefront-core/internal/core/domain"
	"github.com/storefront-labs/storefront-core/internal/core/ports/driven"
)

// Ensure MockUserStore implements UserStore
var _ driven.UserStore = (*MockUserStore)(nil)

// MockUserStore is an in-memory UserStore for testing
type MockUserStore struct {
	mu      sync.RWMutex
	users   map[string]*domain.User
	byEmail map[string]*domain.User
	byPhone map[string]*domain.User
}

// NewMockUserStore creates a new MockUserStore
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		users:   make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
		byPhone: make(map[string]*domain.User),
	}
}

func (m *MockUserStore) Save(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	m.byEmail[user.Email] = user
	if user.CellPhone != "" {
		m.byPhone[user.CellPhone] = user
	}
	return nil
}

func (m *MockUserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (m *MockUserStore) FindByCellPhone(ctx context.Context, cellPhone string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.byPhone[cellPhone]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (m *MockUserStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(m.users, id)
	delete(m.byEmail, user.Email)
	delete(m.byPhone, user.CellPhone)
	return nil
}
