package mocks

import (
	"context"

	"github.com/storefront-labs/storefront-core/internal/core/domain"
	"github.com/storefront-labs/storefront-core/internal/core/ports/driven"
)

// Ensure MockHasher implements PasswordHasher
var _ driven.PasswordHasher = (*MockHasher)(nil)

// MockHasher is a PasswordHasher that uses plain text comparison.
// NOT secure - only for testing.
type MockHasher struct{}

// NewMockHasher creates a new MockHasher
func NewMockHasher() *MockHasher {
	return &MockHasher{}
}

func (m *MockHasher) Hash(ctx context.Context, password string) (string, error) {
	return password, nil
}

func (m *MockHasher) Compare(ctx context.Context, password, hash string) error {
	if password != hash {
		return domain.ErrInvalidCredentials
	}
	return nil
}
