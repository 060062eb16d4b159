package driving

import (
	"context"

	"github.com/storefront-labs/storefront-core/internal/core/domain"
)

// UserService handles account registration and profile lookup
type UserService interface {
	// Register creates a new account. Email and cell phone must be unique.
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.Profile, error)

	// Get retrieves a user's profile by ID
	Get(ctx context.Context, id string) (*domain.Profile, error)
}
