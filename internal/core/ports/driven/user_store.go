package driven

import (
	"context"

	"github.com/storefront-labs/storefront-core/internal/core/domain"
)

// UserStore handles user persistence (PostgreSQL)
type UserStore interface {
	// Save creates or updates a user
	Save(ctx context.Context, user *domain.User) error

	// FindByID retrieves a user by ID
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// FindByEmail retrieves a user by email
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindByCellPhone retrieves a user by cell phone number
	FindByCellPhone(ctx context.Context, cellPhone string) (*domain.User, error)

	// Delete deletes a user
	Delete(ctx context.Context, id string) error
}
