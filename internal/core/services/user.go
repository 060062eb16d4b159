package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/storefront-labs/storefront-core/internal/core/domain"
	"github.com/storefront-labs/storefront-core/internal/core/ports/driven"
	"github.com/storefront-labs/storefront-core/internal/core/ports/driving"
)

// Ensure userService implements UserService
var _ driving.UserService = (*userService)(nil)

// userService implements the UserService interface
type userService struct {
	userStore driven.UserStore
	hasher    driven.PasswordHasher
}

// NewUserService creates a new UserService
func NewUserService(userStore driven.UserStore, hasher driven.PasswordHasher) driving.UserService {
	return &userService{
		userStore: userStore,
		hasher:    hasher,
	}
}

// Register creates a new customer account. Email and cell phone must both
// be unique.
func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.Profile, error) {
	if err := validateRegisterRequest(req); err != nil {
		return nil, err
	}

	if _, err := s.userStore.FindByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email in use: %w", domain.ErrAlreadyExists)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("email lookup: %w", err)
	}

	if req.CellPhone != "" {
		if _, err := s.userStore.FindByCellPhone(ctx, req.CellPhone); err == nil {
			return nil, fmt.Errorf("cell phone in use: %w", domain.ErrAlreadyExists)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("cell phone lookup: %w", err)
		}
	}

	hash, err := s.hasher.Hash(ctx, req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         domain.RoleCustomer,
		CellPhone:    req.CellPhone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userStore.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	return user.ToProfile(), nil
}

// Get retrieves a user's profile by ID. The password hash never leaves
// the store boundary.
func (s *userService) Get(ctx context.Context, id string) (*domain.Profile, error) {
	user, err := s.userStore.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.ToProfile(), nil
}

func validateRegisterRequest(req domain.RegisterRequest) error {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return domain.ErrInvalidInput
	}
	if !strings.Contains(req.Email, "@") {
		return domain.ErrInvalidInput
	}
	if len(req.Password) < 4 {
		return domain.ErrInvalidInput
	}
	return nil
}
