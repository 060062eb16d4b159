package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/storefront-labs/storefront-core/internal/core/domain"
	"github.com/storefront-labs/storefront-core/internal/core/ports/driven"
	"github.com/storefront-labs/storefront-core/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

// authService implements the AuthService interface
type authService struct {
	userStore    driven.UserStore
	sessionStore driven.SessionStore
	codec        driven.TokenCodec
	hasher       driven.PasswordHasher
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userStore driven.UserStore,
	sessionStore driven.SessionStore,
	codec driven.TokenCodec,
	hasher driven.PasswordHasher,
) driving.AuthService {
	return &authService{
		userStore:    userStore,
		sessionStore: sessionStore,
		codec:        codec,
		hasher:       hasher,
	}
}

// verify checks a submitted password against the stored credential and
// returns the matching user. No side effects.
func (s *authService) verify(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userStore.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("no such account: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("credential lookup: %w", err)
	}

	if err := s.hasher.Compare(ctx, password, user.PasswordHash); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials, mints both tokens, and records the refresh
// token as the principal's single live session. A second login for the
// same principal overwrites the record: last write wins.
func (s *authService) Login(ctx context.Context, req domain.LoginRequest) (*domain.TokenPair, error) {
	if req.Email == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.verify(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.codec.SignAccess(user)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshToken, err := s.codec.SignRefresh(user)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	// The session record must not outlive the token it mirrors.
	if err := s.sessionStore.Put(ctx, user.ID, refreshToken, s.codec.RefreshTTL()); err != nil {
		return nil, fmt.Errorf("record session: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token only.
// The refresh token and its session record are left unchanged.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*domain.RefreshResponse, error) {
	claims, err := s.ValidateRefresh(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userStore.FindByID(ctx, claims.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUnknownSubject
	}
	if err != nil {
		return nil, fmt.Errorf("subject lookup: %w", err)
	}

	accessToken, err := s.codec.SignAccess(user)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	return &domain.RefreshResponse{AccessToken: accessToken}, nil
}

// Logout deletes the principal's session record. The refresh token the
// client still holds remains cryptographically valid until its own expiry
// but can no longer pass the session match check.
func (s *authService) Logout(ctx context.Context, userID string) error {
	if err := s.sessionStore.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// ValidateAccess verifies signature, expiry, and token type of an access
// token. All signing-library failures arrive here already normalized.
func (s *authService) ValidateAccess(ctx context.Context, token string) (*domain.AccessClaims, error) {
	if token == "" {
		return nil, domain.ErrMissingToken
	}

	claims, err := s.codec.ParseAccess(token)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != domain.TokenTypeAccess {
		return nil, domain.ErrWrongTokenType
	}

	return claims, nil
}

// ValidateRefresh verifies signature, expiry, and token type of a refresh
// token, then requires the presented token string to exactly equal the
// live session record. A structurally valid token that no longer matches
// fails with ErrSessionMismatch so callers can tell supersession apart
// from corruption. A store failure is neither: it propagates as-is.
func (s *authService) ValidateRefresh(ctx context.Context, token string) (*domain.RefreshClaims, error) {
	if token == "" {
		return nil, domain.ErrMissingToken
	}

	claims, err := s.codec.ParseRefresh(token)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != domain.TokenTypeRefresh {
		return nil, domain.ErrWrongTokenType
	}

	stored, err := s.sessionStore.Get(ctx, claims.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		// Logged out, or the record expired with the token.
		return nil, domain.ErrSessionMismatch
	}
	if err != nil {
		return nil, fmt.Errorf("session lookup: %w", err)
	}

	if stored != token {
		// Superseded by a newer login on another device.
		return nil, domain.ErrSessionMismatch
	}

	return claims, nil
}
