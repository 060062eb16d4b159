package postgres

import (
	"context"
	"database/sql"

	"github.com/storefront-labs/storefront-core/internal/core/domain"
	"github.com/storefront-labs/storefront-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.UserStore = (*UserStore)(nil)

// UserStore implements driven.UserStore using PostgreSQL
type UserStore struct {
	db *DB
}

// NewUserStore creates a new UserStore
func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = `id, email, password_hash, name, role, cell_phone, created_at, updated_at`

// Save creates or updates a user
func (s *UserStore) Save(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, role, cell_phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			password_hash = EXCLUDED.password_hash,
			name = EXCLUDED.name,
			role = EXCLUDED.role,
			cell_phone = EXCLUDED.cell_phone,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Name,
		string(user.Role),
		nullIfEmpty(user.CellPhone),
		user.CreatedAt,
		user.UpdatedAt,
	)
	return err
}

// FindByID retrieves a user by ID
func (s *UserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return s.scanOne(s.db.QueryRowContext(ctx, query, id))
}

// FindByEmail retrieves a user by email
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return s.scanOne(s.db.QueryRowContext(ctx, query, email))
}

// FindByCellPhone retrieves a user by cell phone number
func (s *UserStore) FindByCellPhone(ctx context.Context, cellPhone string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE cell_phone = $1`
	return s.scanOne(s.db.QueryRowContext(ctx, query, cellPhone))
}

// Delete deletes a user
func (s *UserStore) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM users WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (s *UserStore) scanOne(row *sql.Row) (*domain.User, error) {
	var user domain.User
	var cellPhone sql.NullString

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.Role,
		&cellPhone,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	user.CellPhone = cellPhone.String
	return &user, nil
}

// nullIfEmpty stores empty phone numbers as NULL so the UNIQUE
// constraint only applies to real values.
func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
