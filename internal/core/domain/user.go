package domain

import "time"

// Role defines user permission level
type Role string

const (
	RoleAdmin    Role = "admin"    // Manage users, catalog
	RoleCustomer Role = "customer" // Shop, manage own cart
)

// User represents a registered account. The password hash is owned by the
// persistence layer; the auth core only ever reads it.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	CellPhone    string    `json:"cell_phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile provides a safe view of user data (no password hash)
type Profile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	CellPhone string `json:"cell_phone,omitempty"`
}

// ToProfile converts a User to a Profile, stripping the credential
func (u *User) ToProfile() *Profile {
	return &Profile{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CellPhone: u.CellPhone,
	}
}

// IsAdmin checks if the user has admin privileges
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// RegisterRequest represents a new account registration
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	CellPhone string `json:"cell_phone"`
}
