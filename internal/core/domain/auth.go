package domain

// Token type discriminators carried in the tokenType claim. An access token
// must never pass the refresh validator, and vice versa, even when the
// signature would otherwise verify.
const (
	TokenTypeAccess  = "access_token"
	TokenTypeRefresh = "refresh_token"
)

// AccessClaims is the payload of a short-lived access token.
// Immutable once signed.
type AccessClaims struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	TokenType string `json:"token_type"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// RefreshClaims is the payload of a long-lived refresh token. It carries no
// role or profile data so a stale refresh token cannot leak role changes.
type RefreshClaims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenPair is returned after successful authentication
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RefreshResponse is returned from the refresh flow. Only a new access
// token is minted; the refresh token and its session record are unchanged.
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}
