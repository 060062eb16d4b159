package driven

import "context"

// PasswordHasher performs the deliberately slow, salted credential
// comparison. Implementations bound their own concurrency so hashing never
// starves unrelated request handling; the context aborts a caller that is
// still waiting for a slot.
type PasswordHasher interface {
	// Hash derives a salted hash from a plaintext password.
	Hash(ctx context.Context, password string) (string, error)

	// Compare checks a plaintext password against a stored hash. It returns
	// domain.ErrInvalidCredentials on mismatch and a context error if
	// cancelled while waiting.
	Compare(ctx context.Context, password, hash string) error
}
