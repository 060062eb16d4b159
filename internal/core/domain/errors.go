package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates the resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials indicates wrong email/password combination
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrMissingToken indicates no bearer token was presented
	ErrMissingToken = errors.New("missing token")

	// ErrMalformedToken indicates the token is not a parseable compact JWT
	ErrMalformedToken = errors.New("malformed token")

	// ErrTokenExpired indicates the token is past its expiry
	ErrTokenExpired = errors.New("token expired")

	// ErrInvalidSignature indicates the token signature did not verify
	// under the configured secret and algorithm
	ErrInvalidSignature = errors.New("invalid token signature")

	// ErrWrongTokenType indicates an access token was presented where a
	// refresh token was expected, or vice versa
	ErrWrongTokenType = errors.New("wrong token type")

	// ErrSessionMismatch indicates a well-formed, unexpired refresh token
	// that is no longer the live one for its principal (superseded by a
	// newer login, or revoked by logout)
	ErrSessionMismatch = errors.New("session mismatch")

	// ErrUnknownSubject indicates token claims reference a principal that
	// no longer exists
	ErrUnknownSubject = errors.New("unknown subject")
)

// tokenErrors is the closed set of validation failures a token can produce.
// Session store connectivity failures are deliberately not in this set:
// they must surface as server errors, never as rejections.
var tokenErrors = []error{
	ErrMissingToken,
	ErrMalformedToken,
	ErrTokenExpired,
	ErrInvalidSignature,
	ErrWrongTokenType,
	ErrSessionMismatch,
	ErrUnknownSubject,
}

// IsTokenError reports whether err is one of the normalized token
// validation failures. Callers use this to separate "reject the request"
// from "the session store is unreachable".
func IsTokenError(err error) bool {
	for _, te := range tokenErrors {
		if errors.Is(err, te) {
			return true
		}
	}
	return false
}
