package auth

import "errors"

var (
	// ErrInvalidCredentials is returned by Login for an unknown username or a
	// wrong password. The two cases are deliberately indistinguishable to the
	// caller: a distinct "no such user" answer would allow username
	// enumeration.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUsernameTaken is returned by Register when the username already
	// exists, whether caught by the pre-check or by the store's uniqueness
	// constraint.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidRequest is returned by Register for requests missing a
	// username or password.
	ErrInvalidRequest = errors.New("username and password are required")

	// ErrStoreUnavailable wraps credential store failures. Unlike the errors
	// above it signals a retryable infrastructure fault, never an
	// authentication outcome.
	ErrStoreUnavailable = errors.New("credential store unavailable")
)
