// Package users defines the credential store contract: the user record, the
// repository interface the authentication service depends on, and two
// implementations (PostgreSQL and in-memory).
package users

import (
	"context"
	"errors"
	"time"
)

// DefaultRole is assigned to every newly registered user. There is no
// elevated-role provisioning path; role changes are an operator concern.
const DefaultRole = "User"

var (
	// ErrNotFound is returned when no user exists with the given username.
	ErrNotFound = errors.New("user not found")

	// ErrDuplicateUsername is returned when an insert would violate the
	// store's username uniqueness constraint.
	ErrDuplicateUsername = errors.New("username already exists")
)

// User is the persisted identity record. PasswordHash holds an encoded
// one-way hash, never the raw credential.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// Repository is the credential store capability consumed by the
// authentication service. Implementations must be safe for concurrent use
// and must enforce username uniqueness themselves: concurrent Creates with
// the same username may both pass any caller-side pre-check, and the losing
// insert must fail with ErrDuplicateUsername.
type Repository interface {
	// Create inserts a new user and returns the stored record.
	Create(ctx context.Context, user *User) (*User, error)

	// GetByUsername returns the user with the exact username, or ErrNotFound.
	GetByUsername(ctx context.Context, username string) (*User, error)
}
