// Package auth implements credential verification and registration: it checks
// a presented credential against the credential store and, on success, mints
// a signed identity token carrying the user's name and role.
//
// Login and Register return sentinel errors (ErrInvalidCredentials,
// ErrUsernameTaken) as ordinary outcomes; callers match them with errors.Is.
// Store failures wrap ErrStoreUnavailable and are the only errors worth
// retrying.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/discoteque/identity/internal/logging"
	"github.com/discoteque/identity/password"
	"github.com/discoteque/identity/token"
	"github.com/discoteque/identity/users"
)

// LoginRequest carries a presented credential. It is never persisted.
type LoginRequest struct {
	Username string
	Password string
}

// RegisterRequest carries the data for a new identity. It is never persisted
// as-is; the password is hashed before it reaches the store.
type RegisterRequest struct {
	Username string
	Email    string
	Password string
}

// Response is returned on successful login or registration.
type Response struct {
	Token    string
	Username string
	Role     string
}

// Service orchestrates login and registration. It holds no mutable state of
// its own and is safe for concurrent use.
type Service struct {
	repo   users.Repository
	hasher password.Hasher
	signer *token.Signer
	log    logging.Logger
}

func NewService(repo users.Repository, hasher password.Hasher, signer *token.Signer, log logging.Logger) *Service {
	return &Service{repo: repo, hasher: hasher, signer: signer, log: log}
}

// Login verifies the presented credential and issues a token. Read-only.
//
// An unknown username still runs a hash verification against a dummy hash so
// both failure paths take comparable time.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*Response, error) {
	user, err := s.repo.GetByUsername(ctx, req.Username)

	targetHash := password.DummyHash
	if err != nil {
		if !errors.Is(err, users.ErrNotFound) {
			s.log.Error(ctx, "user lookup failed", "username", req.Username, "error", err)
			return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
	} else {
		targetHash = user.PasswordHash
	}

	ok, err := s.hasher.Verify(req.Password, targetHash)
	if err != nil {
		// A stored hash we cannot parse is logged but must not be
		// distinguishable from a plain mismatch.
		s.log.Error(ctx, "password verification failed", "username", req.Username, "error", err)
		return nil, ErrInvalidCredentials
	}
	if user == nil || !ok {
		return nil, ErrInvalidCredentials
	}

	return s.respond(ctx, user.Username, user.Role)
}

// Register creates a new identity with the default role and issues a token
// for it. The pre-check and the insert are separate store operations; a
// concurrent registration that slips between them is caught by the store's
// uniqueness constraint and reported as ErrUsernameTaken all the same.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Response, error) {
	if req.Username == "" || req.Password == "" {
		return nil, ErrInvalidRequest
	}

	_, err := s.repo.GetByUsername(ctx, req.Username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, users.ErrNotFound) {
		s.log.Error(ctx, "user lookup failed", "username", req.Username, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &users.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         users.DefaultRole,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, users.ErrDuplicateUsername) {
			return nil, ErrUsernameTaken
		}
		s.log.Error(ctx, "user insert failed", "username", req.Username, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	s.log.Info(ctx, "user registered", "username", user.Username, "role", user.Role)

	return s.respond(ctx, user.Username, user.Role)
}

// GenerateToken issues a token for the given identity without touching the
// store. It is a pure function of its inputs and the signing configuration.
func (s *Service) GenerateToken(username, role string) (string, error) {
	return s.signer.Sign(username, role)
}

func (s *Service) respond(ctx context.Context, username, role string) (*Response, error) {
	tok, err := s.signer.Sign(username, role)
	if err != nil {
		s.log.Error(ctx, "token signing failed", "username", username, "error", err)
		return nil, fmt.Errorf("error signing token: %w", err)
	}

	return &Response{Token: tok, Username: username, Role: role}, nil
}
