package users

import (
	"context"
	"sync"
	"time"
)

// InMemoryRepository is a map-backed Repository for tests and local runs.
// It mirrors the Postgres semantics, including duplicate detection on Create.
type InMemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*User // keyed by username
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{users: make(map[string]*User)}
}

func (r *InMemoryRepository) Create(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Username]; ok {
		return nil, ErrDuplicateUsername
	}

	stored := *user
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	r.users[stored.Username] = &stored

	out := stored
	return &out, nil
}

func (r *InMemoryRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return nil, ErrNotFound
	}

	out := *user
	return &out, nil
}
