package users

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/userauth/internal/common"
)

// InMemoryRepository is a Repository backed by process memory. It serves the
// dev server when no database DSN is configured, and the engine and HTTP
// tests. A single mutex serializes all writes, which also gives InTx its
// per-record write serialization.
type InMemoryRepository struct {
	mu    sync.Mutex
	store memStore
}

// NewInMemoryRepository returns an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{store: memStore{users: make(map[string]*User)}}
}

func (r *InMemoryRepository) Create(ctx context.Context, email string, hashedPassword []byte) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.Create(ctx, email, hashedPassword)
}

func (r *InMemoryRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.FindByEmail(ctx, email)
}

func (r *InMemoryRepository) FindBySessionID(ctx context.Context, sessionID string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.FindBySessionID(ctx, sessionID)
}

func (r *InMemoryRepository) FindByResetToken(ctx context.Context, token string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.FindByResetToken(ctx, token)
}

func (r *InMemoryRepository) Update(ctx context.Context, id string, changes ...Change) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.Update(ctx, id, changes...)
}

// InTx holds the lock for the whole of fn, so the read-then-write sequence
// inside is atomic with respect to every other repository call.
func (r *InMemoryRepository) InTx(ctx context.Context, fn func(Repository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(&r.store)
}

// memStore implements Repository without locking; InMemoryRepository wraps
// it with the mutex.
type memStore struct {
	users map[string]*User
}

func (s *memStore) Create(_ context.Context, email string, hashedPassword []byte) (*User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return nil, common.ErrEmailTaken
		}
	}
	u := &User{
		ID:             uuid.NewString(),
		Email:          email,
		HashedPassword: append([]byte(nil), hashedPassword...),
	}
	s.users[u.ID] = u
	return cloneUser(u), nil
}

func (s *memStore) FindByEmail(_ context.Context, email string) (*User, error) {
	return s.findBy(func(u *User) bool { return u.Email == email })
}

func (s *memStore) FindBySessionID(_ context.Context, sessionID string) (*User, error) {
	return s.findBy(func(u *User) bool { return u.SessionID != nil && *u.SessionID == sessionID })
}

func (s *memStore) FindByResetToken(_ context.Context, token string) (*User, error) {
	return s.findBy(func(u *User) bool { return u.ResetToken != nil && *u.ResetToken == token })
}

func (s *memStore) findBy(match func(*User) bool) (*User, error) {
	for _, u := range s.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, common.ErrNotFound
}

func (s *memStore) Update(_ context.Context, id string, changes ...Change) error {
	if len(changes) == 0 {
		return common.ErrInvalidField
	}
	for _, c := range changes {
		if err := c.Validate(); err != nil {
			return err
		}
	}

	u, ok := s.users[id]
	if !ok {
		return common.ErrNotFound
	}
	for _, c := range changes {
		switch c.field {
		case FieldHashedPassword:
			u.HashedPassword = append([]byte(nil), c.value.([]byte)...)
		case FieldSessionID:
			u.SessionID = optString(c.value)
		case FieldResetToken:
			u.ResetToken = optString(c.value)
		}
	}
	return nil
}

func (s *memStore) InTx(_ context.Context, fn func(Repository) error) error {
	return fn(s)
}

func cloneUser(u *User) *User {
	c := *u
	c.HashedPassword = append([]byte(nil), u.HashedPassword...)
	if u.SessionID != nil {
		v := *u.SessionID
		c.SessionID = &v
	}
	if u.ResetToken != nil {
		v := *u.ResetToken
		c.ResetToken = &v
	}
	return &c
}

func optString(v any) *string {
	if v == nil {
		return nil
	}
	s := v.(string)
	return &s
}
