// Package auth implements the authentication engine: registration, login,
// session issuance and validation, and single-use password-reset tokens,
// on top of the users repository.
package auth

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/userauth/internal/common"
	"github.com/dmitrijs2005/userauth/internal/logging"
	"github.com/dmitrijs2005/userauth/internal/password"
	"github.com/dmitrijs2005/userauth/internal/server/users"
	"github.com/dmitrijs2005/userauth/internal/token"
)

// Service is the authentication engine. It is stateless request-scoped
// logic: all durable state lives in the repository, and concurrent calls
// for different users need no coordination.
type Service struct {
	repo   users.Repository
	logger logging.Logger

	// Test seams, defaulted to the real implementations.
	hash     func(string) ([]byte, error)
	verify   func(string, []byte) bool
	newToken func() string
}

// NewService wires the engine to a repository and logger.
func NewService(repo users.Repository, logger logging.Logger) *Service {
	return &Service{
		repo:     repo,
		logger:   logger.With("module", "auth"),
		hash:     password.Hash,
		verify:   password.Verify,
		newToken: token.New,
	}
}

// RegisterUser creates a new identity. A registered email is reported as
// common.ErrEmailTaken; the password is not hashed on that path. Store
// failures surface as *common.StoreError.
func (s *Service) RegisterUser(ctx context.Context, email, pw string) (*users.User, error) {
	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrEmailTaken
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, &common.StoreError{Op: "register user", Err: err}
	}

	hashed, err := s.hash(pw)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.Create(ctx, email, hashed)
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			// Lost the race with a concurrent registration.
			return nil, common.ErrEmailTaken
		}
		return nil, &common.StoreError{Op: "register user", Err: err}
	}

	s.logger.Info(ctx, "user registered", "email", email)
	return u, nil
}

// ValidLogin reports whether email and pw name a registered identity. It is
// total: an unknown email, a hash mismatch or a store failure all come back
// as false, so callers can use the result directly for authorization
// decisions without leaking account existence.
func (s *Service) ValidLogin(ctx context.Context, email, pw string) bool {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			s.logger.Warn(ctx, "login lookup failed", "error", err.Error())
		}
		return false
	}
	return s.verify(pw, u.HashedPassword)
}

// CreateSession mints a session token for email and stores it on the user
// record, overwriting and thereby invalidating any prior session. An
// unknown email returns the empty string with a nil error; callers must
// treat an empty token as failure.
func (s *Service) CreateSession(ctx context.Context, email string) (string, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", nil
		}
		return "", &common.StoreError{Op: "create session", Err: err}
	}

	sessionID := s.newToken()
	if err := s.repo.Update(ctx, u.ID, users.SetSessionID(sessionID)); err != nil {
		return "", &common.StoreError{Op: "create session", Err: err}
	}
	return sessionID, nil
}

// GetUserBySession resolves a session token to its user. It is total: an
// empty or unknown token, or a store failure, yields nil.
func (s *Service) GetUserBySession(ctx context.Context, sessionID string) *users.User {
	if sessionID == "" {
		return nil
	}
	u, err := s.repo.FindBySessionID(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			s.logger.Warn(ctx, "session lookup failed", "error", err.Error())
		}
		return nil
	}
	return u
}

// DestroySession clears the session slot of the given user. The caller has
// already resolved the user, so an unknown id is surfaced as
// common.ErrUserNotFound rather than swallowed.
func (s *Service) DestroySession(ctx context.Context, userID string) error {
	err := s.repo.Update(ctx, userID, users.ClearSessionID())
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrUserNotFound
		}
		return &common.StoreError{Op: "destroy session", Err: err}
	}
	return nil
}

// GetResetToken mints a password-reset token for email. A fresh token is
// minted on every call, invalidating any outstanding one. An unknown email
// is reported as common.ErrUserNotFound.
func (s *Service) GetResetToken(ctx context.Context, email string) (string, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrUserNotFound
		}
		return "", &common.StoreError{Op: "get reset token", Err: err}
	}

	resetToken := s.newToken()
	if err := s.repo.Update(ctx, u.ID, users.SetResetToken(resetToken)); err != nil {
		return "", &common.StoreError{Op: "get reset token", Err: err}
	}
	return resetToken, nil
}

// UpdatePassword redeems a reset token: the token, not the identity,
// authorizes the mutation. The new hash is written and the token cleared in
// one transaction, so the token cannot be replayed and readers never see a
// torn record. A missing or already-used token is reported as
// common.ErrInvalidResetToken.
func (s *Service) UpdatePassword(ctx context.Context, resetToken, newPassword string) error {
	if resetToken == "" {
		return common.ErrInvalidResetToken
	}

	err := s.repo.InTx(ctx, func(r users.Repository) error {
		u, err := r.FindByResetToken(ctx, resetToken)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrInvalidResetToken
			}
			return &common.StoreError{Op: "update password", Err: err}
		}

		hashed, err := s.hash(newPassword)
		if err != nil {
			return err
		}

		if err := r.Update(ctx, u.ID, users.SetHashedPassword(hashed), users.ClearResetToken()); err != nil {
			return &common.StoreError{Op: "update password", Err: err}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "password updated", "reset_token", resetToken)
	return nil
}
