package users

import (
	"context"

	"github.com/dmitrijs2005/userauth/internal/common"
)

// Field identifies a mutable column of the users table. The set is closed:
// ID and Email cannot be expressed here and so cannot reach storage.
type Field int

const (
	FieldHashedPassword Field = iota + 1
	FieldSessionID
	FieldResetToken
)

// Change sets one mutable field. Changes are built only through the Set*/
// Clear* constructors below; the zero value is rejected by Validate.
type Change struct {
	field Field
	value any
}

// SetHashedPassword replaces the stored password hash.
func SetHashedPassword(hash []byte) Change {
	return Change{field: FieldHashedPassword, value: hash}
}

// SetSessionID assigns a session token, overwriting any prior one.
func SetSessionID(sessionID string) Change {
	return Change{field: FieldSessionID, value: sessionID}
}

// ClearSessionID empties the session slot.
func ClearSessionID() Change {
	return Change{field: FieldSessionID, value: nil}
}

// SetResetToken assigns a reset token, overwriting any prior one.
func SetResetToken(token string) Change {
	return Change{field: FieldResetToken, value: token}
}

// ClearResetToken empties the reset-token slot.
func ClearResetToken() Change {
	return Change{field: FieldResetToken, value: nil}
}

// Validate reports common.ErrInvalidField for a Change that was not built
// through a constructor. It runs before any SQL is assembled.
func (c Change) Validate() error {
	switch c.field {
	case FieldHashedPassword, FieldSessionID, FieldResetToken:
		return nil
	default:
		return common.ErrInvalidField
	}
}

// Repository is the persistence port for User records.
//
// Lookup misses are reported as common.ErrNotFound; they are never a
// process failure. Create reports common.ErrEmailTaken when the email is
// already registered.
type Repository interface {
	Create(ctx context.Context, email string, hashedPassword []byte) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindBySessionID(ctx context.Context, sessionID string) (*User, error)
	FindByResetToken(ctx context.Context, token string) (*User, error)
	Update(ctx context.Context, id string, changes ...Change) error

	// InTx runs fn against a transactional view of the repository, so a
	// read-then-write sequence on one record is serialized against
	// concurrent writers. Updates made by fn become visible all at once.
	InTx(ctx context.Context, fn func(Repository) error) error
}
