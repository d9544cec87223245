// Package users defines the User record, the repository port the auth
// engine drives, and its PostgreSQL and in-memory implementations.
package users

// User is one registered identity.
//
// ID and Email are immutable after creation; there is no email-change or
// deletion path. Email is compared as an exact, case-sensitive string.
// SessionID and ResetToken are single-slot optional credentials: a nil
// pointer means the slot is empty (NULL in storage), and writing a new
// value invalidates whatever was there before.
type User struct {
	ID             string
	Email          string
	HashedPassword []byte
	SessionID      *string
	ResetToken     *string
}
