// Package token mints the opaque identifiers used as session and reset
// tokens.
package token

import "github.com/google/uuid"

// New returns a new unguessable opaque token: a random 128-bit UUID in its
// canonical string form. Collisions are treated as cryptographically
// negligible.
func New() string {
	return uuid.NewString()
}
