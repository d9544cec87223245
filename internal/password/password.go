// Package password implements one-way salted password hashing on top of
// bcrypt. The salt is generated per call and embedded in the hash output.
package password

import "golang.org/x/crypto/bcrypt"

// Hash returns the salted bcrypt hash of password. It fails only on bcrypt
// input limits (passwords longer than 72 bytes).
func Hash(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// Verify reports whether password matches hash. The comparison is constant
// time; a mismatch is a normal false result, not an error.
func Verify(password string, hash []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
