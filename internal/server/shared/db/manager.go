// Package db selects and wires the persistence backend behind the users
// repository.
package db

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/userauth/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Close() error
}
