package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/userauth/internal/common"
	"github.com/dmitrijs2005/userauth/internal/dbx"
)

func (f Field) column() string {
	switch f {
	case FieldHashedPassword:
		return "hashed_password"
	case FieldSessionID:
		return "session_id"
	case FieldResetToken:
		return "reset_token"
	}
	return ""
}

// PostgresRepository implements Repository over dbx.DBTX, so the same code
// serves both a plain connection and a transaction handle.
type PostgresRepository struct {
	db   dbx.DBTX
	conn *sql.DB // nil when the repository is already transaction-bound
}

// NewPostgresRepository constructs a repository bound to the given connection.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db, conn: db}
}

// Create inserts a new user row. A unique-constraint violation on email is
// reported as common.ErrEmailTaken.
func (r *PostgresRepository) Create(ctx context.Context, email string, hashedPassword []byte) (*User, error) {
	query := `
		INSERT INTO users (email, hashed_password)
		VALUES ($1, $2)
		RETURNING id
	`
	u := &User{Email: email, HashedPassword: hashedPassword}
	if err := r.db.QueryRowContext(ctx, query, email, hashedPassword).Scan(&u.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, common.ErrEmailTaken
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	return u, nil
}

// FindByEmail returns the user registered under email, or common.ErrNotFound.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findBy(ctx, "email", email)
}

// FindBySessionID returns the user holding the given session token.
func (r *PostgresRepository) FindBySessionID(ctx context.Context, sessionID string) (*User, error) {
	return r.findBy(ctx, "session_id", sessionID)
}

// FindByResetToken returns the user holding the given reset token.
func (r *PostgresRepository) FindByResetToken(ctx context.Context, token string) (*User, error) {
	return r.findBy(ctx, "reset_token", token)
}

func (r *PostgresRepository) findBy(ctx context.Context, column string, value string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT id, email, hashed_password, session_id, reset_token
		FROM users
		WHERE %s = $1
	`, column)

	u := &User{}
	var sessionID, resetToken sql.NullString
	err := r.db.QueryRowContext(ctx, query, value).
		Scan(&u.ID, &u.Email, &u.HashedPassword, &sessionID, &resetToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	if sessionID.Valid {
		u.SessionID = &sessionID.String
	}
	if resetToken.Valid {
		u.ResetToken = &resetToken.String
	}
	return u, nil
}

// Update applies the given field changes to one user row in a single
// statement. Every change is validated before any SQL is assembled; an
// unknown user id is reported as common.ErrNotFound.
func (r *PostgresRepository) Update(ctx context.Context, id string, changes ...Change) error {
	if len(changes) == 0 {
		return common.ErrInvalidField
	}

	set := make([]string, 0, len(changes))
	args := make([]any, 0, len(changes)+1)
	for _, c := range changes {
		if err := c.Validate(); err != nil {
			return err
		}
		args = append(args, c.value)
		set = append(set, fmt.Sprintf("%s = $%d", c.field.column(), len(args)))
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d`, strings.Join(set, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// InTx runs fn with a transaction-bound view of the repository. Nested
// calls reuse the enclosing transaction.
func (r *PostgresRepository) InTx(ctx context.Context, fn func(Repository) error) error {
	if r.conn == nil {
		return fn(r)
	}
	return dbx.WithTx(ctx, r.conn, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(&PostgresRepository{db: tx})
	})
}
