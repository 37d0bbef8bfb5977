package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrAlreadyExists reports a membership add for a pair that is
	// already present.
	ErrAlreadyExists = errors.New("row already exists")
	// ErrNotFound reports a membership remove for a pair that is not
	// present.
	ErrNotFound = errors.New("row not found")

	ErrEmailTaken    = errors.New("email already in use")
	ErrUsernameTaken = errors.New("username already in use")
)

const uniqueViolationCode = "23505"

// uniqueViolation reports whether err is a Postgres unique-constraint
// violation on the named constraint.
func uniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == uniqueViolationCode && pgErr.ConstraintName == constraint
}
