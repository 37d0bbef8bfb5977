// Package database wraps the Postgres pool with typed queries.
package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mlazarev/foodgram/internal/sql"
)

// DB is the slice of pgxpool.Pool the queries need. Satisfied by
// *pgxpool.Pool and by pgx.Tx, which lets tests substitute either.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

type Database struct {
	db DB
}

func NewDatabase(pool *pgxpool.Pool) *Database {
	return &Database{db: pool}
}

// New wraps any DB, typically a transaction.
func New(db DB) *Database {
	return &Database{db: db}
}

// EnsureSchema applies the embedded schema when the users table is not
// yet present.
func (d *Database) EnsureSchema(ctx context.Context) error {
	var exists bool
	err := d.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'users')`,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking for existing schema: %w", err)
	}

	if exists {
		return nil
	}

	if _, err := d.db.Exec(ctx, sql.Schema()); err != nil {
		return fmt.Errorf("applying database schema: %w", err)
	}

	return nil
}
