package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeDB substitutes the pool for tests that only need Exec result
// mapping. The remaining DB methods are stubs.
type fakeDB struct {
	execTag  pgconn.CommandTag
	execErr  error
	lastSQL  string
	lastArgs []any
}

func (f *fakeDB) Begin(ctx context.Context) (pgx.Tx, error) {
	return nil, errors.New("begin not supported")
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.lastSQL = sql
	f.lastArgs = args
	return f.execTag, f.execErr
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("query not supported")
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (f *fakeDB) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	return nil
}

func TestAddMembership(t *testing.T) {
	tests := []struct {
		name     string
		tag      pgconn.CommandTag
		add      func(*Database, context.Context) error
		expected error
	}{
		{
			name:     "favorite inserted",
			tag:      pgconn.NewCommandTag("INSERT 0 1"),
			add:      func(d *Database, ctx context.Context) error { return d.AddFavorite(ctx, 1, 2) },
			expected: nil,
		},
		{
			name:     "favorite already present",
			tag:      pgconn.NewCommandTag("INSERT 0 0"),
			add:      func(d *Database, ctx context.Context) error { return d.AddFavorite(ctx, 1, 2) },
			expected: ErrAlreadyExists,
		},
		{
			name:     "cart inserted",
			tag:      pgconn.NewCommandTag("INSERT 0 1"),
			add:      func(d *Database, ctx context.Context) error { return d.AddToCart(ctx, 1, 2) },
			expected: nil,
		},
		{
			name:     "cart already present",
			tag:      pgconn.NewCommandTag("INSERT 0 0"),
			add:      func(d *Database, ctx context.Context) error { return d.AddToCart(ctx, 1, 2) },
			expected: ErrAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := New(&fakeDB{execTag: tt.tag})

			err := tt.add(db, context.Background())
			if tt.expected == nil {
				if err != nil {
					t.Fatalf("add returned unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.expected) {
				t.Fatalf("add = %v, expected %v", err, tt.expected)
			}
		})
	}
}

func TestRemoveMembership(t *testing.T) {
	tests := []struct {
		name     string
		tag      pgconn.CommandTag
		remove   func(*Database, context.Context) error
		expected error
	}{
		{
			name:     "favorite removed",
			tag:      pgconn.NewCommandTag("DELETE 1"),
			remove:   func(d *Database, ctx context.Context) error { return d.RemoveFavorite(ctx, 1, 2) },
			expected: nil,
		},
		{
			name:     "favorite absent",
			tag:      pgconn.NewCommandTag("DELETE 0"),
			remove:   func(d *Database, ctx context.Context) error { return d.RemoveFavorite(ctx, 1, 2) },
			expected: ErrNotFound,
		},
		{
			name:     "cart entry absent",
			tag:      pgconn.NewCommandTag("DELETE 0"),
			remove:   func(d *Database, ctx context.Context) error { return d.RemoveFromCart(ctx, 1, 2) },
			expected: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := New(&fakeDB{execTag: tt.tag})

			err := tt.remove(db, context.Background())
			if tt.expected == nil {
				if err != nil {
					t.Fatalf("remove returned unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.expected) {
				t.Fatalf("remove = %v, expected %v", err, tt.expected)
			}
		})
	}
}

func TestAddMembershipRepeatedRejection(t *testing.T) {
	// The second and every further attempt keeps failing the same way;
	// the store never reports a second insert for the same pair.
	db := New(&fakeDB{execTag: pgconn.NewCommandTag("INSERT 0 0")})

	for i := 0; i < 3; i++ {
		if err := db.AddFavorite(context.Background(), 1, 2); !errors.Is(err, ErrAlreadyExists) {
			t.Fatalf("attempt %d: AddFavorite = %v, expected %v", i+1, err, ErrAlreadyExists)
		}
	}
}
