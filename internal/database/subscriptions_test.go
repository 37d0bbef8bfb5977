package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestSubscribe(t *testing.T) {
	tests := []struct {
		name     string
		db       *fakeDB
		expected error
	}{
		{
			name:     "inserted",
			db:       &fakeDB{execTag: pgconn.NewCommandTag("INSERT 0 1")},
			expected: nil,
		},
		{
			name:     "already subscribed",
			db:       &fakeDB{execTag: pgconn.NewCommandTag("INSERT 0 0")},
			expected: ErrAlreadyExists,
		},
		{
			name:     "self subscription rejected by check constraint",
			db:       &fakeDB{execErr: &pgconn.PgError{Code: checkViolationCode}},
			expected: ErrSelfSubscription,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.db).Subscribe(context.Background(), 1, 2)
			if tt.expected == nil {
				if err != nil {
					t.Fatalf("Subscribe returned unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.expected) {
				t.Fatalf("Subscribe = %v, expected %v", err, tt.expected)
			}
		})
	}
}

func TestUnsubscribe(t *testing.T) {
	db := New(&fakeDB{execTag: pgconn.NewCommandTag("DELETE 0")})
	if err := db.Unsubscribe(context.Background(), 1, 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Unsubscribe = %v, expected %v", err, ErrNotFound)
	}

	db = New(&fakeDB{execTag: pgconn.NewCommandTag("DELETE 1")})
	if err := db.Unsubscribe(context.Background(), 1, 2); err != nil {
		t.Fatalf("Unsubscribe returned unexpected error: %v", err)
	}
}
