package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrSelfSubscription reports an attempt to subscribe to oneself. The
// schema CHECK constraint is the authoritative guard; handlers pre-check
// only to give the caller a clear message.
var ErrSelfSubscription = errors.New("cannot subscribe to yourself")

const checkViolationCode = "23514"

// Subscribe inserts the (subscriber, author) pair. A present pair maps
// to ErrAlreadyExists, subscriber == author to ErrSelfSubscription.
func (d *Database) Subscribe(ctx context.Context, userID, authorID int64) error {
	tag, err := d.db.Exec(ctx,
		`INSERT INTO subscriptions (user_id, author_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		userID, authorID)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == checkViolationCode {
		return ErrSelfSubscription
	}
	if err != nil {
		return fmt.Errorf("inserting subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (d *Database) Unsubscribe(ctx context.Context, userID, authorID int64) error {
	tag, err := d.db.Exec(ctx,
		`DELETE FROM subscriptions WHERE user_id = $1 AND author_id = $2`,
		userID, authorID)
	if err != nil {
		return fmt.Errorf("deleting subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *Database) IsSubscribed(ctx context.Context, userID, authorID int64) (bool, error) {
	var exists bool
	err := d.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM subscriptions WHERE user_id = $1 AND author_id = $2)`,
		userID, authorID).Scan(&exists)
	return exists, err
}

// SubscribedSet reports which of authorIDs the user subscribes to.
func (d *Database) SubscribedSet(ctx context.Context, userID int64, authorIDs []int64) (map[int64]bool, error) {
	rows, err := d.db.Query(ctx,
		`SELECT author_id FROM subscriptions WHERE user_id = $1 AND author_id = ANY($2)`,
		userID, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("listing subscriptions: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]bool)
	for rows.Next() {
		var authorID int64
		if err := rows.Scan(&authorID); err != nil {
			return nil, fmt.Errorf("scanning subscription: %w", err)
		}
		out[authorID] = true
	}
	return out, rows.Err()
}

// ListSubscribedAuthors returns the users the subscriber follows,
// ordered by id, paginated.
func (d *Database) ListSubscribedAuthors(ctx context.Context, userID int64, limit, offset int) ([]User, error) {
	rows, err := d.db.Query(ctx,
		`SELECT u.id, u.email, u.username, u.first_name, u.last_name,
		        u.password_hash, u.role, u.created_at
		 FROM users u
		 JOIN subscriptions s ON s.author_id = u.id
		 WHERE s.user_id = $1
		 ORDER BY u.id
		 LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing subscribed authors: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName,
			&u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning subscribed author: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (d *Database) CountSubscriptions(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := d.db.QueryRow(ctx,
		`SELECT count(*) FROM subscriptions WHERE user_id = $1`, userID).Scan(&count)
	return count, err
}
