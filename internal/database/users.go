package database

import (
	"context"
	"fmt"
)

const userColumns = `id, email, username, first_name, last_name, password_hash, role, created_at`

type CreateUserParams struct {
	Email        string
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         Role
}

// CreateUser inserts a user and returns its id. A colliding email or
// username maps to ErrEmailTaken / ErrUsernameTaken.
func (d *Database) CreateUser(ctx context.Context, params CreateUserParams) (int64, error) {
	if params.Role == "" {
		params.Role = RoleUser
	}

	var id int64
	err := d.db.QueryRow(ctx,
		`INSERT INTO users (email, username, first_name, last_name, password_hash, role)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		params.Email, params.Username, params.FirstName, params.LastName,
		params.PasswordHash, params.Role,
	).Scan(&id)
	if uniqueViolation(err, "users_email_key") {
		return 0, ErrEmailTaken
	}
	if uniqueViolation(err, "users_username_key") {
		return 0, ErrUsernameTaken
	}
	if err != nil {
		return 0, fmt.Errorf("inserting user: %w", err)
	}
	return id, nil
}

func (d *Database) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return d.scanUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (d *Database) GetUserByID(ctx context.Context, id int64) (User, error) {
	return d.scanUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (d *Database) scanUser(ctx context.Context, query string, arg any) (User, error) {
	var u User
	err := d.db.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName,
		&u.PasswordHash, &u.Role, &u.CreatedAt)
	return u, err
}

func (d *Database) ListUsers(ctx context.Context, limit, offset int) ([]User, error) {
	rows, err := d.db.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName,
			&u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UsersByIDs fetches a batch of users keyed by id. Missing ids are
// simply absent from the result.
func (d *Database) UsersByIDs(ctx context.Context, ids []int64) (map[int64]User, error) {
	rows, err := d.db.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("listing users by id: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]User, len(ids))
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName,
			&u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		out[u.ID] = u
	}
	return out, rows.Err()
}

func (d *Database) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := d.db.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&count)
	return count, err
}

func (d *Database) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	_, err := d.db.Exec(ctx,
		`UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	return err
}

func (d *Database) GetAdminCount(ctx context.Context) (int64, error) {
	var count int64
	err := d.db.QueryRow(ctx,
		`SELECT count(*) FROM users WHERE role = 'admin'`).Scan(&count)
	return count, err
}
