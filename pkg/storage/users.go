package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CreateUser inserts a new parent account. Returns ErrEmailExists if
// the email is already registered.
func (d *DB) CreateUser(ctx context.Context, email, passwordHash, name string) (User, error) {
	u := User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO users(id, email, password_hash, name, pin, created_at) VALUES(?,?,?,?,NULL,?)`,
		u.ID, u.Email, u.PasswordHash, u.Name, formatTime(u.CreatedAt))
	if err != nil {
		// UNIQUE constraint on email is the only insert conflict here.
		if isUniqueViolation(err) {
			return User{}, ErrEmailExists
		}
		return User{}, err
	}
	return u, nil
}

// GetUserByEmail looks up an account for login.
func (d *DB) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := d.sql.QueryRowContext(ctx,
		`SELECT id, email, password_hash, name, pin, created_at FROM users WHERE email = ?`, email)
	return scanUser(row)
}

// GetUserByID resolves the account behind a validated token.
func (d *DB) GetUserByID(ctx context.Context, id string) (User, error) {
	row := d.sql.QueryRowContext(ctx,
		`SELECT id, email, password_hash, name, pin, created_at FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// SetPIN updates the parental PIN for an account.
func (d *DB) SetPIN(ctx context.Context, userID, pin string) error {
	res, err := d.sql.ExecContext(ctx, `UPDATE users SET pin = ? WHERE id = ?`, nullIfEmpty(pin), userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (User, error) {
	var (
		u         User
		pin       sql.NullString
		createdAt string
	)
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &pin, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	u.PIN = pin.String
	u.CreatedAt = parseTime(createdAt)
	return u, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	// modernc.org/sqlite reports constraint failures in the error text.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
