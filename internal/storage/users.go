package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	// ErrUserNotFound indicates no user row matches the lookup.
	ErrUserNotFound = errors.New("storage: user not found")
	// ErrUserExists indicates the telegram_id unique constraint rejected an insert.
	ErrUserExists = errors.New("storage: user already exists")
)

// pgUniqueViolation is the PostgreSQL error code for unique_violation.
const pgUniqueViolation = "23505"

// UserRecord mirrors one row of the users table. Rows are created on first
// contact and never mutated or deleted afterwards.
type UserRecord struct {
	ID         int64     `db:"id"`
	TelegramID int64     `db:"telegram_id"`
	FirstName  string    `db:"first_name"`
	Username   string    `db:"username"`
	CreatedAt  time.Time `db:"created_at"`
}

// NewUser carries the fields required to create a user.
type NewUser struct {
	TelegramID int64
	FirstName  string
	Username   string
}

func (u NewUser) validate() error {
	if u.TelegramID <= 0 {
		return fmt.Errorf("storage: telegram_id is required")
	}
	return nil
}

// Users provides access to the users table.
type Users struct {
	db *sqlx.DB
}

// NewUsers wraps the database handle.
func NewUsers(db *sqlx.DB) *Users {
	return &Users{db: db}
}

// FindByTelegramID resolves a user by its external chat identity.
func (r *Users) FindByTelegramID(ctx context.Context, telegramID int64) (UserRecord, error) {
	if r.db == nil {
		return UserRecord{}, fmt.Errorf("storage: nil database handle")
	}
	var user UserRecord
	err := r.db.GetContext(ctx, &user, `
SELECT id, telegram_id, first_name, username, created_at
FROM users
WHERE telegram_id = $1
`, telegramID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return UserRecord{}, ErrUserNotFound
		}
		return UserRecord{}, fmt.Errorf("find user by telegram_id: %w", err)
	}
	return user, nil
}

// Create inserts a new user. Required fields are checked here; uniqueness of
// telegram_id is enforced by the database constraint and surfaces as
// ErrUserExists, which covers concurrent registrations as well.
func (r *Users) Create(ctx context.Context, nu NewUser) (UserRecord, error) {
	if r.db == nil {
		return UserRecord{}, fmt.Errorf("storage: nil database handle")
	}
	if err := nu.validate(); err != nil {
		return UserRecord{}, err
	}

	var user UserRecord
	err := r.db.GetContext(ctx, &user, `
INSERT INTO users (telegram_id, first_name, username)
VALUES ($1, $2, $3)
RETURNING id, telegram_id, first_name, username, created_at
`, nu.TelegramID, nu.FirstName, nu.Username)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return UserRecord{}, ErrUserExists
		}
		return UserRecord{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}
