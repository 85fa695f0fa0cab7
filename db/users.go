package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/padraicbc/umaplan/models"
)

// ErrUnknownUser is returned when no user has the requested name.
var ErrUnknownUser = errors.New("unknown user")

// Users reads and writes the users table.
type Users struct {
	db *bun.DB
}

// NewUsers returns a Users repository over db.
func NewUsers(db *bun.DB) *Users {
	return &Users{db: db}
}

// PasswordHash returns the stored bcrypt hash for username.
func (u *Users) PasswordHash(ctx context.Context, username string) (string, error) {
	user := &models.User{}
	err := u.db.NewSelect().Model(user).
		Where("username = ?", username).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrUnknownUser
		}
		return "", fmt.Errorf("lookup user %q: %w", username, err)
	}
	return user.Password, nil
}

// Upsert creates username or replaces its password hash.
func (u *Users) Upsert(ctx context.Context, username, hash string) error {
	user := &models.User{
		Username: username,
		Password: hash,
	}
	_, err := u.db.NewInsert().Model(user).
		On("CONFLICT (username) DO UPDATE SET password = EXCLUDED.password").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("save user %q: %w", username, err)
	}
	return nil
}
