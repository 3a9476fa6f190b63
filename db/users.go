package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fintrack/backend/models"
)

// CreateUser stores a user with an already hashed password together with an
// empty properties row.
func (s *Storage) CreateUser(ctx context.Context, userName, email, passwordHash string) (*models.User, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	user := &models.User{UserName: userName, Email: email, Password: passwordHash}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO users (user_name, email, password) VALUES ($1, $2, $3) RETURNING table_id, registered_at`,
		userName, email, passwordHash,
	).Scan(&user.ID, &user.RegisteredAt)
	if err != nil {
		if code, constraint := pqCode(err); code == uniqueViolation {
			if constraint == "users_user_name_key" {
				return nil, ErrUserNameTaken
			}
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO users_properties (user_name) VALUES ($1)`, userName); err != nil {
		return nil, fmt.Errorf("insert user properties: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, `SELECT table_id, user_name, email, password, registered_at FROM users WHERE email = $1`, email)
}

func (s *Storage) GetUserByUserName(ctx context.Context, userName string) (*models.User, error) {
	return s.getUser(ctx, `SELECT table_id, user_name, email, password, registered_at FROM users WHERE user_name = $1`, userName)
}

func (s *Storage) getUser(ctx context.Context, query string, arg string) (*models.User, error) {
	var u models.User
	err := s.DB.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.UserName, &u.Email, &u.Password, &u.RegisteredAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
