package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrEmailTaken      = errors.New("email already in use")
	ErrUserNameTaken   = errors.New("user name already in use")
	ErrUnknownCategory = errors.New("unknown category")
	ErrInvalidFilter   = errors.New("invalid filter")
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

type Storage struct {
	DB *sql.DB
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		table_id SERIAL PRIMARY KEY,
		user_name VARCHAR(100) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password VARCHAR(255) NOT NULL,
		registered_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT users_email_key UNIQUE (email),
		CONSTRAINT users_user_name_key UNIQUE (user_name)
	)`,
	`CREATE TABLE IF NOT EXISTS users_properties (
		user_name VARCHAR(100) PRIMARY KEY REFERENCES users (user_name) ON DELETE CASCADE,
		current_property NUMERIC(12, 2) NOT NULL DEFAULT 0,
		property_goal NUMERIC(12, 2) NOT NULL DEFAULT 0,
		goal_deadline TIMESTAMPTZ,
		goal_motivation VARCHAR(255) NOT NULL DEFAULT '',
		goal_note VARCHAR(255) NOT NULL DEFAULT '',
		monthly_goal NUMERIC(12, 2),
		monthly_goal_deadline TIMESTAMPTZ,
		cash_amount NUMERIC(12, 2) NOT NULL DEFAULT 0,
		investment_amount NUMERIC(12, 2) NOT NULL DEFAULT 0,
		other_assets NUMERIC(12, 2) NOT NULL DEFAULT 0,
		last_updated TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		category_id SERIAL PRIMARY KEY,
		category_name VARCHAR(100) NOT NULL,
		category_type VARCHAR(10) NOT NULL CHECK (category_type IN ('income', 'expense')),
		description TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		transaction_id SERIAL PRIMARY KEY,
		user_name VARCHAR(100) NOT NULL REFERENCES users (user_name) ON DELETE CASCADE,
		transaction_type VARCHAR(10) NOT NULL CHECK (transaction_type IN ('income', 'expense')),
		amount NUMERIC(10, 2) NOT NULL CHECK (amount > 0),
		category_id INTEGER NOT NULL REFERENCES categories (category_id),
		description TEXT,
		transaction_date TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS transactions_user_date_idx ON transactions (user_name, transaction_date DESC)`,
}

// NewStorage connects to PostgreSQL, creates any missing tables and seeds the
// default categories.
func NewStorage(ctx context.Context, connStr string) (*Storage, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}

	s := &Storage{DB: db}
	if err := s.seedCategories(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Storage) Close() {
	s.DB.Close()
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func pqCode(err error) (pq.ErrorCode, string) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code, pqErr.Constraint
	}
	return "", ""
}
