package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fintrack/backend/models"
)

const transactionColumns = `transaction_id, user_name, transaction_type, amount, category_id, description, transaction_date, created_at, updated_at`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row scanner) (*models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(&t.ID, &t.UserName, &t.Type, &t.Amount, &t.CategoryID, &t.Description, &t.TransactionDate, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func categoryError(err error) error {
	if code, _ := pqCode(err); code == foreignKeyViolation {
		return ErrUnknownCategory
	}
	return err
}

func (s *Storage) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO transactions (user_name, transaction_type, amount, category_id, description, transaction_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING transaction_id, created_at, updated_at`,
		t.UserName, t.Type, t.Amount, t.CategoryID, t.Description, t.TransactionDate,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", categoryError(err))
	}
	return nil
}

// filterClause builds the WHERE clause shared by listing and totals queries.
func filterClause(userName string, f models.TransactionFilter) (string, []interface{}, error) {
	where := []string{"t.user_name = $1"}
	args := []interface{}{userName}

	if f.Type != "" {
		if !models.ValidType(f.Type) {
			return "", nil, fmt.Errorf("%w: type must be 'income' or 'expense'", ErrInvalidFilter)
		}
		args = append(args, f.Type)
		where = append(where, fmt.Sprintf("t.transaction_type = $%d", len(args)))
	}
	if f.CategoryID != 0 {
		args = append(args, f.CategoryID)
		where = append(where, fmt.Sprintf("t.category_id = $%d", len(args)))
	}
	if f.From != nil {
		args = append(args, *f.From)
		where = append(where, fmt.Sprintf("t.transaction_date >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		where = append(where, fmt.Sprintf("t.transaction_date < $%d", len(args)))
	}
	if f.From != nil && f.To != nil && !f.From.Before(*f.To) {
		return "", nil, fmt.Errorf("%w: from must be before to", ErrInvalidFilter)
	}
	return strings.Join(where, " AND "), args, nil
}

// GetTransactions lists the user's transactions, newest first.
func (s *Storage) GetTransactions(ctx context.Context, userName string, f models.TransactionFilter) ([]models.Transaction, error) {
	where, args, err := filterClause(userName, f)
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions t WHERE `+where+` ORDER BY t.transaction_date DESC, t.transaction_id DESC`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *t)
	}
	return transactions, rows.Err()
}

func (s *Storage) GetTransaction(ctx context.Context, id int, userName string) (*models.Transaction, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE transaction_id = $1 AND user_name = $2`, id, userName)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return t, err
}

// UpdateTransaction overwrites the editable fields of t. It reports false
// when no transaction with t.ID belongs to t.UserName.
func (s *Storage) UpdateTransaction(ctx context.Context, t *models.Transaction) (bool, error) {
	err := s.DB.QueryRowContext(ctx,
		`UPDATE transactions
		SET transaction_type = $1, amount = $2, category_id = $3, description = $4, transaction_date = $5, updated_at = NOW()
		WHERE transaction_id = $6 AND user_name = $7
		RETURNING created_at, updated_at`,
		t.Type, t.Amount, t.CategoryID, t.Description, t.TransactionDate, t.ID, t.UserName,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("update transaction: %w", categoryError(err))
	}
	return true, nil
}

func (s *Storage) DeleteTransaction(ctx context.Context, id int, userName string) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM transactions WHERE transaction_id = $1 AND user_name = $2`, id, userName)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetTotals sums the user's transactions matching f per type and category.
func (s *Storage) GetTotals(ctx context.Context, userName string, f models.TransactionFilter) (*models.Totals, error) {
	where, args, err := filterClause(userName, f)
	if err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT t.transaction_type, c.category_id, c.category_name, SUM(t.amount)
		FROM transactions t JOIN categories c ON c.category_id = t.category_id
		WHERE `+where+`
		GROUP BY t.transaction_type, c.category_id, c.category_name
		ORDER BY t.transaction_type, SUM(t.amount) DESC, c.category_id`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := &models.Totals{Categories: []models.CategoryTotal{}}
	for rows.Next() {
		var ct models.CategoryTotal
		if err := rows.Scan(&ct.TransactionType, &ct.CategoryID, &ct.CategoryName, &ct.Total); err != nil {
			return nil, err
		}
		totals.Categories = append(totals.Categories, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	totals.Sum()
	return totals, nil
}
