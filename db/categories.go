package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fintrack/backend/models"
)

type seedCategory struct {
	name, typ, description string
}

var defaultCategories = []seedCategory{
	{"Salary", models.TypeIncome, "Salary from your employer"},
	{"Side job", models.TypeIncome, "Income from side work"},
	{"Investment", models.TypeIncome, "Returns on investments"},
	{"Bonus", models.TypeIncome, "Bonuses and allowances"},
	{"Other income", models.TypeIncome, "Any other income"},

	{"Food", models.TypeExpense, "Meals and groceries"},
	{"Transportation", models.TypeExpense, "Public transport and travel"},
	{"Housing", models.TypeExpense, "Rent and mortgage"},
	{"Utilities", models.TypeExpense, "Electricity, gas and water"},
	{"Communication", models.TypeExpense, "Phone and internet"},
	{"Electronics", models.TypeExpense, "Computers, phones and gadgets"},
	{"Clothing", models.TypeExpense, "Clothes, shoes and accessories"},
	{"Entertainment", models.TypeExpense, "Leisure and hobbies"},
	{"Medical", models.TypeExpense, "Hospital, medicine and health care"},
	{"Education", models.TypeExpense, "Books, seminars and courses"},
	{"Other expenses", models.TypeExpense, "Any other expense"},
}

// seedCategories inserts the default categories when the table is empty.
func (s *Storage) seedCategories(ctx context.Context) error {
	var exists bool
	if err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM categories)`).Scan(&exists); err != nil {
		return fmt.Errorf("check categories: %w", err)
	}
	if exists {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, c := range defaultCategories {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO categories (category_name, category_type, description) VALUES ($1, $2, $3)`,
			c.name, c.typ, c.description,
		); err != nil {
			return fmt.Errorf("seed category %s: %w", c.name, err)
		}
	}
	return tx.Commit()
}

func (s *Storage) GetCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT category_id, category_name, category_type, description, created_at FROM categories ORDER BY category_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Storage) GetCategory(ctx context.Context, id int) (*models.Category, error) {
	var c models.Category
	err := s.DB.QueryRowContext(ctx,
		`SELECT category_id, category_name, category_type, description, created_at FROM categories WHERE category_id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Type, &c.Description, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
