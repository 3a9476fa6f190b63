package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// ValidType reports whether t is a known transaction or category type.
func ValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

type Transaction struct {
	ID              int             `json:"transactionId" example:"1"`
	UserName        string          `json:"userName" example:"john_doe"`
	Type            string          `json:"transactionType" example:"expense"`
	Amount          decimal.Decimal `json:"amount" swaggertype:"string" example:"1200.50"`
	CategoryID      int             `json:"categoryId" example:"6"`
	Description     *string         `json:"description"`
	TransactionDate time.Time       `json:"transactionDate"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// TransactionFilter narrows listing and totals queries. Zero fields are ignored.
type TransactionFilter struct {
	Type       string
	CategoryID int
	From       *time.Time
	To         *time.Time
}

// CategoryTotal is the sum of one user's transactions of one type in one category.
type CategoryTotal struct {
	CategoryID      int             `json:"categoryId"`
	CategoryName    string          `json:"categoryName"`
	TransactionType string          `json:"transactionType"`
	Total           decimal.Decimal `json:"total" swaggertype:"string"`
}

type Totals struct {
	Income     decimal.Decimal `json:"income" swaggertype:"string"`
	Expense    decimal.Decimal `json:"expense" swaggertype:"string"`
	Balance    decimal.Decimal `json:"balance" swaggertype:"string"`
	Categories []CategoryTotal `json:"categories"`
}

// Sum recomputes Income, Expense and Balance from Categories.
func (t *Totals) Sum() {
	t.Income, t.Expense = decimal.Zero, decimal.Zero
	for _, c := range t.Categories {
		switch c.TransactionType {
		case TypeIncome:
			t.Income = t.Income.Add(c.Total)
		case TypeExpense:
			t.Expense = t.Expense.Add(c.Total)
		}
	}
	t.Balance = t.Income.Sub(t.Expense)
}
