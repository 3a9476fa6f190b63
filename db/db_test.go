package db

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/fintrack/backend/auth"
	"github.com/fintrack/backend/models"
	"github.com/shopspring/decimal"
)

// setupTestDB connects to POSTGRES_TEST_URL and clears user data. Seeded
// categories are kept.
func setupTestDB(t *testing.T) *Storage {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL is not set")
	}
	store, err := NewStorage(context.Background(), connStr)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(store.Close)

	_, err = store.DB.Exec("TRUNCATE TABLE transactions, users_properties, users RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}
	return store
}

func createUser(t *testing.T, store *Storage, userName, email string) *models.User {
	hash, err := auth.HashPassword("password123")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	user, err := store.CreateUser(context.Background(), userName, email, hash)
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

func categoryOfType(t *testing.T, store *Storage, typ string) models.Category {
	categories, err := store.GetCategories(context.Background())
	if err != nil {
		t.Fatalf("Failed to get categories: %v", err)
	}
	for _, c := range categories {
		if c.Type == typ {
			return c
		}
	}
	t.Fatalf("No %s category seeded", typ)
	return models.Category{}
}

func TestCreateAndGetUser(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	user := createUser(t, store, "testuser", "test@example.com")
	if user.ID == 0 {
		t.Error("Expected user ID to be set, got 0")
	}
	if !auth.CheckPassword(user.Password, "password123") {
		t.Error("Password hash does not match")
	}

	fetched, err := store.GetUserByEmail(ctx, "test@example.com")
	if err != nil {
		t.Fatalf("Failed to get user: %v", err)
	}
	if fetched == nil || fetched.ID != user.ID || fetched.UserName != "testuser" {
		t.Errorf("Expected user {ID: %d, UserName: testuser}, got %+v", user.ID, fetched)
	}

	fetched, err = store.GetUserByUserName(ctx, "nonexistent")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if fetched != nil {
		t.Errorf("Expected nil user, got %+v", fetched)
	}

	_, err = store.CreateUser(ctx, "other", "test@example.com", user.Password)
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Expected ErrEmailTaken, got %v", err)
	}
	_, err = store.CreateUser(ctx, "testuser", "other@example.com", user.Password)
	if !errors.Is(err, ErrUserNameTaken) {
		t.Errorf("Expected ErrUserNameTaken, got %v", err)
	}

	props, err := store.GetProperties(ctx, "testuser")
	if err != nil {
		t.Fatalf("Failed to get properties: %v", err)
	}
	if props == nil || !props.CurrentProperty.IsZero() || props.MonthlyGoal.Valid {
		t.Errorf("Expected empty properties row, got %+v", props)
	}
}

func TestCategoriesSeeded(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	categories, err := store.GetCategories(ctx)
	if err != nil {
		t.Fatalf("Failed to get categories: %v", err)
	}
	if len(categories) != len(defaultCategories) {
		t.Errorf("Expected %d categories, got %d", len(defaultCategories), len(categories))
	}

	c, err := store.GetCategory(ctx, categories[0].ID)
	if err != nil {
		t.Fatalf("Failed to get category: %v", err)
	}
	if c == nil || c.Name != categories[0].Name {
		t.Errorf("Expected category %q, got %+v", categories[0].Name, c)
	}

	c, err = store.GetCategory(ctx, 9999)
	if err != nil || c != nil {
		t.Errorf("Expected nil category, got %+v, %v", c, err)
	}
}

func TestTransactionLifecycle(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	createUser(t, store, "testuser", "test@example.com")
	expense := categoryOfType(t, store, models.TypeExpense)
	income := categoryOfType(t, store, models.TypeIncome)

	desc := "lunch"
	tx := &models.Transaction{
		UserName:        "testuser",
		Type:            models.TypeExpense,
		Amount:          decimal.RequireFromString("12.50"),
		CategoryID:      expense.ID,
		Description:     &desc,
		TransactionDate: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	}
	if err := store.CreateTransaction(ctx, tx); err != nil {
		t.Fatalf("Failed to create transaction: %v", err)
	}
	if tx.ID == 0 {
		t.Error("Expected transaction ID to be set, got 0")
	}

	fetched, err := store.GetTransaction(ctx, tx.ID, "testuser")
	if err != nil {
		t.Fatalf("Failed to get transaction: %v", err)
	}
	if fetched == nil || !fetched.Amount.Equal(tx.Amount) || *fetched.Description != "lunch" {
		t.Errorf("Expected transaction %+v, got %+v", tx, fetched)
	}

	fetched, err = store.GetTransaction(ctx, tx.ID, "someoneelse")
	if err != nil || fetched != nil {
		t.Errorf("Expected nil for foreign user, got %+v, %v", fetched, err)
	}

	tx.Type = models.TypeIncome
	tx.CategoryID = income.ID
	tx.Amount = decimal.RequireFromString("40")
	tx.Description = nil
	updated, err := store.UpdateTransaction(ctx, tx)
	if err != nil {
		t.Fatalf("Failed to update transaction: %v", err)
	}
	if !updated {
		t.Error("Expected transaction to be updated, got false")
	}
	fetched, _ = store.GetTransaction(ctx, tx.ID, "testuser")
	if fetched.Type != models.TypeIncome || fetched.Description != nil {
		t.Errorf("Expected updated transaction, got %+v", fetched)
	}

	tx.CategoryID = 9999
	if _, err := store.UpdateTransaction(ctx, tx); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("Expected ErrUnknownCategory, got %v", err)
	}

	missing := *tx
	missing.ID = 9999
	missing.CategoryID = income.ID
	updated, err = store.UpdateTransaction(ctx, &missing)
	if err != nil || updated {
		t.Errorf("Expected no update for non-existent transaction, got %v, %v", updated, err)
	}

	deleted, err := store.DeleteTransaction(ctx, tx.ID, "testuser")
	if err != nil || !deleted {
		t.Errorf("Expected transaction to be deleted, got %v, %v", deleted, err)
	}
	deleted, err = store.DeleteTransaction(ctx, tx.ID, "testuser")
	if err != nil || deleted {
		t.Errorf("Expected no deletion on second call, got %v, %v", deleted, err)
	}
}

func TestGetTransactionsAndTotals(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	createUser(t, store, "testuser", "test@example.com")
	createUser(t, store, "other", "other@example.com")
	expense := categoryOfType(t, store, models.TypeExpense)
	income := categoryOfType(t, store, models.TypeIncome)

	day := func(d int) time.Time { return time.Date(2025, 3, d, 9, 0, 0, 0, time.UTC) }
	seed := []models.Transaction{
		{UserName: "testuser", Type: models.TypeIncome, Amount: decimal.RequireFromString("1000"), CategoryID: income.ID, TransactionDate: day(1)},
		{UserName: "testuser", Type: models.TypeExpense, Amount: decimal.RequireFromString("200.25"), CategoryID: expense.ID, TransactionDate: day(5)},
		{UserName: "testuser", Type: models.TypeExpense, Amount: decimal.RequireFromString("50"), CategoryID: expense.ID, TransactionDate: day(20)},
		{UserName: "other", Type: models.TypeExpense, Amount: decimal.RequireFromString("999"), CategoryID: expense.ID, TransactionDate: day(5)},
	}
	for i := range seed {
		if err := store.CreateTransaction(ctx, &seed[i]); err != nil {
			t.Fatalf("Failed to create transaction: %v", err)
		}
	}

	all, err := store.GetTransactions(ctx, "testuser", models.TransactionFilter{})
	if err != nil {
		t.Fatalf("Failed to get transactions: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 transactions, got %d", len(all))
	}
	if !all[0].TransactionDate.After(all[1].TransactionDate) {
		t.Errorf("Expected newest first, got %v then %v", all[0].TransactionDate, all[1].TransactionDate)
	}

	from, to := day(2), day(10)
	window, err := store.GetTransactions(ctx, "testuser", models.TransactionFilter{From: &from, To: &to})
	if err != nil {
		t.Fatalf("Failed to get transactions: %v", err)
	}
	if len(window) != 1 || !window[0].Amount.Equal(decimal.RequireFromString("200.25")) {
		t.Errorf("Expected the 200.25 expense only, got %+v", window)
	}

	incomes, err := store.GetTransactions(ctx, "testuser", models.TransactionFilter{Type: models.TypeIncome})
	if err != nil || len(incomes) != 1 {
		t.Errorf("Expected 1 income, got %d, %v", len(incomes), err)
	}

	if _, err := store.GetTransactions(ctx, "testuser", models.TransactionFilter{Type: "invalid"}); !errors.Is(err, ErrInvalidFilter) {
		t.Errorf("Expected ErrInvalidFilter, got %v", err)
	}
	if _, err := store.GetTransactions(ctx, "testuser", models.TransactionFilter{From: &to, To: &from}); !errors.Is(err, ErrInvalidFilter) {
		t.Errorf("Expected ErrInvalidFilter for reversed range, got %v", err)
	}

	totals, err := store.GetTotals(ctx, "testuser", models.TransactionFilter{})
	if err != nil {
		t.Fatalf("Failed to get totals: %v", err)
	}
	if !totals.Income.Equal(decimal.RequireFromString("1000")) ||
		!totals.Expense.Equal(decimal.RequireFromString("250.25")) ||
		!totals.Balance.Equal(decimal.RequireFromString("749.75")) {
		t.Errorf("Unexpected totals %+v", totals)
	}
	if len(totals.Categories) != 2 {
		t.Errorf("Expected 2 category rows, got %d", len(totals.Categories))
	}
}

func TestPropertiesAndGoals(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	createUser(t, store, "testuser", "test@example.com")

	ok, err := store.UpdateCurrentProperty(ctx, "testuser", decimal.RequireFromString("1500.75"))
	if err != nil || !ok {
		t.Fatalf("Expected property update, got %v, %v", ok, err)
	}
	ok, err = store.UpdateCurrentProperty(ctx, "nobody", decimal.RequireFromString("1"))
	if err != nil || ok {
		t.Errorf("Expected no update for unknown user, got %v, %v", ok, err)
	}

	monthlyDeadline := time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC)
	goal := &models.Goal{
		PropertyGoal:        decimal.RequireFromString("10000"),
		GoalDeadline:        time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		GoalMotivation:      "house",
		GoalNote:            "save every month",
		MonthlyGoal:         decimal.NewNullDecimal(decimal.RequireFromString("500")),
		MonthlyGoalDeadline: &monthlyDeadline,
	}
	props, err := store.SetGoal(ctx, "testuser", goal)
	if err != nil {
		t.Fatalf("Failed to set goal: %v", err)
	}
	if props == nil || !props.PropertyGoal.Equal(goal.PropertyGoal) || props.GoalMotivation != "house" {
		t.Fatalf("Unexpected properties %+v", props)
	}
	if !props.MonthlyGoal.Valid || !props.MonthlyGoal.Decimal.Equal(decimal.RequireFromString("500")) {
		t.Errorf("Expected monthly goal 500, got %+v", props.MonthlyGoal)
	}
	if !props.CurrentProperty.Equal(decimal.RequireFromString("1500.75")) {
		t.Errorf("Expected current property 1500.75, got %s", props.CurrentProperty)
	}

	goal.MonthlyGoal = decimal.NullDecimal{}
	goal.MonthlyGoalDeadline = nil
	props, err = store.SetGoal(ctx, "testuser", goal)
	if err != nil {
		t.Fatalf("Failed to clear monthly goal: %v", err)
	}
	if props.MonthlyGoal.Valid || props.MonthlyGoalDeadline != nil {
		t.Errorf("Expected monthly goal cleared, got %+v", props)
	}

	props, err = store.SetGoal(ctx, "nobody", goal)
	if err != nil || props != nil {
		t.Errorf("Expected nil for unknown user, got %+v, %v", props, err)
	}
}
