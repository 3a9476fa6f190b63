package models

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func messageOf(t *testing.T, err error) string {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected *ValidationError, got %v", err)
	}
	return verr.Message
}

func TestSignupRequestValidate(t *testing.T) {
	cases := []struct {
		name string
		req  SignupRequest
		want string
	}{
		{"missing email", SignupRequest{Password: "password123", UserName: "john"}, "All fields are required"},
		{"missing user name", SignupRequest{Email: "john@example.com", Password: "password123"}, "All fields are required"},
		{"bad email", SignupRequest{Email: "john.example.com", Password: "password123", UserName: "john"}, "Invalid email format"},
		{"short password", SignupRequest{Email: "john@example.com", Password: "short", UserName: "john"}, "Password must be at least 8 characters"},
		{"same as password", SignupRequest{Email: "john@example.com", Password: "password123", UserName: "password123"}, "User Name and Password must be different"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if got := messageOf(t, err); got != tc.want {
				t.Errorf("Expected %q, got %q", tc.want, got)
			}
		})
	}

	ok := SignupRequest{Email: " John@Example.com ", Password: "password123", UserName: "john"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if ok.Email != "john@example.com" {
		t.Errorf("Expected normalised email, got %q", ok.Email)
	}
}

func TestLoginRequestValidate(t *testing.T) {
	req := LoginRequest{Email: "john@example.com"}
	if got := messageOf(t, req.Validate()); got != "Email and password are required" {
		t.Errorf("Expected required message, got %q", got)
	}
	req = LoginRequest{Email: "nope", Password: "password123"}
	if got := messageOf(t, req.Validate()); got != "Invalid email format" {
		t.Errorf("Expected email message, got %q", got)
	}
	req = LoginRequest{Email: "JOHN@example.com", Password: "password123"}
	if err := req.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if req.Email != "john@example.com" {
		t.Errorf("Expected lower-cased email, got %q", req.Email)
	}
}

func TestTransactionRequest(t *testing.T) {
	base := func() TransactionRequest {
		return TransactionRequest{
			UserName:        "john",
			TransactionType: TypeExpense,
			Amount:          decimal.RequireFromString("12.345"),
			CategoryID:      6,
			TransactionDate: "2024-05-01",
		}
	}

	req := base()
	tx, err := req.Transaction()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !tx.Amount.Equal(decimal.RequireFromString("12.35")) {
		t.Errorf("Expected amount rounded to 12.35, got %s", tx.Amount)
	}
	if tx.TransactionDate.Year() != 2024 || tx.TransactionDate.Month() != 5 {
		t.Errorf("Unexpected date %v", tx.TransactionDate)
	}

	req = base()
	req.TransactionType = "transfer"
	if _, err := req.Transaction(); messageOf(t, err) != "Invalid transaction type" {
		t.Errorf("Expected invalid type, got %v", err)
	}

	req = base()
	req.Amount = decimal.NewFromInt(-5)
	if _, err := req.Transaction(); messageOf(t, err) != "amount must be positive" {
		t.Errorf("Expected positive amount error, got %v", err)
	}

	for _, amount := range []string{"0.001", "0.004"} {
		req = base()
		req.Amount = decimal.RequireFromString(amount)
		if _, err := req.Transaction(); messageOf(t, err) != "amount must be positive" {
			t.Errorf("Expected %s to be rejected, got %v", amount, err)
		}
	}

	for _, amount := range []string{"100000000", "99999999.995"} {
		req = base()
		req.Amount = decimal.RequireFromString(amount)
		if _, err := req.Transaction(); messageOf(t, err) != "amount must be less than 100000000" {
			t.Errorf("Expected %s to be out of range, got %v", amount, err)
		}
	}

	req = base()
	req.Amount = decimal.RequireFromString("99999999.99")
	if _, err := req.Transaction(); err != nil {
		t.Errorf("Expected largest amount to pass, got %v", err)
	}

	req = base()
	req.Amount = decimal.Zero
	if _, err := req.Transaction(); messageOf(t, err) != "Required fields are missing" {
		t.Errorf("Expected missing fields error, got %v", err)
	}

	req = base()
	req.CategoryID = 0
	if _, err := req.Transaction(); messageOf(t, err) != "Required fields are missing" {
		t.Errorf("Expected missing fields error, got %v", err)
	}

	req = base()
	req.TransactionDate = "yesterday"
	if _, err := req.Transaction(); messageOf(t, err) != "Invalid transaction date" {
		t.Errorf("Expected invalid date error, got %v", err)
	}

	blank := "   "
	req = base()
	req.Description = &blank
	tx, err = req.Transaction()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if tx.Description != nil {
		t.Errorf("Expected blank description dropped, got %q", *tx.Description)
	}
}

func TestGoalRequest(t *testing.T) {
	monthly := decimal.NewFromInt(500)
	req := GoalRequest{
		UserName: "john",
		GoalData: GoalData{
			PropertyGoal:        decimal.NewFromInt(100000),
			GoalDeadline:        "2026-12-31",
			GoalMotivation:      "house",
			GoalNote:            "cook at home",
			MonthlyGoal:         &monthly,
			MonthlyGoalDeadline: "2026-01-31",
		},
	}
	goal, err := req.Goal()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !goal.MonthlyGoal.Valid || !goal.MonthlyGoal.Decimal.Equal(monthly) {
		t.Errorf("Expected monthly goal 500, got %+v", goal.MonthlyGoal)
	}
	if goal.MonthlyGoalDeadline == nil {
		t.Error("Expected monthly goal deadline to be set")
	}

	req.GoalData.GoalNote = ""
	if _, err := req.Goal(); messageOf(t, err) != "Invalid request" {
		t.Errorf("Expected invalid request, got %v", err)
	}

	req.GoalData.GoalNote = "note"
	for _, amount := range []string{"0", "0.004", "10000000000"} {
		req.GoalData.PropertyGoal = decimal.RequireFromString(amount)
		if _, err := req.Goal(); messageOf(t, err) != "Invalid request" {
			t.Errorf("Expected property goal %s rejected, got %v", amount, err)
		}
	}

	req.GoalData.PropertyGoal = decimal.NewFromInt(100000)
	tiny := decimal.RequireFromString("0.004")
	req.GoalData.MonthlyGoal = &tiny
	goal, err = req.Goal()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if goal.MonthlyGoal.Valid {
		t.Errorf("Expected monthly goal rounding to zero to be cleared, got %s", goal.MonthlyGoal.Decimal)
	}
	huge := decimal.New(1, 10)
	req.GoalData.MonthlyGoal = &huge
	if _, err := req.Goal(); messageOf(t, err) != "Invalid request" {
		t.Errorf("Expected monthly goal out of range, got %v", err)
	}
}

func TestPropertyRequestValidate(t *testing.T) {
	var req PropertyRequest
	if got := messageOf(t, req.Validate()); got != "currentProperty is required" {
		t.Errorf("Expected required message, got %q", got)
	}

	v := decimal.RequireFromString("1234.567")
	req = PropertyRequest{CurrentProperty: &v}
	if err := req.Validate(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !req.CurrentProperty.Equal(decimal.RequireFromString("1234.57")) {
		t.Errorf("Expected rounded property, got %s", req.CurrentProperty)
	}

	for _, amount := range []string{"10000000000", "-9999999999.995"} {
		v := decimal.RequireFromString(amount)
		req = PropertyRequest{CurrentProperty: &v}
		if got := messageOf(t, req.Validate()); got != "currentProperty is out of range" {
			t.Errorf("Expected %s out of range, got %q", amount, got)
		}
	}
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"2024-05-01", "2024-05-01T10:30", "2024-05-01T10:30:00", "2024-05-01T10:30:00Z", "2024-05-01T10:30:00+09:00"} {
		if _, err := ParseDate(s); err != nil {
			t.Errorf("ParseDate(%q) returned %v", s, err)
		}
	}
	if _, err := ParseDate("05/01/2024"); err == nil {
		t.Error("Expected error for unsupported layout")
	}
}
