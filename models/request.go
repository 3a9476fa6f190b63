package models

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidationError carries a message that is safe to return to the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// fieldMessages picks the client message for the first failed rule. A failed
// "required" rule always wins so that missing input is reported before
// malformed input.
func fieldMessages(err error, required string, byTag map[string]string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return invalid(required)
		}
	}
	for _, fe := range verrs {
		if msg, ok := byTag[fe.Tag()]; ok {
			return invalid(msg)
		}
	}
	return invalid(required)
}

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email,max=255" example:"john@example.com"`
	Password string `json:"password" validate:"required,min=8" example:"password123"`
	UserName string `json:"userName" validate:"required,max=100,nefield=Password" example:"john_doe"`
}

func (r *SignupRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.UserName = strings.TrimSpace(r.UserName)
	if err := validate.Struct(r); err != nil {
		return fieldMessages(err, "All fields are required", map[string]string{
			"email":   "Invalid email format",
			"min":     "Password must be at least 8 characters",
			"nefield": "User Name and Password must be different",
			"max":     "Field is too long",
		})
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"john@example.com"`
	Password string `json:"password" validate:"required,min=8" example:"password123"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if err := validate.Struct(r); err != nil {
		return fieldMessages(err, "Email and password are required", map[string]string{
			"email": "Invalid email format",
			"min":   "Password must be at least 8 characters",
		})
	}
	return nil
}

// Upper bounds of the NUMERIC(10,2) transaction amount and the
// NUMERIC(12,2) property columns.
var (
	maxAmount   = decimal.New(1, 8)
	maxProperty = decimal.New(1, 10)
)

// TransactionRequest is the body of add and update requests.
type TransactionRequest struct {
	TransactionID   int             `json:"transactionId" example:"1"`
	UserName        string          `json:"userName" validate:"required" example:"john_doe"`
	TransactionType string          `json:"transactionType" validate:"required" example:"expense"`
	Amount          decimal.Decimal `json:"amount" swaggertype:"string" example:"1200.50"`
	CategoryID      int             `json:"categoryId" validate:"required" example:"6"`
	Description     *string         `json:"description"`
	TransactionDate string          `json:"transactionDate" validate:"required" example:"2024-05-01"`
}

// Transaction validates the request and converts it into a transaction.
func (r *TransactionRequest) Transaction() (*Transaction, error) {
	if err := validate.Struct(r); err != nil {
		return nil, fieldMessages(err, "Required fields are missing", nil)
	}
	if r.Amount.IsZero() {
		return nil, invalid("Required fields are missing")
	}
	if !ValidType(r.TransactionType) {
		return nil, invalid("Invalid transaction type")
	}
	amount := r.Amount.Round(2)
	if !amount.IsPositive() {
		return nil, invalid("amount must be positive")
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return nil, invalid("amount must be less than 100000000")
	}
	date, err := ParseDate(r.TransactionDate)
	if err != nil {
		return nil, invalid("Invalid transaction date")
	}
	var desc *string
	if r.Description != nil {
		if d := strings.TrimSpace(*r.Description); d != "" {
			desc = &d
		}
	}
	return &Transaction{
		ID:              r.TransactionID,
		UserName:        r.UserName,
		Type:            r.TransactionType,
		Amount:          amount,
		CategoryID:      r.CategoryID,
		Description:     desc,
		TransactionDate: date,
	}, nil
}

type GoalData struct {
	PropertyGoal        decimal.Decimal  `json:"propertyGoal" swaggertype:"string" example:"1000000"`
	GoalDeadline        string           `json:"goalDeadline" validate:"required" example:"2026-12-31"`
	GoalMotivation      string           `json:"goalMotivation" validate:"required,max=255" example:"Buy a house"`
	GoalNote            string           `json:"goalNote" validate:"required,max=255" example:"No eating out"`
	MonthlyGoal         *decimal.Decimal `json:"monthlyGoal,omitempty" swaggertype:"string" example:"50000"`
	MonthlyGoalDeadline string           `json:"monthlyGoalDeadline,omitempty" example:"2025-01-31"`
}

type GoalRequest struct {
	UserName string   `json:"userName" validate:"required" example:"john_doe"`
	GoalData GoalData `json:"goalData"`
}

// Goal validates the request and converts it into a storable goal.
func (r *GoalRequest) Goal() (*Goal, error) {
	if err := validate.Struct(r); err != nil {
		return nil, fieldMessages(err, "Invalid request", nil)
	}
	g := r.GoalData
	propertyGoal := g.PropertyGoal.Round(2)
	if !propertyGoal.IsPositive() || propertyGoal.GreaterThanOrEqual(maxProperty) {
		return nil, invalid("Invalid request")
	}
	deadline, err := ParseDate(g.GoalDeadline)
	if err != nil {
		return nil, invalid("Invalid request")
	}
	goal := &Goal{
		PropertyGoal:   propertyGoal,
		GoalDeadline:   deadline,
		GoalMotivation: g.GoalMotivation,
		GoalNote:       g.GoalNote,
	}
	// An empty or zero monthly goal clears it.
	if g.MonthlyGoal != nil {
		monthly := g.MonthlyGoal.Round(2)
		if monthly.IsNegative() || monthly.GreaterThanOrEqual(maxProperty) {
			return nil, invalid("Invalid request")
		}
		if !monthly.IsZero() {
			goal.MonthlyGoal = decimal.NewNullDecimal(monthly)
		}
	}
	if g.MonthlyGoalDeadline != "" {
		d, err := ParseDate(g.MonthlyGoalDeadline)
		if err != nil {
			return nil, invalid("Invalid request")
		}
		goal.MonthlyGoalDeadline = &d
	}
	return goal, nil
}

type PropertyRequest struct {
	CurrentProperty *decimal.Decimal `json:"currentProperty" swaggertype:"string" example:"250000"`
}

func (r *PropertyRequest) Validate() error {
	if r.CurrentProperty == nil {
		return invalid("currentProperty is required")
	}
	amount := r.CurrentProperty.Round(2)
	if amount.Abs().GreaterThanOrEqual(maxProperty) {
		return invalid("currentProperty is out of range")
	}
	r.CurrentProperty = &amount
	return nil
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate accepts RFC 3339 timestamps as well as the date and
// datetime-local formats sent by HTML forms.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, err
}
