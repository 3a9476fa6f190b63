package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           int       `json:"id"`
	UserName     string    `json:"userName"`
	Email        string    `json:"email"`
	Password     string    `json:"-"`
	RegisteredAt time.Time `json:"registeredAt"`
}

type Category struct {
	ID          int       `json:"categoryId" example:"1"`
	Name        string    `json:"categoryName" example:"Salary"`
	Type        string    `json:"categoryType" example:"income"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"-"`
}

// UserProperties holds the current assets and savings goals of one user.
type UserProperties struct {
	UserName            string              `json:"userName"`
	CurrentProperty     decimal.Decimal     `json:"currentProperty" swaggertype:"string"`
	PropertyGoal        decimal.Decimal     `json:"propertyGoal" swaggertype:"string"`
	GoalDeadline        *time.Time          `json:"goalDeadline"`
	GoalMotivation      string              `json:"goalMotivation"`
	GoalNote            string              `json:"goalNote"`
	MonthlyGoal         decimal.NullDecimal `json:"monthlyGoal" swaggertype:"string"`
	MonthlyGoalDeadline *time.Time          `json:"monthlyGoalDeadline"`
	CashAmount          decimal.Decimal     `json:"cashAmount" swaggertype:"string"`
	InvestmentAmount    decimal.Decimal     `json:"investmentAmount" swaggertype:"string"`
	OtherAssets         decimal.Decimal     `json:"otherAssets" swaggertype:"string"`
	LastUpdated         time.Time           `json:"lastUpdated"`
	CreatedAt           time.Time           `json:"createdAt"`
}

// Goal is a validated goal update ready to be stored.
type Goal struct {
	PropertyGoal        decimal.Decimal
	GoalDeadline        time.Time
	GoalMotivation      string
	GoalNote            string
	MonthlyGoal         decimal.NullDecimal
	MonthlyGoalDeadline *time.Time
}
