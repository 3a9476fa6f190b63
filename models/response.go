package models

import "time"

type UserSummary struct {
	ID       int    `json:"id,omitempty" example:"1"`
	UserName string `json:"userName" example:"john_doe"`
	Email    string `json:"email,omitempty" example:"john@example.com"`
}

type SignupResponse struct {
	Success bool        `json:"success" example:"true"`
	Message string      `json:"message" example:"User created successfully"`
	User    UserSummary `json:"user"`
}

type LoginResponse struct {
	Success   bool        `json:"success" example:"true"`
	Message   string      `json:"message" example:"Login successful"`
	Token     string      `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      UserSummary `json:"user"`
}

type VerifyResponse struct {
	Success bool        `json:"success" example:"true"`
	Message string      `json:"message" example:"Token is valid"`
	User    UserSummary `json:"user"`
}

type MessageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message,omitempty" example:"Logout successful"`
}

type FetchResponse struct {
	Success  bool          `json:"success" example:"true"`
	Message  string        `json:"message" example:"Data fetched successfully"`
	UserName string        `json:"userName" example:"john_doe"`
	Data     []Transaction `json:"data"`
}

type TransactionResponse struct {
	Success bool        `json:"success" example:"true"`
	Message string      `json:"message,omitempty" example:"Transaction created successfully"`
	Data    Transaction `json:"data"`
}

type CategoriesResponse struct {
	Income  []Category `json:"income"`
	Expense []Category `json:"expense"`
}

type SummaryResponse struct {
	Success  bool   `json:"success" example:"true"`
	UserName string `json:"userName" example:"john_doe"`
	Totals   Totals `json:"totals"`
}

type GoalsResponse struct {
	Success  bool            `json:"success" example:"true"`
	Message  string          `json:"message" example:"Get goals successfully"`
	UserName string          `json:"userName" example:"john_doe"`
	GoalData *UserProperties `json:"goalData"`
}

type SetGoalData struct {
	UserName string          `json:"userName" example:"john_doe"`
	GoalData *UserProperties `json:"goalData"`
}

type SetGoalResponse struct {
	Success bool        `json:"success" example:"true"`
	Message string      `json:"message" example:"Set goal successfully"`
	Data    SetGoalData `json:"data"`
}

type HealthResponse struct {
	Status       string    `json:"status" example:"ok"`
	Database     string    `json:"database" example:"connected"`
	SessionStore string    `json:"sessionStore" example:"connected"`
	Timestamp    time.Time `json:"timestamp"`
	Uptime       float64   `json:"uptime,omitempty" example:"12.5"`
	Environment  string    `json:"environment,omitempty" example:"development"`
	Port         string    `json:"port,omitempty" example:"8080"`
	Message      string    `json:"message,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"error"`
}
