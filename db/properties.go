package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fintrack/backend/models"
	"github.com/shopspring/decimal"
)

const propertyColumns = `user_name, current_property, property_goal, goal_deadline, goal_motivation, goal_note,
	monthly_goal, monthly_goal_deadline, cash_amount, investment_amount, other_assets, last_updated, created_at`

func scanProperties(row scanner) (*models.UserProperties, error) {
	var (
		p                             models.UserProperties
		goalDeadline, monthlyDeadline sql.NullTime
	)
	err := row.Scan(&p.UserName, &p.CurrentProperty, &p.PropertyGoal, &goalDeadline, &p.GoalMotivation, &p.GoalNote,
		&p.MonthlyGoal, &monthlyDeadline, &p.CashAmount, &p.InvestmentAmount, &p.OtherAssets, &p.LastUpdated, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if goalDeadline.Valid {
		p.GoalDeadline = &goalDeadline.Time
	}
	if monthlyDeadline.Valid {
		p.MonthlyGoalDeadline = &monthlyDeadline.Time
	}
	return &p, nil
}

func (s *Storage) GetProperties(ctx context.Context, userName string) (*models.UserProperties, error) {
	p, err := scanProperties(s.DB.QueryRowContext(ctx,
		`SELECT `+propertyColumns+` FROM users_properties WHERE user_name = $1`, userName))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get properties: %w", err)
	}
	return p, nil
}

func (s *Storage) UpdateCurrentProperty(ctx context.Context, userName string, amount decimal.Decimal) (bool, error) {
	res, err := s.DB.ExecContext(ctx,
		`UPDATE users_properties SET current_property = $1, last_updated = NOW() WHERE user_name = $2`,
		amount, userName)
	if err != nil {
		return false, fmt.Errorf("update current property: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SetGoal stores goal for userName and returns the updated row, or nil when
// the user has no properties row.
func (s *Storage) SetGoal(ctx context.Context, userName string, goal *models.Goal) (*models.UserProperties, error) {
	var monthlyDeadline sql.NullTime
	if goal.MonthlyGoalDeadline != nil {
		monthlyDeadline = sql.NullTime{Time: *goal.MonthlyGoalDeadline, Valid: true}
	}
	p, err := scanProperties(s.DB.QueryRowContext(ctx,
		`UPDATE users_properties
		SET property_goal = $1, goal_deadline = $2, goal_motivation = $3, goal_note = $4,
			monthly_goal = $5, monthly_goal_deadline = $6, last_updated = NOW()
		WHERE user_name = $7
		RETURNING `+propertyColumns,
		goal.PropertyGoal, goal.GoalDeadline, goal.GoalMotivation, goal.GoalNote,
		goal.MonthlyGoal, monthlyDeadline, userName))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("set goal: %w", err)
	}
	return p, nil
}
