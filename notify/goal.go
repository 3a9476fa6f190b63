package notify

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MonthlyGoalAtRisk builds the notification sent when the month's net
// savings (income minus expense) is below a positive monthly goal.
func MonthlyGoalAtRisk(userName string, income, expense, goal decimal.Decimal) (Notification, bool) {
	if !goal.IsPositive() {
		return Notification{}, false
	}
	net := income.Sub(expense)
	if net.GreaterThanOrEqual(goal) {
		return Notification{}, false
	}
	return Notification{
		UserName:    userName,
		Message:     fmt.Sprintf("Monthly savings %s are below your goal of %s", net.StringFixed(2), goal.StringFixed(2)),
		MonthlyNet:  net,
		MonthlyGoal: goal,
	}, true
}
