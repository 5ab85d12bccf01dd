package budget

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/avecbanker/backend/internal/application/adapter"
	"github.com/avecbanker/backend/internal/domain/entity"
)

// Warning thresholds, as a percentage of a category budget.
var (
	warningPct  = decimal.NewFromInt(90)
	criticalPct = decimal.NewFromInt(100)
)

// CategoryStatus is the month-to-date spending of one category.
type CategoryStatus struct {
	Category    entity.ExpenseCategory
	Budget      decimal.Decimal
	Spent       decimal.Decimal
	Remaining   decimal.Decimal // Negative when over budget
	PercentUsed decimal.Decimal
	DailyLimit  decimal.Decimal // What can still be spent per remaining day
	Severity    string          // Empty, adapter.SeverityWarning or adapter.SeverityCritical
}

// monthBounds returns the first instant of now's month and the days left in it,
// today included.
func monthBounds(now time.Time) (time.Time, int) {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := start.AddDate(0, 1, -1).Day()
	return start, daysInMonth - now.Day() + 1
}

func categoryStatus(profile *entity.BudgetProfile, totalBills decimal.Decimal, category entity.ExpenseCategory, spent decimal.Decimal, daysRemaining int) CategoryStatus {
	budget := profile.CategoryBudget(category, totalBills)
	status := CategoryStatus{
		Category:    category,
		Budget:      budget,
		Spent:       spent,
		Remaining:   budget.Sub(spent),
		PercentUsed: decimal.Zero,
		DailyLimit:  decimal.Zero,
	}
	if status.Remaining.IsPositive() && daysRemaining > 0 {
		status.DailyLimit = status.Remaining.Div(decimal.NewFromInt(int64(daysRemaining))).RoundFloor(2)
	}
	if !budget.IsPositive() {
		return status
	}

	status.PercentUsed = spent.Div(budget).Mul(decimal.NewFromInt(100)).Round(1)
	status.Severity = severity(spent, budget)
	return status
}

// severity compares unrounded spending so 89.96% is not reported as 90%.
func severity(spent, budget decimal.Decimal) string {
	if !budget.IsPositive() {
		return ""
	}
	pct := spent.Div(budget).Mul(decimal.NewFromInt(100))
	switch {
	case pct.GreaterThanOrEqual(criticalPct):
		return adapter.SeverityCritical
	case pct.GreaterThanOrEqual(warningPct):
		return adapter.SeverityWarning
	}
	return ""
}
