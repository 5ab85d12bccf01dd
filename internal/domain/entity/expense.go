package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCategory is the budget envelope an expense is charged to.
type ExpenseCategory string

const (
	CategoryNeeds   ExpenseCategory = "needs"
	CategoryWants   ExpenseCategory = "wants"
	CategorySavings ExpenseCategory = "savings"
)

// ExpenseCategories lists the categories in reporting order.
var ExpenseCategories = []ExpenseCategory{CategoryNeeds, CategoryWants, CategorySavings}

// IsValid reports whether c is a known category.
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case CategoryNeeds, CategoryWants, CategorySavings:
		return true
	}
	return false
}

// Expense is a single logged purchase.
type Expense struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Description string
	Amount      decimal.Decimal
	Category    ExpenseCategory
	CreatedAt   time.Time
}

// NewExpense creates a new Expense entity stamped with the current time.
func NewExpense(userID uuid.UUID, description string, amount decimal.Decimal, category ExpenseCategory) *Expense {
	return &Expense{
		ID:          uuid.New(),
		UserID:      userID,
		Description: strings.TrimSpace(description),
		Amount:      amount,
		Category:    category,
		CreatedAt:   time.Now().UTC(),
	}
}

// SpentByCategory sums expense amounts per category.
func SpentByCategory(expenses []*Expense) map[ExpenseCategory]decimal.Decimal {
	spent := make(map[ExpenseCategory]decimal.Decimal, len(ExpenseCategories))
	for _, c := range ExpenseCategories {
		spent[c] = decimal.Zero
	}
	for _, e := range expenses {
		spent[e.Category] = spent[e.Category].Add(e.Amount)
	}
	return spent
}

// CategoryPct returns the split percentage of a category.
func (p *BudgetProfile) CategoryPct(c ExpenseCategory) int {
	switch c {
	case CategoryNeeds:
		return p.NeedsPct
	case CategoryWants:
		return p.WantsPct
	case CategorySavings:
		return p.SavingsPct
	}
	return 0
}

// CategoryBudget returns the monthly budget of a spending category: income minus
// bills, times the category percentage. Never negative.
func (p *BudgetProfile) CategoryBudget(c ExpenseCategory, totalBills decimal.Decimal) decimal.Decimal {
	available := p.MonthlyIncome.Sub(totalBills)
	if !available.IsPositive() {
		return decimal.Zero
	}
	return available.Mul(decimal.NewFromInt(int64(p.CategoryPct(c)))).Div(decimal.NewFromInt(100)).RoundFloor(2)
}
