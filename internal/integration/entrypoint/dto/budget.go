package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/avecbanker/backend/internal/application/usecase/budget"
	"github.com/avecbanker/backend/internal/domain/entity"
)

// UpdateBudgetRequest represents the request body for budget profile changes.
// Omitted fields keep their current value.
type UpdateBudgetRequest struct {
	MonthlyIncome *decimal.Decimal `json:"monthly_income,omitempty"`
	NeedsPct      *int             `json:"needs_pct,omitempty"`
	WantsPct      *int             `json:"wants_pct,omitempty"`
	SavingsPct    *int             `json:"savings_pct,omitempty"`
	ExtraPct      *int             `json:"extra_pct,omitempty"`
	Cadence       *string          `json:"cadence,omitempty"`
	Currency      *string          `json:"currency,omitempty" binding:"omitempty,len=3"`
}

// BudgetResponse represents a budget profile with its derived goal envelope.
type BudgetResponse struct {
	MonthlyIncome   decimal.Decimal `json:"monthly_income"`
	NeedsPct        int             `json:"needs_pct"`
	WantsPct        int             `json:"wants_pct"`
	SavingsPct      int             `json:"savings_pct"`
	ExtraPct        int             `json:"extra_pct"`
	Cadence         string          `json:"cadence"`
	Currency        string          `json:"currency"`
	TotalBills      decimal.Decimal `json:"total_bills"`
	MonthlyEnvelope decimal.Decimal `json:"monthly_envelope"`
	PeriodEnvelope  decimal.Decimal `json:"period_envelope"`
}

// ToBudgetResponse converts an envelope to a BudgetResponse DTO.
func ToBudgetResponse(env *budget.Envelope) BudgetResponse {
	p := env.Profile
	return BudgetResponse{
		MonthlyIncome:   p.MonthlyIncome,
		NeedsPct:        p.NeedsPct,
		WantsPct:        p.WantsPct,
		SavingsPct:      p.SavingsPct,
		ExtraPct:        p.ExtraPct,
		Cadence:         env.Cadence.String(),
		Currency:        p.Currency,
		TotalBills:      env.TotalBills,
		MonthlyEnvelope: env.Monthly,
		PeriodEnvelope:  env.PerPeriod,
	}
}

// CreateBillRequest represents the request body for bill creation.
type CreateBillRequest struct {
	Name   string          `json:"name" binding:"required,min=1,max=100"`
	Amount decimal.Decimal `json:"amount"`
	DueDay int             `json:"due_day" binding:"required,min=1,max=31"`
}

// BillResponse represents a single bill in API responses.
type BillResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	DueDay    int             `json:"due_day"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
}

// BillListResponse represents the response for listing bills.
type BillListResponse struct {
	Bills []BillResponse  `json:"bills"`
	Total decimal.Decimal `json:"total"`
}

// ToBillResponse converts a domain Bill entity to a BillResponse DTO.
func ToBillResponse(b *entity.Bill) BillResponse {
	return BillResponse{
		ID:        b.ID.String(),
		Name:      b.Name,
		Amount:    b.Amount,
		DueDay:    b.DueDay,
		Active:    b.Active,
		CreatedAt: b.CreatedAt,
	}
}

// ToBillListResponse converts bills to a BillListResponse DTO.
func ToBillListResponse(bills []*entity.Bill, total decimal.Decimal) BillListResponse {
	response := BillListResponse{
		Bills: make([]BillResponse, len(bills)),
		Total: total,
	}
	for i, b := range bills {
		response.Bills[i] = ToBillResponse(b)
	}
	return response
}

// LogExpenseRequest represents the request body for logging an expense.
type LogExpenseRequest struct {
	Description string          `json:"description" binding:"required,min=1,max=200"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category" binding:"required,oneof=needs wants savings"`
}

// ExpenseResponse represents a single expense in API responses.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ExpenseListResponse represents the response for listing expenses.
type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
	Total    decimal.Decimal   `json:"total"`
}

// CategoryStatusResponse is the month-to-date spending of one category.
type CategoryStatusResponse struct {
	Category    string          `json:"category"`
	Budget      decimal.Decimal `json:"budget"`
	Spent       decimal.Decimal `json:"spent"`
	Remaining   decimal.Decimal `json:"remaining"`
	PercentUsed decimal.Decimal `json:"percent_used"`
	DailyLimit  decimal.Decimal `json:"daily_limit"`
	Severity    string          `json:"severity,omitempty"`
}

// LogExpenseResponse represents a logged expense with its category status.
type LogExpenseResponse struct {
	Expense ExpenseResponse        `json:"expense"`
	Status  CategoryStatusResponse `json:"status"`
	Warned  bool                   `json:"warned"`
}

// SpendingStatusResponse represents this month's spending against the budget.
type SpendingStatusResponse struct {
	MonthStart    string                   `json:"month_start"`
	DaysRemaining int                      `json:"days_remaining"`
	Income        decimal.Decimal          `json:"income"`
	TotalBills    decimal.Decimal          `json:"total_bills"`
	Currency      string                   `json:"currency"`
	Categories    []CategoryStatusResponse `json:"categories"`
}

// ToExpenseResponse converts a domain Expense entity to an ExpenseResponse DTO.
func ToExpenseResponse(e *entity.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID.String(),
		Description: e.Description,
		Amount:      e.Amount,
		Category:    string(e.Category),
		CreatedAt:   e.CreatedAt,
	}
}

// ToExpenseListResponse converts expenses to an ExpenseListResponse DTO.
func ToExpenseListResponse(expenses []*entity.Expense, total decimal.Decimal) ExpenseListResponse {
	response := ExpenseListResponse{
		Expenses: make([]ExpenseResponse, len(expenses)),
		Total:    total,
	}
	for i, e := range expenses {
		response.Expenses[i] = ToExpenseResponse(e)
	}
	return response
}

// ToCategoryStatusResponse converts a category status to its DTO.
func ToCategoryStatusResponse(s budget.CategoryStatus) CategoryStatusResponse {
	return CategoryStatusResponse{
		Category:    string(s.Category),
		Budget:      s.Budget,
		Spent:       s.Spent,
		Remaining:   s.Remaining,
		PercentUsed: s.PercentUsed,
		DailyLimit:  s.DailyLimit,
		Severity:    s.Severity,
	}
}

// ToSpendingStatusResponse converts a spending status to its DTO.
func ToSpendingStatusResponse(out *budget.SpendingStatusOutput) SpendingStatusResponse {
	response := SpendingStatusResponse{
		MonthStart:    out.MonthStart.Format(DateLayout),
		DaysRemaining: out.DaysRemaining,
		Income:        out.Income,
		TotalBills:    out.TotalBills,
		Currency:      out.Currency,
		Categories:    make([]CategoryStatusResponse, len(out.Categories)),
	}
	for i, c := range out.Categories {
		response.Categories[i] = ToCategoryStatusResponse(c)
	}
	return response
}
