package budget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avecbanker/backend/internal/application/adapter"
	"github.com/avecbanker/backend/internal/domain/entity"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
)

// defaultRecentExpenses is how many expenses a listing without filters returns.
const defaultRecentExpenses = 10

// LogExpenseInput represents the input for logging an expense.
type LogExpenseInput struct {
	UserID      uuid.UUID
	Description string
	Amount      decimal.Decimal
	Category    entity.ExpenseCategory
}

// LogExpenseOutput represents the output of logging an expense.
type LogExpenseOutput struct {
	Expense *entity.Expense
	Status  CategoryStatus // Month to date, including this expense
	Warned  bool           // The expense pushed the category past a threshold
}

// LogExpenseUseCase stores an expense and warns the owner when it pushes a category
// past 90% or 100% of its monthly budget.
type LogExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	userRepo    adapter.UserRepository
	resolver    *EnvelopeResolver
	notifier    adapter.BudgetNotifier
	clock       func() time.Time
}

// NewLogExpenseUseCase creates a new LogExpenseUseCase instance. notifier may be nil.
func NewLogExpenseUseCase(expenseRepo adapter.ExpenseRepository, userRepo adapter.UserRepository, resolver *EnvelopeResolver, notifier adapter.BudgetNotifier) *LogExpenseUseCase {
	return &LogExpenseUseCase{
		expenseRepo: expenseRepo,
		userRepo:    userRepo,
		resolver:    resolver,
		notifier:    notifier,
		clock:       func() time.Time { return time.Now().UTC() },
	}
}

// Execute performs the expense logging.
func (uc *LogExpenseUseCase) Execute(ctx context.Context, input LogExpenseInput) (*LogExpenseOutput, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, domainerror.NewBudgetError(domainerror.ErrCodeMissingBudgetFields, "expense description is required", domainerror.ErrInvalidExpense)
	}
	if !input.Amount.IsPositive() {
		return nil, invalidExpense("expense amount must be greater than zero")
	}
	if !input.Category.IsValid() {
		return nil, invalidExpense("category must be one of needs, wants or savings")
	}

	envelope, err := uc.resolver.Resolve(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	expense := entity.NewExpense(input.UserID, description, input.Amount, input.Category)
	expense.CreatedAt = uc.clock()
	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to log expense: %w", err)
	}

	slog.Info("Expense logged", "user_id", expense.UserID, "expense_id", expense.ID, "category", expense.Category)

	start, daysRemaining := monthBounds(expense.CreatedAt)
	expenses, err := uc.expenseRepo.FindByUserID(ctx, input.UserID, start, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	spent := entity.SpentByCategory(expenses)[expense.Category]
	status := categoryStatus(envelope.Profile, envelope.TotalBills, expense.Category, spent, daysRemaining)
	before := severity(spent.Sub(expense.Amount), status.Budget)

	warned := status.Severity != "" && status.Severity != before
	if warned {
		uc.notify(ctx, input.UserID, status)
	}

	return &LogExpenseOutput{
		Expense: expense,
		Status:  status,
		Warned:  warned,
	}, nil
}

// notify never fails the expense; delivery problems are only logged.
func (uc *LogExpenseUseCase) notify(ctx context.Context, userID uuid.UUID, status CategoryStatus) {
	if uc.notifier == nil {
		return
	}

	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		slog.Warn("Budget warning skipped", "user_id", userID, "error", err)
		return
	}
	if !user.MilestoneReminders {
		return
	}

	err = uc.notifier.NotifyBudgetWarning(ctx, adapter.BudgetWarningNotice{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Categories: []adapter.CategoryWarning{{
			Category: status.Category,
			Spent:    status.Spent,
			Budget:   status.Budget,
			Percent:  status.PercentUsed,
			Severity: status.Severity,
		}},
	})
	if err != nil {
		slog.Warn("Budget warning failed", "user_id", userID, "category", status.Category, "error", err)
	}
}

// ListExpensesInput represents the input for listing expenses.
type ListExpensesInput struct {
	UserID uuid.UUID
	Since  *time.Time
	Limit  int
}

// ListExpensesOutput represents the output of listing expenses.
type ListExpensesOutput struct {
	Expenses []*entity.Expense
	Total    decimal.Decimal
}

// ListExpensesUseCase lists expenses newest first. Without a date or a limit it
// returns the most recent few.
type ListExpensesUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewListExpensesUseCase creates a new ListExpensesUseCase instance.
func NewListExpensesUseCase(expenseRepo adapter.ExpenseRepository) *ListExpensesUseCase {
	return &ListExpensesUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute performs the expense listing.
func (uc *ListExpensesUseCase) Execute(ctx context.Context, input ListExpensesInput) (*ListExpensesOutput, error) {
	if input.Limit < 0 {
		return nil, invalidExpense("limit cannot be negative")
	}

	var since time.Time
	if input.Since != nil {
		since = *input.Since
	}
	limit := input.Limit
	if input.Since == nil && limit == 0 {
		limit = defaultRecentExpenses
	}

	expenses, err := uc.expenseRepo.FindByUserID(ctx, input.UserID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	if expenses == nil {
		expenses = []*entity.Expense{}
	}

	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}

	return &ListExpensesOutput{
		Expenses: expenses,
		Total:    total,
	}, nil
}

// DeleteExpenseInput represents the input for deleting an expense.
type DeleteExpenseInput struct {
	UserID    uuid.UUID
	ExpenseID uuid.UUID
}

// DeleteExpenseUseCase removes a logged expense.
type DeleteExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewDeleteExpenseUseCase creates a new DeleteExpenseUseCase instance.
func NewDeleteExpenseUseCase(expenseRepo adapter.ExpenseRepository) *DeleteExpenseUseCase {
	return &DeleteExpenseUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute performs the expense deletion.
func (uc *DeleteExpenseUseCase) Execute(ctx context.Context, input DeleteExpenseInput) error {
	expense, err := uc.expenseRepo.FindByID(ctx, input.ExpenseID)
	if err != nil {
		if errors.Is(err, domainerror.ErrExpenseNotFound) {
			return expenseNotFound()
		}
		return fmt.Errorf("failed to find expense: %w", err)
	}
	// Another user's expense is reported as missing
	if expense.UserID != input.UserID {
		return expenseNotFound()
	}

	if err := uc.expenseRepo.Delete(ctx, expense.ID); err != nil {
		if errors.Is(err, domainerror.ErrExpenseNotFound) {
			return expenseNotFound()
		}
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}

// SpendingStatusInput represents the input for the spending status.
type SpendingStatusInput struct {
	UserID uuid.UUID
}

// SpendingStatusOutput is the month-to-date spending against each category budget.
type SpendingStatusOutput struct {
	MonthStart    time.Time
	DaysRemaining int
	Income        decimal.Decimal
	TotalBills    decimal.Decimal
	Categories    []CategoryStatus
	Currency      string
}

// SpendingStatusUseCase reports how this month's spending compares to the budget.
type SpendingStatusUseCase struct {
	expenseRepo adapter.ExpenseRepository
	resolver    *EnvelopeResolver
	clock       func() time.Time
}

// NewSpendingStatusUseCase creates a new SpendingStatusUseCase instance.
func NewSpendingStatusUseCase(expenseRepo adapter.ExpenseRepository, resolver *EnvelopeResolver) *SpendingStatusUseCase {
	return &SpendingStatusUseCase{
		expenseRepo: expenseRepo,
		resolver:    resolver,
		clock:       func() time.Time { return time.Now().UTC() },
	}
}

// Execute computes the spending status.
func (uc *SpendingStatusUseCase) Execute(ctx context.Context, input SpendingStatusInput) (*SpendingStatusOutput, error) {
	envelope, err := uc.resolver.Resolve(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	start, daysRemaining := monthBounds(uc.clock())
	expenses, err := uc.expenseRepo.FindByUserID(ctx, input.UserID, start, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	spent := entity.SpentByCategory(expenses)
	out := &SpendingStatusOutput{
		MonthStart:    start,
		DaysRemaining: daysRemaining,
		Income:        envelope.Profile.MonthlyIncome,
		TotalBills:    envelope.TotalBills,
		Categories:    make([]CategoryStatus, 0, len(entity.ExpenseCategories)),
		Currency:      envelope.Profile.Currency,
	}
	for _, c := range entity.ExpenseCategories {
		out.Categories = append(out.Categories, categoryStatus(envelope.Profile, envelope.TotalBills, c, spent[c], daysRemaining))
	}
	return out, nil
}

func invalidExpense(message string) error {
	return domainerror.NewBudgetError(domainerror.ErrCodeInvalidExpense, message, domainerror.ErrInvalidExpense)
}

func expenseNotFound() error {
	return domainerror.NewBudgetError(domainerror.ErrCodeExpenseNotFound, "expense not found", domainerror.ErrExpenseNotFound)
}
