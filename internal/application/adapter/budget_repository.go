// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/avecbanker/backend/internal/domain/entity"
)

// BudgetRepository defines the interface for budget profile persistence operations.
type BudgetRepository interface {
	// FindByUserID retrieves the budget profile of a user.
	// Returns domainerror.ErrBudgetNotFound when the user has no profile yet.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.BudgetProfile, error)

	// Save creates or replaces the budget profile of a user.
	Save(ctx context.Context, profile *entity.BudgetProfile) error
}

// BillRepository defines the interface for bill persistence operations.
type BillRepository interface {
	// Create creates a new bill in the database.
	Create(ctx context.Context, bill *entity.Bill) error

	// FindByID retrieves a bill by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error)

	// FindByUserID retrieves the bills of a user ordered by due day.
	FindByUserID(ctx context.Context, userID uuid.UUID, includeClosed bool) ([]*entity.Bill, error)

	// Update updates an existing bill in the database.
	Update(ctx context.Context, bill *entity.Bill) error
}

// ExpenseRepository defines the interface for expense persistence operations.
type ExpenseRepository interface {
	// Create stores a new expense.
	Create(ctx context.Context, expense *entity.Expense) error

	// FindByID retrieves an expense by its ID.
	// Returns domainerror.ErrExpenseNotFound when it does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)

	// FindByUserID retrieves a user's expenses newest first. A zero since includes every
	// expense and a limit of zero or less returns all matches.
	FindByUserID(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]*entity.Expense, error)

	// Delete removes an expense.
	Delete(ctx context.Context, id uuid.UUID) error
}
