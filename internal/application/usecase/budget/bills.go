// Package budget contains budget profile and bill use cases.
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

// CreateBillInput represents the input for bill creation.
type CreateBillInput struct {
	UserID uuid.UUID
	Name   string
	Amount decimal.Decimal
	DueDay int
}

// CreateBillOutput represents the output of bill creation.
type CreateBillOutput struct {
	Bill *entity.Bill
}

// CreateBillUseCase handles bill creation.
type CreateBillUseCase struct {
	billRepo adapter.BillRepository
}

// NewCreateBillUseCase creates a new CreateBillUseCase instance.
func NewCreateBillUseCase(billRepo adapter.BillRepository) *CreateBillUseCase {
	return &CreateBillUseCase{
		billRepo: billRepo,
	}
}

// Execute performs the bill creation.
func (uc *CreateBillUseCase) Execute(ctx context.Context, input CreateBillInput) (*CreateBillOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewBudgetError(domainerror.ErrCodeMissingBudgetFields, "bill name is required", domainerror.ErrInvalidBill)
	}
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewBudgetError(domainerror.ErrCodeInvalidBill, "bill amount must be greater than zero", domainerror.ErrInvalidBill)
	}
	if input.DueDay < 1 || input.DueDay > 31 {
		return nil, domainerror.NewBudgetError(domainerror.ErrCodeInvalidBill, "due day must be between 1 and 31", domainerror.ErrInvalidBill)
	}

	bill := entity.NewBill(input.UserID, name, input.Amount, input.DueDay)
	if err := uc.billRepo.Create(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	slog.Info("Bill created", "user_id", bill.UserID, "bill_id", bill.ID)

	return &CreateBillOutput{
		Bill: bill,
	}, nil
}

// ListBillsInput represents the input for listing bills.
type ListBillsInput struct {
	UserID        uuid.UUID
	IncludeClosed bool
}

// ListBillsOutput represents the output of listing bills.
type ListBillsOutput struct {
	Bills []*entity.Bill
	Total decimal.Decimal // Active bills only
}

// ListBillsUseCase handles listing a user's bills.
type ListBillsUseCase struct {
	billRepo adapter.BillRepository
}

// NewListBillsUseCase creates a new ListBillsUseCase instance.
func NewListBillsUseCase(billRepo adapter.BillRepository) *ListBillsUseCase {
	return &ListBillsUseCase{
		billRepo: billRepo,
	}
}

// Execute performs the bill listing.
func (uc *ListBillsUseCase) Execute(ctx context.Context, input ListBillsInput) (*ListBillsOutput, error) {
	bills, err := uc.billRepo.FindByUserID(ctx, input.UserID, input.IncludeClosed)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	if bills == nil {
		bills = []*entity.Bill{}
	}

	return &ListBillsOutput{
		Bills: bills,
		Total: entity.TotalBills(bills),
	}, nil
}

// CloseBillInput represents the input for closing a bill.
type CloseBillInput struct {
	UserID uuid.UUID
	BillID uuid.UUID
}

// CloseBillUseCase deactivates a bill so it no longer reduces the envelope.
type CloseBillUseCase struct {
	billRepo adapter.BillRepository
}

// NewCloseBillUseCase creates a new CloseBillUseCase instance.
func NewCloseBillUseCase(billRepo adapter.BillRepository) *CloseBillUseCase {
	return &CloseBillUseCase{
		billRepo: billRepo,
	}
}

// Execute performs the bill close.
func (uc *CloseBillUseCase) Execute(ctx context.Context, input CloseBillInput) error {
	bill, err := uc.billRepo.FindByID(ctx, input.BillID)
	if err != nil {
		if errors.Is(err, domainerror.ErrBillNotFound) {
			return billNotFound()
		}
		return fmt.Errorf("failed to find bill: %w", err)
	}
	// Another user's bill is reported as missing
	if bill.UserID != input.UserID {
		return billNotFound()
	}

	bill.Active = false
	bill.UpdatedAt = time.Now().UTC()
	if err := uc.billRepo.Update(ctx, bill); err != nil {
		return fmt.Errorf("failed to close bill: %w", err)
	}
	return nil
}

func billNotFound() error {
	return domainerror.NewBudgetError(domainerror.ErrCodeBillNotFound, "bill not found", domainerror.ErrBillNotFound)
}
