// Package budget contains budget profile and bill use cases.
package budget

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avecbanker/backend/internal/application/adapter"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
	"github.com/avecbanker/backend/internal/domain/planning"
)

// UpdateBudgetInput represents the input for budget update. Nil fields are left unchanged.
type UpdateBudgetInput struct {
	UserID        uuid.UUID
	MonthlyIncome *decimal.Decimal
	NeedsPct      *int
	WantsPct      *int
	SavingsPct    *int
	ExtraPct      *int
	Cadence       *string
	Currency      *string
}

// UpdateBudgetOutput represents the output of budget update.
type UpdateBudgetOutput struct {
	Envelope *Envelope
}

// UpdateBudgetUseCase handles budget profile updates.
type UpdateBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
	resolver   *EnvelopeResolver
}

// NewUpdateBudgetUseCase creates a new UpdateBudgetUseCase instance.
func NewUpdateBudgetUseCase(budgetRepo adapter.BudgetRepository, resolver *EnvelopeResolver) *UpdateBudgetUseCase {
	return &UpdateBudgetUseCase{
		budgetRepo: budgetRepo,
		resolver:   resolver,
	}
}

// Execute performs the budget update.
func (uc *UpdateBudgetUseCase) Execute(ctx context.Context, input UpdateBudgetInput) (*UpdateBudgetOutput, error) {
	current, err := uc.resolver.profile(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	profile := *current

	if input.MonthlyIncome != nil {
		if input.MonthlyIncome.IsNegative() {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeInvalidIncome,
				"monthly income cannot be negative",
				domainerror.ErrInvalidIncome,
			)
		}
		profile.MonthlyIncome = *input.MonthlyIncome
	}

	for _, pct := range []struct {
		value *int
		field *int
	}{
		{input.NeedsPct, &profile.NeedsPct},
		{input.WantsPct, &profile.WantsPct},
		{input.SavingsPct, &profile.SavingsPct},
		{input.ExtraPct, &profile.ExtraPct},
	} {
		if pct.value == nil {
			continue
		}
		if *pct.value < 0 || *pct.value > 100 {
			return nil, invalidSplit("each percentage must be between 0 and 100")
		}
		*pct.field = *pct.value
	}
	if profile.SplitTotal() != 100 {
		return nil, invalidSplit(fmt.Sprintf("split percentages add up to %d, not 100", profile.SplitTotal()))
	}

	if input.Cadence != nil {
		cadence, err := planning.ParseCadence(*input.Cadence)
		if err != nil {
			return nil, domainerror.NewBudgetError(domainerror.ErrCodeInvalidCadence, "invalid cadence", err)
		}
		profile.Cadence = cadence.String()
	}
	if input.Currency != nil {
		profile.Currency = strings.ToUpper(strings.TrimSpace(*input.Currency))
	}

	profile.UpdatedAt = time.Now().UTC()
	if err := uc.budgetRepo.Save(ctx, &profile); err != nil {
		return nil, fmt.Errorf("failed to save budget profile: %w", err)
	}

	slog.Info("Budget updated", "user_id", profile.UserID, "cadence", profile.Cadence, "extra_pct", profile.ExtraPct)

	envelope, err := uc.resolver.Resolve(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	return &UpdateBudgetOutput{
		Envelope: envelope,
	}, nil
}

func invalidSplit(message string) error {
	return domainerror.NewBudgetError(domainerror.ErrCodeInvalidSplit, message, domainerror.ErrInvalidSplit)
}
