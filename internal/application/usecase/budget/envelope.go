// Package budget contains budget profile and bill use cases.
package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avecbanker/backend/internal/application/adapter"
	"github.com/avecbanker/backend/internal/domain/entity"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
	"github.com/avecbanker/backend/internal/domain/planning"
)

// Envelope is the extra budget available to goals.
type Envelope struct {
	Monthly    decimal.Decimal
	PerPeriod  decimal.Decimal
	Cadence    planning.Cadence
	TotalBills decimal.Decimal
	Profile    *entity.BudgetProfile
}

// EnvelopeResolver derives a user's envelope from their budget profile and bills.
type EnvelopeResolver struct {
	budgetRepo      adapter.BudgetRepository
	billRepo        adapter.BillRepository
	defaultCadence  string
	defaultCurrency string
}

// NewEnvelopeResolver creates a new EnvelopeResolver instance.
func NewEnvelopeResolver(budgetRepo adapter.BudgetRepository, billRepo adapter.BillRepository, defaultCadence, defaultCurrency string) *EnvelopeResolver {
	return &EnvelopeResolver{
		budgetRepo:      budgetRepo,
		billRepo:        billRepo,
		defaultCadence:  defaultCadence,
		defaultCurrency: defaultCurrency,
	}
}

// Resolve computes the envelope. A user without a profile gets a zero envelope on the
// default cadence.
func (r *EnvelopeResolver) Resolve(ctx context.Context, userID uuid.UUID) (*Envelope, error) {
	profile, err := r.profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	cadence, err := planning.ParseCadence(profile.Cadence)
	if err != nil {
		return nil, domainerror.NewBudgetError(domainerror.ErrCodeInvalidCadence, "stored cadence is invalid", err)
	}

	bills, err := r.billRepo.FindByUserID(ctx, userID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}

	totalBills := entity.TotalBills(bills)
	monthly := profile.MonthlyExtra(totalBills)

	return &Envelope{
		Monthly:    monthly,
		PerPeriod:  cadence.FromMonthly(monthly),
		Cadence:    cadence,
		TotalBills: totalBills,
		Profile:    profile,
	}, nil
}

func (r *EnvelopeResolver) profile(ctx context.Context, userID uuid.UUID) (*entity.BudgetProfile, error) {
	profile, err := r.budgetRepo.FindByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if errors.Is(err, domainerror.ErrBudgetNotFound) {
		return entity.NewBudgetProfile(userID, r.defaultCadence, r.defaultCurrency), nil
	}
	return nil, fmt.Errorf("failed to find budget profile: %w", err)
}
