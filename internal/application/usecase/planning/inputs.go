// Package planning contains the use cases that run the goal planning engine against
// stored goals and budgets.
package planning

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avecbanker/backend/internal/application/adapter"
	"github.com/avecbanker/backend/internal/application/usecase/budget"
	"github.com/avecbanker/backend/internal/application/usecase/goal"
	"github.com/avecbanker/backend/internal/domain/entity"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
	engine "github.com/avecbanker/backend/internal/domain/planning"
)

// planInputs is everything the engine needs for one user.
type planInputs struct {
	goals    []entity.Goal
	envelope decimal.Decimal
	cadence  engine.Cadence
}

type inputLoader struct {
	goalRepo adapter.GoalRepository
	resolver *budget.EnvelopeResolver
}

// load reads the user's active goals and envelope. A non-nil override replaces the
// envelope derived from the budget profile.
func (l inputLoader) load(ctx context.Context, userID uuid.UUID, override *decimal.Decimal) (*planInputs, error) {
	if override != nil && override.IsNegative() {
		return nil, domainerror.InvalidAmount("envelope cannot be negative")
	}

	goals, err := l.goalRepo.FindByUserID(ctx, userID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	envelope, err := l.resolver.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}

	in := &planInputs{
		goals:    goal.Values(goals),
		envelope: envelope.PerPeriod,
		cadence:  envelope.Cadence,
	}
	if override != nil {
		in.envelope = *override
	}
	return in, nil
}
