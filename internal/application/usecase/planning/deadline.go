// Package planning contains the use cases that run the goal planning engine against
// stored goals and budgets.
package planning

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avecbanker/backend/internal/application/adapter"
	"github.com/avecbanker/backend/internal/application/usecase/budget"
	"github.com/avecbanker/backend/internal/application/usecase/goal"
	"github.com/avecbanker/backend/internal/domain/entity"
	engine "github.com/avecbanker/backend/internal/domain/planning"
)

// DeadlineInput represents the input for a deadline check.
type DeadlineInput struct {
	UserID   uuid.UUID
	Ref      string
	Envelope *decimal.Decimal
}

// DeadlineOutput represents what a goal needs to meet its target date.
type DeadlineOutput struct {
	Goal    *entity.Goal
	Plan    engine.DeadlinePlan
	Cadence engine.Cadence
}

// DeadlineUseCase computes the contribution a goal needs to hit its target date.
type DeadlineUseCase struct {
	goalRepo adapter.GoalRepository
	resolver *budget.EnvelopeResolver
	clock    func() time.Time
}

// NewDeadlineUseCase creates a new DeadlineUseCase instance.
func NewDeadlineUseCase(goalRepo adapter.GoalRepository, resolver *budget.EnvelopeResolver) *DeadlineUseCase {
	return &DeadlineUseCase{
		goalRepo: goalRepo,
		resolver: resolver,
		clock:    utcNow,
	}
}

// Execute performs the deadline check.
func (uc *DeadlineUseCase) Execute(ctx context.Context, input DeadlineInput) (*DeadlineOutput, error) {
	g, err := goal.ResolveGoal(ctx, uc.goalRepo, input.UserID, input.Ref)
	if err != nil {
		return nil, err
	}

	envelope, err := uc.resolver.Resolve(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	available := envelope.PerPeriod
	if input.Envelope != nil {
		available = *input.Envelope
	}

	plan, err := engine.RequiredContribution(*g, available, envelope.Cadence, uc.clock())
	if err != nil {
		return nil, err
	}

	return &DeadlineOutput{
		Goal:    g,
		Plan:    plan,
		Cadence: envelope.Cadence,
	}, nil
}
