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

// ProjectGoalInput represents the input for projecting one goal.
type ProjectGoalInput struct {
	UserID uuid.UUID
	Ref    string
	Rate   *decimal.Decimal // Defaults to the goal's planned contribution
	Until  *time.Time       // Also report the balance reached by this date
}

// ProjectGoalOutput represents the projection of one goal.
type ProjectGoalOutput struct {
	Goal          *entity.Goal
	Projection    engine.Projection
	Cadence       engine.Cadence
	AccumulatedBy *decimal.Decimal
}

// ProjectGoalUseCase projects a single goal without a full rebalance.
type ProjectGoalUseCase struct {
	goalRepo adapter.GoalRepository
	resolver *budget.EnvelopeResolver
	clock    func() time.Time
}

// NewProjectGoalUseCase creates a new ProjectGoalUseCase instance.
func NewProjectGoalUseCase(goalRepo adapter.GoalRepository, resolver *budget.EnvelopeResolver) *ProjectGoalUseCase {
	return &ProjectGoalUseCase{
		goalRepo: goalRepo,
		resolver: resolver,
		clock:    utcNow,
	}
}

// Execute performs the projection.
func (uc *ProjectGoalUseCase) Execute(ctx context.Context, input ProjectGoalInput) (*ProjectGoalOutput, error) {
	g, err := goal.ResolveGoal(ctx, uc.goalRepo, input.UserID, input.Ref)
	if err != nil {
		return nil, err
	}

	envelope, err := uc.resolver.Resolve(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	rate := g.MonthlyContribution
	if input.Rate != nil {
		rate = *input.Rate
	}

	now := uc.clock()
	projection, err := engine.Project(*g, rate, envelope.Cadence, now)
	if err != nil {
		return nil, err
	}

	out := &ProjectGoalOutput{
		Goal:       g,
		Projection: projection,
		Cadence:    envelope.Cadence,
	}

	if input.Until != nil {
		total, err := engine.AccumulatedBy(*g, rate, envelope.Cadence, now, *input.Until)
		if err != nil {
			return nil, err
		}
		out.AccumulatedBy = &total
	}

	return out, nil
}
