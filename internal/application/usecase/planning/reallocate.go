package planning

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avecbanker/backend/internal/application/adapter"
	"github.com/avecbanker/backend/internal/application/usecase/budget"
	engine "github.com/avecbanker/backend/internal/domain/planning"
)

// SuggestReallocationOutput represents the suggested cuts for a new goal.
type SuggestReallocationOutput struct {
	Plan     engine.ReallocationPlan
	Envelope decimal.Decimal
	Cadence  engine.Cadence
}

// SuggestReallocationUseCase proposes how lower-priority goals could make room for a
// goal the user is considering. Nothing is stored.
type SuggestReallocationUseCase struct {
	loader inputLoader
	clock  func() time.Time
}

// NewSuggestReallocationUseCase creates a new SuggestReallocationUseCase instance.
func NewSuggestReallocationUseCase(goalRepo adapter.GoalRepository, resolver *budget.EnvelopeResolver) *SuggestReallocationUseCase {
	return &SuggestReallocationUseCase{
		loader: inputLoader{goalRepo: goalRepo, resolver: resolver},
		clock:  utcNow,
	}
}

// Execute computes the suggestion for the goal described by input.
func (uc *SuggestReallocationUseCase) Execute(ctx context.Context, input SimulateGoalInput) (*SuggestReallocationOutput, error) {
	now := uc.clock()
	hypothetical, err := hypotheticalGoal(input, now)
	if err != nil {
		return nil, err
	}

	in, err := uc.loader.load(ctx, input.UserID, input.Envelope)
	if err != nil {
		return nil, err
	}

	plan, err := engine.SuggestReallocation(in.goals, in.envelope, hypothetical, in.cadence, now)
	if err != nil {
		return nil, err
	}

	return &SuggestReallocationOutput{
		Plan:     plan,
		Envelope: in.envelope,
		Cadence:  in.cadence,
	}, nil
}
