// Package planning contains the use cases that run the goal planning engine against
// stored goals and budgets.
package planning

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avecbanker/backend/internal/application/adapter"
	"github.com/avecbanker/backend/internal/application/usecase/budget"
	"github.com/avecbanker/backend/internal/domain/entity"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
	engine "github.com/avecbanker/backend/internal/domain/planning"
)

// SimulateGoalInput describes a goal the user is considering.
type SimulateGoalInput struct {
	UserID              uuid.UUID
	Envelope            *decimal.Decimal
	Name                string
	Kind                entity.GoalKind
	TargetAmount        decimal.Decimal
	CurrentAmount       decimal.Decimal
	MonthlyContribution decimal.Decimal
	Priority            int
	TargetDate          *time.Time
}

// SimulateGoalOutput represents the output of a simulation.
type SimulateGoalOutput struct {
	Report   engine.SimulationReport
	Envelope decimal.Decimal
	Cadence  engine.Cadence
}

// SimulateGoalUseCase previews the effect of adding a goal. Nothing is stored.
type SimulateGoalUseCase struct {
	loader inputLoader
	clock  func() time.Time
}

// NewSimulateGoalUseCase creates a new SimulateGoalUseCase instance.
func NewSimulateGoalUseCase(goalRepo adapter.GoalRepository, resolver *budget.EnvelopeResolver) *SimulateGoalUseCase {
	return &SimulateGoalUseCase{
		loader: inputLoader{goalRepo: goalRepo, resolver: resolver},
		clock:  utcNow,
	}
}

// Execute performs the simulation.
func (uc *SimulateGoalUseCase) Execute(ctx context.Context, input SimulateGoalInput) (*SimulateGoalOutput, error) {
	now := uc.clock()
	hypothetical, err := hypotheticalGoal(input, now)
	if err != nil {
		return nil, err
	}

	in, err := uc.loader.load(ctx, input.UserID, input.Envelope)
	if err != nil {
		return nil, err
	}

	report, err := engine.Simulate(in.goals, in.envelope, hypothetical, in.cadence, now)
	if err != nil {
		return nil, err
	}

	return &SimulateGoalOutput{
		Report:   report,
		Envelope: in.envelope,
		Cadence:  in.cadence,
	}, nil
}

// hypotheticalGoal builds the unsaved goal described by the input.
func hypotheticalGoal(input SimulateGoalInput, now time.Time) (entity.Goal, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Kind == "" {
		return entity.Goal{}, domainerror.NewGoalError(
			domainerror.ErrCodeMissingGoalFields,
			"name and kind are required",
			domainerror.ErrInvalidGoal,
		)
	}

	return entity.Goal{
		ID:                  uuid.New(),
		UserID:              input.UserID,
		Name:                name,
		Kind:                input.Kind,
		TargetAmount:        input.TargetAmount,
		CurrentAmount:       input.CurrentAmount,
		MonthlyContribution: input.MonthlyContribution,
		Priority:            input.Priority,
		TargetDate:          input.TargetDate,
		Active:              true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}, nil
}
