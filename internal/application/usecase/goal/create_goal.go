// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avecbanker/backend/internal/application/adapter"
	"github.com/avecbanker/backend/internal/domain/entity"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
	"github.com/avecbanker/backend/internal/domain/planning"
)

// CreateGoalInput represents the input for goal creation.
type CreateGoalInput struct {
	UserID              uuid.UUID
	Name                string
	Kind                entity.GoalKind
	TargetAmount        decimal.Decimal
	CurrentAmount       decimal.Decimal // Optional initial balance
	MonthlyContribution decimal.Decimal // Optional planned contribution
	Priority            *int            // Optional, defaults to after the user's lowest priority
	TargetDate          *time.Time      // Optional
}

// CreateGoalOutput represents the output of goal creation.
type CreateGoalOutput struct {
	Goal *entity.Goal
}

// CreateGoalUseCase handles goal creation logic.
type CreateGoalUseCase struct {
	goalRepo adapter.GoalRepository
	lock     adapter.OwnerLock
}

// NewCreateGoalUseCase creates a new CreateGoalUseCase instance.
func NewCreateGoalUseCase(goalRepo adapter.GoalRepository, lock adapter.OwnerLock) *CreateGoalUseCase {
	return &CreateGoalUseCase{
		goalRepo: goalRepo,
		lock:     lock,
	}
}

// Execute performs the goal creation.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*CreateGoalOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Kind == "" {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeMissingGoalFields,
			"name and kind are required",
			domainerror.ErrInvalidGoal,
		)
	}
	if _, err := uuid.Parse(name); err == nil {
		return nil, domainerror.InvalidGoal("goal name cannot be an id")
	}

	var goal *entity.Goal
	err := withOwnerLock(ctx, uc.lock, input.UserID, func() error {
		priority, err := uc.priorityFor(ctx, input)
		if err != nil {
			return err
		}

		goal = entity.NewGoal(input.UserID, name, input.Kind, input.TargetAmount, priority)
		goal.CurrentAmount = input.CurrentAmount
		goal.MonthlyContribution = input.MonthlyContribution
		goal.TargetDate = input.TargetDate

		if err := planning.ValidateGoal(*goal); err != nil {
			return err
		}
		if goal.IsComplete() {
			return domainerror.InvalidGoal("goal is already complete")
		}

		if err := ensureNameAvailable(ctx, uc.goalRepo, input.UserID, name, uuid.Nil); err != nil {
			return err
		}

		if err := uc.goalRepo.Create(ctx, goal); err != nil {
			return fmt.Errorf("failed to create goal: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Goal created", "user_id", goal.UserID, "goal_id", goal.ID, "kind", goal.Kind, "priority", goal.Priority)

	return &CreateGoalOutput{
		Goal: goal,
	}, nil
}

func (uc *CreateGoalUseCase) priorityFor(ctx context.Context, input CreateGoalInput) (int, error) {
	if input.Priority != nil {
		return *input.Priority, nil
	}

	goals, err := uc.goalRepo.FindByUserID(ctx, input.UserID, false)
	if err != nil {
		return 0, fmt.Errorf("failed to list goals: %w", err)
	}
	lowest := 0
	for _, g := range goals {
		if g.Priority > lowest {
			lowest = g.Priority
		}
	}
	return lowest + 1, nil
}
