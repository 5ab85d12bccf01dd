// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avecbanker/backend/internal/application/adapter"
	"github.com/avecbanker/backend/internal/domain/entity"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
	"github.com/avecbanker/backend/internal/domain/planning"
)

// UpdateGoalInput represents the input for goal update. Nil fields are left unchanged.
type UpdateGoalInput struct {
	UserID              uuid.UUID
	Ref                 string
	Name                *string
	TargetAmount        *decimal.Decimal
	CurrentAmount       *decimal.Decimal // Explicit balance correction
	MonthlyContribution *decimal.Decimal
	Priority            *int
	TargetDate          *time.Time
	ClearTargetDate     bool
}

// UpdateGoalOutput represents the output of goal update.
type UpdateGoalOutput struct {
	Goal *entity.Goal
}

// UpdateGoalUseCase handles goal update logic.
type UpdateGoalUseCase struct {
	goalRepo adapter.GoalRepository
	lock     adapter.OwnerLock
}

// NewUpdateGoalUseCase creates a new UpdateGoalUseCase instance.
func NewUpdateGoalUseCase(goalRepo adapter.GoalRepository, lock adapter.OwnerLock) *UpdateGoalUseCase {
	return &UpdateGoalUseCase{
		goalRepo: goalRepo,
		lock:     lock,
	}
}

// Execute performs the goal update under the owner's lock.
func (uc *UpdateGoalUseCase) Execute(ctx context.Context, input UpdateGoalInput) (*UpdateGoalOutput, error) {
	var out *UpdateGoalOutput
	err := withOwnerLock(ctx, uc.lock, input.UserID, func() error {
		var err error
		out, err = uc.update(ctx, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *UpdateGoalUseCase) update(ctx context.Context, input UpdateGoalInput) (*UpdateGoalOutput, error) {
	goal, err := ResolveGoal(ctx, uc.goalRepo, input.UserID, input.Ref)
	if err != nil {
		return nil, err
	}
	if !goal.Active {
		return nil, goalClosed(goal)
	}

	updated := *goal

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeMissingGoalFields,
				"name cannot be empty",
				domainerror.ErrInvalidGoal,
			)
		}
		if !goal.MatchesName(name) {
			if err := ensureNameAvailable(ctx, uc.goalRepo, input.UserID, name, goal.ID); err != nil {
				return nil, err
			}
		}
		updated.Name = name
	}
	if input.TargetAmount != nil {
		updated.TargetAmount = *input.TargetAmount
	}
	if input.CurrentAmount != nil {
		updated.CurrentAmount = *input.CurrentAmount
	}
	if input.MonthlyContribution != nil {
		updated.MonthlyContribution = *input.MonthlyContribution
	}
	if input.Priority != nil {
		updated.Priority = *input.Priority
	}
	if input.ClearTargetDate {
		updated.TargetDate = nil
	} else if input.TargetDate != nil {
		updated.TargetDate = input.TargetDate
	}

	if err := planning.ValidateGoal(updated); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updated.UpdatedAt = now
	if updated.IsComplete() {
		updated.Close(now)
	}

	if err := uc.goalRepo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	return &UpdateGoalOutput{
		Goal: &updated,
	}, nil
}
