// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/avecbanker/backend/internal/application/adapter"
	"github.com/avecbanker/backend/internal/domain/entity"
)

// CloseGoalInput represents the input for closing a goal.
type CloseGoalInput struct {
	UserID uuid.UUID
	Ref    string
}

// CloseGoalOutput represents the output of closing a goal.
type CloseGoalOutput struct {
	Goal *entity.Goal
}

// CloseGoalUseCase marks a goal inactive. The goal stays in history.
type CloseGoalUseCase struct {
	goalRepo adapter.GoalRepository
	lock     adapter.OwnerLock
}

// NewCloseGoalUseCase creates a new CloseGoalUseCase instance.
func NewCloseGoalUseCase(goalRepo adapter.GoalRepository, lock adapter.OwnerLock) *CloseGoalUseCase {
	return &CloseGoalUseCase{
		goalRepo: goalRepo,
		lock:     lock,
	}
}

// Execute closes the goal.
func (uc *CloseGoalUseCase) Execute(ctx context.Context, input CloseGoalInput) (*CloseGoalOutput, error) {
	var goal *entity.Goal
	err := withOwnerLock(ctx, uc.lock, input.UserID, func() error {
		var err error
		goal, err = ResolveGoal(ctx, uc.goalRepo, input.UserID, input.Ref)
		if err != nil {
			return err
		}
		if !goal.Active {
			return goalClosed(goal)
		}

		goal.Close(time.Now().UTC())

		if err := uc.goalRepo.UpdateProgress(ctx, goal); err != nil {
			return fmt.Errorf("failed to close goal: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Goal closed", "user_id", goal.UserID, "goal_id", goal.ID)

	return &CloseGoalOutput{
		Goal: goal,
	}, nil
}
