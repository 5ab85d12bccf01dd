// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/avecbanker/backend/internal/application/adapter"
	"github.com/avecbanker/backend/internal/domain/entity"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
	"github.com/avecbanker/backend/internal/domain/planning"
)

// ResolveGoal finds one of the user's goals by id or by case-insensitive name.
// A goal id that belongs to another user is reported as unauthorized.
func ResolveGoal(ctx context.Context, goalRepo adapter.GoalRepository, userID uuid.UUID, ref string) (*entity.Goal, error) {
	if id, err := uuid.Parse(ref); err == nil {
		goal, err := goalRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, domainerror.ErrGoalNotFound) {
				return nil, domainerror.GoalNotFound(ref)
			}
			return nil, fmt.Errorf("failed to find goal: %w", err)
		}
		if goal.UserID != userID {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeUnauthorizedGoalAccess,
				"not authorized to access this goal",
				domainerror.ErrUnauthorizedGoalAccess,
			)
		}
		return goal, nil
	}

	goals, err := goalRepo.FindByUserID(ctx, userID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	found, err := planning.FindGoal(Values(goals), ref)
	if err != nil {
		return nil, err
	}
	for _, g := range goals {
		if g.ID == found.ID {
			return g, nil
		}
	}
	return nil, domainerror.GoalNotFound(ref)
}

// Values copies goals into the value slice the planning functions take.
func Values(goals []*entity.Goal) []entity.Goal {
	out := make([]entity.Goal, 0, len(goals))
	for _, g := range goals {
		out = append(out, *g)
	}
	return out
}

func ensureNameAvailable(ctx context.Context, goalRepo adapter.GoalRepository, userID uuid.UUID, name string, excludeID uuid.UUID) error {
	taken, err := goalRepo.ExistsActiveByName(ctx, userID, name, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check goal name: %w", err)
	}
	if taken {
		return domainerror.NewGoalError(
			domainerror.ErrCodeGoalNameTaken,
			fmt.Sprintf("a goal named %q already exists", name),
			domainerror.ErrGoalNameTaken,
		)
	}
	return nil
}

func goalClosed(goal *entity.Goal) error {
	return domainerror.NewGoalError(
		domainerror.ErrCodeGoalClosed,
		fmt.Sprintf("goal %q is closed", goal.Name),
		domainerror.ErrGoalClosed,
	)
}
