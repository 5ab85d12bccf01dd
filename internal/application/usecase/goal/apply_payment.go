// Package goal contains goal-related use cases.
package goal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avecbanker/backend/internal/application/adapter"
	"github.com/avecbanker/backend/internal/domain/entity"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
	"github.com/avecbanker/backend/internal/domain/planning"
)

// ApplyPaymentInput represents a payment towards a goal.
type ApplyPaymentInput struct {
	UserID uuid.UUID
	Ref    string
	Amount decimal.Decimal
}

// ApplyPaymentOutput represents the goal after the payment.
type ApplyPaymentOutput struct {
	Goal       *entity.Goal
	Milestones []int
	Completed  bool
}

// ApplyPaymentUseCase adds a payment to a goal's balance, completes bounded goals that
// reach their target and tells the owner about crossed milestones.
type ApplyPaymentUseCase struct {
	goalRepo adapter.GoalRepository
	userRepo adapter.UserRepository
	notifier adapter.GoalNotifier
	lock     adapter.OwnerLock
}

// NewApplyPaymentUseCase creates a new ApplyPaymentUseCase instance.
func NewApplyPaymentUseCase(goalRepo adapter.GoalRepository, userRepo adapter.UserRepository, notifier adapter.GoalNotifier, lock adapter.OwnerLock) *ApplyPaymentUseCase {
	return &ApplyPaymentUseCase{
		goalRepo: goalRepo,
		userRepo: userRepo,
		notifier: notifier,
		lock:     lock,
	}
}

// Execute applies the payment. The goal is read and written under the owner's lock so
// concurrent payments and rebalances cannot lose each other's writes.
func (uc *ApplyPaymentUseCase) Execute(ctx context.Context, input ApplyPaymentInput) (*ApplyPaymentOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.InvalidAmount("payment must be greater than zero")
	}

	var (
		goal   *entity.Goal
		before decimal.Decimal
	)
	err := withOwnerLock(ctx, uc.lock, input.UserID, func() error {
		var err error
		goal, err = ResolveGoal(ctx, uc.goalRepo, input.UserID, input.Ref)
		if err != nil {
			return err
		}
		if !goal.Active {
			return goalClosed(goal)
		}
		if goal.IsBounded() && input.Amount.GreaterThan(goal.Remaining()) {
			return domainerror.InvalidAmount(fmt.Sprintf(
				"payment %s exceeds the %s left on %q",
				input.Amount.StringFixed(2), goal.Remaining().StringFixed(2), goal.Name))
		}

		before = goal.CurrentAmount
		goal.ApplyPayment(input.Amount, time.Now().UTC())

		if err := uc.goalRepo.UpdateProgress(ctx, goal); err != nil {
			return fmt.Errorf("failed to apply payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	crossed := planning.Milestones(before, goal.CurrentAmount, goal.TargetAmount)
	completed := !goal.Active

	slog.Info("Payment applied",
		"user_id", goal.UserID,
		"goal_id", goal.ID,
		"amount", input.Amount.StringFixed(2),
		"completed", completed,
	)

	if len(crossed) > 0 {
		uc.notify(ctx, goal, crossed, completed)
	}

	return &ApplyPaymentOutput{
		Goal:       goal,
		Milestones: crossed,
		Completed:  completed,
	}, nil
}

// notify never fails the payment; delivery problems are only logged.
func (uc *ApplyPaymentUseCase) notify(ctx context.Context, goal *entity.Goal, crossed []int, completed bool) {
	if uc.notifier == nil {
		return
	}

	user, err := uc.userRepo.FindByID(ctx, goal.UserID)
	if err != nil {
		slog.Warn("Milestone notification skipped", "goal_id", goal.ID, "error", err)
		return
	}
	if !user.MilestoneReminders {
		return
	}

	err = uc.notifier.NotifyMilestones(ctx, adapter.MilestoneNotice{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		GoalName:  goal.Name,
		Percents:  crossed,
		Current:   goal.CurrentAmount,
		Target:    goal.TargetAmount,
		Completed: completed,
	})
	if err != nil {
		slog.Warn("Milestone notification failed", "goal_id", goal.ID, "error", err)
	}
}
