// Package planning contains the use cases that run the goal planning engine against
// stored goals and budgets.
package planning

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avecbanker/backend/internal/application/adapter"
	"github.com/avecbanker/backend/internal/application/usecase/budget"
	engine "github.com/avecbanker/backend/internal/domain/planning"
)

// RebalanceInput represents the input for a rebalance.
type RebalanceInput struct {
	UserID   uuid.UUID
	Envelope *decimal.Decimal // Optional override of the budget envelope
	Apply    bool             // Store the new contributions
}

// RebalanceOutput represents the output of a rebalance.
type RebalanceOutput struct {
	Report  engine.RebalanceReport
	Applied bool
}

// RebalanceUseCase recomputes every active goal's contribution and optionally stores
// the result. Applying holds the user's planning lock so two rebalances cannot
// interleave their writes.
type RebalanceUseCase struct {
	loader   inputLoader
	goalRepo adapter.GoalRepository
	lock     adapter.OwnerLock
	clock    func() time.Time
}

// NewRebalanceUseCase creates a new RebalanceUseCase instance.
func NewRebalanceUseCase(goalRepo adapter.GoalRepository, resolver *budget.EnvelopeResolver, lock adapter.OwnerLock) *RebalanceUseCase {
	return &RebalanceUseCase{
		loader:   inputLoader{goalRepo: goalRepo, resolver: resolver},
		goalRepo: goalRepo,
		lock:     lock,
		clock:    utcNow,
	}
}

// Execute performs the rebalance.
func (uc *RebalanceUseCase) Execute(ctx context.Context, input RebalanceInput) (*RebalanceOutput, error) {
	if input.Apply {
		release, err := uc.lock.Acquire(ctx, input.UserID)
		if err != nil {
			return nil, err
		}
		defer func() {
			if releaseErr := release(context.WithoutCancel(ctx)); releaseErr != nil {
				slog.Warn("Failed to release planning lock", "user_id", input.UserID, "error", releaseErr)
			}
		}()
	}

	in, err := uc.loader.load(ctx, input.UserID, input.Envelope)
	if err != nil {
		return nil, err
	}

	report, err := engine.Rebalance(in.goals, in.envelope, in.cadence, uc.clock())
	if err != nil {
		return nil, err
	}

	if !input.Apply {
		return &RebalanceOutput{Report: report}, nil
	}

	if err := uc.goalRepo.UpdateContributions(ctx, input.UserID, report.Allocation.Contributions); err != nil {
		return nil, fmt.Errorf("failed to store contributions: %w", err)
	}

	slog.Info("Rebalance applied",
		"user_id", input.UserID,
		"goals", len(report.Plans),
		"envelope", in.envelope.StringFixed(2),
		"remainder", report.Remainder.StringFixed(2),
	)

	return &RebalanceOutput{
		Report:  report,
		Applied: true,
	}, nil
}

func utcNow() time.Time {
	return time.Now().UTC()
}
