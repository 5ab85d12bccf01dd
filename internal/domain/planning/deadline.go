package planning

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avecbanker/backend/internal/domain/entity"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
)

// DeadlinePlan is the contribution a goal needs to reach its target by its target date.
type DeadlinePlan struct {
	GoalID           uuid.UUID
	TargetDate       time.Time
	PeriodsAvailable int
	Required         decimal.Decimal // Per period, rounded up to the cent
	Feasible         bool            // Required fits in the envelope
	Shortfall        decimal.Decimal // Required minus envelope when not feasible
	Overdue          bool
}

// RequiredContribution computes what the goal must receive every period to meet its
// target date and whether the envelope can cover it. An overdue goal needs its whole
// remaining balance in the next period.
func RequiredContribution(goal entity.Goal, envelope decimal.Decimal, cadence Cadence, now time.Time) (DeadlinePlan, error) {
	if err := cadence.Validate(); err != nil {
		return DeadlinePlan{}, err
	}
	if err := validateEnvelope(envelope); err != nil {
		return DeadlinePlan{}, err
	}
	if err := ValidateGoal(goal); err != nil {
		return DeadlinePlan{}, err
	}
	if goal.TargetDate == nil {
		return DeadlinePlan{}, domainerror.InvalidGoal("goal " + goal.Name + " has no target date")
	}
	if !goal.IsBounded() {
		return DeadlinePlan{}, domainerror.InvalidGoal("goal " + goal.Name + " has no target amount")
	}

	periods := cadence.PeriodsBetween(now, *goal.TargetDate)
	if periods < 1 {
		periods = 1
	}
	required := goal.Remaining().Div(decimal.NewFromInt(int64(periods))).RoundCeil(2)

	plan := DeadlinePlan{
		GoalID:           goal.ID,
		TargetDate:       *goal.TargetDate,
		PeriodsAvailable: periods,
		Required:         required,
		Feasible:         required.LessThanOrEqual(envelope),
		Shortfall:        decimal.Zero,
		Overdue:          goal.IsOverdue(now),
	}
	if !plan.Feasible {
		plan.Shortfall = required.Sub(envelope)
	}
	return plan, nil
}
