package planning

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avecbanker/backend/internal/domain/entity"
)

// Projection estimates when a goal completes at a fixed contribution per period.
type Projection struct {
	GoalID    uuid.UUID
	Rate      decimal.Decimal
	Remaining decimal.Decimal

	// Periods is only meaningful when Infinite is false.
	Periods       int
	Infinite      bool
	ProjectedDate *time.Time

	Overdue         bool
	MeetsTargetDate bool // True when there is no target date to miss
}

// Project computes the number of periods, and the date, at which the goal reaches its
// target when rate is contributed every period. Open-ended savings goals and unmet
// goals with a zero rate never complete.
func Project(goal entity.Goal, rate decimal.Decimal, cadence Cadence, now time.Time) (Projection, error) {
	if err := cadence.Validate(); err != nil {
		return Projection{}, err
	}
	if err := validateRate(rate); err != nil {
		return Projection{}, err
	}
	if err := ValidateGoal(goal); err != nil {
		return Projection{}, err
	}
	return project(goal, rate, cadence, now), nil
}

// project assumes validated inputs.
func project(goal entity.Goal, rate decimal.Decimal, cadence Cadence, now time.Time) Projection {
	p := Projection{
		GoalID:    goal.ID,
		Rate:      rate,
		Remaining: goal.Remaining(),
		Overdue:   goal.IsOverdue(now),
	}

	switch {
	case !goal.IsBounded():
		p.Infinite = true
	case p.Remaining.IsZero():
		p.ProjectedDate = &now
	case rate.IsZero():
		p.Infinite = true
	default:
		p.Periods = periodsToCover(p.Remaining, rate)
		date := cadence.Advance(now, p.Periods)
		p.ProjectedDate = &date
	}

	p.MeetsTargetDate = meetsTargetDate(goal, p)
	return p
}

func meetsTargetDate(goal entity.Goal, p Projection) bool {
	if goal.TargetDate == nil || !goal.IsBounded() {
		return true
	}
	if p.ProjectedDate == nil {
		return false
	}
	return !dateOnly(*p.ProjectedDate).After(dateOnly(*goal.TargetDate))
}

// periodsToCover returns ceil(amount / rate) without losing precision to division.
func periodsToCover(amount, rate decimal.Decimal) int {
	q, r := amount.QuoRem(rate, 0)
	periods := int(q.IntPart())
	if !r.IsZero() {
		periods++
	}
	return periods
}

// AccumulatedBy returns the balance the goal reaches by date when rate is contributed
// every whole period until then. Bounded goals stop at their target.
func AccumulatedBy(goal entity.Goal, rate decimal.Decimal, cadence Cadence, now, date time.Time) (decimal.Decimal, error) {
	if err := cadence.Validate(); err != nil {
		return decimal.Zero, err
	}
	if err := validateRate(rate); err != nil {
		return decimal.Zero, err
	}
	if err := ValidateGoal(goal); err != nil {
		return decimal.Zero, err
	}

	periods := cadence.PeriodsBetween(now, date)
	total := goal.CurrentAmount.Add(rate.Mul(decimal.NewFromInt(int64(periods))))
	if goal.IsBounded() {
		total = decimal.Min(total, goal.TargetAmount)
	}
	return total, nil
}
