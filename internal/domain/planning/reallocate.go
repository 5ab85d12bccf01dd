package planning

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avecbanker/backend/internal/domain/entity"
)

// maxReduction is the largest share of its current contribution a goal is asked to give up.
var maxReduction = decimal.New(3, -1)

// Reduction is a suggested cut to one lower-priority goal's contribution.
type Reduction struct {
	GoalID    uuid.UUID
	Name      string
	Priority  int
	Current   decimal.Decimal // Contribution in the current plan
	Suggested decimal.Decimal
	Freed     decimal.Decimal

	PeriodsBefore  int
	PeriodsAfter   int
	InfiniteBefore bool
	InfiniteAfter  bool
}

// Delay returns how many more periods the goal needs at the suggested contribution.
// It is zero when either projection never completes.
func (r Reduction) Delay() int {
	if r.InfiniteBefore || r.InfiniteAfter {
		return 0
	}
	return r.PeriodsAfter - r.PeriodsBefore
}

// ReallocationPlan suggests how to make room for a new goal.
type ReallocationPlan struct {
	Hypothetical entity.Goal
	Required     decimal.Decimal // What the new goal asks for per period
	Available    decimal.Decimal // Envelope the existing goals leave unallocated
	Reductions   []Reduction     // Lowest priority first
	Shortfall    decimal.Decimal // Still missing after every suggested reduction
}

// Fits reports whether the new goal is funded from the unallocated envelope alone.
func (p ReallocationPlan) Fits() bool {
	return p.Available.GreaterThanOrEqual(p.Required)
}

// Freed returns the total the suggested reductions release.
func (p ReallocationPlan) Freed() decimal.Decimal {
	total := decimal.Zero
	for _, r := range p.Reductions {
		total = total.Add(r.Freed)
	}
	return total
}

// SuggestReallocation works out how a new goal could be funded at the contribution it
// asks for. The unallocated envelope is used first. Any shortfall is taken from goals
// of strictly lower priority, lowest first, each giving up at most 30% of what the
// current plan gives it. Goals of equal or higher priority are never cut.
//
// A new goal with neither a target date nor a planned contribution asks for whatever
// the envelope has left, so it always fits.
func SuggestReallocation(existing []entity.Goal, envelope decimal.Decimal, hypothetical entity.Goal, cadence Cadence, now time.Time) (ReallocationPlan, error) {
	baseGoals := cloneGoals(existing)

	extra, err := prepareHypothetical(baseGoals, hypothetical, now)
	if err != nil {
		return ReallocationPlan{}, err
	}

	baseline, err := Allocate(baseGoals, envelope, cadence, now)
	if err != nil {
		return ReallocationPlan{}, err
	}

	required, rated := ratedRequest(extra, cadence, now)
	if !rated {
		required = capAtRemaining(extra, baseline.Remainder)
	}

	plan := ReallocationPlan{
		Hypothetical: extra,
		Required:     required,
		Available:    baseline.Remainder,
		Shortfall:    decimal.Zero,
	}
	if plan.Fits() {
		return plan, nil
	}

	byID := make(map[uuid.UUID]entity.Goal, len(baseGoals))
	for _, g := range baseGoals {
		byID[g.ID] = g
	}

	shortfall := required.Sub(baseline.Remainder)
	for i := len(baseline.Allocations) - 1; i >= 0 && shortfall.IsPositive(); i-- {
		a := baseline.Allocations[i]
		if a.Priority <= extra.Priority {
			break
		}

		freed := decimal.Min(a.Amount.Mul(maxReduction).RoundFloor(2), shortfall)
		if !freed.IsPositive() {
			continue
		}

		g := byID[a.GoalID]
		suggested := a.Amount.Sub(freed)
		before := project(g, a.Amount, cadence, now)
		after := project(g, suggested, cadence, now)
		plan.Reductions = append(plan.Reductions, Reduction{
			GoalID:         g.ID,
			Name:           g.Name,
			Priority:       g.Priority,
			Current:        a.Amount,
			Suggested:      suggested,
			Freed:          freed,
			PeriodsBefore:  before.Periods,
			PeriodsAfter:   after.Periods,
			InfiniteBefore: before.Infinite,
			InfiniteAfter:  after.Infinite,
		})
		shortfall = shortfall.Sub(freed)
	}
	plan.Shortfall = shortfall

	return plan, nil
}
