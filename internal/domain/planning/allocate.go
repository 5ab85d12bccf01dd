package planning

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avecbanker/backend/internal/domain/entity"
)

// Allocation is the share of the envelope assigned to one goal.
type Allocation struct {
	GoalID    uuid.UUID
	Name      string
	Priority  int
	Requested decimal.Decimal // What the goal asked for, already capped at what it needs
	Amount    decimal.Decimal // What it got
	Remaining decimal.Decimal // Still needed after this period's contribution; zero if unbounded
}

// FullyFunded reports whether the goal received everything it asked for.
func (a Allocation) FullyFunded() bool {
	return a.Amount.Equal(a.Requested)
}

// AllocationResult is the outcome of one pass of the waterfall.
type AllocationResult struct {
	Envelope      decimal.Decimal
	Allocations   []Allocation // Priority order, active goals only
	Contributions map[uuid.UUID]decimal.Decimal
	Remainder     decimal.Decimal
}

// Total returns the sum of all allocated amounts.
func (r AllocationResult) Total() decimal.Decimal {
	total := decimal.Zero
	for _, a := range r.Allocations {
		total = total.Add(a.Amount)
	}
	return total
}

// Requested returns the sum of what every goal asked for.
func (r AllocationResult) Requested() decimal.Decimal {
	total := decimal.Zero
	for _, a := range r.Allocations {
		total = total.Add(a.Requested)
	}
	return total
}

// Amount returns the contribution assigned to the goal, zero if it took no part.
func (r AllocationResult) Amount(goalID uuid.UUID) decimal.Decimal {
	if amount, ok := r.Contributions[goalID]; ok {
		return amount
	}
	return decimal.Zero
}

// Allocate distributes the envelope across the active goals in priority order.
// Inputs are validated as a whole before anything is allocated.
func Allocate(goals []entity.Goal, envelope decimal.Decimal, cadence Cadence, now time.Time) (AllocationResult, error) {
	if err := cadence.Validate(); err != nil {
		return AllocationResult{}, err
	}
	if err := validateEnvelope(envelope); err != nil {
		return AllocationResult{}, err
	}
	if err := validateGoals(goals); err != nil {
		return AllocationResult{}, err
	}

	ordered := priorityOrder(goals)
	requests := make([]decimal.Decimal, len(ordered))

	committed := decimal.Zero
	var shareTakers []int
	for i, g := range ordered {
		req, ok := ratedRequest(g, cadence, now)
		if !ok {
			shareTakers = append(shareTakers, i)
			continue
		}
		requests[i] = req
		committed = committed.Add(req)
	}

	if len(shareTakers) > 0 {
		share := decimal.Zero
		if left := envelope.Sub(committed); left.IsPositive() {
			share = left.Div(decimal.NewFromInt(int64(len(shareTakers)))).RoundFloor(2)
		}
		for _, i := range shareTakers {
			requests[i] = capAtRemaining(ordered[i], share)
		}
	}

	result := AllocationResult{
		Envelope:      envelope,
		Allocations:   make([]Allocation, 0, len(ordered)),
		Contributions: make(map[uuid.UUID]decimal.Decimal, len(ordered)),
	}
	left := envelope
	for i, g := range ordered {
		amount := decimal.Min(requests[i], left)
		left = left.Sub(amount)

		remaining := decimal.Zero
		if g.IsBounded() {
			remaining = g.Remaining().Sub(amount)
		}
		result.Allocations = append(result.Allocations, Allocation{
			GoalID:    g.ID,
			Name:      g.Name,
			Priority:  g.Priority,
			Requested: requests[i],
			Amount:    amount,
			Remaining: remaining,
		})
		result.Contributions[g.ID] = amount
	}
	result.Remainder = left

	return result, nil
}

// ratedRequest returns what a goal asks for on its own terms. A bounded goal with a
// target date asks for the minimum that reaches the target on time, whatever its
// planned contribution. It reports false when the goal has neither a target date nor
// a planned contribution, in which case it takes an equal share of what the rated
// goals leave over.
func ratedRequest(g entity.Goal, cadence Cadence, now time.Time) (decimal.Decimal, bool) {
	if g.IsComplete() {
		return decimal.Zero, true
	}

	if g.TargetDate != nil && g.IsBounded() {
		periods := cadence.PeriodsBetween(now, *g.TargetDate)
		if periods < 1 {
			periods = 1
		}
		required := g.Remaining().Div(decimal.NewFromInt(int64(periods))).RoundCeil(2)
		return capAtRemaining(g, required), true
	}

	if g.MonthlyContribution.IsPositive() {
		return capAtRemaining(g, g.MonthlyContribution), true
	}
	return decimal.Zero, false
}

func capAtRemaining(g entity.Goal, amount decimal.Decimal) decimal.Decimal {
	if g.IsBounded() {
		return decimal.Min(amount, g.Remaining())
	}
	return amount
}

// priorityOrder returns the active goals sorted by priority, then creation time, then
// input position.
func priorityOrder(goals []entity.Goal) []entity.Goal {
	ordered := make([]entity.Goal, 0, len(goals))
	for _, g := range goals {
		if g.Active {
			ordered = append(ordered, g)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Priority != ordered[j].Priority {
			return ordered[i].Priority < ordered[j].Priority
		}
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})
	return ordered
}
