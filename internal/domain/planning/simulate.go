package planning

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avecbanker/backend/internal/domain/entity"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
)

// GoalImpact describes how adding a goal changes an existing goal's plan.
type GoalImpact struct {
	GoalID         uuid.UUID
	Name           string
	Before         decimal.Decimal
	After          decimal.Decimal
	Delta          decimal.Decimal
	PeriodsBefore  int
	PeriodsAfter   int
	InfiniteBefore bool
	InfiniteAfter  bool
}

// SimulationReport compares the plan with and without a hypothetical goal.
type SimulationReport struct {
	Baseline     AllocationResult
	WithAddition AllocationResult
	Deltas       map[uuid.UUID]decimal.Decimal
	Impacts      []GoalImpact // Only goals whose contribution changed, priority order

	Hypothetical           entity.Goal
	HypotheticalAllocation Allocation
	HypotheticalProjection Projection
}

// Fits reports whether the hypothetical goal is fully funded without displacing any
// existing contribution.
func (r SimulationReport) Fits() bool {
	return r.HypotheticalAllocation.FullyFunded() && len(r.Impacts) == 0
}

// Simulate allocates the envelope twice, once over the existing goals and once with
// the hypothetical goal added at its priority, and reports the difference. It works
// on copies and never touches its inputs.
//
// A hypothetical goal with a zero creation time is treated as created at now, so it
// sorts after existing goals of the same priority.
func Simulate(existing []entity.Goal, envelope decimal.Decimal, hypothetical entity.Goal, cadence Cadence, now time.Time) (SimulationReport, error) {
	baseGoals := cloneGoals(existing)

	extra, err := prepareHypothetical(baseGoals, hypothetical, now)
	if err != nil {
		return SimulationReport{}, err
	}

	baseline, err := Allocate(baseGoals, envelope, cadence, now)
	if err != nil {
		return SimulationReport{}, err
	}
	withAddition, err := Allocate(append(cloneGoals(baseGoals), extra), envelope, cadence, now)
	if err != nil {
		return SimulationReport{}, err
	}

	report := SimulationReport{
		Baseline:     baseline,
		WithAddition: withAddition,
		Deltas:       make(map[uuid.UUID]decimal.Decimal, len(baseline.Allocations)),
		Hypothetical: extra,
	}

	byID := make(map[uuid.UUID]entity.Goal, len(baseGoals))
	for _, g := range baseGoals {
		byID[g.ID] = g
	}

	for _, a := range withAddition.Allocations {
		if a.GoalID == extra.ID {
			report.HypotheticalAllocation = a
			report.HypotheticalProjection = project(extra, a.Amount, cadence, now)
			continue
		}

		before := baseline.Amount(a.GoalID)
		delta := a.Amount.Sub(before)
		report.Deltas[a.GoalID] = delta
		if delta.IsZero() {
			continue
		}

		g := byID[a.GoalID]
		pBefore := project(g, before, cadence, now)
		pAfter := project(g, a.Amount, cadence, now)
		report.Impacts = append(report.Impacts, GoalImpact{
			GoalID:         g.ID,
			Name:           g.Name,
			Before:         before,
			After:          a.Amount,
			Delta:          delta,
			PeriodsBefore:  pBefore.Periods,
			PeriodsAfter:   pAfter.Periods,
			InfiniteBefore: pBefore.Infinite,
			InfiniteAfter:  pAfter.Infinite,
		})
	}

	return report, nil
}

// prepareHypothetical returns an active copy of the hypothetical goal stamped with now
// when it has no creation time.
func prepareHypothetical(existing []entity.Goal, hypothetical entity.Goal, now time.Time) (entity.Goal, error) {
	extra := cloneGoal(hypothetical)
	extra.Active = true
	if extra.CreatedAt.IsZero() {
		extra.CreatedAt = now
	}
	for _, g := range existing {
		if g.ID == extra.ID {
			return entity.Goal{}, domainerror.InvalidGoal(
				fmt.Sprintf("hypothetical goal %q reuses the id of %q", extra.Name, g.Name))
		}
	}
	if err := ValidateGoal(extra); err != nil {
		return entity.Goal{}, err
	}
	return extra, nil
}

func cloneGoals(goals []entity.Goal) []entity.Goal {
	out := make([]entity.Goal, len(goals))
	for i, g := range goals {
		out[i] = cloneGoal(g)
	}
	return out
}

// cloneGoal copies the pointer fields too, so the copy shares no memory with g.
func cloneGoal(g entity.Goal) entity.Goal {
	if g.TargetDate != nil {
		d := *g.TargetDate
		g.TargetDate = &d
	}
	if g.ClosedAt != nil {
		c := *g.ClosedAt
		g.ClosedAt = &c
	}
	return g
}
