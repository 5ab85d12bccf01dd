package planning

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avecbanker/backend/internal/domain/entity"
)

// GoalPlan pairs a goal with its new contribution and the projection that follows.
type GoalPlan struct {
	Goal       entity.Goal
	Allocation Allocation
	Projection Projection
}

// RebalanceReport is the combined outcome of an allocation and the projections it implies.
type RebalanceReport struct {
	Cadence     Cadence
	GeneratedAt time.Time
	Allocation  AllocationResult
	Plans       []GoalPlan // Priority order
	Projections map[uuid.UUID]Projection
	Remainder   decimal.Decimal
	Warnings    []string
}

// Rebalance recomputes every active goal's contribution from the envelope and projects
// each goal at its new contribution. It does not change the goals; the caller decides
// whether to store the new contributions.
func Rebalance(goals []entity.Goal, envelope decimal.Decimal, cadence Cadence, now time.Time) (RebalanceReport, error) {
	allocation, err := Allocate(goals, envelope, cadence, now)
	if err != nil {
		return RebalanceReport{}, err
	}

	byID := make(map[uuid.UUID]entity.Goal, len(goals))
	for _, g := range goals {
		byID[g.ID] = g
	}

	report := RebalanceReport{
		Cadence:     cadence,
		GeneratedAt: now,
		Allocation:  allocation,
		Plans:       make([]GoalPlan, 0, len(allocation.Allocations)),
		Projections: make(map[uuid.UUID]Projection, len(allocation.Allocations)),
		Remainder:   allocation.Remainder,
	}

	for _, a := range allocation.Allocations {
		g := byID[a.GoalID]
		p := project(g, a.Amount, cadence, now)
		report.Plans = append(report.Plans, GoalPlan{Goal: g, Allocation: a, Projection: p})
		report.Projections[g.ID] = p
		report.Warnings = append(report.Warnings, goalWarnings(g, a, p)...)
	}

	if requested := allocation.Requested(); requested.GreaterThan(envelope) {
		report.Warnings = append(report.Warnings, fmt.Sprintf(
			"goals request %s per period but only %s is available",
			requested.StringFixed(2), envelope.StringFixed(2)))
	}

	return report, nil
}

func goalWarnings(g entity.Goal, a Allocation, p Projection) []string {
	var warnings []string
	if p.Overdue {
		warnings = append(warnings, fmt.Sprintf("%s is past its target date", g.Name))
	} else if !p.MeetsTargetDate {
		warnings = append(warnings, fmt.Sprintf("%s will miss its target date at %s per period",
			g.Name, a.Amount.StringFixed(2)))
	}
	if g.IsBounded() && !g.IsComplete() && a.Amount.IsZero() {
		warnings = append(warnings, fmt.Sprintf("%s receives nothing this period", g.Name))
	}
	return warnings
}
