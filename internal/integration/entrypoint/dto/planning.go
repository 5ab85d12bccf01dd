package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/avecbanker/backend/internal/domain/entity"
	"github.com/avecbanker/backend/internal/domain/planning"
)

// RebalanceRequest represents the request body for a rebalance.
type RebalanceRequest struct {
	Envelope *decimal.Decimal `json:"envelope,omitempty"`
	Apply    bool             `json:"apply"`
}

// SimulateRequest describes a goal that is not saved.
type SimulateRequest struct {
	Envelope            *decimal.Decimal `json:"envelope,omitempty"`
	Name                string           `json:"name" binding:"required,min=1,max=100"`
	Kind                string           `json:"kind" binding:"required,oneof=payoff savings purchase"`
	TargetAmount        decimal.Decimal  `json:"target_amount"`
	CurrentAmount       decimal.Decimal  `json:"current_amount"`
	MonthlyContribution decimal.Decimal  `json:"monthly_contribution"`
	Priority            int              `json:"priority" binding:"required,min=1"`
	TargetDate          *string          `json:"target_date,omitempty"`
}

// ProjectionResponse is the completion estimate of one goal.
type ProjectionResponse struct {
	GoalID          string          `json:"goal_id"`
	Rate            decimal.Decimal `json:"rate"`
	Remaining       decimal.Decimal `json:"remaining"`
	Periods         *int            `json:"periods"` // Null when the goal never completes
	Infinite        bool            `json:"infinite"`
	ProjectedDate   *string         `json:"projected_date"`
	Overdue         bool            `json:"overdue"`
	MeetsTargetDate bool            `json:"meets_target_date"`
}

// GoalPlanResponse is one line of a rebalance report.
type GoalPlanResponse struct {
	GoalID     string             `json:"goal_id"`
	Name       string             `json:"name"`
	Priority   int                `json:"priority"`
	Requested  decimal.Decimal    `json:"requested"`
	Amount     decimal.Decimal    `json:"amount"`
	Remaining  decimal.Decimal    `json:"remaining"`
	TargetDate *string            `json:"target_date,omitempty"`
	Projection ProjectionResponse `json:"projection"`
}

// RebalanceResponse represents a rebalance report.
type RebalanceResponse struct {
	Cadence     string             `json:"cadence"`
	Envelope    decimal.Decimal    `json:"envelope"`
	Requested   decimal.Decimal    `json:"requested"`
	Allocated   decimal.Decimal    `json:"allocated"`
	Remainder   decimal.Decimal    `json:"remainder"`
	Goals       []GoalPlanResponse `json:"goals"`
	Warnings    []string           `json:"warnings"`
	Applied     bool               `json:"applied"`
	GeneratedAt time.Time          `json:"generated_at"`
}

// GoalImpactResponse describes how one existing goal is affected by a simulated goal.
type GoalImpactResponse struct {
	GoalID        string          `json:"goal_id"`
	Name          string          `json:"name"`
	Before        decimal.Decimal `json:"before"`
	After         decimal.Decimal `json:"after"`
	Delta         decimal.Decimal `json:"delta"`
	PeriodsBefore *int            `json:"periods_before"`
	PeriodsAfter  *int            `json:"periods_after"`
}

// SimulateResponse represents a simulation report.
type SimulateResponse struct {
	Cadence      string               `json:"cadence"`
	Envelope     decimal.Decimal      `json:"envelope"`
	Fits         bool                 `json:"fits"`
	Requested    decimal.Decimal      `json:"requested"`
	Allocated    decimal.Decimal      `json:"allocated"`
	Projection   ProjectionResponse   `json:"projection"`
	Impacts      []GoalImpactResponse `json:"impacts"`
	RemainderNow decimal.Decimal      `json:"remainder_before"`
	Remainder    decimal.Decimal      `json:"remainder_after"`
}

// ReductionResponse is a suggested cut to one lower-priority goal.
type ReductionResponse struct {
	GoalID        string          `json:"goal_id"`
	Name          string          `json:"name"`
	Priority      int             `json:"priority"`
	Current       decimal.Decimal `json:"current"`
	Suggested     decimal.Decimal `json:"suggested"`
	Freed         decimal.Decimal `json:"freed"`
	PeriodsBefore *int            `json:"periods_before"`
	PeriodsAfter  *int            `json:"periods_after"`
	Delay         int             `json:"delay"`
}

// ReallocationResponse represents a reallocation suggestion.
type ReallocationResponse struct {
	Cadence    string              `json:"cadence"`
	Envelope   decimal.Decimal     `json:"envelope"`
	Fits       bool                `json:"fits"`
	Required   decimal.Decimal     `json:"required"`
	Available  decimal.Decimal     `json:"available"`
	Freed      decimal.Decimal     `json:"freed"`
	Shortfall  decimal.Decimal     `json:"shortfall"`
	Reductions []ReductionResponse `json:"reductions"`
}

// GoalProjectionResponse represents the projection of a stored goal.
type GoalProjectionResponse struct {
	Goal          GoalResponse       `json:"goal"`
	Cadence       string             `json:"cadence"`
	Projection    ProjectionResponse `json:"projection"`
	AccumulatedBy *decimal.Decimal   `json:"accumulated_by,omitempty"`
}

// DeadlineResponse represents what a goal needs to meet its target date.
type DeadlineResponse struct {
	Goal             GoalResponse    `json:"goal"`
	Cadence          string          `json:"cadence"`
	TargetDate       string          `json:"target_date"`
	PeriodsAvailable int             `json:"periods_available"`
	Required         decimal.Decimal `json:"required"`
	Feasible         bool            `json:"feasible"`
	Shortfall        decimal.Decimal `json:"shortfall"`
	Overdue          bool            `json:"overdue"`
}

// ToProjectionResponse converts a projection to its DTO.
func ToProjectionResponse(p planning.Projection) ProjectionResponse {
	return ProjectionResponse{
		GoalID:          p.GoalID.String(),
		Rate:            p.Rate,
		Remaining:       p.Remaining,
		Periods:         periods(p.Periods, p.Infinite),
		Infinite:        p.Infinite,
		ProjectedDate:   FormatDate(p.ProjectedDate),
		Overdue:         p.Overdue,
		MeetsTargetDate: p.MeetsTargetDate,
	}
}

// ToRebalanceResponse converts a rebalance report to its DTO.
func ToRebalanceResponse(report planning.RebalanceReport, applied bool) RebalanceResponse {
	response := RebalanceResponse{
		Cadence:     report.Cadence.String(),
		Envelope:    report.Allocation.Envelope,
		Requested:   report.Allocation.Requested(),
		Allocated:   report.Allocation.Total(),
		Remainder:   report.Remainder,
		Goals:       make([]GoalPlanResponse, len(report.Plans)),
		Warnings:    report.Warnings,
		Applied:     applied,
		GeneratedAt: report.GeneratedAt,
	}
	if response.Warnings == nil {
		response.Warnings = []string{}
	}

	for i, plan := range report.Plans {
		response.Goals[i] = GoalPlanResponse{
			GoalID:     plan.Goal.ID.String(),
			Name:       plan.Goal.Name,
			Priority:   plan.Goal.Priority,
			Requested:  plan.Allocation.Requested,
			Amount:     plan.Allocation.Amount,
			Remaining:  plan.Allocation.Remaining,
			TargetDate: FormatDate(plan.Goal.TargetDate),
			Projection: ToProjectionResponse(plan.Projection),
		}
	}
	return response
}

// ToSimulateResponse converts a simulation report to its DTO.
func ToSimulateResponse(report planning.SimulationReport, envelope decimal.Decimal, cadence planning.Cadence) SimulateResponse {
	response := SimulateResponse{
		Cadence:      cadence.String(),
		Envelope:     envelope,
		Fits:         report.Fits(),
		Requested:    report.HypotheticalAllocation.Requested,
		Allocated:    report.HypotheticalAllocation.Amount,
		Projection:   ToProjectionResponse(report.HypotheticalProjection),
		Impacts:      make([]GoalImpactResponse, len(report.Impacts)),
		RemainderNow: report.Baseline.Remainder,
		Remainder:    report.WithAddition.Remainder,
	}

	for i, impact := range report.Impacts {
		response.Impacts[i] = GoalImpactResponse{
			GoalID:        impact.GoalID.String(),
			Name:          impact.Name,
			Before:        impact.Before,
			After:         impact.After,
			Delta:         impact.Delta,
			PeriodsBefore: periods(impact.PeriodsBefore, impact.InfiniteBefore),
			PeriodsAfter:  periods(impact.PeriodsAfter, impact.InfiniteAfter),
		}
	}
	return response
}

// ToReallocationResponse converts a reallocation plan to its DTO.
func ToReallocationResponse(plan planning.ReallocationPlan, envelope decimal.Decimal, cadence planning.Cadence) ReallocationResponse {
	response := ReallocationResponse{
		Cadence:    cadence.String(),
		Envelope:   envelope,
		Fits:       plan.Fits(),
		Required:   plan.Required,
		Available:  plan.Available,
		Freed:      plan.Freed(),
		Shortfall:  plan.Shortfall,
		Reductions: make([]ReductionResponse, len(plan.Reductions)),
	}

	for i, r := range plan.Reductions {
		response.Reductions[i] = ReductionResponse{
			GoalID:        r.GoalID.String(),
			Name:          r.Name,
			Priority:      r.Priority,
			Current:       r.Current,
			Suggested:     r.Suggested,
			Freed:         r.Freed,
			PeriodsBefore: periods(r.PeriodsBefore, r.InfiniteBefore),
			PeriodsAfter:  periods(r.PeriodsAfter, r.InfiniteAfter),
			Delay:         r.Delay(),
		}
	}
	return response
}

// ToDeadlineResponse converts a deadline plan to its DTO.
func ToDeadlineResponse(goal *entity.Goal, plan planning.DeadlinePlan, cadence planning.Cadence) DeadlineResponse {
	return DeadlineResponse{
		Goal:             ToGoalResponse(goal),
		Cadence:          cadence.String(),
		TargetDate:       plan.TargetDate.Format(DateLayout),
		PeriodsAvailable: plan.PeriodsAvailable,
		Required:         plan.Required,
		Feasible:         plan.Feasible,
		Shortfall:        plan.Shortfall,
		Overdue:          plan.Overdue,
	}
}

func periods(n int, infinite bool) *int {
	if infinite {
		return nil
	}
	return &n
}
