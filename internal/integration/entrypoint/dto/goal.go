package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avecbanker/backend/internal/domain/entity"
)

// DateLayout is the format of every date field in requests and responses.
const DateLayout = "2006-01-02"

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Name                string          `json:"name" binding:"required,min=1,max=100"`
	Kind                string          `json:"kind" binding:"required,oneof=payoff savings purchase"`
	TargetAmount        decimal.Decimal `json:"target_amount"`
	CurrentAmount       decimal.Decimal `json:"current_amount"`
	MonthlyContribution decimal.Decimal `json:"monthly_contribution"`
	Priority            *int            `json:"priority,omitempty"`
	TargetDate          *string         `json:"target_date,omitempty"`
}

// UpdateGoalRequest represents the request body for goal update.
type UpdateGoalRequest struct {
	Name                *string          `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	TargetAmount        *decimal.Decimal `json:"target_amount,omitempty"`
	CurrentAmount       *decimal.Decimal `json:"current_amount,omitempty"`
	MonthlyContribution *decimal.Decimal `json:"monthly_contribution,omitempty"`
	Priority            *int             `json:"priority,omitempty"`
	TargetDate          *string          `json:"target_date,omitempty"`
	ClearTargetDate     bool             `json:"clear_target_date,omitempty"`
}

// PaymentRequest represents the request body for applying a payment to a goal.
type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// GoalResponse represents a single goal in API responses.
type GoalResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Kind                string          `json:"kind"`
	TargetAmount        decimal.Decimal `json:"target_amount"`
	CurrentAmount       decimal.Decimal `json:"current_amount"`
	Remaining           decimal.Decimal `json:"remaining"`
	Progress            decimal.Decimal `json:"progress"`
	MonthlyContribution decimal.Decimal `json:"monthly_contribution"`
	Priority            int             `json:"priority"`
	TargetDate          *string         `json:"target_date,omitempty"`
	Active              bool            `json:"active"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
	ClosedAt            *time.Time      `json:"closed_at,omitempty"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
}

// PaymentResponse represents the result of a payment.
type PaymentResponse struct {
	Goal       GoalResponse `json:"goal"`
	Milestones []int        `json:"milestones"`
	Completed  bool         `json:"completed"`
}

// ToGoalResponse converts a domain Goal entity to a GoalResponse DTO.
func ToGoalResponse(g *entity.Goal) GoalResponse {
	return GoalResponse{
		ID:                  g.ID.String(),
		Name:                g.Name,
		Kind:                string(g.Kind),
		TargetAmount:        g.TargetAmount,
		CurrentAmount:       g.CurrentAmount,
		Remaining:           g.Remaining(),
		Progress:            g.Progress(),
		MonthlyContribution: g.MonthlyContribution,
		Priority:            g.Priority,
		TargetDate:          FormatDate(g.TargetDate),
		Active:              g.Active,
		CreatedAt:           g.CreatedAt,
		UpdatedAt:           g.UpdatedAt,
		ClosedAt:            g.ClosedAt,
	}
}

// ToGoalListResponse converts goals to a GoalListResponse DTO.
func ToGoalListResponse(goals []*entity.Goal) GoalListResponse {
	response := GoalListResponse{
		Goals: make([]GoalResponse, len(goals)),
	}
	for i, g := range goals {
		response.Goals[i] = ToGoalResponse(g)
	}
	return response
}

// ParseDate parses an optional YYYY-MM-DD value as a UTC date.
func ParseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, *value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", *value)
	}
	return &t, nil
}

// FormatDate formats an optional date as YYYY-MM-DD.
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
