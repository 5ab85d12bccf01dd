// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoalKind represents what a goal is working towards.
type GoalKind string

const (
	// GoalKindPayoff eliminates a debt balance.
	GoalKindPayoff GoalKind = "payoff"
	// GoalKindSavings accumulates money, optionally towards a target.
	GoalKindSavings GoalKind = "savings"
	// GoalKindPurchase accumulates a fixed amount, usually by a date.
	GoalKindPurchase GoalKind = "purchase"
)

// IsValid reports whether the kind is one of the known goal kinds.
func (k GoalKind) IsValid() bool {
	return k == GoalKindPayoff || k == GoalKindSavings || k == GoalKindPurchase
}

// Goal represents one financial objective of an owner.
type Goal struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	Name                string
	Kind                GoalKind
	TargetAmount        decimal.Decimal // Zero means open-ended (savings only)
	CurrentAmount       decimal.Decimal
	MonthlyContribution decimal.Decimal // Planned contribution per budgeting period
	Priority            int             // Lower value = higher priority
	TargetDate          *time.Time
	Active              bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
	ClosedAt            *time.Time
}

// NewGoal creates a new active Goal entity.
func NewGoal(userID uuid.UUID, name string, kind GoalKind, target decimal.Decimal, priority int) *Goal {
	now := time.Now().UTC()

	return &Goal{
		ID:                  uuid.New(),
		UserID:              userID,
		Name:                strings.TrimSpace(name),
		Kind:                kind,
		TargetAmount:        target,
		CurrentAmount:       decimal.Zero,
		MonthlyContribution: decimal.Zero,
		Priority:            priority,
		Active:              true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// IsBounded reports whether the goal has a fixed target amount.
func (g Goal) IsBounded() bool {
	return g.TargetAmount.IsPositive()
}

// Remaining returns the amount still needed to reach the target, never negative.
// Open-ended goals always return zero.
func (g Goal) Remaining() decimal.Decimal {
	if !g.IsBounded() {
		return decimal.Zero
	}
	remaining := g.TargetAmount.Sub(g.CurrentAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// IsComplete reports whether a bounded goal has reached its target.
func (g Goal) IsComplete() bool {
	return g.IsBounded() && g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// IsOverdue reports whether the target date has passed without the goal being complete.
func (g Goal) IsOverdue(now time.Time) bool {
	if g.TargetDate == nil || !g.IsBounded() || g.IsComplete() {
		return false
	}
	return truncateDay(*g.TargetDate).Before(truncateDay(now))
}

// Progress returns the completion percentage of a bounded goal (0-100).
func (g Goal) Progress() decimal.Decimal {
	if !g.IsBounded() {
		return decimal.Zero
	}
	pct := g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100))
	if pct.GreaterThan(decimal.NewFromInt(100)) {
		return decimal.NewFromInt(100)
	}
	return pct.Round(2)
}

// MatchesName reports whether ref names this goal, ignoring case and surrounding spaces.
func (g Goal) MatchesName(ref string) bool {
	return strings.EqualFold(strings.TrimSpace(g.Name), strings.TrimSpace(ref))
}

// ApplyPayment adds amount to the current balance. A bounded goal that reaches its
// target is closed.
func (g *Goal) ApplyPayment(amount decimal.Decimal, at time.Time) {
	g.CurrentAmount = g.CurrentAmount.Add(amount)
	g.UpdatedAt = at
	if g.IsComplete() {
		g.Close(at)
	}
}

// Close marks the goal inactive. Closed goals are kept for history.
func (g *Goal) Close(at time.Time) {
	g.Active = false
	g.ClosedAt = &at
	g.UpdatedAt = at
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
