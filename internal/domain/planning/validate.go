package planning

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avecbanker/backend/internal/domain/entity"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
)

func validateEnvelope(envelope decimal.Decimal) error {
	if envelope.IsNegative() {
		return domainerror.InvalidAmount(fmt.Sprintf("envelope %s is negative", envelope.StringFixed(2)))
	}
	return nil
}

func validateRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return domainerror.InvalidAmount(fmt.Sprintf("contribution %s is negative", rate.StringFixed(2)))
	}
	return nil
}

// ValidateGoal checks the invariants every goal must hold before it can be planned.
func ValidateGoal(g entity.Goal) error {
	if !g.Kind.IsValid() {
		return domainerror.InvalidGoal(fmt.Sprintf("goal %q has unknown kind %q", g.Name, g.Kind))
	}
	if g.Priority < 1 {
		return domainerror.InvalidGoal(fmt.Sprintf("goal %q must have a positive priority", g.Name))
	}
	if g.TargetAmount.IsNegative() {
		return domainerror.InvalidAmount(fmt.Sprintf("goal %q has a negative target", g.Name))
	}
	if g.CurrentAmount.IsNegative() {
		return domainerror.InvalidAmount(fmt.Sprintf("goal %q has a negative balance", g.Name))
	}
	if g.MonthlyContribution.IsNegative() {
		return domainerror.InvalidAmount(fmt.Sprintf("goal %q has a negative contribution", g.Name))
	}
	if g.Kind != entity.GoalKindSavings && !g.IsBounded() {
		return domainerror.InvalidGoal(fmt.Sprintf("%s goal %q needs a target amount", g.Kind, g.Name))
	}
	if g.IsBounded() && g.CurrentAmount.GreaterThan(g.TargetAmount) {
		return domainerror.InvalidGoal(fmt.Sprintf("goal %q balance exceeds its target", g.Name))
	}
	if g.TargetDate != nil && g.TargetDate.IsZero() {
		return domainerror.InvalidPeriod(fmt.Sprintf("goal %q has an unusable target date", g.Name))
	}
	return nil
}

func validateGoals(goals []entity.Goal) error {
	seen := make(map[uuid.UUID]string, len(goals))
	for _, g := range goals {
		if err := ValidateGoal(g); err != nil {
			return err
		}
		if first, ok := seen[g.ID]; ok {
			return domainerror.InvalidGoal(fmt.Sprintf("goal %q reuses the id of %q", g.Name, first))
		}
		seen[g.ID] = g.Name
	}
	return nil
}
