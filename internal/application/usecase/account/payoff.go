package account

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avecbanker/backend/internal/application/adapter"
	"github.com/avecbanker/backend/internal/application/usecase/goal"
	"github.com/avecbanker/backend/internal/domain/entity"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
)

// CreatePayoffGoalInput represents the input for turning a card balance into a goal.
type CreatePayoffGoalInput struct {
	UserID              uuid.UUID
	CardRef             string
	Name                string // Optional, defaults to "<card> payoff"
	MonthlyContribution decimal.Decimal
	Priority            *int
	TargetDate          *time.Time
}

// CreatePayoffGoalOutput represents the output of payoff goal creation.
type CreatePayoffGoalOutput struct {
	Card *entity.CreditCard
	Goal *entity.Goal
}

// CreatePayoffGoalUseCase creates a payoff goal whose target is what a card owes.
type CreatePayoffGoalUseCase struct {
	cardRepo   adapter.CreditCardRepository
	createGoal *goal.CreateGoalUseCase
}

// NewCreatePayoffGoalUseCase creates a new CreatePayoffGoalUseCase instance.
func NewCreatePayoffGoalUseCase(cardRepo adapter.CreditCardRepository, createGoal *goal.CreateGoalUseCase) *CreatePayoffGoalUseCase {
	return &CreatePayoffGoalUseCase{
		cardRepo:   cardRepo,
		createGoal: createGoal,
	}
}

// Execute performs the payoff goal creation.
func (uc *CreatePayoffGoalUseCase) Execute(ctx context.Context, input CreatePayoffGoalInput) (*CreatePayoffGoalOutput, error) {
	card, err := ResolveCard(ctx, uc.cardRepo, input.UserID, input.CardRef)
	if err != nil {
		return nil, err
	}
	if !card.Active {
		return nil, invalidCard(fmt.Sprintf("card %q is closed", card.Name))
	}
	if !card.Balance.IsPositive() {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeCardPaidOff,
			fmt.Sprintf("card %q has no balance to pay off", card.Name),
			domainerror.ErrInvalidAccount,
		)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = card.Name + " payoff"
	}

	out, err := uc.createGoal.Execute(ctx, goal.CreateGoalInput{
		UserID:              input.UserID,
		Name:                name,
		Kind:                entity.GoalKindPayoff,
		TargetAmount:        card.Balance,
		MonthlyContribution: input.MonthlyContribution,
		Priority:            input.Priority,
		TargetDate:          input.TargetDate,
	})
	if err != nil {
		return nil, err
	}

	return &CreatePayoffGoalOutput{
		Card: card,
		Goal: out.Goal,
	}, nil
}
