// Package budget contains budget profile and bill use cases.
package budget

import (
	"context"

	"github.com/google/uuid"
)

// GetBudgetInput represents the input for getting a budget.
type GetBudgetInput struct {
	UserID uuid.UUID
}

// GetBudgetOutput represents the budget profile and the envelope it yields.
type GetBudgetOutput struct {
	Envelope *Envelope
}

// GetBudgetUseCase handles reading a user's budget.
type GetBudgetUseCase struct {
	resolver *EnvelopeResolver
}

// NewGetBudgetUseCase creates a new GetBudgetUseCase instance.
func NewGetBudgetUseCase(resolver *EnvelopeResolver) *GetBudgetUseCase {
	return &GetBudgetUseCase{
		resolver: resolver,
	}
}

// Execute performs the budget retrieval.
func (uc *GetBudgetUseCase) Execute(ctx context.Context, input GetBudgetInput) (*GetBudgetOutput, error) {
	envelope, err := uc.resolver.Resolve(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	return &GetBudgetOutput{
		Envelope: envelope,
	}, nil
}
