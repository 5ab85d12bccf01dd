package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avecbanker/backend/internal/application/adapter"
	"github.com/avecbanker/backend/internal/domain/entity"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
)

// CreateCardInput represents the input for credit card creation.
type CreateCardInput struct {
	UserID       uuid.UUID
	Name         string
	CreditLimit  decimal.Decimal
	Balance      decimal.Decimal // Optional opening balance owed
	DueDay       *int
	StatementDay *int
}

// CreateCardOutput represents the output of credit card creation.
type CreateCardOutput struct {
	Card *entity.CreditCard
}

// CreateCardUseCase handles credit card creation.
type CreateCardUseCase struct {
	cardRepo adapter.CreditCardRepository
}

// NewCreateCardUseCase creates a new CreateCardUseCase instance.
func NewCreateCardUseCase(cardRepo adapter.CreditCardRepository) *CreateCardUseCase {
	return &CreateCardUseCase{
		cardRepo: cardRepo,
	}
}

// Execute performs the card creation.
func (uc *CreateCardUseCase) Execute(ctx context.Context, input CreateCardInput) (*CreateCardOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalidCard("card name is required")
	}
	if _, err := uuid.Parse(name); err == nil {
		return nil, invalidCard("card name cannot be an id")
	}
	if input.CreditLimit.IsNegative() || input.Balance.IsNegative() {
		return nil, invalidCard("credit limit and balance cannot be negative")
	}
	if !validDay(input.DueDay) || !validDay(input.StatementDay) {
		return nil, invalidCard("due and statement days must be between 1 and 31")
	}

	_, err := uc.cardRepo.FindByName(ctx, input.UserID, name)
	switch {
	case err == nil:
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeCardNameTaken,
			fmt.Sprintf("a card named %q already exists", name),
			domainerror.ErrAccountNameTaken,
		)
	case !errors.Is(err, domainerror.ErrCardNotFound):
		return nil, fmt.Errorf("failed to check card name: %w", err)
	}

	card := entity.NewCreditCard(input.UserID, name, input.CreditLimit, input.DueDay, input.StatementDay)
	card.Balance = input.Balance
	if err := uc.cardRepo.Create(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to create credit card: %w", err)
	}

	slog.Info("Credit card created", "user_id", card.UserID, "card_id", card.ID)

	return &CreateCardOutput{
		Card: card,
	}, nil
}

// ListCardsInput represents the input for listing credit cards.
type ListCardsInput struct {
	UserID        uuid.UUID
	IncludeClosed bool
}

// ListCardsOutput represents the output of listing credit cards.
type ListCardsOutput struct {
	Cards []*entity.CreditCard
	Owed  decimal.Decimal // Active cards only
}

// ListCardsUseCase handles listing a user's credit cards.
type ListCardsUseCase struct {
	cardRepo adapter.CreditCardRepository
}

// NewListCardsUseCase creates a new ListCardsUseCase instance.
func NewListCardsUseCase(cardRepo adapter.CreditCardRepository) *ListCardsUseCase {
	return &ListCardsUseCase{
		cardRepo: cardRepo,
	}
}

// Execute performs the card listing.
func (uc *ListCardsUseCase) Execute(ctx context.Context, input ListCardsInput) (*ListCardsOutput, error) {
	cards, err := uc.cardRepo.FindByUserID(ctx, input.UserID, input.IncludeClosed)
	if err != nil {
		return nil, fmt.Errorf("failed to list credit cards: %w", err)
	}
	if cards == nil {
		cards = []*entity.CreditCard{}
	}

	return &ListCardsOutput{
		Cards: cards,
		Owed:  entity.TotalOwed(cards),
	}, nil
}

// UpdateCardBalanceInput represents the input for recording what a card owes.
type UpdateCardBalanceInput struct {
	UserID  uuid.UUID
	Ref     string
	Balance decimal.Decimal
}

// UpdateCardBalanceOutput represents the output of a card balance update.
type UpdateCardBalanceOutput struct {
	Card     *entity.CreditCard
	Previous decimal.Decimal
}

// UpdateCardBalanceUseCase records the current balance of a credit card.
type UpdateCardBalanceUseCase struct {
	cardRepo adapter.CreditCardRepository
}

// NewUpdateCardBalanceUseCase creates a new UpdateCardBalanceUseCase instance.
func NewUpdateCardBalanceUseCase(cardRepo adapter.CreditCardRepository) *UpdateCardBalanceUseCase {
	return &UpdateCardBalanceUseCase{
		cardRepo: cardRepo,
	}
}

// Execute performs the balance update.
func (uc *UpdateCardBalanceUseCase) Execute(ctx context.Context, input UpdateCardBalanceInput) (*UpdateCardBalanceOutput, error) {
	if input.Balance.IsNegative() {
		return nil, invalidCard("balance cannot be negative")
	}

	card, err := ResolveCard(ctx, uc.cardRepo, input.UserID, input.Ref)
	if err != nil {
		return nil, err
	}
	if !card.Active {
		return nil, invalidCard(fmt.Sprintf("card %q is closed", card.Name))
	}

	previous := card.Balance
	card.Balance = input.Balance
	card.UpdatedAt = time.Now().UTC()
	if err := uc.cardRepo.Update(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to update credit card: %w", err)
	}

	return &UpdateCardBalanceOutput{
		Card:     card,
		Previous: previous,
	}, nil
}

// CloseCardInput represents the input for closing a credit card.
type CloseCardInput struct {
	UserID uuid.UUID
	Ref    string
}

// CloseCardUseCase deactivates a credit card.
type CloseCardUseCase struct {
	cardRepo adapter.CreditCardRepository
}

// NewCloseCardUseCase creates a new CloseCardUseCase instance.
func NewCloseCardUseCase(cardRepo adapter.CreditCardRepository) *CloseCardUseCase {
	return &CloseCardUseCase{
		cardRepo: cardRepo,
	}
}

// Execute performs the card close.
func (uc *CloseCardUseCase) Execute(ctx context.Context, input CloseCardInput) error {
	card, err := ResolveCard(ctx, uc.cardRepo, input.UserID, input.Ref)
	if err != nil {
		return err
	}
	if !card.Active {
		return nil
	}

	card.Active = false
	card.UpdatedAt = time.Now().UTC()
	if err := uc.cardRepo.Update(ctx, card); err != nil {
		return fmt.Errorf("failed to close credit card: %w", err)
	}
	return nil
}
