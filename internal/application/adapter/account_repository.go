package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/avecbanker/backend/internal/domain/entity"
)

// AccountRepository defines the interface for bank account persistence operations.
type AccountRepository interface {
	// Create creates a new account in the database.
	Create(ctx context.Context, account *entity.Account) error

	// FindByID retrieves an account by its ID.
	// Returns domainerror.ErrAccountNotFound when it does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByName retrieves an active account of a user by name, ignoring case.
	FindByName(ctx context.Context, userID uuid.UUID, name string) (*entity.Account, error)

	// FindByUserID retrieves the accounts of a user in creation order.
	FindByUserID(ctx context.Context, userID uuid.UUID, includeClosed bool) ([]*entity.Account, error)

	// Update updates an existing account in the database.
	Update(ctx context.Context, account *entity.Account) error
}

// CreditCardRepository defines the interface for credit card persistence operations.
type CreditCardRepository interface {
	// Create creates a new card in the database.
	Create(ctx context.Context, card *entity.CreditCard) error

	// FindByID retrieves a card by its ID.
	// Returns domainerror.ErrCardNotFound when it does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CreditCard, error)

	// FindByName retrieves an active card of a user by name, ignoring case.
	FindByName(ctx context.Context, userID uuid.UUID, name string) (*entity.CreditCard, error)

	// FindByUserID retrieves the cards of a user in creation order.
	FindByUserID(ctx context.Context, userID uuid.UUID, includeClosed bool) ([]*entity.CreditCard, error)

	// Update updates an existing card in the database.
	Update(ctx context.Context, card *entity.CreditCard) error
}
