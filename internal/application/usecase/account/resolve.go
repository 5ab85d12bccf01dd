// Package account contains bank account and credit card use cases.
package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/avecbanker/backend/internal/application/adapter"
	"github.com/avecbanker/backend/internal/domain/entity"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
)

// ResolveAccount finds one of the user's accounts by id or by case-insensitive name.
// Another user's account is reported as missing.
func ResolveAccount(ctx context.Context, repo adapter.AccountRepository, userID uuid.UUID, ref string) (*entity.Account, error) {
	var (
		account *entity.Account
		err     error
	)
	if id, parseErr := uuid.Parse(ref); parseErr == nil {
		account, err = repo.FindByID(ctx, id)
	} else {
		account, err = repo.FindByName(ctx, userID, ref)
	}
	if err != nil {
		if errors.Is(err, domainerror.ErrAccountNotFound) {
			return nil, accountNotFound(ref)
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	if account.UserID != userID {
		return nil, accountNotFound(ref)
	}
	return account, nil
}

// ResolveCard finds one of the user's credit cards by id or by case-insensitive name.
// Another user's card is reported as missing.
func ResolveCard(ctx context.Context, repo adapter.CreditCardRepository, userID uuid.UUID, ref string) (*entity.CreditCard, error) {
	var (
		card *entity.CreditCard
		err  error
	)
	if id, parseErr := uuid.Parse(ref); parseErr == nil {
		card, err = repo.FindByID(ctx, id)
	} else {
		card, err = repo.FindByName(ctx, userID, ref)
	}
	if err != nil {
		if errors.Is(err, domainerror.ErrCardNotFound) {
			return nil, cardNotFound(ref)
		}
		return nil, fmt.Errorf("failed to find credit card: %w", err)
	}
	if card.UserID != userID {
		return nil, cardNotFound(ref)
	}
	return card, nil
}

func accountNotFound(ref string) error {
	return domainerror.NewAccountError(domainerror.ErrCodeAccountNotFound, "account "+ref+" not found", domainerror.ErrAccountNotFound)
}

func cardNotFound(ref string) error {
	return domainerror.NewAccountError(domainerror.ErrCodeCardNotFound, "credit card "+ref+" not found", domainerror.ErrCardNotFound)
}

func invalidAccount(message string) error {
	return domainerror.NewAccountError(domainerror.ErrCodeInvalidAccount, message, domainerror.ErrInvalidAccount)
}

func invalidCard(message string) error {
	return domainerror.NewAccountError(domainerror.ErrCodeInvalidCard, message, domainerror.ErrInvalidAccount)
}

// validDay reports whether an optional day of month is unset or within 1-31.
func validDay(day *int) bool {
	return day == nil || (*day >= 1 && *day <= 31)
}
