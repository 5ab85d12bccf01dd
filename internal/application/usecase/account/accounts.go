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

// CreateAccountInput represents the input for account creation.
type CreateAccountInput struct {
	UserID  uuid.UUID
	Name    string
	Purpose string
	Balance decimal.Decimal
}

// CreateAccountOutput represents the output of account creation.
type CreateAccountOutput struct {
	Account *entity.Account
}

// CreateAccountUseCase handles bank account creation.
type CreateAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewCreateAccountUseCase creates a new CreateAccountUseCase instance.
func NewCreateAccountUseCase(accountRepo adapter.AccountRepository) *CreateAccountUseCase {
	return &CreateAccountUseCase{
		accountRepo: accountRepo,
	}
}

// Execute performs the account creation.
func (uc *CreateAccountUseCase) Execute(ctx context.Context, input CreateAccountInput) (*CreateAccountOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalidAccount("bank name is required")
	}
	if _, err := uuid.Parse(name); err == nil {
		return nil, invalidAccount("bank name cannot be an id")
	}

	_, err := uc.accountRepo.FindByName(ctx, input.UserID, name)
	switch {
	case err == nil:
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeAccountNameTaken,
			fmt.Sprintf("an account named %q already exists", name),
			domainerror.ErrAccountNameTaken,
		)
	case !errors.Is(err, domainerror.ErrAccountNotFound):
		return nil, fmt.Errorf("failed to check account name: %w", err)
	}

	account := entity.NewAccount(input.UserID, name, input.Purpose, input.Balance)
	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	slog.Info("Account created", "user_id", account.UserID, "account_id", account.ID)

	return &CreateAccountOutput{
		Account: account,
	}, nil
}

// ListAccountsInput represents the input for listing accounts.
type ListAccountsInput struct {
	UserID        uuid.UUID
	IncludeClosed bool
}

// ListAccountsOutput represents the output of listing accounts.
type ListAccountsOutput struct {
	Accounts []*entity.Account
	Total    decimal.Decimal // Active accounts only
}

// ListAccountsUseCase handles listing a user's bank accounts.
type ListAccountsUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewListAccountsUseCase creates a new ListAccountsUseCase instance.
func NewListAccountsUseCase(accountRepo adapter.AccountRepository) *ListAccountsUseCase {
	return &ListAccountsUseCase{
		accountRepo: accountRepo,
	}
}

// Execute performs the account listing.
func (uc *ListAccountsUseCase) Execute(ctx context.Context, input ListAccountsInput) (*ListAccountsOutput, error) {
	accounts, err := uc.accountRepo.FindByUserID(ctx, input.UserID, input.IncludeClosed)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		accounts = []*entity.Account{}
	}

	return &ListAccountsOutput{
		Accounts: accounts,
		Total:    entity.TotalBalance(accounts),
	}, nil
}

// UpdateAccountBalanceInput represents the input for recording an account balance.
type UpdateAccountBalanceInput struct {
	UserID  uuid.UUID
	Ref     string
	Balance decimal.Decimal
}

// UpdateAccountBalanceOutput represents the output of a balance update.
type UpdateAccountBalanceOutput struct {
	Account  *entity.Account
	Previous decimal.Decimal
}

// UpdateAccountBalanceUseCase records the current balance of an account.
type UpdateAccountBalanceUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewUpdateAccountBalanceUseCase creates a new UpdateAccountBalanceUseCase instance.
func NewUpdateAccountBalanceUseCase(accountRepo adapter.AccountRepository) *UpdateAccountBalanceUseCase {
	return &UpdateAccountBalanceUseCase{
		accountRepo: accountRepo,
	}
}

// Execute performs the balance update.
func (uc *UpdateAccountBalanceUseCase) Execute(ctx context.Context, input UpdateAccountBalanceInput) (*UpdateAccountBalanceOutput, error) {
	account, err := ResolveAccount(ctx, uc.accountRepo, input.UserID, input.Ref)
	if err != nil {
		return nil, err
	}
	if !account.Active {
		return nil, invalidAccount(fmt.Sprintf("account %q is closed", account.Name))
	}

	previous := account.Balance
	account.Balance = input.Balance
	account.UpdatedAt = time.Now().UTC()
	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	return &UpdateAccountBalanceOutput{
		Account:  account,
		Previous: previous,
	}, nil
}

// CloseAccountInput represents the input for closing an account.
type CloseAccountInput struct {
	UserID uuid.UUID
	Ref    string
}

// CloseAccountUseCase deactivates an account. Its history stays stored.
type CloseAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewCloseAccountUseCase creates a new CloseAccountUseCase instance.
func NewCloseAccountUseCase(accountRepo adapter.AccountRepository) *CloseAccountUseCase {
	return &CloseAccountUseCase{
		accountRepo: accountRepo,
	}
}

// Execute performs the account close.
func (uc *CloseAccountUseCase) Execute(ctx context.Context, input CloseAccountInput) error {
	account, err := ResolveAccount(ctx, uc.accountRepo, input.UserID, input.Ref)
	if err != nil {
		return err
	}
	if !account.Active {
		return nil
	}

	account.Active = false
	account.UpdatedAt = time.Now().UTC()
	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return fmt.Errorf("failed to close account: %w", err)
	}
	return nil
}
