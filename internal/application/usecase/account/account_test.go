package account

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/avecbanker/backend/internal/application/adapter/mocks"
	"github.com/avecbanker/backend/internal/application/usecase/goal"
	"github.com/avecbanker/backend/internal/domain/entity"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
)

func TestCreateAccountUseCase(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("creates an account", func(t *testing.T) {
		repo := new(mocks.AccountRepository)
		repo.On("FindByName", mock.Anything, userID, "Chase").Return(nil, domainerror.ErrAccountNotFound)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Account")).Return(nil)

		out, err := NewCreateAccountUseCase(repo).Execute(ctx, CreateAccountInput{
			UserID:  userID,
			Name:    " Chase ",
			Purpose: "bills",
			Balance: decimal.NewFromInt(2500),
		})

		require.NoError(t, err)
		assert.Equal(t, "Chase", out.Account.Name)
		assert.True(t, out.Account.Active)
		repo.AssertExpectations(t)
	})

	t.Run("name already used", func(t *testing.T) {
		repo := new(mocks.AccountRepository)
		repo.On("FindByName", mock.Anything, userID, "Chase").Return(entity.NewAccount(userID, "chase", "", decimal.Zero), nil)

		_, err := NewCreateAccountUseCase(repo).Execute(ctx, CreateAccountInput{UserID: userID, Name: "Chase"})

		assert.True(t, errors.Is(err, domainerror.ErrAccountNameTaken))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := NewCreateAccountUseCase(new(mocks.AccountRepository)).Execute(ctx, CreateAccountInput{UserID: userID, Name: "  "})

		var accountErr *domainerror.AccountError
		require.True(t, errors.As(err, &accountErr))
		assert.Equal(t, domainerror.ErrCodeInvalidAccount, accountErr.Code)
	})
}

func TestListAccountsUseCase(t *testing.T) {
	userID := uuid.New()
	closed := entity.NewAccount(userID, "Old bank", "", decimal.NewFromInt(999))
	closed.Active = false
	repo := new(mocks.AccountRepository)
	repo.On("FindByUserID", mock.Anything, userID, true).Return([]*entity.Account{
		entity.NewAccount(userID, "Chase", "", decimal.RequireFromString("1200.50")),
		entity.NewAccount(userID, "Ally", "", decimal.NewFromInt(800)),
		closed,
	}, nil)

	out, err := NewListAccountsUseCase(repo).Execute(context.Background(), ListAccountsInput{UserID: userID, IncludeClosed: true})

	require.NoError(t, err)
	assert.Len(t, out.Accounts, 3)
	assert.Equal(t, "2000.50", out.Total.StringFixed(2))
}

func TestUpdateAccountBalanceUseCase(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("by name", func(t *testing.T) {
		account := entity.NewAccount(userID, "Chase", "", decimal.NewFromInt(100))
		repo := new(mocks.AccountRepository)
		repo.On("FindByName", mock.Anything, userID, "chase").Return(account, nil)
		repo.On("Update", mock.Anything, account).Return(nil)

		out, err := NewUpdateAccountBalanceUseCase(repo).Execute(ctx, UpdateAccountBalanceInput{
			UserID:  userID,
			Ref:     "chase",
			Balance: decimal.NewFromInt(-40),
		})

		require.NoError(t, err)
		assert.True(t, out.Previous.Equal(decimal.NewFromInt(100)))
		assert.True(t, out.Account.Balance.Equal(decimal.NewFromInt(-40)))
	})

	t.Run("another user's account is missing", func(t *testing.T) {
		account := entity.NewAccount(uuid.New(), "Chase", "", decimal.Zero)
		repo := new(mocks.AccountRepository)
		repo.On("FindByID", mock.Anything, account.ID).Return(account, nil)

		_, err := NewUpdateAccountBalanceUseCase(repo).Execute(ctx, UpdateAccountBalanceInput{
			UserID: userID,
			Ref:    account.ID.String(),
		})

		assert.True(t, errors.Is(err, domainerror.ErrAccountNotFound))
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestCloseAccountUseCase(t *testing.T) {
	userID := uuid.New()
	account := entity.NewAccount(userID, "Chase", "", decimal.Zero)
	repo := new(mocks.AccountRepository)
	repo.On("FindByName", mock.Anything, userID, "Chase").Return(account, nil)
	repo.On("Update", mock.Anything, account).Return(nil)

	err := NewCloseAccountUseCase(repo).Execute(context.Background(), CloseAccountInput{UserID: userID, Ref: "Chase"})

	require.NoError(t, err)
	assert.False(t, account.Active)
}

func TestCreateCardUseCase(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("creates a card", func(t *testing.T) {
		dueDay := 20
		repo := new(mocks.CreditCardRepository)
		repo.On("FindByName", mock.Anything, userID, "Visa").Return(nil, domainerror.ErrCardNotFound)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*entity.CreditCard")).Return(nil)

		out, err := NewCreateCardUseCase(repo).Execute(ctx, CreateCardInput{
			UserID:      userID,
			Name:        "Visa",
			CreditLimit: decimal.NewFromInt(5000),
			Balance:     decimal.NewFromInt(1250),
			DueDay:      &dueDay,
		})

		require.NoError(t, err)
		assert.Equal(t, "3750.00", out.Card.Available().StringFixed(2))
		assert.Equal(t, "25.0", out.Card.Utilization().StringFixed(1))
	})

	t.Run("due day out of range", func(t *testing.T) {
		dueDay := 32
		_, err := NewCreateCardUseCase(new(mocks.CreditCardRepository)).Execute(ctx, CreateCardInput{
			UserID:      userID,
			Name:        "Visa",
			CreditLimit: decimal.NewFromInt(5000),
			DueDay:      &dueDay,
		})

		var accountErr *domainerror.AccountError
		require.True(t, errors.As(err, &accountErr))
		assert.Equal(t, domainerror.ErrCodeInvalidCard, accountErr.Code)
	})

	t.Run("name already used", func(t *testing.T) {
		repo := new(mocks.CreditCardRepository)
		repo.On("FindByName", mock.Anything, userID, "Visa").Return(entity.NewCreditCard(userID, "VISA", decimal.Zero, nil, nil), nil)

		_, err := NewCreateCardUseCase(repo).Execute(ctx, CreateCardInput{UserID: userID, Name: "Visa"})

		assert.True(t, errors.Is(err, domainerror.ErrAccountNameTaken))
	})
}

func TestUpdateCardBalanceUseCase(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("records the balance", func(t *testing.T) {
		card := entity.NewCreditCard(userID, "Visa", decimal.NewFromInt(1000), nil, nil)
		repo := new(mocks.CreditCardRepository)
		repo.On("FindByName", mock.Anything, userID, "Visa").Return(card, nil)
		repo.On("Update", mock.Anything, card).Return(nil)

		out, err := NewUpdateCardBalanceUseCase(repo).Execute(ctx, UpdateCardBalanceInput{
			UserID:  userID,
			Ref:     "Visa",
			Balance: decimal.NewFromInt(1200),
		})

		require.NoError(t, err)
		assert.True(t, out.Card.Available().IsZero(), "over the limit leaves nothing available")
		assert.Equal(t, "120.0", out.Card.Utilization().StringFixed(1))
	})

	t.Run("negative balance", func(t *testing.T) {
		repo := new(mocks.CreditCardRepository)

		_, err := NewUpdateCardBalanceUseCase(repo).Execute(ctx, UpdateCardBalanceInput{
			UserID:  userID,
			Ref:     "Visa",
			Balance: decimal.NewFromInt(-1),
		})

		assert.True(t, errors.Is(err, domainerror.ErrInvalidAccount))
		repo.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCloseCardUseCase(t *testing.T) {
	userID := uuid.New()
	card := entity.NewCreditCard(userID, "Visa", decimal.NewFromInt(1000), nil, nil)
	repo := new(mocks.CreditCardRepository)
	repo.On("FindByID", mock.Anything, card.ID).Return(card, nil)
	repo.On("Update", mock.Anything, card).Return(nil)

	err := NewCloseCardUseCase(repo).Execute(context.Background(), CloseCardInput{UserID: userID, Ref: card.ID.String()})

	require.NoError(t, err)
	assert.False(t, card.Active)
}

func TestCreatePayoffGoalUseCase(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	newUseCase := func(cards *mocks.CreditCardRepository, goals *mocks.GoalRepository, lock *mocks.OwnerLock) *CreatePayoffGoalUseCase {
		return NewCreatePayoffGoalUseCase(cards, goal.NewCreateGoalUseCase(goals, lock))
	}

	t.Run("targets the card balance", func(t *testing.T) {
		card := entity.NewCreditCard(userID, "Visa", decimal.NewFromInt(5000), nil, nil)
		card.Balance = decimal.RequireFromString("2340.18")
		cards := new(mocks.CreditCardRepository)
		cards.On("FindByName", mock.Anything, userID, "visa").Return(card, nil)
		goals := new(mocks.GoalRepository)
		goals.On("FindByUserID", mock.Anything, userID, false).Return(nil, nil)
		goals.On("ExistsActiveByName", mock.Anything, userID, "Visa payoff", uuid.Nil).Return(false, nil)
		goals.On("Create", mock.Anything, mock.AnythingOfType("*entity.Goal")).Return(nil)
		lock := new(mocks.OwnerLock)
		lock.On("Acquire", mock.Anything, userID).Return(nil)

		out, err := newUseCase(cards, goals, lock).Execute(ctx, CreatePayoffGoalInput{
			UserID:              userID,
			CardRef:             "visa",
			MonthlyContribution: decimal.NewFromInt(300),
		})

		require.NoError(t, err)
		assert.Equal(t, "Visa payoff", out.Goal.Name)
		assert.Equal(t, entity.GoalKindPayoff, out.Goal.Kind)
		assert.Equal(t, "2340.18", out.Goal.TargetAmount.StringFixed(2))
		assert.True(t, out.Goal.CurrentAmount.IsZero())
		assert.Equal(t, 1, out.Goal.Priority)
		assert.Equal(t, 1, lock.Released)
	})

	t.Run("card with nothing owed", func(t *testing.T) {
		card := entity.NewCreditCard(userID, "Visa", decimal.NewFromInt(5000), nil, nil)
		cards := new(mocks.CreditCardRepository)
		cards.On("FindByName", mock.Anything, userID, "Visa").Return(card, nil)
		goals := new(mocks.GoalRepository)

		_, err := newUseCase(cards, goals, new(mocks.OwnerLock)).Execute(ctx, CreatePayoffGoalInput{UserID: userID, CardRef: "Visa"})

		var accountErr *domainerror.AccountError
		require.True(t, errors.As(err, &accountErr))
		assert.Equal(t, domainerror.ErrCodeCardPaidOff, accountErr.Code)
		goals.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown card", func(t *testing.T) {
		cards := new(mocks.CreditCardRepository)
		cards.On("FindByName", mock.Anything, userID, "Amex").Return(nil, domainerror.ErrCardNotFound)

		_, err := newUseCase(cards, new(mocks.GoalRepository), new(mocks.OwnerLock)).Execute(ctx, CreatePayoffGoalInput{UserID: userID, CardRef: "Amex"})

		assert.True(t, errors.Is(err, domainerror.ErrCardNotFound))
	})
}
