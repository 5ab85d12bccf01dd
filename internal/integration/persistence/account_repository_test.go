package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avecbanker/backend/internal/domain/entity"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
)

func TestAccountRepository(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewAccountRepository(db)
	user := createUser(t, db, "accounts@example.com")

	checking := entity.NewAccount(user.ID, "Chase", "bills", decimal.RequireFromString("2500.75"))
	savings := entity.NewAccount(user.ID, "Ally", "emergency fund", decimal.NewFromInt(8000))
	savings.CreatedAt = checking.CreatedAt.Add(time.Second)
	require.NoError(t, repo.Create(ctx, checking))
	require.NoError(t, repo.Create(ctx, savings))

	t.Run("find by name ignores case", func(t *testing.T) {
		found, err := repo.FindByName(ctx, user.ID, "CHASE")
		require.NoError(t, err)
		assert.Equal(t, checking.ID, found.ID)
		assert.Equal(t, "bills", found.Purpose)
		assert.True(t, found.Balance.Equal(decimal.RequireFromString("2500.75")))
	})

	t.Run("closed accounts are hidden", func(t *testing.T) {
		closed := *savings
		closed.Active = false
		require.NoError(t, repo.Update(ctx, &closed))

		active, err := repo.FindByUserID(ctx, user.ID, false)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, "Chase", active[0].Name)

		all, err := repo.FindByUserID(ctx, user.ID, true)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		_, err = repo.FindByName(ctx, user.ID, "ally")
		assert.ErrorIs(t, err, domainerror.ErrAccountNotFound)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, domainerror.ErrAccountNotFound)
	})
}

func TestCreditCardRepository(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewCreditCardRepository(db)
	user := createUser(t, db, "cards@example.com")

	dueDay := 15
	card := entity.NewCreditCard(user.ID, "Visa", decimal.NewFromInt(5000), &dueDay, nil)
	require.NoError(t, repo.Create(ctx, card))

	card.Balance = decimal.RequireFromString("1234.56")
	require.NoError(t, repo.Update(ctx, card))

	found, err := repo.FindByName(ctx, user.ID, "visa")
	require.NoError(t, err)
	assert.True(t, found.Balance.Equal(decimal.RequireFromString("1234.56")))
	require.NotNil(t, found.DueDay)
	assert.Equal(t, 15, *found.DueDay)
	assert.Nil(t, found.StatementDay)

	other := createUser(t, db, "other-cards@example.com")
	_, err = repo.FindByName(ctx, other.ID, "Visa")
	assert.ErrorIs(t, err, domainerror.ErrCardNotFound)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerror.ErrCardNotFound)
}
