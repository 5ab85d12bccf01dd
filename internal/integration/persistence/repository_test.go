package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/avecbanker/backend/internal/domain/entity"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
	"github.com/avecbanker/backend/internal/integration/persistence/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	dbSQL, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	dbSQL.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = dbSQL.Close() })

	db, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *entity.User {
	t.Helper()
	user := entity.NewUser(email, "Test User", "hash")
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func newGoal(userID uuid.UUID, name string, priority int, target string) *entity.Goal {
	return entity.NewGoal(userID, name, entity.GoalKindPayoff, decimal.RequireFromString(target), priority)
}

func TestGoalRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("create and find by id", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewGoalRepository(db)
		user := createUser(t, db, "goals@example.com")

		goal := newGoal(user.ID, "Car loan", 1, "20000")
		goal.CurrentAmount = decimal.RequireFromString("4000.50")
		targetDate := time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)
		goal.TargetDate = &targetDate
		require.NoError(t, repo.Create(ctx, goal))

		found, err := repo.FindByID(ctx, goal.ID)
		require.NoError(t, err)
		assert.Equal(t, "Car loan", found.Name)
		assert.Equal(t, entity.GoalKindPayoff, found.Kind)
		assert.True(t, found.TargetAmount.Equal(decimal.NewFromInt(20000)))
		assert.True(t, found.CurrentAmount.Equal(decimal.RequireFromString("4000.50")))
		assert.True(t, found.Active)
		require.NotNil(t, found.TargetDate)
		assert.Equal(t, "2027-06-01", found.TargetDate.Format("2006-01-02"))
	})

	t.Run("find by id returns not found", func(t *testing.T) {
		repo := NewGoalRepository(openTestDB(t))

		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, domainerror.ErrGoalNotFound)
	})

	t.Run("find by user orders by priority then creation", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewGoalRepository(db)
		user := createUser(t, db, "order@example.com")
		other := createUser(t, db, "other@example.com")

		base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		third := newGoal(user.ID, "Vacation", 2, "3000")
		third.CreatedAt = base.Add(2 * time.Hour)
		second := newGoal(user.ID, "Emergency fund", 2, "5000")
		second.CreatedAt = base.Add(time.Hour)
		first := newGoal(user.ID, "Credit card", 1, "2000")
		first.CreatedAt = base.Add(3 * time.Hour)
		closed := newGoal(user.ID, "Old loan", 1, "100")
		closed.Close(base)
		foreign := newGoal(other.ID, "Not mine", 1, "100")

		for _, g := range []*entity.Goal{third, second, first, closed, foreign} {
			require.NoError(t, repo.Create(ctx, g))
		}

		goals, err := repo.FindByUserID(ctx, user.ID, false)
		require.NoError(t, err)
		require.Len(t, goals, 3)
		assert.Equal(t, "Credit card", goals[0].Name)
		assert.Equal(t, "Emergency fund", goals[1].Name)
		assert.Equal(t, "Vacation", goals[2].Name)

		all, err := repo.FindByUserID(ctx, user.ID, true)
		require.NoError(t, err)
		assert.Len(t, all, 4)
	})

	t.Run("exists active by name ignores case and closed goals", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewGoalRepository(db)
		user := createUser(t, db, "names@example.com")

		goal := newGoal(user.ID, "Car Loan", 1, "20000")
		closed := newGoal(user.ID, "Vacation", 2, "3000")
		closed.Close(time.Now().UTC())
		require.NoError(t, repo.Create(ctx, goal))
		require.NoError(t, repo.Create(ctx, closed))

		exists, err := repo.ExistsActiveByName(ctx, user.ID, "car loan", uuid.Nil)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsActiveByName(ctx, user.ID, "car loan", goal.ID)
		require.NoError(t, err)
		assert.False(t, exists)

		exists, err = repo.ExistsActiveByName(ctx, user.ID, "vacation", uuid.Nil)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("update persists closing", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewGoalRepository(db)
		user := createUser(t, db, "update@example.com")

		goal := newGoal(user.ID, "Card", 1, "1000")
		require.NoError(t, repo.Create(ctx, goal))

		goal.ApplyPayment(decimal.NewFromInt(1000), time.Now().UTC())
		require.NoError(t, repo.Update(ctx, goal))

		found, err := repo.FindByID(ctx, goal.ID)
		require.NoError(t, err)
		assert.False(t, found.Active)
		assert.NotNil(t, found.ClosedAt)
		assert.True(t, found.CurrentAmount.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("update progress keeps a contribution stored after the goal was read", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewGoalRepository(db)
		user := createUser(t, db, "progress@example.com")

		goal := newGoal(user.ID, "Card", 1, "1000")
		goal.MonthlyContribution = decimal.NewFromInt(100)
		require.NoError(t, repo.Create(ctx, goal))

		stale, err := repo.FindByID(ctx, goal.ID)
		require.NoError(t, err)

		require.NoError(t, repo.UpdateContributions(ctx, user.ID, map[uuid.UUID]decimal.Decimal{
			goal.ID: decimal.NewFromInt(250),
		}))

		stale.ApplyPayment(decimal.NewFromInt(300), time.Now().UTC())
		require.NoError(t, repo.UpdateProgress(ctx, stale))

		found, err := repo.FindByID(ctx, goal.ID)
		require.NoError(t, err)
		assert.True(t, found.CurrentAmount.Equal(decimal.NewFromInt(300)))
		assert.True(t, found.MonthlyContribution.Equal(decimal.NewFromInt(250)))
		assert.True(t, found.Active)
	})

	t.Run("update progress stores closing", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewGoalRepository(db)
		user := createUser(t, db, "closing@example.com")

		goal := newGoal(user.ID, "Card", 1, "1000")
		require.NoError(t, repo.Create(ctx, goal))

		goal.Close(time.Now().UTC())
		require.NoError(t, repo.UpdateProgress(ctx, goal))

		found, err := repo.FindByID(ctx, goal.ID)
		require.NoError(t, err)
		assert.False(t, found.Active)
		assert.NotNil(t, found.ClosedAt)
	})

	t.Run("update progress on a missing goal", func(t *testing.T) {
		db := openTestDB(t)
		user := createUser(t, db, "missing@example.com")

		err := NewGoalRepository(db).UpdateProgress(ctx, newGoal(user.ID, "Ghost", 1, "10"))
		assert.ErrorIs(t, err, domainerror.ErrGoalNotFound)
	})

	t.Run("update contributions is scoped to the owner", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewGoalRepository(db)
		user := createUser(t, db, "contrib@example.com")
		other := createUser(t, db, "intruder@example.com")

		mine := newGoal(user.ID, "Car", 1, "20000")
		theirs := newGoal(other.ID, "Boat", 1, "50000")
		require.NoError(t, repo.Create(ctx, mine))
		require.NoError(t, repo.Create(ctx, theirs))

		err := repo.UpdateContributions(ctx, user.ID, map[uuid.UUID]decimal.Decimal{
			mine.ID:   decimal.RequireFromString("625.50"),
			theirs.ID: decimal.NewFromInt(999),
		})
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, mine.ID)
		require.NoError(t, err)
		assert.True(t, found.MonthlyContribution.Equal(decimal.RequireFromString("625.50")))

		untouched, err := repo.FindByID(ctx, theirs.ID)
		require.NoError(t, err)
		assert.True(t, untouched.MonthlyContribution.IsZero())
	})
}

func TestBudgetRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("missing profile returns not found", func(t *testing.T) {
		repo := NewBudgetRepository(openTestDB(t))

		_, err := repo.FindByUserID(ctx, uuid.New())
		assert.ErrorIs(t, err, domainerror.ErrBudgetNotFound)
	})

	t.Run("save inserts then replaces", func(t *testing.T) {
		db := openTestDB(t)
		repo := NewBudgetRepository(db)
		user := createUser(t, db, "budget@example.com")

		profile := entity.NewBudgetProfile(user.ID, "monthly", "USD")
		require.NoError(t, repo.Save(ctx, profile))

		profile.MonthlyIncome = decimal.NewFromInt(54800)
		profile.NeedsPct = 50
		profile.WantsPct = 0
		profile.SavingsPct = 25
		profile.ExtraPct = 25
		profile.Cadence = "14 days"
		require.NoError(t, repo.Save(ctx, profile))

		found, err := repo.FindByUserID(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, found.MonthlyIncome.Equal(decimal.NewFromInt(54800)))
		assert.Equal(t, 50, found.NeedsPct)
		assert.Equal(t, 0, found.WantsPct)
		assert.Equal(t, "14 days", found.Cadence)

		var count int64
		require.NoError(t, db.Model(&model.BudgetProfileModel{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

func TestBillRepository(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewBillRepository(db)
	user := createUser(t, db, "bills@example.com")

	rent := entity.NewBill(user.ID, "Rent", decimal.NewFromInt(1500), 5)
	phone := entity.NewBill(user.ID, "Phone", decimal.NewFromInt(60), 1)
	gym := entity.NewBill(user.ID, "Gym", decimal.NewFromInt(40), 20)
	for _, b := range []*entity.Bill{rent, phone, gym} {
		require.NoError(t, repo.Create(ctx, b))
	}

	gym.Active = false
	require.NoError(t, repo.Update(ctx, gym))

	bills, err := repo.FindByUserID(ctx, user.ID, false)
	require.NoError(t, err)
	require.Len(t, bills, 2)
	assert.Equal(t, "Phone", bills[0].Name)
	assert.Equal(t, "Rent", bills[1].Name)
	assert.True(t, entity.TotalBills(bills).Equal(decimal.NewFromInt(1560)))

	all, err := repo.FindByUserID(ctx, user.ID, true)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerror.ErrBillNotFound)
}

func TestExpenseRepository(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewExpenseRepository(db)
	user := createUser(t, db, "expenses@example.com")
	other := createUser(t, db, "other-expenses@example.com")

	monthStart := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	stamp := func(e *entity.Expense, at time.Time) *entity.Expense {
		e.CreatedAt = at
		return e
	}
	old := stamp(entity.NewExpense(user.ID, "Shoes", decimal.NewFromInt(80), entity.CategoryWants), monthStart.AddDate(0, 0, -3))
	groceries := stamp(entity.NewExpense(user.ID, "Groceries", decimal.RequireFromString("54.20"), entity.CategoryNeeds), monthStart.AddDate(0, 0, 2))
	cinema := stamp(entity.NewExpense(user.ID, "Cinema", decimal.NewFromInt(18), entity.CategoryWants), monthStart.AddDate(0, 0, 4))
	foreign := stamp(entity.NewExpense(other.ID, "Rent", decimal.NewFromInt(900), entity.CategoryNeeds), monthStart.AddDate(0, 0, 1))
	for _, e := range []*entity.Expense{old, groceries, cinema, foreign} {
		require.NoError(t, repo.Create(ctx, e))
	}

	t.Run("since filters and orders newest first", func(t *testing.T) {
		expenses, err := repo.FindByUserID(ctx, user.ID, monthStart, 0)
		require.NoError(t, err)
		require.Len(t, expenses, 2)
		assert.Equal(t, "Cinema", expenses[0].Description)
		assert.Equal(t, "Groceries", expenses[1].Description)
		assert.Equal(t, entity.CategoryNeeds, expenses[1].Category)
		assert.True(t, expenses[1].Amount.Equal(decimal.RequireFromString("54.20")))
	})

	t.Run("limit keeps the most recent", func(t *testing.T) {
		expenses, err := repo.FindByUserID(ctx, user.ID, time.Time{}, 1)
		require.NoError(t, err)
		require.Len(t, expenses, 1)
		assert.Equal(t, "Cinema", expenses[0].Description)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, old.ID))

		_, err := repo.FindByID(ctx, old.ID)
		assert.ErrorIs(t, err, domainerror.ErrExpenseNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, old.ID), domainerror.ErrExpenseNotFound)
	})
}

func TestUserAndTokenRepositories(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	users := NewUserRepository(db)
	tokens := NewTokenRepository(db)

	user := createUser(t, db, "auth@example.com")

	exists, err := users.ExistsByEmail(ctx, "auth@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	found, err := users.FindByEmail(ctx, "auth@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.True(t, found.MilestoneReminders)

	_, err = users.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerror.ErrUserNotFound)

	require.NoError(t, tokens.SaveRefreshToken(ctx, "live-token", user.ID, time.Now().UTC().Add(time.Hour)))
	require.NoError(t, tokens.SaveRefreshToken(ctx, "stale-token", user.ID, time.Now().UTC().Add(-time.Hour)))

	valid, err := tokens.IsRefreshTokenValid(ctx, "live-token")
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = tokens.IsRefreshTokenValid(ctx, "stale-token")
	require.NoError(t, err)
	assert.False(t, valid)

	require.NoError(t, tokens.InvalidateRefreshToken(ctx, "live-token"))
	valid, err = tokens.IsRefreshTokenValid(ctx, "live-token")
	require.NoError(t, err)
	assert.False(t, valid)
}
