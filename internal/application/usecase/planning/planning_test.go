package planning

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/avecbanker/backend/internal/application/adapter/mocks"
	"github.com/avecbanker/backend/internal/application/usecase/budget"
	"github.com/avecbanker/backend/internal/domain/entity"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
)

var fixedNow = time.Date(2026, time.January, 15, 9, 0, 0, 0, time.UTC)

type fixture struct {
	userID  uuid.UUID
	car     *entity.Goal
	card    *entity.Goal
	goals   *mocks.GoalRepository
	budgets *mocks.BudgetRepository
	bills   *mocks.BillRepository
	lock    *mocks.OwnerLock
}

// newFixture stores the two-goal scenario with a 13700 monthly envelope.
func newFixture() *fixture {
	userID := uuid.New()
	car := entity.NewGoal(userID, "Car loan", entity.GoalKindPayoff, decimal.NewFromInt(208000), 1)
	car.MonthlyContribution = decimal.NewFromInt(6500)
	card := entity.NewGoal(userID, "Card", entity.GoalKindPayoff, decimal.NewFromInt(70000), 2)
	card.MonthlyContribution = decimal.NewFromInt(7200)

	profile := entity.NewBudgetProfile(userID, "monthly", "USD")
	profile.MonthlyIncome = decimal.NewFromInt(54800)

	f := &fixture{
		userID:  userID,
		car:     car,
		card:    card,
		goals:   new(mocks.GoalRepository),
		budgets: new(mocks.BudgetRepository),
		bills:   new(mocks.BillRepository),
		lock:    new(mocks.OwnerLock),
	}
	f.goals.On("FindByUserID", mock.Anything, userID, false).Return([]*entity.Goal{car, card}, nil)
	f.goals.On("FindByUserID", mock.Anything, userID, true).Return([]*entity.Goal{car, card}, nil)
	f.budgets.On("FindByUserID", mock.Anything, userID).Return(profile, nil)
	f.bills.On("FindByUserID", mock.Anything, userID, false).Return(nil, nil)
	return f
}

func (f *fixture) resolver() *budget.EnvelopeResolver {
	return budget.NewEnvelopeResolver(f.budgets, f.bills, "monthly", "USD")
}

func (f *fixture) rebalance() *RebalanceUseCase {
	uc := NewRebalanceUseCase(f.goals, f.resolver(), f.lock)
	uc.clock = func() time.Time { return fixedNow }
	return uc
}

func TestRebalanceUseCase_Preview(t *testing.T) {
	f := newFixture()
	override := decimal.NewFromInt(10000)

	out, err := f.rebalance().Execute(context.Background(), RebalanceInput{UserID: f.userID, Envelope: &override})

	require.NoError(t, err)
	assert.False(t, out.Applied)
	assert.True(t, out.Report.Allocation.Amount(f.car.ID).Equal(decimal.NewFromInt(6500)))
	assert.True(t, out.Report.Allocation.Amount(f.card.ID).Equal(decimal.NewFromInt(3500)))
	f.goals.AssertNotCalled(t, "UpdateContributions", mock.Anything, mock.Anything, mock.Anything)
	f.lock.AssertNotCalled(t, "Acquire", mock.Anything, mock.Anything)
}

func TestRebalanceUseCase_Apply(t *testing.T) {
	f := newFixture()
	f.lock.On("Acquire", mock.Anything, f.userID).Return(nil)
	f.goals.On("UpdateContributions", mock.Anything, f.userID, mock.MatchedBy(func(c map[uuid.UUID]decimal.Decimal) bool {
		return len(c) == 2 &&
			c[f.car.ID].Equal(decimal.NewFromInt(6500)) &&
			c[f.card.ID].Equal(decimal.NewFromInt(7200))
	})).Return(nil)

	out, err := f.rebalance().Execute(context.Background(), RebalanceInput{UserID: f.userID, Apply: true})

	require.NoError(t, err)
	assert.True(t, out.Applied)
	assert.True(t, out.Report.Remainder.IsZero())
	assert.Equal(t, 32, out.Report.Projections[f.car.ID].Periods)
	assert.Equal(t, 1, f.lock.Released)
	f.goals.AssertExpectations(t)
}

func TestRebalanceUseCase_LockBusy(t *testing.T) {
	f := newFixture()
	f.lock.On("Acquire", mock.Anything, f.userID).Return(domainerror.NewGoalError(
		domainerror.ErrCodeRebalanceInProgress, "rebalance already in progress", domainerror.ErrRebalanceInProgress))

	_, err := f.rebalance().Execute(context.Background(), RebalanceInput{UserID: f.userID, Apply: true})

	assert.True(t, errors.Is(err, domainerror.ErrRebalanceInProgress))
	f.goals.AssertNotCalled(t, "UpdateContributions", mock.Anything, mock.Anything, mock.Anything)
}

func TestRebalanceUseCase_StoreFailureReleasesLock(t *testing.T) {
	f := newFixture()
	f.lock.On("Acquire", mock.Anything, f.userID).Return(nil)
	f.goals.On("UpdateContributions", mock.Anything, f.userID, mock.Anything).Return(errors.New("connection reset"))

	_, err := f.rebalance().Execute(context.Background(), RebalanceInput{UserID: f.userID, Apply: true})

	require.Error(t, err)
	assert.Equal(t, 1, f.lock.Released)
}

func TestRebalanceUseCase_NegativeOverride(t *testing.T) {
	f := newFixture()
	override := decimal.NewFromInt(-5)

	_, err := f.rebalance().Execute(context.Background(), RebalanceInput{UserID: f.userID, Envelope: &override})

	assert.True(t, errors.Is(err, domainerror.ErrInvalidAmount))
}

func TestSimulateGoalUseCase(t *testing.T) {
	f := newFixture()
	uc := NewSimulateGoalUseCase(f.goals, f.resolver())
	uc.clock = func() time.Time { return fixedNow }

	out, err := uc.Execute(context.Background(), SimulateGoalInput{
		UserID:              f.userID,
		Name:                "Wedding",
		Kind:                entity.GoalKindPurchase,
		TargetAmount:        decimal.NewFromInt(10000),
		MonthlyContribution: decimal.NewFromInt(2000),
		Priority:            1,
	})

	require.NoError(t, err)
	assert.True(t, out.Report.Deltas[f.card.ID].Equal(decimal.NewFromInt(-2000)))
	assert.Equal(t, 5, out.Report.HypotheticalProjection.Periods)
	assert.True(t, f.card.MonthlyContribution.Equal(decimal.NewFromInt(7200)), "stored goals untouched")
	f.goals.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProjectGoalUseCase(t *testing.T) {
	f := newFixture()
	uc := NewProjectGoalUseCase(f.goals, f.resolver())
	uc.clock = func() time.Time { return fixedNow }

	t.Run("planned contribution", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), ProjectGoalInput{UserID: f.userID, Ref: "card"})

		require.NoError(t, err)
		assert.Equal(t, 10, out.Projection.Periods)
	})

	t.Run("rate override", func(t *testing.T) {
		rate := decimal.Zero
		out, err := uc.Execute(context.Background(), ProjectGoalInput{UserID: f.userID, Ref: "Card", Rate: &rate})

		require.NoError(t, err)
		assert.True(t, out.Projection.Infinite)
		assert.Nil(t, out.Projection.ProjectedDate)
	})

	t.Run("unknown goal", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), ProjectGoalInput{UserID: f.userID, Ref: "Boat"})
		assert.True(t, errors.Is(err, domainerror.ErrGoalNotFound))
	})
}

func TestDeadlineUseCase(t *testing.T) {
	f := newFixture()
	date := time.Date(2027, time.January, 15, 0, 0, 0, 0, time.UTC)
	f.card.TargetDate = &date
	uc := NewDeadlineUseCase(f.goals, f.resolver())
	uc.clock = func() time.Time { return fixedNow }

	out, err := uc.Execute(context.Background(), DeadlineInput{UserID: f.userID, Ref: "Card"})

	require.NoError(t, err)
	assert.Equal(t, 12, out.Plan.PeriodsAvailable)
	assert.Equal(t, "5833.34", out.Plan.Required.StringFixed(2))
	assert.True(t, out.Plan.Feasible)
}

func TestSuggestReallocationUseCase(t *testing.T) {
	f := newFixture()
	uc := NewSuggestReallocationUseCase(f.goals, f.resolver())
	uc.clock = func() time.Time { return fixedNow }

	t.Run("cuts the lower priority goal", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), SimulateGoalInput{
			UserID:              f.userID,
			Name:                "Wedding",
			Kind:                entity.GoalKindPurchase,
			TargetAmount:        decimal.NewFromInt(10000),
			MonthlyContribution: decimal.NewFromInt(2000),
			Priority:            1,
		})

		require.NoError(t, err)
		assert.True(t, out.Envelope.Equal(decimal.NewFromInt(13700)))
		require.Len(t, out.Plan.Reductions, 1)
		cut := out.Plan.Reductions[0]
		assert.Equal(t, f.card.ID, cut.GoalID)
		assert.Equal(t, "5200.00", cut.Suggested.StringFixed(2))
		assert.Equal(t, 4, cut.Delay())
		assert.True(t, out.Plan.Shortfall.IsZero())
		f.goals.AssertNotCalled(t, "UpdateContributions", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), SimulateGoalInput{UserID: f.userID, Kind: entity.GoalKindPurchase, Priority: 1})
		assert.True(t, errors.Is(err, domainerror.ErrInvalidGoal))
	})
}
