package planning

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avecbanker/backend/internal/domain/entity"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
)

func TestRebalance_Scenario(t *testing.T) {
	goals := scenarioGoals()

	report, err := Rebalance(goals, dec("10000"), Monthly, testNow)
	require.NoError(t, err)

	require.Len(t, report.Plans, 2)
	assertAmount(t, "6500", report.Plans[0].Allocation.Amount)
	assertAmount(t, "3500", report.Plans[1].Allocation.Amount)
	assertAmount(t, "0", report.Remainder)

	car := report.Projections[goals[0].ID]
	assert.Equal(t, 32, car.Periods)
	card := report.Projections[goals[1].ID]
	assert.Equal(t, 20, card.Periods)

	assert.Contains(t, report.Warnings, "goals request 13700.00 per period but only 10000.00 is available")
}

func TestRebalance_Idempotent(t *testing.T) {
	goals := []entity.Goal{
		testGoal("Card", 1, "1500", withRate("200")),
		testGoal("Holiday", 2, "2400", withKind(entity.GoalKindPurchase), withTargetDate(2026, time.July, 1)),
		testGoal("Rainy day", 3, "0", withKind(entity.GoalKindSavings)),
	}

	first, err := Rebalance(goals, dec("987.65"), Biweekly, testNow)
	require.NoError(t, err)
	second, err := Rebalance(goals, dec("987.65"), Biweekly, testNow)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRebalance_DoesNotMutateGoals(t *testing.T) {
	goals := scenarioGoals()
	snapshot := scenarioGoals()

	_, err := Rebalance(goals, dec("10000"), Monthly, testNow)
	require.NoError(t, err)

	assert.Equal(t, snapshot, goals)
}

func TestRebalance_Warnings(t *testing.T) {
	t.Run("goal that will miss its date", func(t *testing.T) {
		goals := []entity.Goal{
			testGoal("Card", 1, "5000", withRate("900")),
			testGoal("Trip", 2, "1000", withKind(entity.GoalKindPurchase), withTargetDate(2026, time.May, 15)),
		}

		report, err := Rebalance(goals, dec("1000"), Monthly, testNow)
		require.NoError(t, err)

		assert.Contains(t, report.Warnings, "Trip will miss its target date at 100.00 per period")
	})

	t.Run("overdue goal", func(t *testing.T) {
		goals := []entity.Goal{
			testGoal("Trip", 1, "1000", withKind(entity.GoalKindPurchase), withTargetDate(2025, time.May, 15)),
		}

		report, err := Rebalance(goals, dec("1000"), Monthly, testNow)
		require.NoError(t, err)

		assert.Contains(t, report.Warnings, "Trip is past its target date")
		assertAmount(t, "1000", report.Plans[0].Allocation.Amount)
	})

	t.Run("starved goal", func(t *testing.T) {
		goals := []entity.Goal{
			testGoal("Card", 1, "5000", withRate("1000")),
			testGoal("Loan", 2, "5000", withRate("100")),
		}

		report, err := Rebalance(goals, dec("1000"), Monthly, testNow)
		require.NoError(t, err)

		assert.Contains(t, report.Warnings, "Loan receives nothing this period")
		assert.True(t, report.Projections[goals[1].ID].Infinite)
	})

	t.Run("fully funded plan has no warnings", func(t *testing.T) {
		report, err := Rebalance(scenarioGoals(), dec("13700"), Monthly, testNow)
		require.NoError(t, err)
		assert.Empty(t, report.Warnings)
	})
}

func TestRebalance_InvalidInput(t *testing.T) {
	_, err := Rebalance(scenarioGoals(), dec("-0.01"), Monthly, testNow)
	assert.True(t, errors.Is(err, domainerror.ErrInvalidAmount))
}
