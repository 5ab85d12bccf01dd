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

func TestProject(t *testing.T) {
	tests := []struct {
		name         string
		goal         entity.Goal
		rate         string
		cadence      Cadence
		wantPeriods  int
		wantInfinite bool
		wantDate     *time.Time
	}{
		{
			name:        "ten monthly periods",
			goal:        testGoal("Car", 1, "100000", withCurrent("20000")),
			rate:        "8000",
			cadence:     Monthly,
			wantPeriods: 10,
			wantDate:    timePtr(time.Date(2026, time.November, 15, 9, 0, 0, 0, time.UTC)),
		},
		{
			name:        "partial last period rounds up",
			goal:        testGoal("Car", 1, "1000"),
			rate:        "300",
			cadence:     Monthly,
			wantPeriods: 4,
			wantDate:    timePtr(time.Date(2026, time.May, 15, 9, 0, 0, 0, time.UTC)),
		},
		{
			name:        "bi-weekly periods",
			goal:        testGoal("Card", 1, "700"),
			rate:        "100",
			cadence:     Biweekly,
			wantPeriods: 7,
			wantDate:    timePtr(testNow.AddDate(0, 0, 98)),
		},
		{
			name:         "zero rate on an unmet goal never completes",
			goal:         testGoal("Card", 1, "700", withCurrent("100")),
			rate:         "0",
			cadence:      Monthly,
			wantInfinite: true,
		},
		{
			name:        "zero rate on a met goal completes now",
			goal:        testGoal("Card", 1, "700", withCurrent("700")),
			rate:        "0",
			cadence:     Monthly,
			wantPeriods: 0,
			wantDate:    timePtr(testNow),
		},
		{
			name:         "open-ended savings never completes",
			goal:         testGoal("Rainy day", 1, "0", withKind(entity.GoalKindSavings), withCurrent("500")),
			rate:         "250",
			cadence:      Monthly,
			wantInfinite: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Project(tt.goal, dec(tt.rate), tt.cadence, testNow)
			require.NoError(t, err)

			assert.Equal(t, tt.wantInfinite, p.Infinite)
			if tt.wantInfinite {
				assert.Nil(t, p.ProjectedDate)
				return
			}
			assert.Equal(t, tt.wantPeriods, p.Periods)
			require.NotNil(t, p.ProjectedDate)
			assert.True(t, tt.wantDate.Equal(*p.ProjectedDate), "got %s", p.ProjectedDate)
		})
	}
}

func TestProject_TargetDateFlags(t *testing.T) {
	t.Run("on track", func(t *testing.T) {
		g := testGoal("Trip", 1, "1000", withKind(entity.GoalKindPurchase), withTargetDate(2026, time.November, 30))
		p, err := Project(g, dec("100"), Monthly, testNow)
		require.NoError(t, err)
		assert.True(t, p.MeetsTargetDate)
		assert.False(t, p.Overdue)
	})

	t.Run("too slow", func(t *testing.T) {
		g := testGoal("Trip", 1, "1000", withKind(entity.GoalKindPurchase), withTargetDate(2026, time.June, 1))
		p, err := Project(g, dec("100"), Monthly, testNow)
		require.NoError(t, err)
		assert.False(t, p.MeetsTargetDate)
		assert.False(t, p.Overdue)
	})

	t.Run("overdue is flagged not errored", func(t *testing.T) {
		g := testGoal("Trip", 1, "1000", withKind(entity.GoalKindPurchase), withTargetDate(2025, time.December, 31))
		p, err := Project(g, dec("100"), Monthly, testNow)
		require.NoError(t, err)
		assert.True(t, p.Overdue)
		assert.False(t, p.MeetsTargetDate)
	})

	t.Run("zero rate misses the date", func(t *testing.T) {
		g := testGoal("Trip", 1, "1000", withKind(entity.GoalKindPurchase), withTargetDate(2026, time.June, 1))
		p, err := Project(g, dec("0"), Monthly, testNow)
		require.NoError(t, err)
		assert.False(t, p.MeetsTargetDate)
	})
}

func TestProject_InvalidInput(t *testing.T) {
	_, err := Project(testGoal("Card", 1, "100"), dec("-1"), Monthly, testNow)
	assert.True(t, errors.Is(err, domainerror.ErrInvalidAmount))

	_, err = Project(testGoal("Card", 1, "100"), dec("10"), Cadence{Unit: UnitMonth, Count: -1}, testNow)
	assert.True(t, errors.Is(err, domainerror.ErrInvalidPeriod))

	_, err = Project(testGoal("Card", 1, "100", withCurrent("101")), dec("10"), Monthly, testNow)
	assert.True(t, errors.Is(err, domainerror.ErrInvalidGoal))
}

func TestAccumulatedBy(t *testing.T) {
	t.Run("open-ended savings grows every whole period", func(t *testing.T) {
		g := testGoal("Rainy day", 1, "0", withKind(entity.GoalKindSavings), withCurrent("100"))

		total, err := AccumulatedBy(g, dec("50"), Monthly, testNow, time.Date(2026, time.July, 20, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assertAmount(t, "400", total)
	})

	t.Run("bounded goal stops at its target", func(t *testing.T) {
		g := testGoal("Card", 1, "300", withCurrent("100"))

		total, err := AccumulatedBy(g, dec("50"), Monthly, testNow, time.Date(2027, time.January, 15, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assertAmount(t, "300", total)
	})

	t.Run("date in the past adds nothing", func(t *testing.T) {
		g := testGoal("Rainy day", 1, "0", withKind(entity.GoalKindSavings), withCurrent("100"))

		total, err := AccumulatedBy(g, dec("50"), Monthly, testNow, testNow.AddDate(-1, 0, 0))
		require.NoError(t, err)
		assertAmount(t, "100", total)
	})
}

func timePtr(t time.Time) *time.Time {
	return &t
}
