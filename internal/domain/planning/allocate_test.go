package planning

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avecbanker/backend/internal/domain/entity"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
)

var (
	testNow     = time.Date(2026, time.January, 15, 9, 0, 0, 0, time.UTC)
	testCreated = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
)

type goalOption func(*entity.Goal)

func withRate(rate string) goalOption {
	return func(g *entity.Goal) { g.MonthlyContribution = decimal.RequireFromString(rate) }
}

func withCurrent(current string) goalOption {
	return func(g *entity.Goal) { g.CurrentAmount = decimal.RequireFromString(current) }
}

func withTargetDate(year int, month time.Month, day int) goalOption {
	return func(g *entity.Goal) {
		d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		g.TargetDate = &d
	}
}

func withKind(kind entity.GoalKind) goalOption {
	return func(g *entity.Goal) { g.Kind = kind }
}

func withCreatedAt(t time.Time) goalOption {
	return func(g *entity.Goal) { g.CreatedAt = t }
}

func inactive() goalOption {
	return func(g *entity.Goal) { g.Active = false }
}

// testGoal builds a deterministic goal; the id is derived from the name.
func testGoal(name string, priority int, target string, opts ...goalOption) entity.Goal {
	g := entity.Goal{
		ID:                  uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)),
		UserID:              uuid.NewSHA1(uuid.NameSpaceOID, []byte("owner")),
		Name:                name,
		Kind:                entity.GoalKindPayoff,
		TargetAmount:        decimal.RequireFromString(target),
		CurrentAmount:       decimal.Zero,
		MonthlyContribution: decimal.Zero,
		Priority:            priority,
		Active:              true,
		CreatedAt:           testCreated,
		UpdatedAt:           testCreated,
	}
	for _, opt := range opts {
		opt(&g)
	}
	return g
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Equal(t, dec(want).StringFixed(2), got.StringFixed(2), msgAndArgs...)
}

func scenarioGoals() []entity.Goal {
	return []entity.Goal{
		testGoal("Car loan", 1, "208000", withRate("6500")),
		testGoal("Card", 2, "70000", withRate("7200")),
	}
}

func TestAllocate_Scenario(t *testing.T) {
	tests := []struct {
		name      string
		envelope  string
		wantA     string
		wantB     string
		remainder string
	}{
		{name: "envelope covers both requests", envelope: "13700", wantA: "6500", wantB: "7200", remainder: "0"},
		{name: "shortfall lands on the lower priority goal", envelope: "10000", wantA: "6500", wantB: "3500", remainder: "0"},
		{name: "surplus is returned as remainder", envelope: "15000", wantA: "6500", wantB: "7200", remainder: "1300"},
		{name: "envelope smaller than first request", envelope: "5000", wantA: "5000", wantB: "0", remainder: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goals := scenarioGoals()

			result, err := Allocate(goals, dec(tt.envelope), Monthly, testNow)
			require.NoError(t, err)

			assertAmount(t, tt.wantA, result.Amount(goals[0].ID))
			assertAmount(t, tt.wantB, result.Amount(goals[1].ID))
			assertAmount(t, tt.remainder, result.Remainder)
			require.Len(t, result.Allocations, 2)
			assert.Equal(t, "Car loan", result.Allocations[0].Name)
		})
	}
}

func TestAllocate_Conservation(t *testing.T) {
	goals := []entity.Goal{
		testGoal("Card", 1, "1500.50", withRate("333.33")),
		testGoal("Holiday", 2, "2400", withKind(entity.GoalKindPurchase), withTargetDate(2026, time.July, 1)),
		testGoal("Rainy day", 3, "0", withKind(entity.GoalKindSavings)),
		testGoal("Laptop", 3, "1299.99", withKind(entity.GoalKindPurchase), withCurrent("1200")),
		testGoal("Student loan", 4, "9000", withCurrent("250.75")),
	}

	for _, envelope := range []string{"0", "0.01", "100", "333.33", "777.77", "1234.56", "10000"} {
		t.Run(envelope, func(t *testing.T) {
			result, err := Allocate(goals, dec(envelope), Monthly, testNow)
			require.NoError(t, err)

			assert.True(t, result.Total().Add(result.Remainder).Equal(dec(envelope)),
				"allocated %s + remainder %s != %s", result.Total(), result.Remainder, envelope)
			assert.False(t, result.Remainder.IsNegative())
			for _, a := range result.Allocations {
				assert.False(t, a.Amount.IsNegative(), a.Name)
				assert.True(t, a.Amount.LessThanOrEqual(a.Requested), a.Name)
				assert.False(t, a.Remaining.IsNegative(), "%s is over-funded", a.Name)
			}
		})
	}
}

func TestAllocate_PriorityMonotonicity(t *testing.T) {
	a := testGoal("A", 1, "50000", withRate("6000"))
	b := testGoal("B", 2, "50000", withRate("6000"))

	for _, envelope := range []string{"3000", "6000", "9000", "12000"} {
		t.Run(envelope, func(t *testing.T) {
			alone, err := Allocate([]entity.Goal{a}, dec(envelope), Monthly, testNow)
			require.NoError(t, err)
			both, err := Allocate([]entity.Goal{b, a}, dec(envelope), Monthly, testNow)
			require.NoError(t, err)

			assert.True(t, both.Amount(a.ID).Equal(alone.Amount(a.ID)))
			if both.Amount(a.ID).LessThan(dec("6000")) {
				assert.True(t, both.Amount(b.ID).IsZero(), "B funded while A is short")
			}
		})
	}
}

func TestAllocate_RequestedAmounts(t *testing.T) {
	tests := []struct {
		name     string
		goal     entity.Goal
		envelope string
		want     string
	}{
		{
			name:     "target date spreads the balance over whole periods",
			goal:     testGoal("Trip", 1, "1000", withKind(entity.GoalKindPurchase), withTargetDate(2026, time.November, 15)),
			envelope: "5000",
			want:     "100",
		},
		{
			name:     "target date rounds up to the cent",
			goal:     testGoal("Trip", 1, "1000", withKind(entity.GoalKindPurchase), withTargetDate(2026, time.April, 15)),
			envelope: "5000",
			want:     "333.34",
		},
		{
			name:     "target date minimum replaces a higher planned contribution",
			goal:     testGoal("Trip", 1, "1000", withKind(entity.GoalKindPurchase), withRate("150"), withTargetDate(2026, time.November, 15)),
			envelope: "5000",
			want:     "100",
		},
		{
			name:     "target date minimum replaces a lower planned contribution",
			goal:     testGoal("Trip", 1, "1000", withKind(entity.GoalKindPurchase), withRate("50"), withTargetDate(2026, time.November, 15)),
			envelope: "5000",
			want:     "100",
		},
		{
			name:     "past target date asks for the full balance",
			goal:     testGoal("Trip", 1, "500", withKind(entity.GoalKindPurchase), withCurrent("100"), withTargetDate(2025, time.December, 1)),
			envelope: "5000",
			want:     "400",
		},
		{
			name:     "target date under one period away asks for the full balance",
			goal:     testGoal("Trip", 1, "500", withKind(entity.GoalKindPurchase), withTargetDate(2026, time.February, 1)),
			envelope: "5000",
			want:     "500",
		},
		{
			name:     "request is capped at what the goal still needs",
			goal:     testGoal("Card", 1, "1000", withCurrent("700"), withRate("1000")),
			envelope: "5000",
			want:     "300",
		},
		{
			name:     "complete goal asks for nothing",
			goal:     testGoal("Card", 1, "1000", withCurrent("1000"), withRate("200")),
			envelope: "5000",
			want:     "0",
		},
		{
			name:     "sole rate-less goal takes the whole envelope up to its balance",
			goal:     testGoal("Card", 1, "1000"),
			envelope: "5000",
			want:     "1000",
		},
		{
			name:     "open-ended savings goal takes the whole envelope",
			goal:     testGoal("Rainy day", 1, "0", withKind(entity.GoalKindSavings)),
			envelope: "750",
			want:     "750",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Allocate([]entity.Goal{tt.goal}, dec(tt.envelope), Monthly, testNow)
			require.NoError(t, err)
			require.Len(t, result.Allocations, 1)

			assertAmount(t, tt.want, result.Allocations[0].Requested)
			assertAmount(t, tt.want, result.Amount(tt.goal.ID))
		})
	}
}

func TestAllocate_DatedGoalLeavesRoomForLowerPriorities(t *testing.T) {
	car := testGoal("Car", 1, "1200", withKind(entity.GoalKindPurchase), withRate("500"), withTargetDate(2027, time.January, 15))
	low := testGoal("Low", 2, "5000", withRate("400"))

	result, err := Allocate([]entity.Goal{car, low}, dec("500"), Monthly, testNow)
	require.NoError(t, err)

	require.Len(t, result.Allocations, 2)
	assertAmount(t, "100", result.Allocations[0].Requested)
	assertAmount(t, "100", result.Amount(car.ID))
	assertAmount(t, "400", result.Amount(low.ID))
	assertAmount(t, "0", result.Remainder)
}

func TestAllocate_EqualShareAfterRatedGoals(t *testing.T) {
	rated := testGoal("Card", 1, "10000", withRate("400"))
	first := testGoal("Laptop", 2, "5000", withKind(entity.GoalKindPurchase))
	second := testGoal("Rainy day", 3, "0", withKind(entity.GoalKindSavings))

	result, err := Allocate([]entity.Goal{second, first, rated}, dec("1000"), Monthly, testNow)
	require.NoError(t, err)

	assertAmount(t, "400", result.Amount(rated.ID))
	assertAmount(t, "300", result.Amount(first.ID))
	assertAmount(t, "300", result.Amount(second.ID))
	assertAmount(t, "0", result.Remainder)
}

func TestAllocate_EqualShareFlooredToCent(t *testing.T) {
	goals := []entity.Goal{
		testGoal("A", 1, "0", withKind(entity.GoalKindSavings)),
		testGoal("B", 2, "0", withKind(entity.GoalKindSavings)),
		testGoal("C", 3, "0", withKind(entity.GoalKindSavings)),
	}

	result, err := Allocate(goals, dec("100"), Monthly, testNow)
	require.NoError(t, err)

	for _, g := range goals {
		assertAmount(t, "33.33", result.Amount(g.ID), g.Name)
	}
	assertAmount(t, "0.01", result.Remainder)
}

func TestAllocate_Ordering(t *testing.T) {
	later := testCreated.Add(24 * time.Hour)

	t.Run("ties broken by creation time", func(t *testing.T) {
		newer := testGoal("Newer", 1, "1000", withRate("600"), withCreatedAt(later))
		older := testGoal("Older", 1, "1000", withRate("600"))

		result, err := Allocate([]entity.Goal{newer, older}, dec("1000"), Monthly, testNow)
		require.NoError(t, err)

		assert.Equal(t, "Older", result.Allocations[0].Name)
		assertAmount(t, "600", result.Amount(older.ID))
		assertAmount(t, "400", result.Amount(newer.ID))
	})

	t.Run("ties on creation time keep input order", func(t *testing.T) {
		first := testGoal("First", 2, "1000", withRate("600"))
		second := testGoal("Second", 2, "1000", withRate("600"))

		result, err := Allocate([]entity.Goal{first, second}, dec("1000"), Monthly, testNow)
		require.NoError(t, err)

		assert.Equal(t, "First", result.Allocations[0].Name)
		assert.Equal(t, "Second", result.Allocations[1].Name)
		assertAmount(t, "400", result.Amount(second.ID))
	})

	t.Run("priority values need not be contiguous", func(t *testing.T) {
		low := testGoal("Low", 40, "1000", withRate("600"))
		high := testGoal("High", 7, "1000", withRate("600"))

		result, err := Allocate([]entity.Goal{low, high}, dec("1000"), Monthly, testNow)
		require.NoError(t, err)

		assert.Equal(t, "High", result.Allocations[0].Name)
	})
}

func TestAllocate_EdgeCases(t *testing.T) {
	t.Run("no active goals returns the envelope", func(t *testing.T) {
		closed := testGoal("Closed", 1, "1000", withRate("100"), inactive())

		result, err := Allocate([]entity.Goal{closed}, dec("2500"), Monthly, testNow)
		require.NoError(t, err)

		assert.Empty(t, result.Allocations)
		assertAmount(t, "2500", result.Remainder)
		assertAmount(t, "0", result.Amount(closed.ID))
	})

	t.Run("nil goal set", func(t *testing.T) {
		result, err := Allocate(nil, dec("10"), Monthly, testNow)
		require.NoError(t, err)
		assertAmount(t, "10", result.Remainder)
	})

	t.Run("zero envelope gives every goal zero", func(t *testing.T) {
		goals := scenarioGoals()

		result, err := Allocate(goals, decimal.Zero, Monthly, testNow)
		require.NoError(t, err)

		for _, a := range result.Allocations {
			assertAmount(t, "0", a.Amount, a.Name)
		}
		assertAmount(t, "0", result.Remainder)
	})
}

func TestAllocate_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		goals    []entity.Goal
		envelope string
		cadence  Cadence
		wantErr  error
		wantCode domainerror.GoalErrorCode
	}{
		{
			name:     "negative envelope",
			goals:    scenarioGoals(),
			envelope: "-1",
			cadence:  Monthly,
			wantErr:  domainerror.ErrInvalidAmount,
			wantCode: domainerror.ErrCodeInvalidAmount,
		},
		{
			name:     "negative rate",
			goals:    []entity.Goal{testGoal("Card", 1, "100", withRate("-5"))},
			envelope: "100",
			cadence:  Monthly,
			wantErr:  domainerror.ErrInvalidAmount,
			wantCode: domainerror.ErrCodeInvalidAmount,
		},
		{
			name:     "payoff without target",
			goals:    []entity.Goal{testGoal("Card", 1, "0")},
			envelope: "100",
			cadence:  Monthly,
			wantErr:  domainerror.ErrInvalidGoal,
			wantCode: domainerror.ErrCodeInvalidGoal,
		},
		{
			name:     "balance above target",
			goals:    []entity.Goal{testGoal("Card", 1, "100", withCurrent("150"))},
			envelope: "100",
			cadence:  Monthly,
			wantErr:  domainerror.ErrInvalidGoal,
			wantCode: domainerror.ErrCodeInvalidGoal,
		},
		{
			name:     "invalid goal anywhere in the set fails the whole call",
			goals:    append(scenarioGoals(), testGoal("Bad", 9, "10", withKind("lottery"))),
			envelope: "100",
			cadence:  Monthly,
			wantErr:  domainerror.ErrInvalidGoal,
			wantCode: domainerror.ErrCodeInvalidGoal,
		},
		{
			name:     "two goals share an id",
			goals:    []entity.Goal{testGoal("Card", 1, "100", withRate("10")), testGoal("Card", 2, "500", withRate("50"))},
			envelope: "100",
			cadence:  Monthly,
			wantErr:  domainerror.ErrInvalidGoal,
			wantCode: domainerror.ErrCodeInvalidGoal,
		},
		{
			name:     "closed goal sharing an id with an active one",
			goals:    []entity.Goal{testGoal("Card", 1, "100"), testGoal("Card", 3, "100", inactive())},
			envelope: "100",
			cadence:  Monthly,
			wantErr:  domainerror.ErrInvalidGoal,
			wantCode: domainerror.ErrCodeInvalidGoal,
		},
		{
			name:     "zero period length",
			goals:    scenarioGoals(),
			envelope: "100",
			cadence:  Cadence{Unit: UnitDay, Count: 0},
			wantErr:  domainerror.ErrInvalidPeriod,
			wantCode: domainerror.ErrCodeInvalidPeriod,
		},
		{
			name:     "unresolvable target date",
			goals:    []entity.Goal{testGoal("Card", 1, "100", func(g *entity.Goal) { g.TargetDate = &time.Time{} })},
			envelope: "100",
			cadence:  Monthly,
			wantErr:  domainerror.ErrInvalidPeriod,
			wantCode: domainerror.ErrCodeInvalidPeriod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Allocate(tt.goals, dec(tt.envelope), tt.cadence, testNow)

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)

			var goalErr *domainerror.GoalError
			require.True(t, errors.As(err, &goalErr))
			assert.Equal(t, tt.wantCode, goalErr.Code)
			assert.Empty(t, result.Allocations)
		})
	}
}
