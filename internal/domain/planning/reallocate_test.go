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

func reallocationGoals() []entity.Goal {
	return []entity.Goal{
		testGoal("Car", 1, "10000", withRate("400")),
		testGoal("Boat", 3, "6000", withRate("300")),
		testGoal("Sofa", 4, "4000", withKind(entity.GoalKindPurchase), withRate("200")),
	}
}

func TestSuggestReallocation_FitsInUnallocatedEnvelope(t *testing.T) {
	newGoal := testGoal("Laptop", 2, "2000", withKind(entity.GoalKindPurchase), withRate("300"))

	plan, err := SuggestReallocation(reallocationGoals(), dec("1300"), newGoal, Monthly, testNow)
	require.NoError(t, err)

	assert.True(t, plan.Fits())
	assertAmount(t, "300", plan.Required)
	assertAmount(t, "400", plan.Available)
	assert.Empty(t, plan.Reductions)
	assertAmount(t, "0", plan.Shortfall)
}

func TestSuggestReallocation_CutsLowestPriorityFirst(t *testing.T) {
	existing := reallocationGoals()
	newGoal := testGoal("Laptop", 2, "2000", withKind(entity.GoalKindPurchase), withRate("150"))

	plan, err := SuggestReallocation(existing, dec("900"), newGoal, Monthly, testNow)
	require.NoError(t, err)

	assert.False(t, plan.Fits())
	assertAmount(t, "0", plan.Available)
	require.Len(t, plan.Reductions, 2)

	sofa := plan.Reductions[0]
	assert.Equal(t, "Sofa", sofa.Name)
	assertAmount(t, "200", sofa.Current)
	assertAmount(t, "60", sofa.Freed)
	assertAmount(t, "140", sofa.Suggested)
	assert.Equal(t, 20, sofa.PeriodsBefore)
	assert.Equal(t, 29, sofa.PeriodsAfter)
	assert.Equal(t, 9, sofa.Delay())

	boat := plan.Reductions[1]
	assert.Equal(t, "Boat", boat.Name)
	assertAmount(t, "90", boat.Freed)
	assertAmount(t, "210", boat.Suggested)

	assertAmount(t, "150", plan.Freed())
	assertAmount(t, "0", plan.Shortfall)
}

func TestSuggestReallocation_StopsOnceCovered(t *testing.T) {
	newGoal := testGoal("Laptop", 2, "2000", withKind(entity.GoalKindPurchase), withRate("50"))

	plan, err := SuggestReallocation(reallocationGoals(), dec("900"), newGoal, Monthly, testNow)
	require.NoError(t, err)

	require.Len(t, plan.Reductions, 1)
	assert.Equal(t, "Sofa", plan.Reductions[0].Name)
	assertAmount(t, "50", plan.Reductions[0].Freed)
	assertAmount(t, "0", plan.Shortfall)
}

func TestSuggestReallocation_ReportsRemainingShortfall(t *testing.T) {
	newGoal := testGoal("Laptop", 2, "2000", withKind(entity.GoalKindPurchase), withRate("500"))

	plan, err := SuggestReallocation(reallocationGoals(), dec("900"), newGoal, Monthly, testNow)
	require.NoError(t, err)

	assertAmount(t, "150", plan.Freed())
	assertAmount(t, "350", plan.Shortfall)
	for _, r := range plan.Reductions {
		assert.NotEqual(t, "Car", r.Name, "higher priority goals are never cut")
	}
}

func TestSuggestReallocation_EqualPriorityIsNotCut(t *testing.T) {
	existing := []entity.Goal{testGoal("Card", 2, "5000", withRate("500"))}
	newGoal := testGoal("Laptop", 2, "2000", withKind(entity.GoalKindPurchase), withRate("100"))

	plan, err := SuggestReallocation(existing, dec("500"), newGoal, Monthly, testNow)
	require.NoError(t, err)

	assert.Empty(t, plan.Reductions)
	assertAmount(t, "100", plan.Shortfall)
}

func TestSuggestReallocation_TargetDateSetsTheRequest(t *testing.T) {
	newGoal := testGoal("Trip", 2, "1200", withKind(entity.GoalKindPurchase), withTargetDate(2027, time.January, 15))

	plan, err := SuggestReallocation(reallocationGoals(), dec("1000"), newGoal, Monthly, testNow)
	require.NoError(t, err)

	assertAmount(t, "100", plan.Required)
	assert.True(t, plan.Fits())
}

func TestSuggestReallocation_UnratedGoalTakesWhatIsLeft(t *testing.T) {
	newGoal := testGoal("Rainy day", 2, "0", withKind(entity.GoalKindSavings))

	plan, err := SuggestReallocation(reallocationGoals(), dec("950"), newGoal, Monthly, testNow)
	require.NoError(t, err)

	assertAmount(t, "50", plan.Required)
	assert.True(t, plan.Fits())
}

func TestSuggestReallocation_DoesNotMutateInputs(t *testing.T) {
	existing := reallocationGoals()
	snapshot := reallocationGoals()
	newGoal := testGoal("Laptop", 2, "2000", withKind(entity.GoalKindPurchase), withRate("150"), inactive())

	_, err := SuggestReallocation(existing, dec("900"), newGoal, Monthly, testNow)
	require.NoError(t, err)

	assert.Equal(t, snapshot, existing)
	assert.False(t, newGoal.Active)
}

func TestSuggestReallocation_InvalidInput(t *testing.T) {
	t.Run("negative envelope", func(t *testing.T) {
		_, err := SuggestReallocation(reallocationGoals(), dec("-1"), testGoal("Laptop", 2, "100"), Monthly, testNow)
		assert.True(t, errors.Is(err, domainerror.ErrInvalidAmount))
	})

	t.Run("new goal reuses an existing id", func(t *testing.T) {
		_, err := SuggestReallocation(reallocationGoals(), dec("100"), testGoal("Boat", 2, "100"), Monthly, testNow)
		assert.True(t, errors.Is(err, domainerror.ErrInvalidGoal))
	})

	t.Run("invalid new goal", func(t *testing.T) {
		_, err := SuggestReallocation(reallocationGoals(), dec("100"), testGoal("Laptop", 0, "100"), Monthly, testNow)
		assert.True(t, errors.Is(err, domainerror.ErrInvalidGoal))
	})
}
