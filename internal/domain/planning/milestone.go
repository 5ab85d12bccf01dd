package planning

import "github.com/shopspring/decimal"

// MilestonePercents are the progress marks worth telling the owner about.
var MilestonePercents = []int{25, 50, 75, 100}

// Milestones returns the marks crossed when a bounded goal's balance moves from before
// to after. Open-ended goals have no milestones.
func Milestones(before, after, target decimal.Decimal) []int {
	if !target.IsPositive() || !after.GreaterThan(before) {
		return nil
	}

	var crossed []int
	for _, pct := range MilestonePercents {
		mark := target.Mul(decimal.NewFromInt(int64(pct))).Div(decimal.NewFromInt(100))
		if before.LessThan(mark) && after.GreaterThanOrEqual(mark) {
			crossed = append(crossed, pct)
		}
	}
	return crossed
}
