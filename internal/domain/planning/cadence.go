package planning

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainerror "github.com/avecbanker/backend/internal/domain/error"
)

// PeriodUnit is the calendar unit a Cadence counts in.
type PeriodUnit string

const (
	UnitMonth PeriodUnit = "month"
	UnitDay   PeriodUnit = "day"
)

// daysPerYear is 52 weeks, so that a 14-day cadence has exactly 26 periods a year.
const daysPerYear = 364

// Cadence is the length of one budgeting period, e.g. one month or fourteen days.
type Cadence struct {
	Unit  PeriodUnit
	Count int
}

var (
	// Monthly is one calendar month per period.
	Monthly = Cadence{Unit: UnitMonth, Count: 1}
	// Biweekly is one fourteen-day pay cycle per period.
	Biweekly = Cadence{Unit: UnitDay, Count: 14}
)

// ParseCadence reads a cadence such as "monthly", "biweekly", "1 month", "14 days"
// or "2 weeks".
func ParseCadence(s string) (Cadence, error) {
	text := strings.ToLower(strings.TrimSpace(s))
	switch text {
	case "monthly", "month":
		return Monthly, nil
	case "biweekly", "bi-weekly", "fortnightly":
		return Biweekly, nil
	case "weekly", "week":
		return Cadence{Unit: UnitDay, Count: 7}, nil
	}

	fields := strings.Fields(text)
	if len(fields) != 2 {
		return Cadence{}, domainerror.InvalidPeriod(fmt.Sprintf("cannot parse cadence %q", s))
	}
	count, err := strconv.Atoi(fields[0])
	if err != nil {
		return Cadence{}, domainerror.InvalidPeriod(fmt.Sprintf("cannot parse cadence %q", s))
	}

	var c Cadence
	switch strings.TrimSuffix(fields[1], "s") {
	case "month":
		c = Cadence{Unit: UnitMonth, Count: count}
	case "day":
		c = Cadence{Unit: UnitDay, Count: count}
	case "week":
		c = Cadence{Unit: UnitDay, Count: count * 7}
	default:
		return Cadence{}, domainerror.InvalidPeriod(fmt.Sprintf("unknown cadence unit in %q", s))
	}
	if err := c.Validate(); err != nil {
		return Cadence{}, err
	}
	return c, nil
}

// Validate returns an InvalidPeriod error for a zero, negative or unknown cadence.
func (c Cadence) Validate() error {
	if c.Unit != UnitMonth && c.Unit != UnitDay {
		return domainerror.InvalidPeriod(fmt.Sprintf("unknown period unit %q", c.Unit))
	}
	if c.Count <= 0 {
		return domainerror.InvalidPeriod("period length must be positive")
	}
	return nil
}

// String renders the cadence the way ParseCadence reads it back.
func (c Cadence) String() string {
	unit := string(c.Unit)
	if c.Count != 1 {
		unit += "s"
	}
	return fmt.Sprintf("%d %s", c.Count, unit)
}

// Advance moves t forward by n periods. Month arithmetic clamps to the last day of
// the month, so Jan 31 advanced by one month is Feb 28 (or 29).
func (c Cadence) Advance(t time.Time, n int) time.Time {
	if c.Unit == UnitDay {
		return t.AddDate(0, 0, n*c.Count)
	}
	return addMonths(t, n*c.Count)
}

// PeriodsBetween counts the whole periods from from to to. It is zero when to is
// not after from.
func (c Cadence) PeriodsBetween(from, to time.Time) int {
	from, to = dateOnly(from), dateOnly(to)
	if !to.After(from) {
		return 0
	}

	if c.Unit == UnitDay {
		days := int(to.Sub(from).Hours() / 24)
		return days / c.Count
	}

	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() && to.Day() < daysIn(to.Year(), to.Month()) {
		months--
	}
	return months / c.Count
}

// FromMonthly converts a monthly amount into the amount available per period,
// floored to the cent.
func (c Cadence) FromMonthly(monthly decimal.Decimal) decimal.Decimal {
	if c.Unit == UnitMonth {
		return monthly.Mul(decimal.NewFromInt(int64(c.Count))).RoundFloor(2)
	}
	return monthly.Mul(decimal.NewFromInt(int64(12 * c.Count))).
		Div(decimal.NewFromInt(daysPerYear)).
		RoundFloor(2)
}

func addMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	total := int(m) - 1 + months
	year := y + total/12
	month := total % 12
	if month < 0 {
		month += 12
		year--
	}
	targetMonth := time.Month(month + 1)
	if last := daysIn(year, targetMonth); d > last {
		d = last
	}
	hh, mm, ss := t.Clock()
	return time.Date(year, targetMonth, d, hh, mm, ss, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
