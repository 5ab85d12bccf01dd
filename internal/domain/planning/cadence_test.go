package planning

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/avecbanker/backend/internal/domain/error"
)

func TestParseCadence(t *testing.T) {
	tests := []struct {
		input   string
		want    Cadence
		wantErr bool
	}{
		{input: "monthly", want: Monthly},
		{input: " Month ", want: Monthly},
		{input: "1 month", want: Monthly},
		{input: "3 months", want: Cadence{Unit: UnitMonth, Count: 3}},
		{input: "biweekly", want: Biweekly},
		{input: "Bi-Weekly", want: Biweekly},
		{input: "14 days", want: Biweekly},
		{input: "2 weeks", want: Biweekly},
		{input: "weekly", want: Cadence{Unit: UnitDay, Count: 7}},
		{input: "0 days", wantErr: true},
		{input: "-1 month", wantErr: true},
		{input: "two weeks", wantErr: true},
		{input: "5 fortnights", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCadence(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domainerror.ErrInvalidPeriod))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCadence_StringRoundTrip(t *testing.T) {
	for _, c := range []Cadence{Monthly, Biweekly, {Unit: UnitMonth, Count: 2}} {
		parsed, err := ParseCadence(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
}

func TestCadence_PeriodsBetween(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name    string
		cadence Cadence
		from    time.Time
		to      time.Time
		want    int
	}{
		{name: "whole months", cadence: Monthly, from: day(2026, 1, 15), to: day(2026, 11, 15), want: 10},
		{name: "one day short of a month", cadence: Monthly, from: day(2026, 1, 15), to: day(2026, 2, 14), want: 0},
		{name: "month end clamps", cadence: Monthly, from: day(2026, 1, 31), to: day(2026, 2, 28), want: 1},
		{name: "across a year", cadence: Monthly, from: day(2025, 11, 1), to: day(2026, 2, 1), want: 3},
		{name: "quarterly", cadence: Cadence{Unit: UnitMonth, Count: 3}, from: day(2026, 1, 1), to: day(2026, 12, 31), want: 3},
		{name: "bi-weekly", cadence: Biweekly, from: day(2026, 1, 1), to: day(2026, 1, 29), want: 2},
		{name: "partial bi-weekly", cadence: Biweekly, from: day(2026, 1, 1), to: day(2026, 1, 28), want: 1},
		{name: "same day", cadence: Monthly, from: day(2026, 1, 1), to: day(2026, 1, 1), want: 0},
		{name: "past date", cadence: Monthly, from: day(2026, 1, 1), to: day(2025, 1, 1), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cadence.PeriodsBetween(tt.from, tt.to))
		})
	}
}

func TestCadence_Advance(t *testing.T) {
	jan31 := time.Date(2026, time.January, 31, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, time.February, 28, 12, 0, 0, 0, time.UTC), Monthly.Advance(jan31, 1))
	assert.Equal(t, time.Date(2026, time.March, 31, 12, 0, 0, 0, time.UTC), Monthly.Advance(jan31, 2))
	assert.Equal(t, time.Date(2027, time.January, 31, 12, 0, 0, 0, time.UTC), Monthly.Advance(jan31, 12))
	assert.Equal(t, time.Date(2026, time.February, 28, 12, 0, 0, 0, time.UTC), Biweekly.Advance(jan31, 2))
}

func TestCadence_FromMonthly(t *testing.T) {
	assertAmount(t, "2600", Monthly.FromMonthly(dec("2600")))
	assertAmount(t, "1200", Biweekly.FromMonthly(dec("2600")))
	assertAmount(t, "461.53", Biweekly.FromMonthly(dec("1000")))
	assertAmount(t, "3000", Cadence{Unit: UnitMonth, Count: 3}.FromMonthly(dec("1000")))
}
