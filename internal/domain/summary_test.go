package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func shift(date time.Time, venue string, hours float64, tokes int64, downs int64) Shift {
	return Shift{
		Date:      date,
		Venue:     venue,
		Quarters:  int(hours * 4),
		TokesCash: tokes,
		Downs:     decimal.NewFromInt(downs),
	}
}

func scenarioShifts() []Shift {
	return []Shift{
		shift(day(2024, 1, 5), "Aria", 8, 20000, 16),
		shift(day(2024, 1, 6), "Aria", 6, 15000, 12),
		shift(day(2024, 2, 1), "Borgata", 8, 30000, 10),
	}
}

func TestSummarize_JanuaryScenario(t *testing.T) {
	sum := Summarize(scenarioShifts(), Between(day(2024, 1, 1), day(2024, 2, 1)))

	assert.Equal(t, int64(35000), sum.Total)
	assert.Equal(t, 14.0, sum.Hours())
	assert.True(t, decimal.NewFromInt(28).Equal(sum.Downs))
	assert.Equal(t, 2, sum.Count)
	assert.Equal(t, 2500.0, sum.Hourly)
	assert.Equal(t, 1250.0, sum.PerDown)

	require.Len(t, sum.ByVenue, 1)
	aria := sum.ByVenue["Aria"]
	assert.Equal(t, int64(35000), aria.Total)
	assert.Equal(t, 14.0, aria.Hours())
	assert.True(t, decimal.NewFromInt(28).Equal(aria.Downs))
	assert.Equal(t, 2, aria.Count)
	assert.Equal(t, 2500.0, aria.Hourly())
}

func TestSummarize_Empty(t *testing.T) {
	queries := []Query{
		{},
		Between(day(2024, 1, 1), day(2024, 2, 1)),
		{Venues: []string{"Aria"}, Weekdays: Weekdays},
	}
	for _, q := range queries {
		sum := Summarize(nil, q)
		assert.Equal(t, int64(0), sum.Total)
		assert.Equal(t, int64(0), sum.Quarters)
		assert.True(t, sum.Downs.IsZero())
		assert.Equal(t, 0, sum.Count)
		assert.Equal(t, 0.0, sum.Hourly)
		assert.Equal(t, 0.0, sum.PerDown)
		assert.NotNil(t, sum.ByVenue)
		assert.Empty(t, sum.ByVenue)
	}
}

func TestSummarize_GuardedDivision(t *testing.T) {
	shifts := []Shift{{Date: day(2024, 1, 5), Venue: "Aria", TokesCash: 5000}}
	sum := Summarize(shifts, Query{})
	assert.Equal(t, 1, sum.Count)
	assert.Equal(t, 0.0, sum.Hourly)
	assert.Equal(t, 0.0, sum.PerDown)
	assert.Equal(t, 0.0, sum.ByVenue["Aria"].Hourly())
	assert.Equal(t, 0.0, sum.ByVenue["Aria"].PerDown())
}

func TestSummarize_ConjunctiveFilters(t *testing.T) {
	var shifts []Shift
	for d := day(2023, 12, 25); d.Before(day(2024, 2, 7)); d = d.AddDate(0, 0, 1) {
		shifts = append(shifts, shift(d, "Aria", 1, 100, 1))
	}
	q := Between(day(2024, 1, 1), day(2024, 2, 1))
	q.Weekdays = []time.Weekday{1, 2, 3, 4, 5}

	sum := Summarize(shifts, q)
	// January 2024 has 23 weekdays.
	assert.Equal(t, 23, sum.Count)
	for _, s := range shifts {
		if q.Matches(s) {
			assert.Equal(t, time.January, s.Date.Month())
			assert.NotEqual(t, time.Saturday, s.Date.Weekday())
			assert.NotEqual(t, time.Sunday, s.Date.Weekday())
		}
	}
}

func TestSummarize_VenueFilter(t *testing.T) {
	sum := Summarize(scenarioShifts(), Query{Venues: []string{"Borgata"}})
	assert.Equal(t, 1, sum.Count)
	assert.Equal(t, int64(30000), sum.Total)
	assert.Equal(t, 3000.0, sum.PerDown)
	assert.Contains(t, sum.ByVenue, "Borgata")
	assert.NotContains(t, sum.ByVenue, "Aria")
}

func TestSummarize_BreakdownAddsUp(t *testing.T) {
	var shifts []Shift
	venues := []string{"Aria", "Borgata", "Bellagio", "Wynn"}
	for i := 0; i < 200; i++ {
		s := shift(day(2024, 1, 1).AddDate(0, 0, i%90), venues[i%len(venues)], 0, int64(1000+i*7), 0)
		s.Quarters = 1 + i%37
		s.Downs = decimal.New(int64(i%23), -1) // 0.0 .. 2.2
		shifts = append(shifts, s)
	}
	queries := []Query{
		{},
		Between(day(2024, 1, 15), day(2024, 3, 1)),
		{Weekdays: Weekends},
		{Venues: []string{"Wynn", "Aria"}},
	}
	for i, q := range queries {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			sum := Summarize(shifts, q)
			var total, quarters int64
			var count int
			downs := decimal.Zero
			for _, v := range sum.ByVenue {
				total += v.Total
				quarters += v.Quarters
				count += v.Count
				downs = downs.Add(v.Downs)
			}
			assert.Equal(t, sum.Total, total)
			assert.Equal(t, sum.Quarters, quarters)
			assert.Equal(t, sum.Count, count)
			assert.True(t, sum.Downs.Equal(downs))
		})
	}
}

func TestSummarize_QuarterSumsAreExact(t *testing.T) {
	shifts := make([]Shift, 10000)
	for i := range shifts {
		shifts[i] = Shift{Date: day(2024, 1, 1), Venue: "Aria", Quarters: 1, TokesCash: 1}
	}
	sum := Summarize(shifts, Query{})
	assert.Equal(t, 2500.0, sum.Hours())
	assert.Equal(t, 4.0, sum.Hourly)
}

func TestPerDownRate_DecimalDowns(t *testing.T) {
	assert.Equal(t, 400.0, PerDownRate(1000, decimal.RequireFromString("2.5")))
	assert.Equal(t, 0.0, PerDownRate(1000, decimal.Zero))
	assert.Equal(t, 0.0, HourlyRate(1000, 0))
}
