package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekday(t *testing.T) {
	good := map[string]time.Weekday{
		"0": time.Sunday, "6": time.Saturday, "Mon": time.Monday,
		"MON": time.Monday, "tue": time.Tuesday, " sat ": time.Saturday,
	}
	for s, want := range good {
		got, err := ParseWeekday(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}
	for _, s := range []string{"7", "-1", "mo", "monday", ""} {
		_, err := ParseWeekday(s)
		assert.ErrorIs(t, err, ErrInvalidInput, s)
	}
}

func TestParseWeekdays(t *testing.T) {
	got, err := ParseWeekdays([]string{"mon,tue", "3", "Mon", ""})
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Monday, time.Tuesday, time.Wednesday}, got)

	_, err = ParseWeekdays([]string{"mon,xyz"})
	assert.Error(t, err)
}

func TestRanges(t *testing.T) {
	from, to := MonthRange(2024, time.December)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), to)

	from, to = YearRange(2024)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), to)
}

func TestQuery_Matches(t *testing.T) {
	sh := Shift{Date: jan5, Venue: "Aria"} // Friday
	q := Between(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC))
	assert.True(t, q.Matches(sh), "from is inclusive")

	q = Between(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), jan5)
	assert.False(t, q.Matches(sh), "to is exclusive")

	assert.True(t, Query{Weekdays: []time.Weekday{time.Friday}}.Matches(sh))
	assert.False(t, Query{Weekdays: Weekends}.Matches(sh))
	assert.False(t, Query{Venues: []string{"aria"}}.Matches(sh), "venue is case sensitive")
	assert.True(t, Query{Venues: []string{"Borgata", "Aria"}}.Matches(sh))
	assert.True(t, Query{}.Matches(sh))
}

func TestQuery_InvertedRangeMatchesNothing(t *testing.T) {
	sh := Shift{Date: jan5, Venue: "Aria"}
	q := Between(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.False(t, q.Matches(sh))
	assert.False(t, Between(jan5, jan5).Matches(sh))
}

func TestQuery_BoundsUseCalendarDayInTheirZone(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, est)
	to := time.Date(2024, 2, 1, 0, 0, 0, 0, est)
	q := Query{From: &from, To: &to}

	shifts := []Shift{
		shift(day(2024, 1, 1), "Aria", 4, 100, 1),
		shift(day(2024, 2, 1), "Aria", 4, 900, 1),
	}
	assert.True(t, q.Matches(shifts[0]), "first day of the range")
	assert.False(t, q.Matches(shifts[1]), "to is exclusive")

	sum := Summarize(shifts, q)
	assert.Equal(t, 1, sum.Count)
	assert.Equal(t, int64(100), sum.Total)
}

func TestQuery_ToWithClockPartAdmitsItsDay(t *testing.T) {
	to := time.Date(2024, 1, 5, 9, 30, 0, 0, time.UTC)
	q := Query{To: &to}
	assert.True(t, q.Matches(Shift{Date: jan5}))
	assert.False(t, q.Matches(Shift{Date: day(2024, 1, 6)}))
}

func TestExclusiveDay(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	assert.Equal(t, day(2024, 2, 1), ExclusiveDay(time.Date(2024, 2, 1, 0, 0, 0, 0, est)))
	assert.Equal(t, day(2024, 2, 2), ExclusiveDay(time.Date(2024, 2, 1, 0, 0, 1, 0, est)))
}

func TestNewQuery(t *testing.T) {
	assert.Equal(t, Query{}, NewQuery())

	q := NewQuery(InMonth(2024, time.January), OnWeekdays(Weekends...), AtVenues("Aria"), AtVenues("Wynn"))
	assert.Equal(t, day(2024, 1, 1), *q.From)
	assert.Equal(t, day(2024, 2, 1), *q.To)
	assert.Equal(t, Weekends, q.Weekdays)
	assert.Equal(t, []string{"Aria", "Wynn"}, q.Venues)

	assert.True(t, q.Matches(shift(day(2024, 1, 6), "Wynn", 4, 100, 1)))
	assert.False(t, q.Matches(shift(day(2024, 1, 5), "Wynn", 4, 100, 1)), "Friday")

	q = NewQuery(InYear(2023), InYear(2024))
	assert.Equal(t, day(2024, 1, 1), *q.From, "last range wins")

	sum := Summarize(scenarioShifts(), NewQuery(InYear(2024), AtVenues("Borgata")))
	assert.Equal(t, int64(30000), sum.Total)
}
