package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Query selects shifts for a summary. Every non-empty dimension must match.
//
// From and To bound Date as [From, To) by calendar day: a bound counts as the
// wall-clock day it names in its own zone, and a To with a clock part still
// admits its own day. Weekdays and Venues match by membership; Venues compare
// exactly, case included.
type Query struct {
	From     *time.Time
	To       *time.Time
	Weekdays []time.Weekday
	Venues   []string
}

// Between returns a query for the calendar days in [from, to).
func Between(from, to time.Time) Query {
	f, t := CalendarDay(from), CalendarDay(to)
	return Query{From: &f, To: &t}
}

// QueryOption narrows a Query built by NewQuery.
type QueryOption func(*Query)

// NewQuery builds a Query from options; with none it matches every shift.
// Later range options replace earlier ones.
func NewQuery(opts ...QueryOption) Query {
	var q Query
	for _, opt := range opts {
		opt(&q)
	}
	return q
}

// InRange bounds the query to [from, to). A nil bound is left open.
func InRange(from, to *time.Time) QueryOption {
	return func(q *Query) {
		q.From, q.To = from, to
	}
}

func InYear(year int) QueryOption {
	from, to := YearRange(year)
	return InRange(&from, &to)
}

func InMonth(year int, month time.Month) QueryOption {
	from, to := MonthRange(year, month)
	return InRange(&from, &to)
}

// OnWeekdays adds days of week to match.
func OnWeekdays(days ...time.Weekday) QueryOption {
	return func(q *Query) {
		q.Weekdays = append(q.Weekdays, days...)
	}
}

// AtVenues adds venues to match.
func AtVenues(venues ...string) QueryOption {
	return func(q *Query) {
		q.Venues = append(q.Venues, venues...)
	}
}

// YearRange expands a {year} shorthand.
func YearRange(year int) (time.Time, time.Time) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(1, 0, 0)
}

// MonthRange expands a {year, month} shorthand.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

// Matches applies the same predicate Summarize uses.
func (q Query) Matches(s Shift) bool {
	return q.compile().matches(s)
}

// ExclusiveDay converts an exclusive upper bound into the first calendar day
// it excludes.
func ExclusiveDay(t time.Time) time.Time {
	day := CalendarDay(t)
	h, m, sec := t.Clock()
	if h != 0 || m != 0 || sec != 0 || t.Nanosecond() != 0 {
		day = day.AddDate(0, 0, 1)
	}
	return day
}

type matcher struct {
	from, to *time.Time
	empty    bool
	weekdays uint8
	venues   map[string]struct{}
}

func (q Query) compile() matcher {
	var m matcher
	if q.From != nil {
		from := CalendarDay(*q.From)
		m.from = &from
	}
	if q.To != nil {
		to := ExclusiveDay(*q.To)
		m.to = &to
	}
	if m.from != nil && m.to != nil && !m.from.Before(*m.to) {
		m.empty = true
	}
	for _, d := range q.Weekdays {
		if d >= time.Sunday && d <= time.Saturday {
			m.weekdays |= 1 << uint(d)
		}
	}
	if len(q.Weekdays) > 0 && m.weekdays == 0 {
		m.empty = true
	}
	if len(q.Venues) > 0 {
		m.venues = make(map[string]struct{}, len(q.Venues))
		for _, v := range q.Venues {
			m.venues[v] = struct{}{}
		}
	}
	return m
}

func (m matcher) matches(s Shift) bool {
	if m.empty {
		return false
	}
	if m.from != nil && s.Date.Before(*m.from) {
		return false
	}
	if m.to != nil && !s.Date.Before(*m.to) {
		return false
	}
	if m.weekdays != 0 && m.weekdays&(1<<uint(s.Date.Weekday())) == 0 {
		return false
	}
	if m.venues != nil {
		if _, ok := m.venues[s.Venue]; !ok {
			return false
		}
	}
	return true
}

var weekdayAbbrev = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// ParseWeekday accepts 0-6 (0 is Sunday) or a three letter English
// abbreviation in any case.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.TrimSpace(s)
	if d, ok := weekdayAbbrev[strings.ToLower(s)]; ok {
		return d, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 6 {
		return 0, invalidInput("dow", fmt.Sprintf("%q is not a day of week", s))
	}
	return time.Weekday(n), nil
}

// ParseWeekdays parses values that may themselves be comma separated lists.
// Duplicates are dropped.
func ParseWeekdays(values []string) ([]time.Weekday, error) {
	var out []time.Weekday
	var seen uint8
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			d, err := ParseWeekday(part)
			if err != nil {
				return nil, err
			}
			if seen&(1<<uint(d)) != 0 {
				continue
			}
			seen |= 1 << uint(d)
			out = append(out, d)
		}
	}
	return out, nil
}

// ParseDate parses a YYYY-MM-DD calendar day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, invalidInput("date", "must be YYYY-MM-DD")
	}
	return t, nil
}

var (
	Weekdays = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
	Weekends = []time.Weekday{time.Saturday, time.Sunday}
)
