package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// IdentityPatch changes where and when a shift is attributed.
type IdentityPatch struct {
	Date  *time.Time
	Venue *string
	Notes *string
}

// TimingPatch replaces the shift duration. Clock times travel as a pair;
// Hours switches the shift to a plain duration without clock times.
type TimingPatch struct {
	ClockIn  string
	ClockOut string
	Hours    *float64
}

// MoneyPatch replaces the earnings fields.
type MoneyPatch struct {
	TokesCash *int64
	Downs     *decimal.Decimal
}

// ShiftUpdate is a partial update. Nil groups are left as they are.
type ShiftUpdate struct {
	Identity *IdentityPatch
	Timing   *TimingPatch
	Money    *MoneyPatch
}

func (u ShiftUpdate) IsEmpty() bool {
	return u.Identity == nil && u.Timing == nil && u.Money == nil
}

// ApplyUpdate returns prev with u applied. On error prev is returned as is,
// so a failed update never leaves a half-applied shift behind.
func ApplyUpdate(prev Shift, u ShiftUpdate) (Shift, error) {
	next := prev

	if p := u.Identity; p != nil {
		if p.Venue != nil {
			venue := strings.TrimSpace(*p.Venue)
			if venue == "" {
				return prev, invalidInput("venue", "is required")
			}
			next.Venue = venue
		}
		if p.Notes != nil {
			next.Notes = *p.Notes
		}
		if p.Date != nil {
			if p.Date.IsZero() {
				return prev, invalidInput("date", "is required")
			}
			day := CalendarDay(*p.Date)
			// Moving the day keeps the clock times and the duration.
			delta := day.Sub(prev.Date)
			next.Date = day
			if prev.ClockIn != nil && prev.ClockOut != nil {
				in, out := prev.ClockIn.Add(delta), prev.ClockOut.Add(delta)
				next.ClockIn, next.ClockOut = &in, &out
			}
		}
	}

	if p := u.Timing; p != nil {
		t, err := resolveTiming(next.Date, p.ClockIn, p.ClockOut, p.Hours)
		if err != nil {
			return prev, err
		}
		next.Quarters = t.quarters
		next.ClockIn, next.ClockOut = t.clockIn, t.clockOut
	}

	if p := u.Money; p != nil {
		if p.TokesCash != nil {
			if *p.TokesCash < 0 {
				return prev, invalidInput("tokes_cash", "must not be negative")
			}
			next.TokesCash = *p.TokesCash
		}
		if p.Downs != nil {
			if p.Downs.IsNegative() {
				return prev, invalidInput("downs", "must not be negative")
			}
			next.Downs = *p.Downs
		}
	}

	return next, nil
}
