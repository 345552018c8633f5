package domain

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	minutesPerDay = 24 * 60
	quarterHour   = 15 * time.Minute
)

// Shift is one logged work session.
//
// Date is the calendar day the shift is attributed to, carried as midnight UTC
// so that weekday and range checks never depend on a time zone. ClockIn and
// ClockOut are nil when the shift was entered as a plain number of hours.
type Shift struct {
	ID         string
	EmployeeID int64
	Date       time.Time
	ClockIn    *time.Time
	ClockOut   *time.Time
	Quarters   int
	TokesCash  int64 // cents
	Downs      decimal.Decimal
	Venue      string
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Hours returns the shift duration in hours, always a multiple of 0.25.
func (s Shift) Hours() float64 {
	return float64(s.Quarters) / 4
}

// Overnight reports whether the shift ended on the day after it started.
func (s Shift) Overnight() bool {
	if s.ClockOut == nil {
		return false
	}
	return !CalendarDay(*s.ClockOut).Equal(s.Date)
}

// ShiftInput is the raw write-side input for a new shift.
//
// Either both ClockIn and ClockOut are set, or Hours is set on its own.
type ShiftInput struct {
	Date      time.Time       `json:"date"`
	ClockIn   string          `json:"clock_in" validate:"omitempty,clock"`
	ClockOut  string          `json:"clock_out" validate:"omitempty,clock"`
	Hours     *float64        `json:"hours"`
	TokesCash int64           `json:"tokes_cash" validate:"gte=0"`
	Downs     decimal.Decimal `json:"downs"`
	Venue     string          `json:"venue" validate:"required"`
	Notes     string          `json:"notes"`
}

// NormalizeShift turns raw input into a canonical Shift. It does not assign
// ID, EmployeeID or the audit timestamps; that is up to the caller.
func NormalizeShift(in ShiftInput) (Shift, error) {
	in.Venue = strings.TrimSpace(in.Venue)
	if err := validateStruct(in); err != nil {
		return Shift{}, err
	}
	if in.Date.IsZero() {
		return Shift{}, invalidInput("date", "is required")
	}
	if in.Downs.IsNegative() {
		return Shift{}, invalidInput("downs", "must not be negative")
	}

	date := CalendarDay(in.Date)
	t, err := resolveTiming(date, in.ClockIn, in.ClockOut, in.Hours)
	if err != nil {
		return Shift{}, err
	}

	return Shift{
		Date:      date,
		ClockIn:   t.clockIn,
		ClockOut:  t.clockOut,
		Quarters:  t.quarters,
		TokesCash: in.TokesCash,
		Downs:     in.Downs,
		Venue:     in.Venue,
		Notes:     in.Notes,
	}, nil
}

type timing struct {
	quarters int
	clockIn  *time.Time
	clockOut *time.Time
}

// resolveTiming picks the input mode from which fields are present.
func resolveTiming(date time.Time, clockIn, clockOut string, hours *float64) (timing, error) {
	hasIn, hasOut := clockIn != "", clockOut != ""
	switch {
	case hasIn != hasOut:
		missing := "clock_out"
		if !hasIn {
			missing = "clock_in"
		}
		return timing{}, invalidInput(missing, "must be supplied together with the other clock time")
	case hasIn && hours != nil:
		return timing{}, invalidInput("hours", "cannot be combined with clock times")
	case hasIn:
		return clockTiming(date, clockIn, clockOut)
	case hours != nil:
		q, err := QuartersFromHours(*hours)
		if err != nil {
			return timing{}, err
		}
		return timing{quarters: q}, nil
	default:
		return timing{}, invalidInput("hours", "clock times or hours are required")
	}
}

func clockTiming(date time.Time, clockIn, clockOut string) (timing, error) {
	in, err := ParseClock(clockIn)
	if err != nil {
		return timing{}, invalidInput("clock_in", err.Error())
	}
	out, err := ParseClock(clockOut)
	if err != nil {
		return timing{}, invalidInput("clock_out", err.Error())
	}
	// Equal times mean a full 24 hour shift, not an empty one.
	if out <= in {
		out += minutesPerDay
	}
	q := RoundQuarters(time.Duration(out-in) * time.Minute)
	if q <= 0 {
		return timing{}, invalidDuration("hours", "rounds to zero")
	}
	start := date.Add(time.Duration(in) * time.Minute)
	end := date.Add(time.Duration(out) * time.Minute)
	return timing{quarters: q, clockIn: &start, clockOut: &end}, nil
}

// RoundQuarters rounds d to the nearest quarter hour and returns the number of
// quarters. A duration exactly halfway between two quarters rounds up.
func RoundQuarters(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((2*d + quarterHour) / (2 * quarterHour))
}

// QuartersFromHours converts a directly entered hours value.
func QuartersFromHours(h float64) (int, error) {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0, invalidInput("hours", "must be a number")
	}
	if h <= 0 {
		return 0, invalidDuration("hours", "must be greater than zero")
	}
	q := h * 4
	if q != math.Trunc(q) {
		return 0, invalidInput("hours", "must be a multiple of 0.25")
	}
	return int(q), nil
}

// ParseClock parses a wall-clock time "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 || !digits(hh+mm) {
		return 0, errClockFormat
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, errClockFormat
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, errClockFormat
	}
	return h*60 + m, nil
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

type clockFormatError struct{}

func (clockFormatError) Error() string { return "must be a time of day in HH:MM format" }

var errClockFormat error = clockFormatError{}

// FormatClock renders a timestamp as HH:MM.
func FormatClock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("15:04")
}

// CalendarDay strips the clock and zone from t, keeping its wall-clock day.
func CalendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
