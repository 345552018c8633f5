package testutil

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tips-bot/internal/domain"
)

// Day returns midnight UTC for the given calendar day.
func Day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type ShiftOption func(*domain.Shift)

func WithClock(in, out string) ShiftOption {
	return func(s *domain.Shift) {
		next, err := domain.ApplyUpdate(*s, domain.ShiftUpdate{Timing: &domain.TimingPatch{ClockIn: in, ClockOut: out}})
		if err != nil {
			panic(err)
		}
		*s = next
	}
}

func WithNotes(notes string) ShiftOption {
	return func(s *domain.Shift) { s.Notes = notes }
}

func WithDowns(downs string) ShiftOption {
	return func(s *domain.Shift) { s.Downs = decimal.RequireFromString(downs) }
}

// NewTestShift builds a valid shift of the given hours and tokes (in cents).
func NewTestShift(employeeID int64, date time.Time, venue string, hours float64, tokes int64, downs int64, opts ...ShiftOption) domain.Shift {
	now := time.Now().UTC().Truncate(time.Second)
	s := domain.Shift{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Date:       domain.CalendarDay(date),
		Quarters:   int(hours * 4),
		TokesCash:  tokes,
		Downs:      decimal.NewFromInt(downs),
		Venue:      venue,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// ScenarioShifts returns the three reference shifts: two January shifts at
// Aria and one February shift at Borgata.
func ScenarioShifts(employeeID int64) []domain.Shift {
	return []domain.Shift{
		NewTestShift(employeeID, Day(2024, 1, 5), "Aria", 8, 20000, 16),
		NewTestShift(employeeID, Day(2024, 1, 6), "Aria", 6, 15000, 12),
		NewTestShift(employeeID, Day(2024, 2, 1), "Borgata", 8, 30000, 10),
	}
}
