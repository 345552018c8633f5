package model

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"tips-bot/internal/domain"
)

const (
	DateLayout  = "2006-01-02"
	StampLayout = time.RFC3339
)

// Shift is the storage row for a shift. Dates and timestamps are kept as
// text, downs as a decimal string so no precision is lost.
type Shift struct {
	ID         string
	EmployeeID int64
	Date       string
	ClockIn    sql.NullString
	ClockOut   sql.NullString
	Quarters   int
	TokesCash  int64
	Downs      string
	Venue      string
	Notes      string
	CreatedAt  string
	UpdatedAt  string
}

func FromDomain(s domain.Shift) Shift {
	return Shift{
		ID:         s.ID,
		EmployeeID: s.EmployeeID,
		Date:       s.Date.Format(DateLayout),
		ClockIn:    nullStamp(s.ClockIn),
		ClockOut:   nullStamp(s.ClockOut),
		Quarters:   s.Quarters,
		TokesCash:  s.TokesCash,
		Downs:      s.Downs.String(),
		Venue:      s.Venue,
		Notes:      s.Notes,
		CreatedAt:  s.CreatedAt.UTC().Format(StampLayout),
		UpdatedAt:  s.UpdatedAt.UTC().Format(StampLayout),
	}
}

func (r Shift) ToDomain() (domain.Shift, error) {
	date, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return domain.Shift{}, fmt.Errorf("parsing date %q: %w", r.Date, err)
	}
	downs, err := decimal.NewFromString(r.Downs)
	if err != nil {
		return domain.Shift{}, fmt.Errorf("parsing downs %q: %w", r.Downs, err)
	}
	clockIn, err := parseStamp("clock_in", r.ClockIn)
	if err != nil {
		return domain.Shift{}, err
	}
	clockOut, err := parseStamp("clock_out", r.ClockOut)
	if err != nil {
		return domain.Shift{}, err
	}
	if (clockIn == nil) != (clockOut == nil) {
		return domain.Shift{}, errors.New("clock_in and clock_out must both be set or both be empty")
	}
	createdAt, err := time.Parse(StampLayout, r.CreatedAt)
	if err != nil {
		return domain.Shift{}, fmt.Errorf("parsing created_at %q: %w", r.CreatedAt, err)
	}
	updatedAt, err := time.Parse(StampLayout, r.UpdatedAt)
	if err != nil {
		return domain.Shift{}, fmt.Errorf("parsing updated_at %q: %w", r.UpdatedAt, err)
	}
	return domain.Shift{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		Date:       date,
		ClockIn:    clockIn,
		ClockOut:   clockOut,
		Quarters:   r.Quarters,
		TokesCash:  r.TokesCash,
		Downs:      downs,
		Venue:      r.Venue,
		Notes:      r.Notes,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}, nil
}

func nullStamp(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(StampLayout), Valid: true}
}

// parseStamp reads a nullable timestamp column; NULL gives nil.
func parseStamp(column string, s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := time.Parse(StampLayout, s.String)
	if err != nil {
		return nil, fmt.Errorf("parsing %s %q: %w", column, s.String, err)
	}
	return &t, nil
}
