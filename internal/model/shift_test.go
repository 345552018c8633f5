package model

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tips-bot/internal/domain"
)

func clockShift() domain.Shift {
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	in, out := date.Add(20*time.Hour), date.Add(28*time.Hour)
	now := time.Date(2024, 1, 6, 9, 0, 0, 0, time.UTC)
	return domain.Shift{
		ID: "s1", EmployeeID: 1, Date: date, ClockIn: &in, ClockOut: &out,
		Quarters: 32, TokesCash: 20000, Downs: decimal.RequireFromString("12.5"),
		Venue: "Aria", CreatedAt: now, UpdatedAt: now,
	}
}

func TestShiftRow_RoundTrip(t *testing.T) {
	sh := clockShift()
	got, err := FromDomain(sh).ToDomain()
	require.NoError(t, err)
	assert.True(t, sh.ClockOut.Equal(*got.ClockOut))
	assert.True(t, sh.Downs.Equal(got.Downs))
	assert.True(t, sh.CreatedAt.Equal(got.CreatedAt))
}

func TestShiftRow_MalformedColumns(t *testing.T) {
	cases := []struct {
		column  string
		corrupt func(*Shift)
	}{
		{"clock_in", func(r *Shift) { r.ClockIn = sql.NullString{String: "20:00", Valid: true} }},
		{"clock_out", func(r *Shift) { r.ClockOut = sql.NullString{String: "", Valid: true} }},
		{"created_at", func(r *Shift) { r.CreatedAt = "yesterday" }},
		{"updated_at", func(r *Shift) { r.UpdatedAt = "" }},
		{"clock_in and clock_out", func(r *Shift) { r.ClockOut = sql.NullString{} }},
	}
	for _, tc := range cases {
		t.Run(tc.column, func(t *testing.T) {
			row := FromDomain(clockShift())
			tc.corrupt(&row)
			_, err := row.ToDomain()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.column)
		})
	}
}
