package domain

import (
	"context"
	"time"
)

type ShiftRepo interface {
	AddShift(ctx context.Context, shift Shift) error
	GetShift(ctx context.Context, employeeID int64, id string) (Shift, error)
	UpdateShift(ctx context.Context, shift Shift) error
	DeleteShift(ctx context.Context, employeeID int64, id string) error
	// GetShifts returns the employee's shifts with Date in [from, to); nil bounds are open.
	GetShifts(ctx context.Context, employeeID int64, from, to *time.Time) ([]Shift, error)
	Venues(ctx context.Context, employeeID int64) ([]string, error)
}
