package domain

import "context"

type ShiftService interface {
	LogShift(ctx context.Context, employeeID int64, in ShiftInput) (Shift, error)
	UpdateShift(ctx context.Context, employeeID int64, id string, u ShiftUpdate) (Shift, error)
	DeleteShift(ctx context.Context, employeeID int64, id string) error
	GetShifts(ctx context.Context, employeeID int64, q Query) ([]Shift, error)
	Summary(ctx context.Context, employeeID int64, q Query) (Summary, error)
	Venues(ctx context.Context, employeeID int64) ([]string, error)
}
