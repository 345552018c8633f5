package domain

import "context"

type EmployeeRepo interface {
	GetAllEmployees(ctx context.Context) ([]Employee, error)
	GetEmployeeByID(ctx context.Context, id int64) (Employee, error)
	CreateOrUpdateEmployee(ctx context.Context, e Employee) error
	SetDefaultVenue(ctx context.Context, id int64, venue string) error
}

type Employee struct {
	ID     int64
	Name   string
	ChatID int64
	Role   string
	// DefaultVenue is the venue of the last shift logged through the bot.
	DefaultVenue string
}
