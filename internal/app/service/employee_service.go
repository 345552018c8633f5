package service

import (
	"context"
	"errors"

	"tips-bot/internal/domain"
	"tips-bot/internal/repository/sqlite"
)

type EmployeeService struct {
	Repo domain.EmployeeRepo
}

func NewEmployeeService(repo domain.EmployeeRepo) *EmployeeService {
	return &EmployeeService{Repo: repo}
}

func (s *EmployeeService) CreateOrUpdateEmployee(ctx context.Context, e domain.Employee) error {
	return s.Repo.CreateOrUpdateEmployee(ctx, e)
}

func (s *EmployeeService) GetAllEmployees(ctx context.Context) ([]domain.Employee, error) {
	return s.Repo.GetAllEmployees(ctx)
}

func (s *EmployeeService) GetEmployeeByID(ctx context.Context, id int64) (domain.Employee, error) {
	return s.Repo.GetEmployeeByID(ctx, id)
}

// RememberVenue makes venue the employee's default. Employees who never
// sent /start are skipped.
func (s *EmployeeService) RememberVenue(ctx context.Context, id int64, venue string) error {
	err := s.Repo.SetDefaultVenue(ctx, id, venue)
	if errors.Is(err, sqlite.ErrNotFound) {
		return nil
	}
	return err
}
