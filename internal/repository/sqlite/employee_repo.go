package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tips-bot/internal/domain"
)

type SqliteEmployeeRepo struct {
	db *sql.DB
}

func NewSqliteEmployeeRepo(db *sql.DB) *SqliteEmployeeRepo {
	return &SqliteEmployeeRepo{db: db}
}

func (r *SqliteEmployeeRepo) CreateOrUpdateEmployee(ctx context.Context, e domain.Employee) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO employees (id, name, chat_id, role) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, chat_id = excluded.chat_id, role = excluded.role`,
		e.ID, e.Name, e.ChatID, e.Role)
	if err != nil {
		return fmt.Errorf("saving employee: %w", err)
	}
	return nil
}

func (r *SqliteEmployeeRepo) GetAllEmployees(ctx context.Context) ([]domain.Employee, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, chat_id, role, default_venue FROM employees ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	defer rows.Close()
	var employees []domain.Employee
	for rows.Next() {
		var e domain.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.ChatID, &e.Role, &e.DefaultVenue); err != nil {
			return nil, fmt.Errorf("scanning employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *SqliteEmployeeRepo) GetEmployeeByID(ctx context.Context, id int64) (domain.Employee, error) {
	var e domain.Employee
	err := r.db.QueryRowContext(ctx, `SELECT id, name, chat_id, role, default_venue FROM employees WHERE id = ?`, id).
		Scan(&e.ID, &e.Name, &e.ChatID, &e.Role, &e.DefaultVenue)
	if errors.Is(err, sql.ErrNoRows) {
		return e, fmt.Errorf("employee %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return e, fmt.Errorf("getting employee: %w", err)
	}
	return e, nil
}

// SetDefaultVenue records the venue offered first when the employee logs
// their next shift.
func (r *SqliteEmployeeRepo) SetDefaultVenue(ctx context.Context, id int64, venue string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE employees SET default_venue = ? WHERE id = ?`, venue, id)
	if err != nil {
		return fmt.Errorf("saving default venue: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("employee %d: %w", id, ErrNotFound)
	}
	return nil
}
