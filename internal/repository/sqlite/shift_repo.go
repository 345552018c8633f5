package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"tips-bot/internal/domain"
	"tips-bot/internal/model"
)

// ErrNotFound is returned when a row does not exist for the employee.
var ErrNotFound = errors.New("not found")

const shiftColumns = `id, employee_id, date, clock_in, clock_out, quarters, tokes_cash, downs, venue, notes, created_at, updated_at`

type SqliteShiftRepo struct {
	db *sql.DB
}

func NewSqliteShiftRepo(db *sql.DB) *SqliteShiftRepo {
	return &SqliteShiftRepo{db: db}
}

func (r *SqliteShiftRepo) AddShift(ctx context.Context, shift domain.Shift) error {
	row := model.FromDomain(shift)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO shifts (`+shiftColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.ID, row.EmployeeID, row.Date, row.ClockIn, row.ClockOut, row.Quarters,
		row.TokesCash, row.Downs, row.Venue, row.Notes, row.CreatedAt, row.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting shift: %w", err)
	}
	return nil
}

func (r *SqliteShiftRepo) GetShift(ctx context.Context, employeeID int64, id string) (domain.Shift, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+shiftColumns+` FROM shifts WHERE employee_id = ? AND id = ?`, employeeID, id)
	if err != nil {
		return domain.Shift{}, fmt.Errorf("getting shift: %w", err)
	}
	defer rows.Close()
	shifts, err := scanShifts(rows)
	if err != nil {
		return domain.Shift{}, err
	}
	if len(shifts) == 0 {
		return domain.Shift{}, fmt.Errorf("shift %s: %w", id, ErrNotFound)
	}
	return shifts[0], nil
}

func (r *SqliteShiftRepo) UpdateShift(ctx context.Context, shift domain.Shift) error {
	row := model.FromDomain(shift)
	res, err := r.db.ExecContext(ctx,
		`UPDATE shifts SET date = ?, clock_in = ?, clock_out = ?, quarters = ?, tokes_cash = ?,
			downs = ?, venue = ?, notes = ?, updated_at = ?
		WHERE employee_id = ? AND id = ?`,
		row.Date, row.ClockIn, row.ClockOut, row.Quarters, row.TokesCash,
		row.Downs, row.Venue, row.Notes, row.UpdatedAt,
		row.EmployeeID, row.ID,
	)
	if err != nil {
		return fmt.Errorf("updating shift: %w", err)
	}
	return requireAffected(res, shift.ID)
}

func (r *SqliteShiftRepo) DeleteShift(ctx context.Context, employeeID int64, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shifts WHERE employee_id = ? AND id = ?`, employeeID, id)
	if err != nil {
		return fmt.Errorf("deleting shift: %w", err)
	}
	return requireAffected(res, id)
}

func (r *SqliteShiftRepo) GetShifts(ctx context.Context, employeeID int64, from, to *time.Time) ([]domain.Shift, error) {
	where := []string{"employee_id = ?"}
	args := []any{employeeID}
	if from != nil {
		where = append(where, "date >= ?")
		args = append(args, domain.CalendarDay(*from).Format(model.DateLayout))
	}
	if to != nil {
		where = append(where, "date < ?")
		args = append(args, domain.ExclusiveDay(*to).Format(model.DateLayout))
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+shiftColumns+` FROM shifts WHERE `+strings.Join(where, " AND ")+` ORDER BY date, clock_in`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("listing shifts: %w", err)
	}
	defer rows.Close()
	return scanShifts(rows)
}

func (r *SqliteShiftRepo) Venues(ctx context.Context, employeeID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT venue FROM shifts WHERE employee_id = ? GROUP BY venue ORDER BY MAX(date) DESC, venue`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("listing venues: %w", err)
	}
	defer rows.Close()
	var venues []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning venue: %w", err)
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func scanShifts(rows *sql.Rows) ([]domain.Shift, error) {
	var shifts []domain.Shift
	for rows.Next() {
		var row model.Shift
		err := rows.Scan(&row.ID, &row.EmployeeID, &row.Date, &row.ClockIn, &row.ClockOut, &row.Quarters,
			&row.TokesCash, &row.Downs, &row.Venue, &row.Notes, &row.CreatedAt, &row.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning shift: %w", err)
		}
		s, err := row.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("decoding shift %s: %w", row.ID, err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating shifts: %w", err)
	}
	return shifts, nil
}

func requireAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("shift %s: %w", id, ErrNotFound)
	}
	return nil
}
