package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"tips-bot/internal/domain"
)

var _ domain.ShiftService = (*ShiftServiceImpl)(nil)

type ShiftServiceImpl struct {
	Repo domain.ShiftRepo
	Log  logrus.FieldLogger
	Now  func() time.Time
}

func NewShiftService(repo domain.ShiftRepo, log logrus.FieldLogger) *ShiftServiceImpl {
	return &ShiftServiceImpl{Repo: repo, Log: log, Now: time.Now}
}

func (s *ShiftServiceImpl) now() time.Time {
	return s.Now().UTC().Truncate(time.Second)
}

// LogShift normalizes the input and stores it as a new shift.
func (s *ShiftServiceImpl) LogShift(ctx context.Context, employeeID int64, in domain.ShiftInput) (domain.Shift, error) {
	shift, err := domain.NormalizeShift(in)
	if err != nil {
		return domain.Shift{}, err
	}
	now := s.now()
	shift.ID = uuid.NewString()
	shift.EmployeeID = employeeID
	shift.CreatedAt = now
	shift.UpdatedAt = now
	if err := s.Repo.AddShift(ctx, shift); err != nil {
		return domain.Shift{}, fmt.Errorf("logging shift: %w", err)
	}
	s.Log.WithFields(logrus.Fields{
		"employee": employeeID,
		"shift":    shift.ID,
		"venue":    shift.Venue,
		"hours":    shift.Hours(),
	}).Info("shift logged")
	return shift, nil
}

// UpdateShift applies u to a stored shift. Nothing is written unless the
// whole update is valid.
func (s *ShiftServiceImpl) UpdateShift(ctx context.Context, employeeID int64, id string, u domain.ShiftUpdate) (domain.Shift, error) {
	prev, err := s.Repo.GetShift(ctx, employeeID, id)
	if err != nil {
		return domain.Shift{}, err
	}
	if u.IsEmpty() {
		return prev, nil
	}
	next, err := domain.ApplyUpdate(prev, u)
	if err != nil {
		return prev, err
	}
	next.UpdatedAt = s.now()
	if err := s.Repo.UpdateShift(ctx, next); err != nil {
		return prev, fmt.Errorf("updating shift: %w", err)
	}
	s.Log.WithFields(logrus.Fields{"employee": employeeID, "shift": id}).Info("shift updated")
	return next, nil
}

func (s *ShiftServiceImpl) DeleteShift(ctx context.Context, employeeID int64, id string) error {
	if err := s.Repo.DeleteShift(ctx, employeeID, id); err != nil {
		return err
	}
	s.Log.WithFields(logrus.Fields{"employee": employeeID, "shift": id}).Info("shift deleted")
	return nil
}

// GetShifts returns the employee's shifts matching q, ordered by date.
func (s *ShiftServiceImpl) GetShifts(ctx context.Context, employeeID int64, q domain.Query) ([]domain.Shift, error) {
	candidates, err := s.Repo.GetShifts(ctx, employeeID, q.From, q.To)
	if err != nil {
		return nil, err
	}
	out := candidates[:0]
	for _, sh := range candidates {
		if q.Matches(sh) {
			out = append(out, sh)
		}
	}
	return out, nil
}

// Summary fetches the candidate shifts for q's date range and aggregates them.
func (s *ShiftServiceImpl) Summary(ctx context.Context, employeeID int64, q domain.Query) (domain.Summary, error) {
	candidates, err := s.Repo.GetShifts(ctx, employeeID, q.From, q.To)
	if err != nil {
		return domain.Summary{}, err
	}
	sum := domain.Summarize(candidates, q)
	s.Log.WithFields(logrus.Fields{
		"employee":   employeeID,
		"candidates": len(candidates),
		"matched":    sum.Count,
	}).Debug("summary computed")
	return sum, nil
}

func (s *ShiftServiceImpl) Venues(ctx context.Context, employeeID int64) ([]string, error) {
	return s.Repo.Venues(ctx, employeeID)
}
