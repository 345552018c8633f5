package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tips-bot/internal/domain"
	"tips-bot/internal/repository/sqlite"
	"tips-bot/internal/testutil"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestShiftService(t *testing.T) (*ShiftServiceImpl, *logtest.Hook) {
	t.Helper()
	log, hook := logtest.NewNullLogger()
	svc := NewShiftService(sqlite.NewSqliteShiftRepo(testutil.NewTestDB(t)), log)
	svc.Now = func() time.Time { return fixedNow }
	return svc, hook
}

func validInput() domain.ShiftInput {
	return domain.ShiftInput{
		Date:      testutil.Day(2024, 1, 5),
		ClockIn:   "23:00",
		ClockOut:  "01:00",
		TokesCash: 20000,
		Downs:     decimal.NewFromInt(16),
		Venue:     "Aria",
	}
}

func TestShiftService_LogShift(t *testing.T) {
	svc, hook := newTestShiftService(t)
	ctx := context.Background()

	sh, err := svc.LogShift(ctx, 7, validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, sh.ID)
	assert.Equal(t, int64(7), sh.EmployeeID)
	assert.Equal(t, 2.0, sh.Hours())
	assert.Equal(t, fixedNow, sh.CreatedAt)

	stored, err := svc.Repo.GetShift(ctx, 7, sh.ID)
	require.NoError(t, err)
	assert.Equal(t, sh.Quarters, stored.Quarters)
	assert.Equal(t, "shift logged", hook.LastEntry().Message)
}

func TestShiftService_LogShiftInvalid(t *testing.T) {
	svc, _ := newTestShiftService(t)
	ctx := context.Background()

	in := validInput()
	in.Venue = ""
	_, err := svc.LogShift(ctx, 7, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	all, err := svc.GetShifts(ctx, 7, domain.Query{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestShiftService_UpdateShift(t *testing.T) {
	svc, _ := newTestShiftService(t)
	ctx := context.Background()

	sh, err := svc.LogShift(ctx, 7, validInput())
	require.NoError(t, err)

	venue := "Borgata"
	updated, err := svc.UpdateShift(ctx, 7, sh.ID, domain.ShiftUpdate{Identity: &domain.IdentityPatch{Venue: &venue}})
	require.NoError(t, err)
	assert.Equal(t, "Borgata", updated.Venue)
	assert.Equal(t, sh.Quarters, updated.Quarters)
	assert.True(t, sh.ClockIn.Equal(*updated.ClockIn))

	stored, err := svc.Repo.GetShift(ctx, 7, sh.ID)
	require.NoError(t, err)
	assert.Equal(t, "Borgata", stored.Venue)
}

func TestShiftService_UpdateShiftInvalidLeavesStoredShift(t *testing.T) {
	svc, _ := newTestShiftService(t)
	ctx := context.Background()

	sh, err := svc.LogShift(ctx, 7, validInput())
	require.NoError(t, err)

	venue := "Borgata"
	_, err = svc.UpdateShift(ctx, 7, sh.ID, domain.ShiftUpdate{
		Identity: &domain.IdentityPatch{Venue: &venue},
		Timing:   &domain.TimingPatch{ClockOut: "05:00"},
	})
	require.Error(t, err)
	var fe *domain.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "clock_in", fe.Field)

	stored, err := svc.Repo.GetShift(ctx, 7, sh.ID)
	require.NoError(t, err)
	assert.Equal(t, "Aria", stored.Venue)
}

func TestShiftService_UpdateAndDeleteMissing(t *testing.T) {
	svc, _ := newTestShiftService(t)
	ctx := context.Background()

	_, err := svc.UpdateShift(ctx, 7, "nope", domain.ShiftUpdate{})
	assert.ErrorIs(t, err, sqlite.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteShift(ctx, 7, "nope"), sqlite.ErrNotFound)
}

func TestShiftService_SummaryMatchesPureEngine(t *testing.T) {
	svc, _ := newTestShiftService(t)
	ctx := context.Background()

	shifts := testutil.ScenarioShifts(7)
	for _, sh := range shifts {
		require.NoError(t, svc.Repo.AddShift(ctx, sh))
	}
	from, to := domain.MonthRange(2024, time.January)
	q := domain.Query{From: &from, To: &to}

	got, err := svc.Summary(ctx, 7, q)
	require.NoError(t, err)
	want := domain.Summarize(shifts, q)

	assert.Equal(t, want.Total, got.Total)
	assert.Equal(t, want.Quarters, got.Quarters)
	assert.Equal(t, want.Count, got.Count)
	assert.Equal(t, want.Hourly, got.Hourly)
	assert.Equal(t, want.PerDown, got.PerDown)
	assert.Equal(t, int64(35000), got.Total)
	assert.Equal(t, 2500.0, got.Hourly)
	assert.Equal(t, 1250.0, got.PerDown)

	other, err := svc.Summary(ctx, 8, q)
	require.NoError(t, err)
	assert.Equal(t, 0, other.Count)
}

func TestShiftService_GetShiftsFilters(t *testing.T) {
	svc, _ := newTestShiftService(t)
	ctx := context.Background()

	for _, sh := range testutil.ScenarioShifts(7) {
		require.NoError(t, svc.Repo.AddShift(ctx, sh))
	}
	got, err := svc.GetShifts(ctx, 7, domain.Query{Weekdays: []time.Weekday{time.Saturday}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, testutil.Day(2024, 1, 6), got[0].Date)

	venues, err := svc.Venues(ctx, 7)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Aria", "Borgata"}, venues)
}
