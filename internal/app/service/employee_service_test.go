package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tips-bot/internal/domain"
	"tips-bot/internal/repository/sqlite"
	"tips-bot/internal/testutil"
)

func TestEmployeeService_RememberVenue(t *testing.T) {
	svc := NewEmployeeService(sqlite.NewSqliteEmployeeRepo(testutil.NewTestDB(t)))
	ctx := context.Background()

	assert.NoError(t, svc.RememberVenue(ctx, 42, "Aria"), "unregistered employees are skipped")

	require.NoError(t, svc.CreateOrUpdateEmployee(ctx, domain.Employee{ID: 42, Name: "Dana", ChatID: 42, Role: "dealer"}))
	require.NoError(t, svc.RememberVenue(ctx, 42, "Borgata"))

	e, err := svc.GetEmployeeByID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "Borgata", e.DefaultVenue)
}
