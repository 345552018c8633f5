package flows

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tips-bot/internal/domain"
)

var jan5 = time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

func TestDraft_ClockFlow(t *testing.T) {
	d := NewDraft(jan5)
	assert.Contains(t, d.Prompt(), "Fri 05.01.2024")

	for _, msg := range []string{"23:00", "01:00", "$200", "16", " Aria "} {
		require.False(t, d.Done())
		require.NoError(t, d.Feed(msg), msg)
	}
	require.True(t, d.Done())

	sh, err := domain.NormalizeShift(d.Input)
	require.NoError(t, err)
	assert.Equal(t, 2.0, sh.Hours())
	assert.Equal(t, int64(20000), sh.TokesCash)
	assert.True(t, decimal.NewFromInt(16).Equal(sh.Downs))
	assert.Equal(t, "Aria", sh.Venue)
}

func TestDraft_HoursFlow(t *testing.T) {
	d := NewDraft(jan5)
	require.NoError(t, d.Feed("7.5h"))
	assert.Equal(t, StepTokes, d.Step)
	require.NotNil(t, d.Input.Hours)
	assert.Equal(t, 7.5, *d.Input.Hours)
}

func TestDraft_RejectsAndStays(t *testing.T) {
	d := NewDraft(jan5)
	assert.Error(t, d.Feed("soon"))
	assert.Equal(t, StepClockIn, d.Step)
	assert.Error(t, d.Feed("7.3"))
	assert.Equal(t, StepClockIn, d.Step)

	require.NoError(t, d.Feed("09:00"))
	assert.Error(t, d.Feed("9pm"))
	assert.Equal(t, StepClockOut, d.Step)

	require.NoError(t, d.Feed("17:00"))
	assert.Error(t, d.Feed("-5"))
	assert.Equal(t, StepTokes, d.Step)
}

func TestDraft_ZeroDurationRestartsTiming(t *testing.T) {
	d := NewDraft(jan5)
	require.NoError(t, d.Feed("09:00"))
	err := d.Feed("09:05")
	require.Error(t, err)
	assert.Equal(t, StepClockIn, d.Step)
	assert.Empty(t, d.Input.ClockIn)
}
