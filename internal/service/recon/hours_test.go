package recon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venueops/timecard-recon-go/internal/domain/punch"
)

func TestHourCalculatorSimpleShift(t *testing.T) {
	t.Parallel()

	in := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	got := NewHourCalculator().Calculate([]punch.Punch{
		authPunch("100", in, punch.CheckIn),
		authPunch("100", in.Add(8*time.Hour), punch.CheckOut),
	})

	assert.Equal(t, "8", got.Hours.String())
	assert.False(t, got.Incomplete)
	require.Len(t, got.Shifts, 1)
	assert.Equal(t, "100", got.Shifts[0].EmployeeID)
}

func TestHourCalculatorCrossMidnightShift(t *testing.T) {
	t.Parallel()

	// 22:00 to 02:00 the next calendar day is a single 4 hour shift.
	in := time.Date(2025, 6, 10, 22, 0, 0, 0, time.UTC)
	got := NewHourCalculator().Calculate([]punch.Punch{
		authPunch("100", in, punch.CheckIn),
		authPunch("100", in.Add(4*time.Hour), punch.CheckOut),
	})

	assert.Equal(t, "4", got.Hours.String())
	assert.False(t, got.Incomplete)
}

func TestHourCalculatorFractionalHours(t *testing.T) {
	t.Parallel()

	in := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	got := NewHourCalculator().Calculate([]punch.Punch{
		authPunch("100", in, punch.CheckIn),
		authPunch("100", in.Add(90*time.Minute), punch.CheckOut),
	})

	assert.Equal(t, "1.5", got.Hours.String())
}

func TestHourCalculatorUnpairedCheckIn(t *testing.T) {
	t.Parallel()

	in := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	got := NewHourCalculator().Calculate([]punch.Punch{
		authPunch("100", in, punch.CheckIn),
	})

	assert.True(t, got.Hours.IsZero())
	assert.True(t, got.Incomplete)
	assert.Equal(t, []string{"100"}, got.IncompleteEmployees)
}

func TestHourCalculatorOrphanCheckOut(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	got := NewHourCalculator().Calculate([]punch.Punch{
		authPunch("100", at, punch.CheckOut),
		authPunch("100", at.Add(time.Hour), punch.CheckIn),
		authPunch("100", at.Add(5*time.Hour), punch.CheckOut),
	})

	// The orphan check-out contributes nothing; the clean pair still
	// counts.
	assert.Equal(t, "4", got.Hours.String())
	assert.True(t, got.Incomplete)
}

func TestHourCalculatorDoubleCheckIn(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	got := NewHourCalculator().Calculate([]punch.Punch{
		authPunch("100", at, punch.CheckIn),
		authPunch("100", at.Add(time.Hour), punch.CheckIn),
		authPunch("100", at.Add(8*time.Hour), punch.CheckOut),
	})

	// The later check-in opens the shift; the earlier one is unpaired.
	assert.Equal(t, "7", got.Hours.String())
	assert.True(t, got.Incomplete)
}

func TestHourCalculatorSameMinuteInOut(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	got := NewHourCalculator().Calculate([]punch.Punch{
		authPunch("100", at, punch.CheckOut),
		authPunch("100", at, punch.CheckIn),
	})

	assert.True(t, got.Hours.IsZero())
	assert.False(t, got.Incomplete, "a zero length shift is still a pair")
}

func TestHourCalculatorMultipleEmployees(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	got := NewHourCalculator().Calculate([]punch.Punch{
		authPunch("100", at, punch.CheckIn),
		authPunch("100", at.Add(8*time.Hour), punch.CheckOut),
		authPunch("200", at, punch.CheckIn),
		authPunch("200", at.Add(6*time.Hour), punch.CheckOut),
		authPunch("300", at, punch.CheckIn),
	})

	assert.Equal(t, "14", got.Hours.String())
	assert.True(t, got.Incomplete)
	assert.Equal(t, []string{"300"}, got.IncompleteEmployees)
	assert.Len(t, got.Shifts, 2)
}
