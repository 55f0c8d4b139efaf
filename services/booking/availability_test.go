package booking

import (
	"testing"

	"gmpwellness/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func occupying(start, duration int, status models.AppointmentStatus) models.Appointment {
	return models.Appointment{
		StartMinute:     start,
		EndMinute:       start + duration,
		DurationMinutes: duration,
		Status:          status,
	}
}

func TestClaimedSteps(t *testing.T) {
	assert.Equal(t, []int{600}, claimedSteps(600, 30, 30))
	assert.Equal(t, []int{600, 630}, claimedSteps(600, 60, 30))
	assert.Equal(t, []int{600, 630, 660}, claimedSteps(600, 90, 30))
	// A non-multiple duration still rounds up to whole steps.
	assert.Equal(t, []int{600, 630, 660}, claimedSteps(600, 75, 30))
}

func TestResolveAvailabilityBlocksCoveredStarts(t *testing.T) {
	grid, err := testHours().Grid("2026-03-03", testNow())
	require.NoError(t, err)

	// A 60-minute booking at 10:00 occupies 10:00 and 10:30.
	occ := []models.Appointment{occupying(600, 60, models.StatusScheduled)}

	free := resolveAvailability(grid, occ, 30, 30)
	assert.NotContains(t, free, 600)
	assert.NotContains(t, free, 630)
	assert.Contains(t, free, 570)
	assert.Contains(t, free, 660)
}

func TestResolveAvailabilityLongDurationNeedsEveryStep(t *testing.T) {
	grid, err := testHours().Grid("2026-03-03", testNow())
	require.NoError(t, err)

	occ := []models.Appointment{occupying(600, 60, models.StatusScheduled)}

	// A 90-minute request needs three consecutive free steps: 09:30 would
	// run into the 10:00 booking, 09:00 is the last clean start before it.
	free := resolveAvailability(grid, occ, 90, 30)
	assert.Contains(t, free, 540)
	assert.NotContains(t, free, 570)
	assert.NotContains(t, free, 600)
	assert.NotContains(t, free, 630)
	assert.Contains(t, free, 660)
}

func TestResolveAvailabilityRespectsClosingAndBreak(t *testing.T) {
	grid, err := testHours().Grid("2026-03-03", testNow())
	require.NoError(t, err)

	free := resolveAvailability(grid, nil, 90, 30)

	// 19:00 and 19:30 would run past the 20:00 close.
	assert.Contains(t, free, 1110)
	assert.NotContains(t, free, 1140)
	assert.NotContains(t, free, 1170)

	// 11:00 and 11:30 would run into the lunch break.
	assert.Contains(t, free, 630)
	assert.NotContains(t, free, 660)
	assert.NotContains(t, free, 690)
}

func TestResolveAvailabilityIgnoresCancelled(t *testing.T) {
	grid, err := testHours().Grid("2026-03-03", testNow())
	require.NoError(t, err)

	occ := []models.Appointment{occupying(600, 60, models.StatusCancelled)}

	free := resolveAvailability(grid, occ, 30, 30)
	assert.Contains(t, free, 600)
	assert.Contains(t, free, 630)
}

func TestResolveAvailabilityAwaitingPaymentStillBlocks(t *testing.T) {
	grid, err := testHours().Grid("2026-03-03", testNow())
	require.NoError(t, err)

	occ := []models.Appointment{occupying(600, 60, models.StatusAwaitingPayment)}

	free := resolveAvailability(grid, occ, 30, 30)
	assert.NotContains(t, free, 600)
	assert.NotContains(t, free, 630)
}
