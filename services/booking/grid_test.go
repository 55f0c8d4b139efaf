package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHours() BusinessHours {
	return BusinessHours{
		WeekdayOpen:   480,  // 08:00
		WeekdayClose:  1200, // 20:00
		SaturdayOpen:  480,
		SaturdayClose: 840, // 14:00
		BreakStart:    720, // 12:00
		BreakEnd:      810, // 13:30
		StepMinutes:   30,
		HorizonDays:   30,
	}
}

// Monday 2026-03-02, 09:00 local.
func testNow() time.Time {
	return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
}

func TestGridWeekday(t *testing.T) {
	grid, err := testHours().Grid("2026-03-03", testNow())
	require.NoError(t, err)

	// 08:00 through 19:30 minus the three break starts (12:00, 12:30, 13:00).
	assert.Len(t, grid, 21)
	assert.Equal(t, 480, grid[0])
	assert.Equal(t, 1170, grid[len(grid)-1])
	assert.NotContains(t, grid, 720)
	assert.NotContains(t, grid, 750)
	assert.NotContains(t, grid, 780)
	// The slot ending exactly when the break begins, and the one starting
	// exactly when it ends, both survive.
	assert.Contains(t, grid, 690)
	assert.Contains(t, grid, 810)
}

func TestGridSaturday(t *testing.T) {
	grid, err := testHours().Grid("2026-03-07", testNow())
	require.NoError(t, err)

	// 08:00-11:30 plus 13:30; everything else collides with the break or
	// falls past the 14:00 close.
	assert.Equal(t, []int{480, 510, 540, 570, 600, 630, 660, 690, 810}, grid)
}

func TestGridSundayClosed(t *testing.T) {
	grid, err := testHours().Grid("2026-03-08", testNow())
	require.NoError(t, err)
	assert.Empty(t, grid)
}

func TestGridTodayDropsElapsedStarts(t *testing.T) {
	grid, err := testHours().Grid("2026-03-02", testNow())
	require.NoError(t, err)

	// It is 09:00: 08:00, 08:30 and the 09:00 slot itself are gone.
	assert.NotContains(t, grid, 480)
	assert.NotContains(t, grid, 510)
	assert.NotContains(t, grid, 540)
	assert.Contains(t, grid, 570)
}

func TestGridOutsideWindow(t *testing.T) {
	bh := testHours()

	past, err := bh.Grid("2026-03-01", testNow())
	require.NoError(t, err)
	assert.Empty(t, past)

	beyond, err := bh.Grid("2026-04-05", testNow())
	require.NoError(t, err)
	assert.Empty(t, beyond)

	// The horizon boundary itself is bookable.
	edge, err := bh.Grid("2026-04-01", testNow())
	require.NoError(t, err)
	assert.NotEmpty(t, edge)
}

func TestGridRejectsMalformedDate(t *testing.T) {
	_, err := testHours().Grid("03/02/2026", testNow())
	assert.Error(t, err)
}
