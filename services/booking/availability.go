package booking

import (
	"gmpwellness/models"
)

// claimedSteps returns the grid start minutes an interval of the given
// duration covers: its own start plus every subsequent step needed.
func claimedSteps(startMinute, durationMinutes, step int) []int {
	n := (durationMinutes + step - 1) / step
	steps := make([]int, 0, n)
	for i := 0; i < n; i++ {
		steps = append(steps, startMinute+i*step)
	}
	return steps
}

// resolveAvailability intersects the day's grid with the occupying
// appointments and returns the starts from which a request of
// durationMinutes fits entirely. A candidate is valid iff every step it
// needs exists in the grid (so it cannot run into the break or past closing)
// and none of them is occupied. Pure and read-only: a returned slot can still
// be lost to a concurrent booking, which the reservation store resolves.
func resolveAvailability(grid []int, occupying []models.Appointment, durationMinutes, step int) []int {
	inGrid := make(map[int]bool, len(grid))
	for _, start := range grid {
		inGrid[start] = true
	}

	occupied := make(map[int]bool)
	for _, appt := range occupying {
		if !appt.Status.Occupying() {
			continue
		}
		for _, s := range claimedSteps(appt.StartMinute, appt.DurationMinutes, step) {
			occupied[s] = true
		}
	}

	var free []int
	for _, start := range grid {
		fits := true
		for _, s := range claimedSteps(start, durationMinutes, step) {
			if !inGrid[s] || occupied[s] {
				fits = false
				break
			}
		}
		if fits {
			free = append(free, start)
		}
	}
	return free
}
