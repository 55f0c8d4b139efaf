package booking

import (
	"testing"

	"gmpwellness/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateTransitionLegalEdges(t *testing.T) {
	assert.NoError(t, ValidateTransition(models.StatusAwaitingPayment, models.StatusScheduled))
	assert.NoError(t, ValidateTransition(models.StatusAwaitingPayment, models.StatusCancelled))
	assert.NoError(t, ValidateTransition(models.StatusScheduled, models.StatusCompleted))
	assert.NoError(t, ValidateTransition(models.StatusScheduled, models.StatusCancelled))
}

func TestValidateTransitionIllegalEdges(t *testing.T) {
	cases := []struct {
		from, to models.AppointmentStatus
	}{
		{models.StatusAwaitingPayment, models.StatusCompleted},
		{models.StatusScheduled, models.StatusAwaitingPayment},
		{models.StatusCompleted, models.StatusScheduled},
		{models.StatusCompleted, models.StatusCancelled},
		{models.StatusCancelled, models.StatusScheduled},
		{models.StatusCancelled, models.StatusCancelled},
	}
	for _, tc := range cases {
		err := ValidateTransition(tc.from, tc.to)
		assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", tc.from, tc.to)
	}
}

func TestOccupyingStatuses(t *testing.T) {
	assert.True(t, models.StatusAwaitingPayment.Occupying())
	assert.True(t, models.StatusScheduled.Occupying())
	assert.True(t, models.StatusCompleted.Occupying())
	assert.False(t, models.StatusCancelled.Occupying())
}
