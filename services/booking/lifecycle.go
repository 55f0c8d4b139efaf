package booking

import (
	"fmt"

	"gmpwellness/models"
)

// Actor identifies who is requesting a lifecycle transition.
type Actor string

const (
	ActorClient Actor = "client"
	ActorAdmin  Actor = "admin"
)

// legalTransitions is the canonical lifecycle table. Terminal states have no
// outgoing edges; an attempt to move a cancelled or completed appointment
// fails typed instead of silently succeeding.
var legalTransitions = map[models.AppointmentStatus][]models.AppointmentStatus{
	models.StatusAwaitingPayment: {models.StatusScheduled, models.StatusCancelled},
	models.StatusScheduled:       {models.StatusCompleted, models.StatusCancelled},
	models.StatusCompleted:       {},
	models.StatusCancelled:       {},
}

// ValidateTransition checks the lifecycle table and returns
// ErrInvalidTransition (annotated with both states) when the edge is missing.
func ValidateTransition(from, to models.AppointmentStatus) error {
	for _, allowed := range legalTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
