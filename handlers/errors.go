package handlers

import (
	"errors"
	"net/http"

	"gmpwellness/services/booking"

	"github.com/gin-gonic/gin"
)

// respondBookingError translates engine errors into HTTP responses. Anything
// outside the engine taxonomy is an internal error and is not echoed to the
// client.
func respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
	case errors.Is(err, booking.ErrSlotConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "slot is no longer available", "code": "slot_conflict"})
	case errors.Is(err, booking.ErrAlreadyCancelled):
		c.JSON(http.StatusConflict, gin.H{"error": "appointment already cancelled", "code": "already_cancelled"})
	case errors.Is(err, booking.ErrIdentityMismatch):
		c.JSON(http.StatusForbidden, gin.H{"error": "contact email does not match this appointment"})
	case errors.Is(err, booking.ErrNotEligible):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "appointment is not eligible", "code": "not_eligible"})
	case errors.Is(err, booking.ErrTooLate):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "too close to the appointment start", "code": "too_late"})
	case errors.Is(err, booking.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid status change", "code": "invalid_transition"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
