package booking

import "errors"

// Engine error taxonomy. Store and transport errors are wrapped into one of
// these before crossing the engine boundary; handlers map them to HTTP codes.
var (
	// ErrSlotConflict: the requested slot range is occupied or not a legal
	// start. Recoverable — the client should re-query availability.
	ErrSlotConflict = errors.New("slot is not available")
	// ErrInvalidTransition: the requested status change is not in the
	// lifecycle table.
	ErrInvalidTransition = errors.New("invalid appointment status transition")
	// ErrIdentityMismatch: the contact email does not match the appointment
	// being rescheduled.
	ErrIdentityMismatch = errors.New("contact email does not match appointment")
	// ErrNotEligible: the appointment's status does not allow rescheduling.
	ErrNotEligible = errors.New("appointment is not eligible for reschedule")
	// ErrTooLate: the cancellation cutoff has passed.
	ErrTooLate = errors.New("too close to appointment start")
	// ErrAlreadyCancelled: the appointment was already cancelled.
	ErrAlreadyCancelled = errors.New("appointment already cancelled")
	// ErrNotFound: no appointment exists with the given id.
	ErrNotFound = errors.New("appointment not found")
)
