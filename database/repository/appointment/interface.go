package appointmentRepo

import (
	"context"
	"errors"

	"gmpwellness/models"
)

// Storage-layer sentinel errors. The booking service wraps these into its own
// taxonomy before they cross the engine boundary.
var (
	// ErrSlotTaken means another occupying appointment already claims at
	// least one of the requested grid steps.
	ErrSlotTaken = errors.New("slot already claimed")
	// ErrNotFound means no appointment exists with the given id.
	ErrNotFound = errors.New("appointment not found")
	// ErrStaleStatus means a conditional status update matched nothing: the
	// appointment's current status is not one of the expected values.
	ErrStaleStatus = errors.New("appointment status changed concurrently")
)

// AppointmentRepository is the authoritative store for appointments and their
// slot claims. CreateIfNoConflict and Reschedule are the only operations that
// write claims, and both are atomic at the storage layer.
type AppointmentRepository interface {
	// CreateIfNoConflict inserts the appointment together with one slot
	// claim per grid step its duration covers, in a single transaction.
	// Returns ErrSlotTaken (and writes nothing) if any claim collides.
	CreateIfNoConflict(ctx context.Context, appt *models.Appointment) error

	// Reschedule inserts the successor (claims included) and retires the
	// predecessor to cancelled in the same transaction, freeing the
	// predecessor's claims. Returns ErrSlotTaken on claim collision and
	// ErrStaleStatus if the predecessor is no longer in expectedFrom.
	Reschedule(ctx context.Context, successor *models.Appointment, predecessorID string, expectedFrom []models.AppointmentStatus) error

	// UpdateStatus performs a conditional status write: the update applies
	// only while the current status is one of expectedFrom.
	UpdateStatus(ctx context.Context, id string, expectedFrom []models.AppointmentStatus, to models.AppointmentStatus) error

	// CancelAndFreeSlots transitions to cancelled (conditional on
	// expectedFrom) and deletes the appointment's slot claims atomically.
	CancelAndFreeSlots(ctx context.Context, id string, expectedFrom []models.AppointmentStatus) error

	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	ListOccupying(ctx context.Context, therapistID, date string) ([]models.Appointment, error)
	ListByEmail(ctx context.Context, email string) ([]models.Appointment, error)
	ListForAdmin(ctx context.Context, date, therapistID string) ([]models.Appointment, error)
}
