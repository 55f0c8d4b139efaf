package booking

import (
	"context"
	"time"

	"gmpwellness/models"
)

// CreateAppointmentRequest is the command object for a booking: assembled
// once by the caller from the client's selections and passed whole, never
// mutated incrementally across steps.
type CreateAppointmentRequest struct {
	ServiceID   string               `json:"serviceId"`
	TherapistID string               `json:"therapistId"`
	Date        string               `json:"date"` // "YYYY-MM-DD"
	StartMinute int                  `json:"startMinute"`
	Contact     models.ClientContact `json:"contact"`
}

// BookingResult pairs a freshly created appointment with the checkout URL
// the client must visit to pay for it.
type BookingResult struct {
	Appointment *models.Appointment `json:"appointment"`
	CheckoutURL string              `json:"checkoutUrl"`
}

// BookingService is the scheduling and availability engine.
type BookingService interface {
	GetAvailability(ctx context.Context, therapistID, date string, durationMinutes int) ([]models.AvailableSlot, error)
	GetAvailabilityForService(ctx context.Context, therapistID, date, serviceID string) ([]models.AvailableSlot, error)
	CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*BookingResult, error)
	Reschedule(ctx context.Context, predecessorID string, req CreateAppointmentRequest) (*models.Appointment, error)
	Cancel(ctx context.Context, id string, actor Actor) error
	ConfirmPayment(ctx context.Context, id string) error
	MarkCompleted(ctx context.Context, id string) error
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	ListByEmail(ctx context.Context, email string) ([]models.Appointment, error)
	ListForAdmin(ctx context.Context, date, therapistID string) ([]models.Appointment, error)
	ExpireIfUnpaid(ctx context.Context, id string) error
}

// PaymentProcessor creates checkout sessions with the payment provider.
type PaymentProcessor interface {
	CreateCheckoutSession(ctx context.Context, appt *models.Appointment) (*models.CheckoutSession, error)
}

// Notifier dispatches transactional email. All calls are fire-and-forget
// from the engine's point of view: a failed email never fails a booking.
type Notifier interface {
	SendBookingConfirmed(ctx context.Context, appt *models.Appointment) error
	SendBookingCancelled(ctx context.Context, appt *models.Appointment) error
}

// ExpiryScheduler enqueues the delayed sweep that cancels a booking whose
// payment never arrived.
type ExpiryScheduler interface {
	SchedulePaymentExpiry(appointmentID string, fireAt time.Time) error
}
