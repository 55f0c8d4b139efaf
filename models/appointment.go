package models

import "time"

// AppointmentStatus is the canonical lifecycle status of an appointment.
type AppointmentStatus string

const (
	// StatusAwaitingPayment is the initial status of a fresh booking; the
	// slot is held while the client completes checkout.
	StatusAwaitingPayment AppointmentStatus = "awaiting_payment"
	// StatusScheduled means payment was confirmed, or the appointment is a
	// reschedule successor (the client already paid once).
	StatusScheduled AppointmentStatus = "scheduled"
	// StatusCompleted is terminal: the service was rendered.
	StatusCompleted AppointmentStatus = "completed"
	// StatusCancelled is terminal but retained for audit; its slots are freed.
	StatusCancelled AppointmentStatus = "cancelled"
)

// Occupying reports whether an appointment in this status still claims its
// calendar slots. Everything except cancelled occupies.
func (s AppointmentStatus) Occupying() bool {
	return s != StatusCancelled
}

// ClientContact holds the contact details captured with a booking.
type ClientContact struct {
	Name      string `bson:"name" json:"name"`
	Email     string `bson:"email" json:"email"`
	Phone     string `bson:"phone" json:"phone"`
	BirthDate string `bson:"birth_date,omitempty" json:"birthDate,omitempty"`
}

// Appointment represents a reservation of a therapist for a timed service.
// Duration, price and display names are snapshotted at creation time so later
// catalogue edits never alter an existing booking.
type Appointment struct {
	ID              string            `bson:"id" json:"id"`
	ServiceID       string            `bson:"service_id" json:"serviceId"`
	ServiceName     string            `bson:"service_name" json:"serviceName"`
	TherapistID     string            `bson:"therapist_id" json:"therapistId"`
	TherapistName   string            `bson:"therapist_name" json:"therapistName"`
	Date            string            `bson:"date" json:"date"` // "YYYY-MM-DD", clinic-local
	StartMinute     int               `bson:"start_minute" json:"startMinute"`
	EndMinute       int               `bson:"end_minute" json:"endMinute"`
	DurationMinutes int               `bson:"duration_minutes" json:"durationMinutes"`
	Price           float64           `bson:"price" json:"price"`
	Contact         ClientContact     `bson:"contact" json:"contact"`
	Status          AppointmentStatus `bson:"status" json:"status"`
	RescheduledFrom string            `bson:"rescheduled_from,omitempty" json:"rescheduledFrom,omitempty"`
	CreatedAt       time.Time         `bson:"created_at" json:"createdAt"`
}

// StartsAt resolves the appointment's absolute start instant in the given
// location (the clinic runs on one fixed local calendar).
func (a *Appointment) StartsAt(loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", a.Date, loc)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(a.StartMinute) * time.Minute), nil
}

// SlotClaim marks one grid step as owned by an occupying appointment. The
// claim key is unique per (therapist, date, minute), which is what makes
// create-if-no-conflict atomic at the storage layer.
type SlotClaim struct {
	Key           string `bson:"_id" json:"key"`
	AppointmentID string `bson:"appointment_id" json:"appointmentId"`
	TherapistID   string `bson:"therapist_id" json:"therapistId"`
	Date          string `bson:"date" json:"date"`
	Minute        int    `bson:"minute" json:"minute"`
}
