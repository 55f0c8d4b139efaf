package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	appointmentRepo "gmpwellness/database/repository/appointment"
	catalogueRepo "gmpwellness/database/repository/catalogue"
	"gmpwellness/models"
	"gmpwellness/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBookingService is the production implementation of BookingService.
type DefaultBookingService struct {
	Repo      appointmentRepo.AppointmentRepository
	Catalogue catalogueRepo.CatalogueRepository
	Payments  PaymentProcessor
	Notifier  Notifier
	Expiry    ExpiryScheduler
	Hours     BusinessHours
	Policy    CancellationPolicy

	// Now overrides the clock in tests; nil means time.Now.
	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

var occupyingStatuses = []models.AppointmentStatus{
	models.StatusAwaitingPayment,
	models.StatusScheduled,
	models.StatusCompleted,
}

// GetAvailability returns the legal start times for a request of the given
// duration on (therapist, date). An empty result is a valid answer.
func (s *DefaultBookingService) GetAvailability(ctx context.Context, therapistID, date string, durationMinutes int) ([]models.AvailableSlot, error) {
	therapist, err := s.Catalogue.GetTherapist(ctx, therapistID)
	if err != nil {
		if errors.Is(err, catalogueRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load therapist: %w", err)
	}
	if !therapist.Active {
		return nil, ErrNotFound
	}

	grid, err := s.Hours.Grid(date, s.now())
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	if len(grid) == 0 {
		return []models.AvailableSlot{}, nil
	}

	occupying, err := s.Repo.ListOccupying(ctx, therapistID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}

	starts := resolveAvailability(grid, occupying, durationMinutes, s.Hours.StepMinutes)
	slots := make([]models.AvailableSlot, 0, len(starts))
	for _, start := range starts {
		slots = append(slots, models.AvailableSlot{
			Date:        date,
			StartMinute: start,
			Time:        FormatMinute(start),
		})
	}
	return slots, nil
}

// GetAvailabilityForService resolves the service's snapshot-independent live
// duration and delegates to GetAvailability.
func (s *DefaultBookingService) GetAvailabilityForService(ctx context.Context, therapistID, date, serviceID string) ([]models.AvailableSlot, error) {
	svc, err := s.Catalogue.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogueRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load service: %w", err)
	}
	return s.GetAvailability(ctx, therapistID, date, svc.DurationMinutes)
}

// CreateAppointment validates the requested slot, snapshots the service's
// duration and price, and reserves the slot range atomically. The returned
// result carries the checkout URL; the appointment starts in
// awaiting_payment and is swept if the payment never arrives.
func (s *DefaultBookingService) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*BookingResult, error) {
	logger := utils.GetLogger()

	appt, err := s.buildAppointment(ctx, req, models.StatusAwaitingPayment)
	if err != nil {
		return nil, err
	}

	if err := s.createReservation(ctx, req, appt); err != nil {
		return nil, err
	}

	checkout, err := s.Payments.CreateCheckoutSession(ctx, appt)
	if err != nil {
		// The slot must not stay held by a booking that can never be paid.
		if cErr := s.Repo.CancelAndFreeSlots(ctx, appt.ID, []models.AppointmentStatus{models.StatusAwaitingPayment}); cErr != nil {
			logger.Error("failed to release slot after checkout failure",
				zap.String("appointmentID", appt.ID), zap.Error(cErr))
		}
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	expireAt := time.Unix(checkout.ExpiresAt, 0).Add(1 * time.Minute)
	if err := s.Expiry.SchedulePaymentExpiry(appt.ID, expireAt); err != nil {
		logger.Error("failed to schedule payment expiry sweep",
			zap.String("appointmentID", appt.ID), zap.Error(err))
	}

	logger.Info("appointment created",
		zap.String("appointmentID", appt.ID),
		zap.String("therapistID", appt.TherapistID),
		zap.String("date", appt.Date),
		zap.String("time", FormatMinute(appt.StartMinute)))

	return &BookingResult{Appointment: appt, CheckoutURL: checkout.URL}, nil
}

// buildAppointment resolves the catalogue entries and assembles a new
// appointment record with duration, price and display names snapshotted.
func (s *DefaultBookingService) buildAppointment(ctx context.Context, req CreateAppointmentRequest, status models.AppointmentStatus) (*models.Appointment, error) {
	svc, err := s.Catalogue.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogueRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load service: %w", err)
	}
	therapist, err := s.Catalogue.GetTherapist(ctx, req.TherapistID)
	if err != nil {
		if errors.Is(err, catalogueRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load therapist: %w", err)
	}
	if !svc.Active || !therapist.Active {
		return nil, ErrNotFound
	}

	return &models.Appointment{
		ID:              uuid.New().String(),
		ServiceID:       svc.ID,
		ServiceName:     svc.Name,
		TherapistID:     therapist.ID,
		TherapistName:   therapist.Name,
		Date:            req.Date,
		StartMinute:     req.StartMinute,
		EndMinute:       req.StartMinute + svc.DurationMinutes,
		DurationMinutes: svc.DurationMinutes,
		Price:           svc.Price,
		Contact:         req.Contact,
		Status:          status,
		CreatedAt:       s.now(),
	}, nil
}

// createReservation re-validates the slot against the grid and current
// occupancy, then performs the atomic check-and-insert. The pre-check alone
// would be a correctness bug under concurrency; the store's claim uniqueness
// is what actually prevents double-booking.
func (s *DefaultBookingService) createReservation(ctx context.Context, req CreateAppointmentRequest, appt *models.Appointment) error {
	grid, err := s.Hours.Grid(req.Date, s.now())
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", req.Date, err)
	}
	occupying, err := s.Repo.ListOccupying(ctx, req.TherapistID, req.Date)
	if err != nil {
		return fmt.Errorf("failed to load appointments: %w", err)
	}
	if !containsStart(resolveAvailability(grid, occupying, appt.DurationMinutes, s.Hours.StepMinutes), req.StartMinute) {
		return ErrSlotConflict
	}

	if err := s.Repo.CreateIfNoConflict(ctx, appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			return ErrSlotConflict
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func containsStart(starts []int, start int) bool {
	for _, s := range starts {
		if s == start {
			return true
		}
	}
	return false
}

// ConfirmPayment moves awaiting_payment to scheduled. Confirming an already
// scheduled appointment is an idempotent success: payment webhooks are
// delivered at least once.
func (s *DefaultBookingService) ConfirmPayment(ctx context.Context, id string) error {
	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return err
	}
	if appt.Status == models.StatusScheduled {
		return nil
	}
	if err := ValidateTransition(appt.Status, models.StatusScheduled); err != nil {
		return err
	}

	err = s.Repo.UpdateStatus(ctx, id, []models.AppointmentStatus{models.StatusAwaitingPayment}, models.StatusScheduled)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrStaleStatus) {
			// Lost a race: if the winner also confirmed, that is still success.
			current, gErr := s.getAppointment(ctx, id)
			if gErr == nil && current.Status == models.StatusScheduled {
				return nil
			}
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, models.StatusScheduled)
		}
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to confirm payment: %w", err)
	}

	appt.Status = models.StatusScheduled
	s.notifyAsync(appt, true)
	return nil
}

// Cancel retires an appointment. Clients pass the cancellation policy gate;
// administrators bypass it.
func (s *DefaultBookingService) Cancel(ctx context.Context, id string, actor Actor) error {
	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return err
	}
	if appt.Status == models.StatusCancelled {
		return ErrAlreadyCancelled
	}
	if err := ValidateTransition(appt.Status, models.StatusCancelled); err != nil {
		return err
	}

	if actor == ActorClient {
		startsAt, err := appt.StartsAt(s.now().Location())
		if err != nil {
			return fmt.Errorf("corrupt appointment date: %w", err)
		}
		if !s.Policy.Allows(startsAt, s.now()) {
			return ErrTooLate
		}
	}

	err = s.Repo.CancelAndFreeSlots(ctx, id, []models.AppointmentStatus{
		models.StatusAwaitingPayment,
		models.StatusScheduled,
	})
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrStaleStatus) {
			current, gErr := s.getAppointment(ctx, id)
			if gErr == nil && current.Status == models.StatusCancelled {
				return ErrAlreadyCancelled
			}
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, models.StatusCancelled)
		}
		return fmt.Errorf("failed to cancel appointment: %w", err)
	}

	appt.Status = models.StatusCancelled
	s.notifyAsync(appt, false)
	return nil
}

// MarkCompleted records that the service was rendered. Administrative only.
func (s *DefaultBookingService) MarkCompleted(ctx context.Context, id string) error {
	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		return err
	}
	if err := ValidateTransition(appt.Status, models.StatusCompleted); err != nil {
		return err
	}
	err = s.Repo.UpdateStatus(ctx, id, []models.AppointmentStatus{models.StatusScheduled}, models.StatusCompleted)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrStaleStatus) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, models.StatusCompleted)
		}
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to mark appointment completed: %w", err)
	}
	return nil
}

// ExpireIfUnpaid is the payment-expiry sweep. It cancels the appointment only
// if it is still awaiting payment; anything else means the sweep is a no-op.
func (s *DefaultBookingService) ExpireIfUnpaid(ctx context.Context, id string) error {
	appt, err := s.getAppointment(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	if appt.Status != models.StatusAwaitingPayment {
		return nil
	}

	err = s.Repo.CancelAndFreeSlots(ctx, id, []models.AppointmentStatus{models.StatusAwaitingPayment})
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrStaleStatus) {
			// Payment arrived while the sweep ran.
			return nil
		}
		return fmt.Errorf("failed to expire unpaid appointment: %w", err)
	}

	utils.GetLogger().Info("unpaid appointment expired",
		zap.String("appointmentID", id), zap.String("date", appt.Date))
	return nil
}

// GetAppointment returns one appointment by id.
func (s *DefaultBookingService) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	return s.getAppointment(ctx, id)
}

// ListByEmail returns every appointment booked under a contact email.
func (s *DefaultBookingService) ListByEmail(ctx context.Context, email string) ([]models.Appointment, error) {
	appts, err := s.Repo.ListByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appts, nil
}

// ListForAdmin returns appointments for the admin dashboard.
func (s *DefaultBookingService) ListForAdmin(ctx context.Context, date, therapistID string) ([]models.Appointment, error) {
	appts, err := s.Repo.ListForAdmin(ctx, date, therapistID)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appts, nil
}

func (s *DefaultBookingService) getAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}
	return appt, nil
}

// notifyAsync sends the confirmation or cancellation email without blocking
// the request.
func (s *DefaultBookingService) notifyAsync(appt *models.Appointment, confirmed bool) {
	if s.Notifier == nil {
		return
	}
	go func(a models.Appointment) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		var err error
		if confirmed {
			err = s.Notifier.SendBookingConfirmed(ctx, &a)
		} else {
			err = s.Notifier.SendBookingCancelled(ctx, &a)
		}
		if err != nil {
			utils.GetLogger().Warn("notification dispatch failed",
				zap.String("appointmentID", a.ID), zap.Error(err))
		}
	}(*appt)
}
