package booking

import (
	"context"
	"errors"
	"fmt"

	appointmentRepo "gmpwellness/database/repository/appointment"
	"gmpwellness/models"
	"gmpwellness/utils"

	"go.uber.org/zap"
)

// Reschedule moves a client from one appointment to another without ever
// leaving both, or neither, live. Guards run in order and abort before any
// write; the successor-create plus predecessor-retire pair is one storage
// transaction. The successor is created directly in scheduled: the client
// already paid for the predecessor.
func (s *DefaultBookingService) Reschedule(ctx context.Context, predecessorID string, req CreateAppointmentRequest) (*models.Appointment, error) {
	pred, err := s.getAppointment(ctx, predecessorID)
	if err != nil {
		return nil, err
	}

	// Guard A — identity: a known appointment id must not be enough to move
	// someone else's booking.
	if req.Contact.Email != pred.Contact.Email {
		return nil, ErrIdentityMismatch
	}

	// Guard B — eligibility: only paid, still-upcoming appointments move.
	if pred.Status != models.StatusScheduled {
		return nil, ErrNotEligible
	}

	// Guard C — the cancellation cutoff applies to reschedules too.
	startsAt, err := pred.StartsAt(s.now().Location())
	if err != nil {
		return nil, fmt.Errorf("corrupt appointment date: %w", err)
	}
	if !s.Policy.Allows(startsAt, s.now()) {
		return nil, ErrTooLate
	}

	successor, err := s.buildAppointment(ctx, req, models.StatusScheduled)
	if err != nil {
		return nil, err
	}
	successor.RescheduledFrom = pred.ID

	grid, err := s.Hours.Grid(req.Date, s.now())
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", req.Date, err)
	}
	occupying, err := s.Repo.ListOccupying(ctx, req.TherapistID, req.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}
	if !containsStart(resolveAvailability(grid, occupying, successor.DurationMinutes, s.Hours.StepMinutes), req.StartMinute) {
		return nil, ErrSlotConflict
	}

	err = s.Repo.Reschedule(ctx, successor, pred.ID, []models.AppointmentStatus{models.StatusScheduled})
	if err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrSlotTaken):
			return nil, ErrSlotConflict
		case errors.Is(err, appointmentRepo.ErrStaleStatus):
			return nil, ErrNotEligible
		default:
			return nil, fmt.Errorf("reschedule failed: %w", err)
		}
	}

	utils.GetLogger().Info("appointment rescheduled",
		zap.String("predecessorID", pred.ID),
		zap.String("successorID", successor.ID),
		zap.String("date", successor.Date),
		zap.String("time", FormatMinute(successor.StartMinute)))

	s.notifyAsync(successor, true)
	return successor, nil
}
