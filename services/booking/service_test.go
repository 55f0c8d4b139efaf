package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	appointmentRepo "gmpwellness/database/repository/appointment"
	catalogueRepo "gmpwellness/database/repository/catalogue"
	"gmpwellness/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory AppointmentRepository with the same claim
// semantics as the mongo implementation: one claim per grid step, unique per
// (therapist, date, minute), checked before anything is written.
type fakeRepo struct {
	mu     sync.Mutex
	step   int
	appts  map[string]*models.Appointment
	claims map[string]string // claim key -> appointment id
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		step:   30,
		appts:  make(map[string]*models.Appointment),
		claims: make(map[string]string),
	}
}

func (r *fakeRepo) keysFor(a *models.Appointment) []string {
	var keys []string
	for _, m := range claimedSteps(a.StartMinute, a.DurationMinutes, r.step) {
		keys = append(keys, fmt.Sprintf("%s|%s|%04d", a.TherapistID, a.Date, m))
	}
	return keys
}

func (r *fakeRepo) insertLocked(a *models.Appointment) error {
	keys := r.keysFor(a)
	for _, k := range keys {
		if _, taken := r.claims[k]; taken {
			return appointmentRepo.ErrSlotTaken
		}
	}
	cp := *a
	r.appts[a.ID] = &cp
	for _, k := range keys {
		r.claims[k] = a.ID
	}
	return nil
}

func (r *fakeRepo) freeClaimsLocked(id string) {
	for k, owner := range r.claims {
		if owner == id {
			delete(r.claims, k)
		}
	}
}

func statusIn(s models.AppointmentStatus, expected []models.AppointmentStatus) bool {
	for _, e := range expected {
		if s == e {
			return true
		}
	}
	return false
}

func (r *fakeRepo) CreateIfNoConflict(ctx context.Context, appt *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insertLocked(appt)
}

func (r *fakeRepo) Reschedule(ctx context.Context, successor *models.Appointment, predecessorID string, expectedFrom []models.AppointmentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pred, ok := r.appts[predecessorID]
	if !ok {
		return appointmentRepo.ErrNotFound
	}
	if !statusIn(pred.Status, expectedFrom) {
		return appointmentRepo.ErrStaleStatus
	}
	// Successor claims are checked while the predecessor's still exist,
	// exactly like the transactional store.
	if err := r.insertLocked(successor); err != nil {
		return err
	}
	pred.Status = models.StatusCancelled
	r.freeClaimsLocked(predecessorID)
	return nil
}

func (r *fakeRepo) UpdateStatus(ctx context.Context, id string, expectedFrom []models.AppointmentStatus, to models.AppointmentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	appt, ok := r.appts[id]
	if !ok {
		return appointmentRepo.ErrNotFound
	}
	if !statusIn(appt.Status, expectedFrom) {
		return appointmentRepo.ErrStaleStatus
	}
	appt.Status = to
	return nil
}

func (r *fakeRepo) CancelAndFreeSlots(ctx context.Context, id string, expectedFrom []models.AppointmentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	appt, ok := r.appts[id]
	if !ok {
		return appointmentRepo.ErrNotFound
	}
	if !statusIn(appt.Status, expectedFrom) {
		return appointmentRepo.ErrStaleStatus
	}
	appt.Status = models.StatusCancelled
	r.freeClaimsLocked(id)
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appt, ok := r.appts[id]
	if !ok {
		return nil, appointmentRepo.ErrNotFound
	}
	cp := *appt
	return &cp, nil
}

func (r *fakeRepo) ListOccupying(ctx context.Context, therapistID, date string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, a := range r.appts {
		if a.TherapistID == therapistID && a.Date == date && a.Status.Occupying() {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListByEmail(ctx context.Context, email string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, a := range r.appts {
		if a.Contact.Email == email {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListForAdmin(ctx context.Context, date, therapistID string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, a := range r.appts {
		if (date == "" || a.Date == date) && (therapistID == "" || a.TherapistID == therapistID) {
			out = append(out, *a)
		}
	}
	return out, nil
}

// fakeCatalogue serves a fixed clinic menu.
type fakeCatalogue struct {
	services   map[string]models.Service
	therapists map[string]models.Therapist
}

func newFakeCatalogue() *fakeCatalogue {
	return &fakeCatalogue{
		services: map[string]models.Service{
			"swedish":   {ID: "swedish", Name: "Massagem Sueca", DurationMinutes: 60, Price: 85, Active: true},
			"hot-stone": {ID: "hot-stone", Name: "Pedras Quentes", DurationMinutes: 90, Price: 135, Active: true},
			"retired":   {ID: "retired", Name: "Descontinuada", DurationMinutes: 60, Price: 70, Active: false},
		},
		therapists: map[string]models.Therapist{
			"dirlene": {ID: "dirlene", Name: "Dirlene", Active: true},
			"former":  {ID: "former", Name: "Ex-terapeuta", Active: false},
		},
	}
}

func (c *fakeCatalogue) GetService(ctx context.Context, id string) (*models.Service, error) {
	svc, ok := c.services[id]
	if !ok {
		return nil, catalogueRepo.ErrNotFound
	}
	return &svc, nil
}

func (c *fakeCatalogue) ListServices(ctx context.Context) ([]models.Service, error) {
	var out []models.Service
	for _, s := range c.services {
		out = append(out, s)
	}
	return out, nil
}

func (c *fakeCatalogue) GetTherapist(ctx context.Context, id string) (*models.Therapist, error) {
	th, ok := c.therapists[id]
	if !ok {
		return nil, catalogueRepo.ErrNotFound
	}
	return &th, nil
}

func (c *fakeCatalogue) ListTherapists(ctx context.Context) ([]models.Therapist, error) {
	var out []models.Therapist
	for _, t := range c.therapists {
		out = append(out, t)
	}
	return out, nil
}

// fakePayments returns a canned checkout session, or fails on demand.
type fakePayments struct {
	fail bool
}

func (p *fakePayments) CreateCheckoutSession(ctx context.Context, appt *models.Appointment) (*models.CheckoutSession, error) {
	if p.fail {
		return nil, errors.New("provider unavailable")
	}
	return &models.CheckoutSession{
		SessionID:     "cs_" + appt.ID,
		AppointmentID: appt.ID,
		URL:           "https://checkout.test/" + appt.ID,
		ExpiresAt:     testNow().Add(15 * time.Minute).Unix(),
	}, nil
}

// fakeExpiry records scheduled sweeps.
type fakeExpiry struct {
	mu        sync.Mutex
	scheduled []string
}

func (e *fakeExpiry) SchedulePaymentExpiry(appointmentID string, fireAt time.Time) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scheduled = append(e.scheduled, appointmentID)
	return nil
}

func newTestService(repo *fakeRepo) (*DefaultBookingService, *fakeExpiry) {
	expiry := &fakeExpiry{}
	svc := &DefaultBookingService{
		Repo:      repo,
		Catalogue: newFakeCatalogue(),
		Payments:  &fakePayments{},
		Expiry:    expiry,
		Hours:     testHours(),
		Policy:    CancellationPolicy{CutoffHours: 24},
		Now:       testNow,
	}
	return svc, expiry
}

func bookingRequest(date string, start int) CreateAppointmentRequest {
	return CreateAppointmentRequest{
		ServiceID:   "swedish",
		TherapistID: "dirlene",
		Date:        date,
		StartMinute: start,
		Contact: models.ClientContact{
			Name:  "Ana Souza",
			Email: "ana@example.com",
			Phone: "+55 11 91234-5678",
		},
	}
}

func TestCreateAppointmentSnapshotsCatalogue(t *testing.T) {
	svc, expiry := newTestService(newFakeRepo())

	result, err := svc.CreateAppointment(context.Background(), bookingRequest("2026-03-03", 600))
	require.NoError(t, err)

	appt := result.Appointment
	assert.Equal(t, models.StatusAwaitingPayment, appt.Status)
	assert.Equal(t, "Massagem Sueca", appt.ServiceName)
	assert.Equal(t, "Dirlene", appt.TherapistName)
	assert.Equal(t, 60, appt.DurationMinutes)
	assert.Equal(t, 660, appt.EndMinute)
	assert.Equal(t, 85.0, appt.Price)
	assert.Equal(t, "https://checkout.test/"+appt.ID, result.CheckoutURL)

	expiry.mu.Lock()
	defer expiry.mu.Unlock()
	assert.Equal(t, []string{appt.ID}, expiry.scheduled)
}

func TestCreateAppointmentRejectsOverlap(t *testing.T) {
	svc, _ := newTestService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.CreateAppointment(ctx, bookingRequest("2026-03-03", 600))
	require.NoError(t, err)

	// 10:30 overlaps the 10:00-11:00 booking; 11:00 does not.
	_, err = svc.CreateAppointment(ctx, bookingRequest("2026-03-03", 630))
	assert.ErrorIs(t, err, ErrSlotConflict)

	_, err = svc.CreateAppointment(ctx, bookingRequest("2026-03-03", 660))
	assert.NoError(t, err)
}

func TestCreateAppointmentUnknownOrInactiveCatalogue(t *testing.T) {
	svc, _ := newTestService(newFakeRepo())
	ctx := context.Background()

	req := bookingRequest("2026-03-03", 600)
	req.ServiceID = "nope"
	_, err := svc.CreateAppointment(ctx, req)
	assert.ErrorIs(t, err, ErrNotFound)

	req = bookingRequest("2026-03-03", 600)
	req.ServiceID = "retired"
	_, err = svc.CreateAppointment(ctx, req)
	assert.ErrorIs(t, err, ErrNotFound)

	req = bookingRequest("2026-03-03", 600)
	req.TherapistID = "former"
	_, err = svc.CreateAppointment(ctx, req)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateAppointmentRejectsOffGridStart(t *testing.T) {
	svc, _ := newTestService(newFakeRepo())
	ctx := context.Background()

	// Not a grid step.
	_, err := svc.CreateAppointment(ctx, bookingRequest("2026-03-03", 615))
	assert.ErrorIs(t, err, ErrSlotConflict)

	// Sunday.
	_, err = svc.CreateAppointment(ctx, bookingRequest("2026-03-08", 600))
	assert.ErrorIs(t, err, ErrSlotConflict)

	// Would run past Saturday's close.
	req := bookingRequest("2026-03-07", 810)
	req.ServiceID = "hot-stone"
	_, err = svc.CreateAppointment(ctx, req)
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestConcurrentCreateOnlyOneWins(t *testing.T) {
	svc, _ := newTestService(newFakeRepo())

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateAppointment(context.Background(), bookingRequest("2026-03-03", 600))
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, ErrSlotConflict)
		}
	}
	assert.Equal(t, 1, wins)
}

func TestCheckoutFailureReleasesSlot(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)
	svc.Payments = &fakePayments{fail: true}
	ctx := context.Background()

	_, err := svc.CreateAppointment(ctx, bookingRequest("2026-03-03", 600))
	require.Error(t, err)

	// The slot must be bookable again after the rollback.
	svc.Payments = &fakePayments{}
	_, err = svc.CreateAppointment(ctx, bookingRequest("2026-03-03", 600))
	assert.NoError(t, err)
}

func TestConfirmPaymentIsIdempotent(t *testing.T) {
	svc, _ := newTestService(newFakeRepo())
	ctx := context.Background()

	result, err := svc.CreateAppointment(ctx, bookingRequest("2026-03-03", 600))
	require.NoError(t, err)
	id := result.Appointment.ID

	require.NoError(t, svc.ConfirmPayment(ctx, id))
	appt, err := svc.GetAppointment(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusScheduled, appt.Status)

	// Webhooks are delivered at least once.
	assert.NoError(t, svc.ConfirmPayment(ctx, id))
}

func TestConfirmPaymentAfterCancelFails(t *testing.T) {
	svc, _ := newTestService(newFakeRepo())
	ctx := context.Background()

	result, err := svc.CreateAppointment(ctx, bookingRequest("2026-03-03", 600))
	require.NoError(t, err)
	id := result.Appointment.ID

	require.NoError(t, svc.Cancel(ctx, id, ActorAdmin))
	assert.ErrorIs(t, svc.ConfirmPayment(ctx, id), ErrInvalidTransition)
}

func TestClientCancelHonoursCutoff(t *testing.T) {
	svc, _ := newTestService(newFakeRepo())
	ctx := context.Background()

	// Today at 10:00, one hour from "now": within the 24h cutoff.
	result, err := svc.CreateAppointment(ctx, bookingRequest("2026-03-02", 600))
	require.NoError(t, err)
	id := result.Appointment.ID

	assert.ErrorIs(t, svc.Cancel(ctx, id, ActorClient), ErrTooLate)

	// The clinic itself is not bound by the cutoff.
	assert.NoError(t, svc.Cancel(ctx, id, ActorAdmin))
}

func TestClientCancelOutsideCutoff(t *testing.T) {
	svc, _ := newTestService(newFakeRepo())
	ctx := context.Background()

	// Tomorrow at 10:00 is 25 hours away.
	result, err := svc.CreateAppointment(ctx, bookingRequest("2026-03-03", 600))
	require.NoError(t, err)

	assert.NoError(t, svc.Cancel(ctx, result.Appointment.ID, ActorClient))
}

func TestCancelTwiceFailsTyped(t *testing.T) {
	svc, _ := newTestService(newFakeRepo())
	ctx := context.Background()

	result, err := svc.CreateAppointment(ctx, bookingRequest("2026-03-03", 600))
	require.NoError(t, err)
	id := result.Appointment.ID

	require.NoError(t, svc.Cancel(ctx, id, ActorAdmin))
	assert.ErrorIs(t, svc.Cancel(ctx, id, ActorAdmin), ErrAlreadyCancelled)
}

func TestCancelFreesTheSlot(t *testing.T) {
	svc, _ := newTestService(newFakeRepo())
	ctx := context.Background()

	result, err := svc.CreateAppointment(ctx, bookingRequest("2026-03-03", 600))
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(ctx, result.Appointment.ID, ActorAdmin))

	_, err = svc.CreateAppointment(ctx, bookingRequest("2026-03-03", 600))
	assert.NoError(t, err)
}

func TestMarkCompletedRequiresScheduled(t *testing.T) {
	svc, _ := newTestService(newFakeRepo())
	ctx := context.Background()

	result, err := svc.CreateAppointment(ctx, bookingRequest("2026-03-03", 600))
	require.NoError(t, err)
	id := result.Appointment.ID

	assert.ErrorIs(t, svc.MarkCompleted(ctx, id), ErrInvalidTransition)

	require.NoError(t, svc.ConfirmPayment(ctx, id))
	require.NoError(t, svc.MarkCompleted(ctx, id))

	appt, err := svc.GetAppointment(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, appt.Status)
}

func TestExpireIfUnpaidSweepsOnlyAwaitingPayment(t *testing.T) {
	svc, _ := newTestService(newFakeRepo())
	ctx := context.Background()

	unpaid, err := svc.CreateAppointment(ctx, bookingRequest("2026-03-03", 600))
	require.NoError(t, err)
	paid, err := svc.CreateAppointment(ctx, bookingRequest("2026-03-03", 660))
	require.NoError(t, err)
	require.NoError(t, svc.ConfirmPayment(ctx, paid.Appointment.ID))

	require.NoError(t, svc.ExpireIfUnpaid(ctx, unpaid.Appointment.ID))
	require.NoError(t, svc.ExpireIfUnpaid(ctx, paid.Appointment.ID))

	swept, err := svc.GetAppointment(ctx, unpaid.Appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, swept.Status)

	kept, err := svc.GetAppointment(ctx, paid.Appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusScheduled, kept.Status)

	// A sweep for a vanished id is a no-op, not an error.
	assert.NoError(t, svc.ExpireIfUnpaid(ctx, "ghost"))
}

func TestGetAvailabilityReflectsBookings(t *testing.T) {
	svc, _ := newTestService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.CreateAppointment(ctx, bookingRequest("2026-03-03", 600))
	require.NoError(t, err)

	slots, err := svc.GetAvailabilityForService(ctx, "dirlene", "2026-03-03", "swedish")
	require.NoError(t, err)

	starts := make(map[int]bool)
	for _, s := range slots {
		starts[s.StartMinute] = true
		assert.Equal(t, "2026-03-03", s.Date)
	}
	assert.False(t, starts[600])
	assert.False(t, starts[630])
	assert.True(t, starts[540])
	assert.True(t, starts[660])
}

func TestGetAvailabilityUnknownTherapist(t *testing.T) {
	svc, _ := newTestService(newFakeRepo())

	_, err := svc.GetAvailability(context.Background(), "nobody", "2026-03-03", 60)
	assert.ErrorIs(t, err, ErrNotFound)
}
