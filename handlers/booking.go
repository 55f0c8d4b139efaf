package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"gmpwellness/models"
	"gmpwellness/services/booking"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// availabilityCacheTTL keeps the cached grid fresh enough that a just-booked
// slot disappears quickly; conflicts slipping through are still caught by the
// atomic create.
const availabilityCacheTTL = 30 * time.Second

// BookingHandler exposes the public booking endpoints.
type BookingHandler struct {
	Service booking.BookingService
	Cache   *redis.Client
	Logger  *zap.Logger
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(svc booking.BookingService, cache *redis.Client, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Cache: cache, Logger: logger}
}

// GetAvailabilityHandler returns the bookable start times for a therapist,
// date and service. Responses are cached briefly per (therapist, date,
// service) key.
func (bh *BookingHandler) GetAvailabilityHandler(c *gin.Context) {
	therapistID := c.Query("therapistId")
	date := c.Query("date")
	serviceID := c.Query("serviceId")
	if therapistID == "" || date == "" || serviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "therapistId, date and serviceId are required"})
		return
	}

	ctx := context.Background()
	cacheKey := "availability:" + therapistID + ":" + date + ":" + serviceID

	if cached, err := bh.Cache.Get(ctx, cacheKey).Result(); err == nil {
		var slots []models.AvailableSlot
		if json.Unmarshal([]byte(cached), &slots) == nil {
			c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
			return
		}
	}

	slots, err := bh.Service.GetAvailabilityForService(ctx, therapistID, date, serviceID)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	if data, err := json.Marshal(slots); err == nil {
		if err := bh.Cache.Set(ctx, cacheKey, data, availabilityCacheTTL).Err(); err != nil {
			bh.Logger.Warn("Failed to cache availability", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
}

// CreateAppointmentHandler books a slot and returns the appointment together
// with the checkout URL the client must complete payment on.
func (bh *BookingHandler) CreateAppointmentHandler(c *gin.Context) {
	var req booking.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if req.ServiceID == "" || req.TherapistID == "" || req.Date == "" ||
		req.Contact.Name == "" || req.Contact.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required booking fields"})
		return
	}

	result, err := bh.Service.CreateAppointment(context.Background(), req)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	bh.invalidateAvailability(req.TherapistID, req.Date)
	c.JSON(http.StatusCreated, result)
}

// GetAppointmentHandler returns one appointment by id. The cancel page uses
// this to show the booking before asking for confirmation.
func (bh *BookingHandler) GetAppointmentHandler(c *gin.Context) {
	appt, err := bh.Service.GetAppointment(context.Background(), c.Param("id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// ListAppointmentsHandler returns a client's appointments, newest first.
func (bh *BookingHandler) ListAppointmentsHandler(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}
	appts, err := bh.Service.ListByEmail(context.Background(), email)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// CancelAppointmentHandler cancels a booking on the client's behalf. The
// 24-hour cutoff applies; admins use their own endpoint, which does not.
func (bh *BookingHandler) CancelAppointmentHandler(c *gin.Context) {
	id := c.Param("id")
	if err := bh.Service.Cancel(context.Background(), id, booking.ActorClient); err != nil {
		respondBookingError(c, err)
		return
	}

	if appt, err := bh.Service.GetAppointment(context.Background(), id); err == nil {
		bh.invalidateAvailability(appt.TherapistID, appt.Date)
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// RescheduleAppointmentHandler moves a booking to a new slot. The request
// carries the full target selection; the contact email must match the
// original booking.
func (bh *BookingHandler) RescheduleAppointmentHandler(c *gin.Context) {
	var req booking.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	predecessorID := c.Param("id")
	successor, err := bh.Service.Reschedule(context.Background(), predecessorID, req)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	bh.invalidateAvailability(req.TherapistID, req.Date)
	c.JSON(http.StatusOK, successor)
}

// invalidateAvailability drops all cached availability entries for the
// therapist's day so the next query reflects the change.
func (bh *BookingHandler) invalidateAvailability(therapistID, date string) {
	ctx := context.Background()
	pattern := "availability:" + therapistID + ":" + date + ":*"
	keys, err := bh.Cache.Keys(ctx, pattern).Result()
	if err != nil {
		bh.Logger.Warn("Failed to scan availability cache", zap.Error(err))
		return
	}
	if len(keys) > 0 {
		if err := bh.Cache.Del(ctx, keys...).Err(); err != nil {
			bh.Logger.Warn("Failed to invalidate availability cache", zap.Error(err))
		}
	}
}
