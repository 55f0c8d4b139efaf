package handlers

import (
	"context"
	"errors"
	"net/http"

	"gmpwellness/services/booking"
	"gmpwellness/services/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WebhookHandler processes payment-provider callbacks.
type WebhookHandler struct {
	Service  booking.BookingService
	Payments payment.Provider
	Logger   *zap.Logger
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(svc booking.BookingService, payments payment.Provider, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{Service: svc, Payments: payments, Logger: logger}
}

// paymentEvent is the slice of the provider's event payload we care about.
type paymentEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID string `json:"id"`
		} `json:"object"`
	} `json:"data"`
}

// PaymentWebhookHandler confirms an appointment after its checkout completes.
// The event payload is never trusted on its own: the session is queried back
// from the provider and only a genuinely paid session flips the status.
// Replays are harmless because confirmation is idempotent.
func (wh *WebhookHandler) PaymentWebhookHandler(c *gin.Context) {
	var event paymentEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event payload"})
		return
	}

	sessionID := event.Data.Object.ID
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing session id"})
		return
	}
	if event.Type != "" && event.Type != "checkout.session.completed" {
		// Unrelated event types are acknowledged and dropped.
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	ctx := context.Background()
	paid, appointmentID, err := wh.Payments.VerifyPayment(ctx, sessionID)
	if err != nil {
		wh.Logger.Error("Payment verification failed",
			zap.String("sessionID", sessionID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment verification failed"})
		return
	}
	if !paid {
		wh.Logger.Warn("Webhook for unpaid session ignored",
			zap.String("sessionID", sessionID))
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	if err := wh.Service.ConfirmPayment(ctx, appointmentID); err != nil {
		if errors.Is(err, booking.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
			return
		}
		respondBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "confirmed"})
}
