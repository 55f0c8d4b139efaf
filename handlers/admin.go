package handlers

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"gmpwellness/config"
	"gmpwellness/services/booking"
	"gmpwellness/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler encapsulates the clinic operator's endpoints.
type AdminHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(svc booking.BookingService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{Service: svc, Logger: logger}
}

// LoginHandler authenticates the operator and issues a short-lived token.
func (ah *AdminHandler) LoginHandler(c *gin.Context) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	cfg := config.AppConfig
	userOK := subtle.ConstantTimeCompare([]byte(input.Username), []byte(cfg.AdminUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(input.Password), []byte(cfg.AdminPassword)) == 1
	if cfg.AdminPassword == "" || !userOK || !passOK {
		ah.Logger.Warn("Admin login rejected", zap.String("username", input.Username))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(input.Username, 24*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// ListAppointmentsHandler returns the agenda, optionally filtered by date
// and therapist.
func (ah *AdminHandler) ListAppointmentsHandler(c *gin.Context) {
	appts, err := ah.Service.ListForAdmin(context.Background(), c.Query("date"), c.Query("therapistId"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// CompleteAppointmentHandler marks a rendered appointment as completed.
func (ah *AdminHandler) CompleteAppointmentHandler(c *gin.Context) {
	if err := ah.Service.MarkCompleted(context.Background(), c.Param("id")); err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "completed"})
}

// CancelAppointmentHandler cancels on the clinic's behalf. Operators are not
// bound by the client-side cutoff.
func (ah *AdminHandler) CancelAppointmentHandler(c *gin.Context) {
	if err := ah.Service.Cancel(context.Background(), c.Param("id"), booking.ActorAdmin); err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
