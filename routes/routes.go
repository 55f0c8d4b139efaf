package routes

import (
	"net/http"
	"time"

	"gmpwellness/handlers"
	"gmpwellness/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, bh *handlers.BookingHandler, ch *handlers.CatalogueHandler, wh *handlers.WebhookHandler, ah *handlers.AdminHandler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterCatalogueRoutes(r, ch)
	RegisterBookingRoutes(r, bh)
	RegisterWebhookRoutes(r, wh)
	RegisterAdminRoutes(r, ah)
}

// RegisterHealthRoute exposes a liveness probe.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterBookingRoutes registers the public booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	api := r.Group("/api")
	{
		api.GET("/availability", bh.GetAvailabilityHandler)
		api.POST("/appointments", bh.CreateAppointmentHandler)
		api.GET("/appointments", bh.ListAppointmentsHandler)
		api.GET("/appointments/:id", bh.GetAppointmentHandler)
		api.POST("/appointments/:id/cancel", bh.CancelAppointmentHandler)
		api.POST("/appointments/:id/reschedule", bh.RescheduleAppointmentHandler)
	}
}

// RegisterCatalogueRoutes registers the service and therapist catalogue
// endpoints.
func RegisterCatalogueRoutes(r *gin.Engine, ch *handlers.CatalogueHandler) {
	api := r.Group("/api")
	{
		api.GET("/services", ch.ListServicesHandler)
		api.GET("/therapists", ch.ListTherapistsHandler)
	}
}

// RegisterWebhookRoutes registers payment-provider callbacks.
func RegisterWebhookRoutes(r *gin.Engine, wh *handlers.WebhookHandler) {
	r.POST("/api/webhooks/payment", wh.PaymentWebhookHandler)
}

// RegisterAdminRoutes registers operator endpoints. Everything except login
// requires a valid admin token.
func RegisterAdminRoutes(r *gin.Engine, ah *handlers.AdminHandler) {
	api := r.Group("/api/admin")
	{
		api.POST("/login", ah.LoginHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthAdminMiddleware())
		protected.GET("/appointments", ah.ListAppointmentsHandler)
		protected.POST("/appointments/:id/complete", ah.CompleteAppointmentHandler)
		protected.POST("/appointments/:id/cancel", ah.CancelAppointmentHandler)
	}
}
