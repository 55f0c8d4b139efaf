// File: gmpwellness/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gmpwellness/config"
	"gmpwellness/cron"
	"gmpwellness/database"
	appointmentRepo "gmpwellness/database/repository/appointment"
	catalogueRepo "gmpwellness/database/repository/catalogue"
	"gmpwellness/handlers"
	"gmpwellness/middleware"
	"gmpwellness/routes"
	"gmpwellness/services/booking"
	"gmpwellness/services/notification"
	"gmpwellness/services/payment"
	"gmpwellness/services/tasks"
	"gmpwellness/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	apptRepo := appointmentRepo.NewMongoAppointmentRepo(config.AppConfig.SlotStepMinutes)
	catRepo := catalogueRepo.NewMongoCatalogueRepo()

	setupCtx, cancelSetup := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelSetup()
	if err := apptRepo.EnsureIndexes(setupCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure appointment indexes: %v", err)
	}
	if err := catRepo.Seed(setupCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to seed catalogue: %v", err)
	}

	// services.
	paymentProvider := payment.NewStripeProvider(logger)
	notifier := notification.NewEmailNotifier(logger)
	expiryScheduler := tasks.NewAsynqScheduler()
	defer expiryScheduler.Close()

	bookingService := &booking.DefaultBookingService{
		Repo:      apptRepo,
		Catalogue: catRepo,
		Payments:  paymentProvider,
		Notifier:  notifier,
		Expiry:    expiryScheduler,
		Hours:     booking.HoursFromConfig(),
		Policy: booking.CancellationPolicy{
			CutoffHours: config.AppConfig.CancelCutoffHours,
		},
	}

	// Background worker sweeping unpaid bookings.
	cron.InitExpiryWorker(bookingService)

	// handlers.
	bookingHandler := handlers.NewBookingHandler(bookingService, utils.GetCacheClient(), logger)
	catalogueHandler := handlers.NewCatalogueHandler(catRepo, logger)
	webhookHandler := handlers.NewWebhookHandler(bookingService, paymentProvider, logger)
	adminHandler := handlers.NewAdminHandler(bookingService, logger)

	routes.RegisterRoutes(router, bookingHandler, catalogueHandler, webhookHandler, adminHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
