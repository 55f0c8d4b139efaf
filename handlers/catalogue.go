package handlers

import (
	"context"
	"net/http"

	catalogueRepo "gmpwellness/database/repository/catalogue"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogueHandler serves the service and therapist catalogues the booking UI
// renders its selection steps from.
type CatalogueHandler struct {
	Repo   catalogueRepo.CatalogueRepository
	Logger *zap.Logger
}

// NewCatalogueHandler creates a new CatalogueHandler.
func NewCatalogueHandler(repo catalogueRepo.CatalogueRepository, logger *zap.Logger) *CatalogueHandler {
	return &CatalogueHandler{Repo: repo, Logger: logger}
}

// ListServicesHandler returns all bookable services.
func (ch *CatalogueHandler) ListServicesHandler(c *gin.Context) {
	services, err := ch.Repo.ListServices(context.Background())
	if err != nil {
		ch.Logger.Error("Failed to list services", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load services"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// ListTherapistsHandler returns all active therapists.
func (ch *CatalogueHandler) ListTherapistsHandler(c *gin.Context) {
	therapists, err := ch.Repo.ListTherapists(context.Background())
	if err != nil {
		ch.Logger.Error("Failed to list therapists", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load therapists"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"therapists": therapists})
}
