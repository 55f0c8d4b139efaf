package catalogueRepo

import (
	"context"
	"fmt"
	"time"

	"gmpwellness/config"
	"gmpwellness/database"
	"gmpwellness/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCatalogueRepo implements CatalogueRepository using MongoDB.
type MongoCatalogueRepo struct {
	serviceColl   *mongo.Collection
	therapistColl *mongo.Collection
}

// NewMongoCatalogueRepo constructs a new instance of MongoCatalogueRepo.
func NewMongoCatalogueRepo() *MongoCatalogueRepo {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoCatalogueRepo{
		serviceColl:   db.Collection("services"),
		therapistColl: db.Collection("therapists"),
	}
}

// GetService retrieves a service by ID.
func (repo *MongoCatalogueRepo) GetService(ctx context.Context, id string) (*models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var svc models.Service
	if err := repo.serviceColl.FindOne(ctx, bson.M{"id": id}).Decode(&svc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching service with id %s: %w", id, err)
	}
	return &svc, nil
}

// ListServices returns all active services.
func (repo *MongoCatalogueRepo) ListServices(ctx context.Context) ([]models.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.serviceColl.Find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, fmt.Errorf("error listing services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("error decoding services: %w", err)
	}
	return services, nil
}

// GetTherapist retrieves a therapist by ID.
func (repo *MongoCatalogueRepo) GetTherapist(ctx context.Context, id string) (*models.Therapist, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var th models.Therapist
	if err := repo.therapistColl.FindOne(ctx, bson.M{"id": id}).Decode(&th); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching therapist with id %s: %w", id, err)
	}
	return &th, nil
}

// ListTherapists returns all active therapists.
func (repo *MongoCatalogueRepo) ListTherapists(ctx context.Context) ([]models.Therapist, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.therapistColl.Find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, fmt.Errorf("error listing therapists: %w", err)
	}
	defer cursor.Close(ctx)

	var therapists []models.Therapist
	if err := cursor.All(ctx, &therapists); err != nil {
		return nil, fmt.Errorf("error decoding therapists: %w", err)
	}
	return therapists, nil
}
