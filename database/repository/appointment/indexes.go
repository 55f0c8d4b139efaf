package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the reservation store depends on. The
// slot_claims collection already gets uniqueness for free from its _id key;
// the secondary index below is what makes freeing a cancelled appointment's
// claims cheap.
func (repo *MongoAppointmentRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	apptIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "therapist_id", Value: 1},
				{Key: "date", Value: 1},
				{Key: "status", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "contact.email", Value: 1}},
		},
	}
	if _, err := repo.apptColl.Indexes().CreateMany(ctx, apptIndexes); err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}

	claimIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "appointment_id", Value: 1}},
		},
	}
	if _, err := repo.claimColl.Indexes().CreateMany(ctx, claimIndexes); err != nil {
		return fmt.Errorf("failed to create slot claim indexes: %w", err)
	}
	return nil
}
