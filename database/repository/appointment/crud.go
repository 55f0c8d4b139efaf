package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"gmpwellness/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UpdateStatus performs a conditional status write. MatchedCount == 0 means
// either the appointment is gone or its status moved concurrently; the two
// cases map to ErrNotFound and ErrStaleStatus respectively.
func (repo *MongoAppointmentRepo) UpdateStatus(
	ctx context.Context,
	id string,
	expectedFrom []models.AppointmentStatus,
	to models.AppointmentStatus,
) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": bson.M{"$in": expectedFrom}}
	update := bson.M{"$set": bson.M{"status": to}}
	res, err := repo.apptColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("status update failed for appointment %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		if err := repo.apptColl.FindOne(ctx, bson.M{"id": id}).Err(); err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		return ErrStaleStatus
	}
	return nil
}
