package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"gmpwellness/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetByID retrieves an appointment document by ID.
func (repo *MongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	if err := repo.apptColl.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching appointment with id %s: %w", id, err)
	}
	return &appt, nil
}

// ListOccupying returns all non-cancelled appointments for a therapist on a
// given date, ordered by start time. This is the availability resolver's view
// of the day.
func (repo *MongoAppointmentRepo) ListOccupying(ctx context.Context, therapistID, date string) ([]models.Appointment, error) {
	filter := bson.M{
		"therapist_id": therapistID,
		"date":         date,
		"status":       bson.M{"$ne": models.StatusCancelled},
	}
	return repo.list(ctx, filter, options.Find().SetSort(bson.D{{Key: "start_minute", Value: 1}}))
}

// ListByEmail returns every appointment booked under the given contact email,
// newest first.
func (repo *MongoAppointmentRepo) ListByEmail(ctx context.Context, email string) ([]models.Appointment, error) {
	filter := bson.M{"contact.email": email}
	return repo.list(ctx, filter, options.Find().SetSort(bson.D{
		{Key: "date", Value: -1},
		{Key: "start_minute", Value: -1},
	}))
}

// ListForAdmin returns appointments for the admin dashboard, optionally
// filtered by date and therapist, including cancelled ones.
func (repo *MongoAppointmentRepo) ListForAdmin(ctx context.Context, date, therapistID string) ([]models.Appointment, error) {
	filter := bson.M{}
	if date != "" {
		filter["date"] = date
	}
	if therapistID != "" {
		filter["therapist_id"] = therapistID
	}
	return repo.list(ctx, filter, options.Find().SetSort(bson.D{
		{Key: "date", Value: 1},
		{Key: "start_minute", Value: 1},
	}))
}

func (repo *MongoAppointmentRepo) list(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.apptColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appts []models.Appointment
	for cursor.Next(ctx) {
		var a models.Appointment
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("error decoding appointment: %w", err)
		}
		appts = append(appts, a)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return appts, nil
}
