package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gmpwellness/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// runTxn executes fn inside a MongoDB session transaction, aborting on error.
// Sentinel errors raised by fn survive unwrapped so callers can errors.Is them.
func (repo *MongoAppointmentRepo) runTxn(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	client := repo.apptColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

// CreateIfNoConflict inserts the slot claims and the appointment document in
// one transaction. The unique _id on slot_claims is the conflict guard: a
// duplicate key from a concurrent booking aborts the whole transaction, so a
// lost race never leaves a partial write.
func (repo *MongoAppointmentRepo) CreateIfNoConflict(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := repo.runTxn(ctx, func(sc mongo.SessionContext) error {
		if _, err := repo.claimColl.InsertMany(sc, repo.claimsFor(appt)); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrSlotTaken
			}
			return fmt.Errorf("insert slot claims failed: %w", err)
		}
		if _, err := repo.apptColl.InsertOne(sc, appt); err != nil {
			return fmt.Errorf("insert appointment failed: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			return ErrSlotTaken
		}
		return fmt.Errorf("create appointment transaction failed: %w", err)
	}
	return nil
}

// Reschedule creates the successor and retires the predecessor as a single
// logical unit: successor claims + document are inserted, the predecessor is
// conditionally moved to cancelled, and its claims are freed. Any failure
// aborts the whole transaction.
func (repo *MongoAppointmentRepo) Reschedule(
	ctx context.Context,
	successor *models.Appointment,
	predecessorID string,
	expectedFrom []models.AppointmentStatus,
) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err := repo.runTxn(ctx, func(sc mongo.SessionContext) error {
		if _, err := repo.claimColl.InsertMany(sc, repo.claimsFor(successor)); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrSlotTaken
			}
			return fmt.Errorf("insert successor claims failed: %w", err)
		}
		if _, err := repo.apptColl.InsertOne(sc, successor); err != nil {
			return fmt.Errorf("insert successor failed: %w", err)
		}

		filter := bson.M{"id": predecessorID, "status": bson.M{"$in": expectedFrom}}
		update := bson.M{"$set": bson.M{"status": models.StatusCancelled}}
		res, err := repo.apptColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("retire predecessor failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrStaleStatus
		}

		if _, err := repo.claimColl.DeleteMany(sc, bson.M{"appointment_id": predecessorID}); err != nil {
			return fmt.Errorf("free predecessor claims failed: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotTaken) || errors.Is(err, ErrStaleStatus) {
			return err
		}
		return fmt.Errorf("reschedule transaction failed: %w", err)
	}
	return nil
}

// CancelAndFreeSlots conditionally transitions the appointment to cancelled
// and deletes its slot claims in the same transaction.
func (repo *MongoAppointmentRepo) CancelAndFreeSlots(ctx context.Context, id string, expectedFrom []models.AppointmentStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := repo.runTxn(ctx, func(sc mongo.SessionContext) error {
		filter := bson.M{"id": id, "status": bson.M{"$in": expectedFrom}}
		update := bson.M{"$set": bson.M{"status": models.StatusCancelled}}
		res, err := repo.apptColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("cancel update failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrStaleStatus
		}
		if _, err := repo.claimColl.DeleteMany(sc, bson.M{"appointment_id": id}); err != nil {
			return fmt.Errorf("free claims failed: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrStaleStatus) {
			return ErrStaleStatus
		}
		return fmt.Errorf("cancel transaction failed: %w", err)
	}
	return nil
}
