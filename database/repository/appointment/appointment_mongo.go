package appointmentRepo

import (
	"fmt"

	"gmpwellness/config"
	"gmpwellness/database"
	"gmpwellness/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	apptColl  *mongo.Collection
	claimColl *mongo.Collection
	stepMin   int
}

// NewMongoAppointmentRepo constructs a new instance of MongoAppointmentRepo.
// stepMinutes is the grid step used to expand an appointment's interval into
// slot-claim documents.
func NewMongoAppointmentRepo(stepMinutes int) *MongoAppointmentRepo {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoAppointmentRepo{
		apptColl:  db.Collection("appointments"),
		claimColl: db.Collection("slot_claims"),
		stepMin:   stepMinutes,
	}
}

// claimKey builds the canonical unique key for one grid step of one therapist's day.
func claimKey(therapistID, date string, minute int) string {
	return fmt.Sprintf("%s|%s|%04d", therapistID, date, minute)
}

// claimsFor expands an appointment's [start, end) interval into the slot
// claims it owns: its own start step plus every subsequent step its duration
// covers.
func (repo *MongoAppointmentRepo) claimsFor(appt *models.Appointment) []interface{} {
	steps := (appt.DurationMinutes + repo.stepMin - 1) / repo.stepMin
	claims := make([]interface{}, 0, steps)
	for i := 0; i < steps; i++ {
		minute := appt.StartMinute + i*repo.stepMin
		claims = append(claims, models.SlotClaim{
			Key:           claimKey(appt.TherapistID, appt.Date, minute),
			AppointmentID: appt.ID,
			TherapistID:   appt.TherapistID,
			Date:          appt.Date,
			Minute:        minute,
		})
	}
	return claims
}
