package models

// Service is a bookable treatment from the clinic catalogue. DurationMinutes
// must be a positive multiple of the slot grid step.
type Service struct {
	ID              string  `bson:"id" json:"id"`
	Name            string  `bson:"name" json:"name"`
	Description     string  `bson:"description" json:"description"`
	DurationMinutes int     `bson:"duration_minutes" json:"durationMinutes"`
	Price           float64 `bson:"price" json:"price"`
	Active          bool    `bson:"active" json:"active"`
}
