package models

// Therapist is a provider of services. The weekly business-hour template is
// shared by all therapists (one fixed clinic calendar).
type Therapist struct {
	ID        string `bson:"id" json:"id"`
	Name      string `bson:"name" json:"name"`
	Specialty string `bson:"specialty" json:"specialty"`
	Active    bool   `bson:"active" json:"active"`
}
