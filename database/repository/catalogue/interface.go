package catalogueRepo

import (
	"context"
	"errors"

	"gmpwellness/models"
)

// ErrNotFound means no catalogue entry exists with the given id.
var ErrNotFound = errors.New("catalogue entry not found")

// CatalogueRepository serves the service and therapist catalogues. Entries
// referenced by existing appointments are never mutated in place; the booking
// engine snapshots what it needs at creation time.
type CatalogueRepository interface {
	GetService(ctx context.Context, id string) (*models.Service, error)
	ListServices(ctx context.Context) ([]models.Service, error)
	GetTherapist(ctx context.Context, id string) (*models.Therapist, error)
	ListTherapists(ctx context.Context) ([]models.Therapist, error)
}
