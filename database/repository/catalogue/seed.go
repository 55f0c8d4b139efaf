package catalogueRepo

import (
	"context"
	"fmt"
	"time"

	"gmpwellness/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Seed inserts the clinic's default catalogue when the collections are empty,
// so a fresh deployment is bookable without manual setup.
func (repo *MongoCatalogueRepo) Seed(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	count, err := repo.serviceColl.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("error counting services: %w", err)
	}
	if count == 0 {
		services := []interface{}{
			models.Service{
				ID:              "swedish",
				Name:            "Massagem Sueca",
				Description:     "Massagem suave e relaxante com movimentos fluidos para aliviar a tensão.",
				DurationMinutes: 60,
				Price:           85,
				Active:          true,
			},
			models.Service{
				ID:              "deep-tissue",
				Name:            "Massagem Profunda (Deep Tissue)",
				Description:     "Pressão firme focada nas camadas mais profundas dos músculos.",
				DurationMinutes: 90,
				Price:           110,
				Active:          true,
			},
			models.Service{
				ID:              "hot-stone",
				Name:            "Terapia com Pedras Quentes",
				Description:     "Pedras aquecidas posicionadas em pontos-chave para aliviar o estresse.",
				DurationMinutes: 90,
				Price:           135,
				Active:          true,
			},
			models.Service{
				ID:              "aromatherapy",
				Name:            "Massagem com Aromaterapia",
				Description:     "Óleos essenciais combinados com massagem suave para bem-estar.",
				DurationMinutes: 60,
				Price:           95,
				Active:          true,
			},
		}
		if _, err := repo.serviceColl.InsertMany(ctx, services); err != nil {
			return fmt.Errorf("error seeding services: %w", err)
		}
	}

	count, err = repo.therapistColl.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("error counting therapists: %w", err)
	}
	if count == 0 {
		therapists := []interface{}{
			models.Therapist{
				ID:        "dirlene",
				Name:      "Dirlene",
				Specialty: "Massoterapeuta",
				Active:    true,
			},
		}
		if _, err := repo.therapistColl.InsertMany(ctx, therapists); err != nil {
			return fmt.Errorf("error seeding therapists: %w", err)
		}
	}
	return nil
}
