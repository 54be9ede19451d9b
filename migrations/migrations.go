package migrations

import (
	"context"

	"MediTrack/config"
	"MediTrack/repository"
	"MediTrack/services"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

// Run applies every migration in order. Each step is idempotent.
func Run(ctx context.Context, database *mongo.Database, cfg *config.Config) error {
	if err := EnsureIndexes(ctx, database); err != nil {
		return err
	}
	if err := BackfillAppointmentActive(ctx, database); err != nil {
		return err
	}
	wards := repository.NewWards(database.Collection(repository.WardsCollection))
	beds := repository.NewBeds(database.Collection(repository.BedsCollection))
	if _, err := ReconcileWardOccupancy(ctx, wards, beds); err != nil {
		return err
	}
	users := services.NewUserService(repository.NewUsers(database.Collection(repository.UsersCollection)))
	if err := SeedAdmin(ctx, users, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return err
	}
	log.Info().Msg("migrations complete")
	return nil
}
