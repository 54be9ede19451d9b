package migrations

import (
	"context"

	"MediTrack/services"

	"github.com/rs/zerolog/log"
)

func SeedAdmin(ctx context.Context, users *services.UserService, name, email, password string) error {
	if email == "" {
		log.Info().Msg("ADMIN_EMAIL not set, skipping admin seed")
		return nil
	}
	created, err := users.SeedAdmin(ctx, name, email, password)
	if err != nil {
		log.Error().Err(err).Msg("Error from seeding admin")
		return err
	}
	if created {
		log.Info().Str("email", email).Msg("Migration applied: admin seeded")
	}
	return nil
}
