package migrations

import (
	"context"

	"MediTrack/repository"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// BackfillAppointmentActive sets the active flag on appointments written
// before it existed, so the partial slot index covers them.
func BackfillAppointmentActive(ctx context.Context, database *mongo.Database) error {
	coll := database.Collection(repository.AppointmentsCollection)
	result, err := coll.UpdateMany(ctx,
		bson.M{"active": bson.M{"$exists": false}},
		bson.A{bson.M{"$set": bson.M{"active": bson.M{"$ne": bson.A{"$status", "cancelled"}}}}},
	)
	if err != nil {
		log.Error().Err(err).Msg("Error from backfilling appointment active flag")
		return err
	}
	log.Info().Int64("modified", result.ModifiedCount).Msg("Migration applied: appointment active flag")
	return nil
}
