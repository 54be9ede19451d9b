package migrations

import (
	"context"

	"MediTrack/repository"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// indexes the stores rely on for uniqueness; the partial ones back slot
// booking and the one-bed-per-patient rule.
var indexes = map[string][]mongo.IndexModel{
	repository.UsersCollection: {
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_email")},
		{Keys: bson.D{{Key: "role", Value: 1}}, Options: options.Index().SetName("role")},
	},
	repository.PatientsCollection: {
		{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetName("phone")},
	},
	repository.AppointmentsCollection: {
		{
			Keys: bson.D{{Key: "doctorId", Value: 1}, {Key: "date", Value: 1}, {Key: "time", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("uniq_active_slot").
				SetPartialFilterExpression(bson.M{"active": true}),
		},
		{Keys: bson.D{{Key: "patientId", Value: 1}, {Key: "date", Value: -1}}, Options: options.Index().SetName("patient_date")},
	},
	repository.PrescriptionsCollection: {
		{Keys: bson.D{{Key: "appointmentId", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_appointment")},
		{Keys: bson.D{{Key: "patientId", Value: 1}}, Options: options.Index().SetName("patient")},
	},
	repository.FollowUpsCollection: {
		{Keys: bson.D{{Key: "notified", Value: 1}, {Key: "date", Value: 1}}, Options: options.Index().SetName("pending_date")},
	},
	repository.WardsCollection: {
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_name")},
	},
	repository.BedsCollection: {
		{Keys: bson.D{{Key: "wardId", Value: 1}, {Key: "number", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_ward_number")},
		{
			Keys: bson.D{{Key: "patientId", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("uniq_occupant").
				SetPartialFilterExpression(bson.M{"status": "occupied"}),
		},
	},
	repository.BillsCollection: {
		{Keys: bson.D{{Key: "number", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_number")},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "dueDate", Value: 1}}, Options: options.Index().SetName("status_due")},
		{Keys: bson.D{{Key: "patientId", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("patient_created")},
	},
}

func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	for coll, idx := range indexes {
		names, err := database.Collection(coll).Indexes().CreateMany(ctx, idx)
		if err != nil {
			log.Error().Err(err).Str("collection", coll).Msg("Error from creating indexes")
			return err
		}
		log.Info().Str("collection", coll).Strs("indexes", names).Msg("indexes ensured")
	}
	return nil
}
