package repository

import (
	"context"
	"regexp"

	"MediTrack/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Patients struct {
	coll *mongo.Collection
}

func NewPatients(coll *mongo.Collection) *Patients {
	return &Patients{coll: coll}
}

func (s *Patients) Create(ctx context.Context, p *models.Patient) error {
	ensureID(&p.ID)
	_, err := s.coll.InsertOne(ctx, p)
	return translate(err, "patient", "patient already exists")
}

func (s *Patients) Get(ctx context.Context, id primitive.ObjectID) (*models.Patient, error) {
	return findOne[models.Patient](ctx, s.coll, bson.M{"_id": id}, "patient")
}

func (s *Patients) List(ctx context.Context, f models.PatientFilter) ([]models.Patient, error) {
	filter := bson.M{}
	if f.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{bson.M{"name": pattern}, bson.M{"phone": pattern}}
	}
	return findAll[models.Patient](ctx, s.coll, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (s *Patients) Update(ctx context.Context, p *models.Patient) error {
	return replaceByID(ctx, s.coll, p.ID, p, "patient", "patient already exists")
}

func (s *Patients) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, s.coll, id, "patient")
}
