package repository

import (
	"context"

	"MediTrack/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const prescriptionExists = "a prescription already exists for this appointment"

type Prescriptions struct {
	coll *mongo.Collection
}

func NewPrescriptions(coll *mongo.Collection) *Prescriptions {
	return &Prescriptions{coll: coll}
}

func (s *Prescriptions) Create(ctx context.Context, p *models.Prescription) error {
	ensureID(&p.ID)
	_, err := s.coll.InsertOne(ctx, p)
	return translate(err, "prescription", prescriptionExists)
}

func (s *Prescriptions) Get(ctx context.Context, id primitive.ObjectID) (*models.Prescription, error) {
	return findOne[models.Prescription](ctx, s.coll, bson.M{"_id": id}, "prescription")
}

func (s *Prescriptions) GetByAppointment(ctx context.Context, appointmentID primitive.ObjectID) (*models.Prescription, error) {
	return findOne[models.Prescription](ctx, s.coll, bson.M{"appointmentId": appointmentID}, "prescription")
}

func (s *Prescriptions) ListByPatient(ctx context.Context, patientID primitive.ObjectID) ([]models.Prescription, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findAll[models.Prescription](ctx, s.coll, bson.M{"patientId": patientID}, opts)
}

func (s *Prescriptions) Update(ctx context.Context, p *models.Prescription) error {
	return replaceByID(ctx, s.coll, p.ID, p, "prescription", prescriptionExists)
}

func (s *Prescriptions) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, s.coll, id, "prescription")
}
