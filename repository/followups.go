package repository

import (
	"context"
	"time"

	"MediTrack/apperror"
	"MediTrack/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FollowUps struct {
	coll *mongo.Collection
}

func NewFollowUps(coll *mongo.Collection) *FollowUps {
	return &FollowUps{coll: coll}
}

func (s *FollowUps) Create(ctx context.Context, f *models.FollowUp) error {
	ensureID(&f.ID)
	_, err := s.coll.InsertOne(ctx, f)
	return translate(err, "follow-up", "follow-up already exists")
}

func (s *FollowUps) Get(ctx context.Context, id primitive.ObjectID) (*models.FollowUp, error) {
	return findOne[models.FollowUp](ctx, s.coll, bson.M{"_id": id}, "follow-up")
}

func (s *FollowUps) List(ctx context.Context, f models.FollowUpFilter) ([]models.FollowUp, error) {
	filter := bson.M{}
	if !f.DoctorID.IsZero() {
		filter["doctorId"] = f.DoctorID
	}
	if !f.PatientID.IsZero() {
		filter["patientId"] = f.PatientID
	}
	if f.PendingOnly {
		filter["notified"] = false
	}
	if f.DueBefore != nil {
		filter["date"] = bson.M{"$lt": *f.DueBefore}
	}
	return findAll[models.FollowUp](ctx, s.coll, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
}

func (s *FollowUps) Update(ctx context.Context, f *models.FollowUp) error {
	return replaceByID(ctx, s.coll, f.ID, f, "follow-up", "follow-up already exists")
}

func (s *FollowUps) MarkNotified(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"notified": true, "notifiedAt": at, "updatedAt": at}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("follow-up")
	}
	return nil
}

func (s *FollowUps) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, s.coll, id, "follow-up")
}
