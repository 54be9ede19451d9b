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

type Bills struct {
	coll *mongo.Collection
}

func NewBills(coll *mongo.Collection) *Bills {
	return &Bills{coll: coll}
}

func (s *Bills) Create(ctx context.Context, b *models.Bill) error {
	ensureID(&b.ID)
	b.Version = 1
	_, err := s.coll.InsertOne(ctx, b)
	return translate(err, "bill", "bill number already used")
}

func (s *Bills) Get(ctx context.Context, id primitive.ObjectID) (*models.Bill, error) {
	return findOne[models.Bill](ctx, s.coll, bson.M{"_id": id}, "bill")
}

func (s *Bills) List(ctx context.Context, f models.BillFilter) ([]models.Bill, error) {
	filter := bson.M{}
	if !f.PatientID.IsZero() {
		filter["patientId"] = f.PatientID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	created := bson.M{}
	if f.From != nil {
		created["$gte"] = *f.From
	}
	if f.To != nil {
		created["$lt"] = *f.To
	}
	if len(created) > 0 {
		filter["createdAt"] = created
	}
	return findAll[models.Bill](ctx, s.coll, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (s *Bills) Save(ctx context.Context, b *models.Bill) error {
	read := b.Version
	b.Version = read + 1
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": b.ID, "version": read}, b)
	if err != nil {
		b.Version = read
		return translate(err, "bill", "bill number already used")
	}
	if res.MatchedCount > 0 {
		return nil
	}
	b.Version = read
	n, err := s.coll.CountDocuments(ctx, bson.M{"_id": b.ID}, options.Count().SetLimit(1))
	if err != nil {
		return err
	}
	if n == 0 {
		return apperror.NotFound("bill")
	}
	return apperror.Conflict("bill was modified concurrently, reload and retry")
}

func (s *Bills) OverdueCandidates(ctx context.Context, now time.Time) ([]models.Bill, error) {
	filter := bson.M{
		"status":     bson.M{"$in": bson.A{models.BillDraft, models.BillGenerated}},
		"paidAmount": bson.M{"$lte": 0},
		"dueDate":    bson.M{"$lt": now},
	}
	return findAll[models.Bill](ctx, s.coll, filter)
}

func (s *Bills) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, s.coll, id, "bill")
}
