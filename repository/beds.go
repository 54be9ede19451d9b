package repository

import (
	"context"
	"errors"
	"time"

	"MediTrack/apperror"
	"MediTrack/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	bedNumberTaken = "bed number already used in this ward"
	patientHasBed  = "patient already occupies a bed"
)

type Beds struct {
	coll *mongo.Collection
}

func NewBeds(coll *mongo.Collection) *Beds {
	return &Beds{coll: coll}
}

func (s *Beds) Create(ctx context.Context, b *models.Bed) error {
	ensureID(&b.ID)
	if b.Status == "" {
		b.Status = models.BedAvailable
	}
	_, err := s.coll.InsertOne(ctx, b)
	return translate(err, "bed", bedNumberTaken)
}

func (s *Beds) Get(ctx context.Context, id primitive.ObjectID) (*models.Bed, error) {
	return findOne[models.Bed](ctx, s.coll, bson.M{"_id": id}, "bed")
}

func (s *Beds) List(ctx context.Context, f models.BedFilter) ([]models.Bed, error) {
	filter := bson.M{}
	if !f.WardID.IsZero() {
		filter["wardId"] = f.WardID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	opts := options.Find().SetSort(bson.D{{Key: "wardId", Value: 1}, {Key: "number", Value: 1}})
	return findAll[models.Bed](ctx, s.coll, filter, opts)
}

func (s *Beds) UpdateDetails(ctx context.Context, b *models.Bed) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": b.ID},
		bson.M{"$set": bson.M{
			"number":    b.Number,
			"dailyRate": b.DailyRate,
			"updatedAt": b.UpdatedAt,
			"updatedBy": b.UpdatedBy,
		}},
	)
	if err != nil {
		return translate(err, "bed", bedNumberTaken)
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("bed")
	}
	return nil
}

func (s *Beds) Occupy(ctx context.Context, id, patientID primitive.ObjectID, at time.Time) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.BedAvailable},
		bson.M{"$set": bson.M{
			"status":     models.BedOccupied,
			"patientId":  patientID,
			"admittedAt": at,
			"updatedAt":  at,
		}},
	)
	if err != nil {
		return translate(err, "bed", patientHasBed)
	}
	if res.MatchedCount > 0 {
		return nil
	}
	return s.missOrPrecondition(ctx, id, "bed is not available")
}

func (s *Beds) Release(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.BedOccupied},
		bson.M{
			"$set":   bson.M{"status": models.BedAvailable, "updatedAt": time.Now().UTC()},
			"$unset": bson.M{"patientId": "", "admittedAt": ""},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}
	return s.missOrPrecondition(ctx, id, "bed is not occupied")
}

func (s *Beds) SetStatus(ctx context.Context, id primitive.ObjectID, from, to models.BedStatus) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}
	return s.missOrPrecondition(ctx, id, "bed is not "+string(from))
}

func (s *Beds) FindByPatient(ctx context.Context, patientID primitive.ObjectID) (*models.Bed, error) {
	var b models.Bed
	err := s.coll.FindOne(ctx, bson.M{"patientId": patientID, "status": models.BedOccupied}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Beds) CountByWard(ctx context.Context, wardID primitive.ObjectID) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{"wardId": wardID})
}

func (s *Beds) OccupiedByWard(ctx context.Context) (map[primitive.ObjectID]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": models.BedOccupied}}},
		{{Key: "$group", Value: bson.M{"_id": "$wardId", "count": bson.M{"$sum": 1}}}},
	}
	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		WardID primitive.ObjectID `bson:"_id"`
		Count  int                `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	out := make(map[primitive.ObjectID]int, len(rows))
	for _, r := range rows {
		out[r.WardID] = r.Count
	}
	return out, nil
}

func (s *Beds) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id, "status": bson.M{"$ne": models.BedOccupied}})
	if err != nil {
		return err
	}
	if res.DeletedCount > 0 {
		return nil
	}
	return s.missOrPrecondition(ctx, id, "an occupied bed cannot be deleted")
}

func (s *Beds) missOrPrecondition(ctx context.Context, id primitive.ObjectID, msg string) error {
	n, err := s.coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return err
	}
	if n == 0 {
		return apperror.NotFound("bed")
	}
	return apperror.Precondition("%s", msg)
}
