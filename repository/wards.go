package repository

import (
	"context"

	"MediTrack/apperror"
	"MediTrack/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const wardNameTaken = "ward name already in use"

type Wards struct {
	coll *mongo.Collection
}

func NewWards(coll *mongo.Collection) *Wards {
	return &Wards{coll: coll}
}

func (s *Wards) exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := s.coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	return n > 0, err
}

func (s *Wards) Create(ctx context.Context, w *models.Ward) error {
	ensureID(&w.ID)
	_, err := s.coll.InsertOne(ctx, w)
	return translate(err, "ward", wardNameTaken)
}

func (s *Wards) Get(ctx context.Context, id primitive.ObjectID) (*models.Ward, error) {
	return findOne[models.Ward](ctx, s.coll, bson.M{"_id": id}, "ward")
}

func (s *Wards) List(ctx context.Context) ([]models.Ward, error) {
	return findAll[models.Ward](ctx, s.coll, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

func (s *Wards) UpdateDetails(ctx context.Context, w *models.Ward) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": w.ID, "currentOccupancy": bson.M{"$lte": w.Capacity}},
		bson.M{"$set": bson.M{
			"name":      w.Name,
			"type":      w.Type,
			"floor":     w.Floor,
			"capacity":  w.Capacity,
			"updatedAt": w.UpdatedAt,
			"updatedBy": w.UpdatedBy,
		}},
	)
	if err != nil {
		return translate(err, "ward", wardNameTaken)
	}
	if res.MatchedCount > 0 {
		return nil
	}
	return s.missOrPrecondition(ctx, w.ID, "capacity cannot be below current occupancy")
}

// AdjustOccupancy is a single guarded $inc; the bounds are checked by the
// filter so concurrent callers cannot push the counter past them.
func (s *Wards) AdjustOccupancy(ctx context.Context, id primitive.ObjectID, delta int) error {
	filter := bson.M{"_id": id}
	msg := "ward is at full capacity"
	if delta >= 0 {
		filter["$expr"] = bson.M{"$lte": bson.A{bson.M{"$add": bson.A{"$currentOccupancy", delta}}, "$capacity"}}
	} else {
		filter["currentOccupancy"] = bson.M{"$gte": -delta}
		msg = "ward occupancy is already zero"
	}
	res, err := s.coll.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"currentOccupancy": delta}})
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}
	return s.missOrPrecondition(ctx, id, msg)
}

func (s *Wards) SetOccupancy(ctx context.Context, id primitive.ObjectID, n int) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"currentOccupancy": n}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("ward")
	}
	return nil
}

func (s *Wards) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, s.coll, id, "ward")
}

func (s *Wards) missOrPrecondition(ctx context.Context, id primitive.ObjectID, msg string) error {
	ok, err := s.exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NotFound("ward")
	}
	return apperror.Precondition("%s", msg)
}
