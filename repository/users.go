package repository

import (
	"context"
	"strings"

	"MediTrack/models"
	"MediTrack/role"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Users struct {
	coll *mongo.Collection
}

func NewUsers(coll *mongo.Collection) *Users {
	return &Users{coll: coll}
}

func (s *Users) Create(ctx context.Context, u *models.User) error {
	ensureID(&u.ID)
	u.Email = strings.ToLower(u.Email)
	_, err := s.coll.InsertOne(ctx, u)
	return translate(err, "user", "email already registered")
}

func (s *Users) Get(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return findOne[models.User](ctx, s.coll, bson.M{"_id": id}, "user")
}

func (s *Users) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, s.coll, bson.M{"email": strings.ToLower(email)}, "user")
}

func (s *Users) List(ctx context.Context, f models.UserFilter) ([]models.User, error) {
	filter := bson.M{}
	if f.Role != "" {
		filter["role"] = f.Role
	}
	if f.ActiveOnly {
		filter["isActive"] = true
	}
	return findAll[models.User](ctx, s.coll, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

func (s *Users) Update(ctx context.Context, u *models.User) error {
	return replaceByID(ctx, s.coll, u.ID, u, "user", "email already registered")
}

func (s *Users) CountByRole(ctx context.Context, r role.Role) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{"role": r})
}
