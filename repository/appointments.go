package repository

import (
	"context"
	"time"

	"MediTrack/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const slotTaken = "slot already booked for this doctor"

type Appointments struct {
	coll *mongo.Collection
}

func NewAppointments(coll *mongo.Collection) *Appointments {
	return &Appointments{coll: coll}
}

func dayRange(day time.Time) bson.M {
	return bson.M{"$gte": day, "$lt": day.Add(24 * time.Hour)}
}

// Create relies on the unique partial index over active slots, so of two
// concurrent inserts for one slot only the first succeeds.
func (s *Appointments) Create(ctx context.Context, a *models.Appointment) error {
	ensureID(&a.ID)
	a.Active = a.Status != models.AppointmentCancelled
	_, err := s.coll.InsertOne(ctx, a)
	return translate(err, "appointment", slotTaken)
}

func (s *Appointments) Get(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	return findOne[models.Appointment](ctx, s.coll, bson.M{"_id": id}, "appointment")
}

func (s *Appointments) List(ctx context.Context, f models.AppointmentFilter) ([]models.Appointment, error) {
	filter := bson.M{}
	if !f.DoctorID.IsZero() {
		filter["doctorId"] = f.DoctorID
	}
	if !f.PatientID.IsZero() {
		filter["patientId"] = f.PatientID
	}
	if f.Date != nil {
		filter["date"] = dayRange(*f.Date)
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	return findAll[models.Appointment](ctx, s.coll, filter, opts)
}

func (s *Appointments) Update(ctx context.Context, a *models.Appointment) error {
	a.Active = a.Status != models.AppointmentCancelled
	return replaceByID(ctx, s.coll, a.ID, a, "appointment", slotTaken)
}

func (s *Appointments) BookedTimes(ctx context.Context, doctorID primitive.ObjectID, day time.Time) ([]string, error) {
	filter := bson.M{
		"doctorId": doctorID,
		"date":     dayRange(day),
		"status":   bson.M{"$ne": models.AppointmentCancelled},
	}
	opts := options.Find().SetProjection(bson.M{"time": 1})
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		Time string `bson:"time"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	times := make([]string, 0, len(rows))
	for _, r := range rows {
		times = append(times, r.Time)
	}
	return times, nil
}

func (s *Appointments) SlotTaken(ctx context.Context, doctorID primitive.ObjectID, day time.Time, at string, exclude primitive.ObjectID) (bool, error) {
	filter := bson.M{
		"doctorId": doctorID,
		"date":     dayRange(day),
		"time":     at,
		"status":   bson.M{"$ne": models.AppointmentCancelled},
	}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	n, err := s.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
