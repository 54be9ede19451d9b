package services

import (
	"strings"
	"time"

	"MediTrack/apperror"
	"MediTrack/role"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const DateLayout = "2006-01-02"

// Actor is the authenticated caller a service call is made on behalf of.
type Actor struct {
	ID   primitive.ObjectID
	Role role.Role
}

func (a Actor) IsAdmin() bool { return a.Role == role.Admin }

func (a Actor) IsDoctor() bool { return a.Role == role.Doctor }

// ParseID treats an empty id as a validation failure and a malformed one as
// a reference to nothing.
func ParseID(raw, entity string) (primitive.ObjectID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return primitive.NilObjectID, apperror.Validation("%s id is required", entity)
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, apperror.NotFound(entity)
	}
	return id, nil
}

func optionalID(raw, entity string) (*primitive.ObjectID, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	id, err := ParseID(raw, entity)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// ParseDate parses YYYY-MM-DD into UTC midnight.
func ParseDate(raw, field string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, apperror.Validation("%s is required", field)
	}
	d, err := time.ParseInLocation(DateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, apperror.Validation("%s must be in YYYY-MM-DD format", field)
	}
	return d, nil
}

func optionalDate(raw, field string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	d, err := ParseDate(raw, field)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
