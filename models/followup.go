package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FollowUp struct {
	ID            primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	PatientID     primitive.ObjectID  `json:"patientId" bson:"patientId"`
	DoctorID      primitive.ObjectID  `json:"doctorId" bson:"doctorId"`
	AppointmentID *primitive.ObjectID `json:"appointmentId,omitempty" bson:"appointmentId,omitempty"`
	Date          time.Time           `json:"date" bson:"date"`
	Reason        string              `json:"reason" bson:"reason"`
	Notified      bool                `json:"notified" bson:"notified"`
	NotifiedAt    *time.Time          `json:"notifiedAt,omitempty" bson:"notifiedAt,omitempty"`
	Audit         `bson:",inline"`
}

type FollowUpRequest struct {
	PatientID     string `json:"patientId" binding:"required"`
	DoctorID      string `json:"doctorId" binding:"required"`
	AppointmentID string `json:"appointmentId"`
	Date          string `json:"date" binding:"required"`
	Reason        string `json:"reason" binding:"required"`
}

type FollowUpUpdate struct {
	Date   *string `json:"date"`
	Reason *string `json:"reason"`
}

type FollowUpFilter struct {
	DoctorID    primitive.ObjectID
	PatientID   primitive.ObjectID
	PendingOnly bool
	// DueBefore limits pending follow-ups to those dated before it.
	DueBefore *time.Time
}

type FollowUpQuery struct {
	DoctorID  string `form:"doctorId"`
	PatientID string `form:"patientId"`
	Pending   bool   `form:"pending"`
}
