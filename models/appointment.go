package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	PatientID primitive.ObjectID `json:"patientId" bson:"patientId"`
	DoctorID  primitive.ObjectID `json:"doctorId" bson:"doctorId"`
	Date      time.Time          `json:"date" bson:"date"`
	Time      string             `json:"time" bson:"time"`
	Reason    string             `json:"reason,omitempty" bson:"reason,omitempty"`
	Notes     string             `json:"notes,omitempty" bson:"notes,omitempty"`
	Status    AppointmentStatus  `json:"status" bson:"status"`
	// Active mirrors Status != cancelled and backs the unique slot index.
	Active bool `json:"-" bson:"active"`
	Audit  `bson:",inline"`
}

func (a *Appointment) SetStatus(s AppointmentStatus) {
	a.Status = s
	a.Active = s != AppointmentCancelled
}

type BookingRequest struct {
	PatientID string `json:"patientId" binding:"required"`
	DoctorID  string `json:"doctorId" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required,hhmm"`
	Reason    string `json:"reason"`
	Notes     string `json:"notes"`
}

type AppointmentUpdate struct {
	Date   *string            `json:"date"`
	Time   *string            `json:"time" binding:"omitempty,hhmm"`
	Status *AppointmentStatus `json:"status" binding:"omitempty,oneof=scheduled completed cancelled"`
	Reason *string            `json:"reason"`
	Notes  *string            `json:"notes"`
}

type AppointmentFilter struct {
	DoctorID  primitive.ObjectID
	PatientID primitive.ObjectID
	Date      *time.Time
	Status    AppointmentStatus
}

type AvailableSlots struct {
	DoctorID primitive.ObjectID `json:"doctorId"`
	Date     string             `json:"date"`
	Slots    []string           `json:"slots"`
}

type AppointmentQuery struct {
	DoctorID  string `form:"doctorId"`
	PatientID string `form:"patientId"`
	Date      string `form:"date"`
	Status    string `form:"status" binding:"omitempty,oneof=scheduled completed cancelled"`
}
