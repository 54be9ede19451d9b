package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Medication struct {
	Name         string `json:"name" bson:"name" binding:"required"`
	Dosage       string `json:"dosage" bson:"dosage" binding:"required"`
	Frequency    string `json:"frequency" bson:"frequency" binding:"required"`
	DurationDays int    `json:"durationDays" bson:"durationDays" binding:"gte=0"`
	Instructions string `json:"instructions,omitempty" bson:"instructions,omitempty"`
}

type Prescription struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	AppointmentID primitive.ObjectID `json:"appointmentId" bson:"appointmentId"`
	PatientID     primitive.ObjectID `json:"patientId" bson:"patientId"`
	DoctorID      primitive.ObjectID `json:"doctorId" bson:"doctorId"`
	Diagnosis     string             `json:"diagnosis" bson:"diagnosis"`
	Medications   []Medication       `json:"medications" bson:"medications"`
	Notes         string             `json:"notes,omitempty" bson:"notes,omitempty"`
	Audit         `bson:",inline"`
}

type PrescriptionRequest struct {
	AppointmentID string       `json:"appointmentId" binding:"required"`
	Diagnosis     string       `json:"diagnosis" binding:"required"`
	Medications   []Medication `json:"medications" binding:"required,min=1,dive"`
	Notes         string       `json:"notes"`
}

type PrescriptionUpdate struct {
	Diagnosis   *string      `json:"diagnosis"`
	Medications []Medication `json:"medications" binding:"omitempty,dive"`
	Notes       *string      `json:"notes"`
}
