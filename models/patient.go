package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Patient struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name"`
	Age        int                `json:"age" bson:"age"`
	Gender     string             `json:"gender" bson:"gender"`
	Phone      string             `json:"phone" bson:"phone"`
	Email      string             `json:"email,omitempty" bson:"email,omitempty"`
	Address    string             `json:"address,omitempty" bson:"address,omitempty"`
	BloodGroup string             `json:"bloodGroup,omitempty" bson:"bloodGroup,omitempty"`
	Condition  string             `json:"condition,omitempty" bson:"condition,omitempty"`
	Audit      `bson:",inline"`
}

type PatientRequest struct {
	Name       string `json:"name" binding:"required"`
	Age        int    `json:"age" binding:"gte=0,lte=150"`
	Gender     string `json:"gender" binding:"required,oneof=male female other"`
	Phone      string `json:"phone" binding:"required"`
	Email      string `json:"email" binding:"omitempty,email"`
	Address    string `json:"address"`
	BloodGroup string `json:"bloodGroup"`
	Condition  string `json:"condition"`
}

type PatientFilter struct {
	Search string
}

type PatientSummary struct {
	Patient       *Patient       `json:"patient"`
	Bed           *Bed           `json:"bed,omitempty"`
	Appointments  []Appointment  `json:"appointments"`
	Prescriptions []Prescription `json:"prescriptions"`
	Bills         []Bill         `json:"bills"`
	Outstanding   float64        `json:"outstanding"`
}
