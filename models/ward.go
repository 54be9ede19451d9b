package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Ward struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name             string             `json:"name" bson:"name"`
	Type             string             `json:"type" bson:"type"`
	Floor            int                `json:"floor" bson:"floor"`
	Capacity         int                `json:"capacity" bson:"capacity"`
	CurrentOccupancy int                `json:"currentOccupancy" bson:"currentOccupancy"`
	Audit            `bson:",inline"`
}

type WardRequest struct {
	Name     string `json:"name" binding:"required"`
	Type     string `json:"type" binding:"required,oneof=general icu private semi-private emergency maternity pediatric"`
	Floor    int    `json:"floor"`
	Capacity int    `json:"capacity" binding:"required,gt=0"`
}

type BedStatus string

const (
	BedAvailable   BedStatus = "available"
	BedOccupied    BedStatus = "occupied"
	BedMaintenance BedStatus = "maintenance"
)

type Bed struct {
	ID         primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	WardID     primitive.ObjectID  `json:"wardId" bson:"wardId"`
	Number     string              `json:"number" bson:"number"`
	Status     BedStatus           `json:"status" bson:"status"`
	PatientID  *primitive.ObjectID `json:"patientId,omitempty" bson:"patientId,omitempty"`
	AdmittedAt *time.Time          `json:"admittedAt,omitempty" bson:"admittedAt,omitempty"`
	DailyRate  float64             `json:"dailyRate" bson:"dailyRate"`
	Audit      `bson:",inline"`
}

type BedRequest struct {
	WardID    string  `json:"wardId" binding:"required"`
	Number    string  `json:"number" binding:"required"`
	DailyRate float64 `json:"dailyRate" binding:"gte=0"`
}

type BedUpdate struct {
	Number    *string  `json:"number"`
	DailyRate *float64 `json:"dailyRate" binding:"omitempty,gte=0"`
}

type AssignBedRequest struct {
	PatientID string `json:"patientId" binding:"required"`
}

type MaintenanceRequest struct {
	On bool `json:"on"`
}

type BedFilter struct {
	WardID primitive.ObjectID
	Status BedStatus
}

type WardOccupancy struct {
	WardID      primitive.ObjectID `json:"wardId"`
	Name        string             `json:"name"`
	Type        string             `json:"type"`
	Capacity    int                `json:"capacity"`
	Occupied    int                `json:"occupied"`
	Available   int                `json:"available"`
	Maintenance int                `json:"maintenance"`
	Rate        float64            `json:"occupancyRate"`
}

type OccupancySummary struct {
	Wards         []WardOccupancy `json:"wards"`
	TotalBeds     int             `json:"totalBeds"`
	TotalOccupied int             `json:"totalOccupied"`
	Rate          float64         `json:"occupancyRate"`
}

type BedQuery struct {
	WardID string `form:"wardId"`
	Status string `form:"status" binding:"omitempty,oneof=available occupied maintenance"`
}
