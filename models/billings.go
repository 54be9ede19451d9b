package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BillStatus string

const (
	BillDraft     BillStatus = "draft"
	BillGenerated BillStatus = "generated"
	BillPartial   BillStatus = "partial"
	BillPaid      BillStatus = "paid"
	BillOverdue   BillStatus = "overdue"
	BillCancelled BillStatus = "cancelled"
	BillRefunded  BillStatus = "refunded"
)

// Absorbing statuses are never recomputed.
func (s BillStatus) Absorbing() bool {
	return s == BillCancelled || s == BillRefunded
}

type BillItem struct {
	Description string  `json:"description" bson:"description" binding:"required"`
	Category    string  `json:"category" bson:"category" binding:"omitempty,oneof=consultation room medication procedure lab other"`
	Rate        float64 `json:"rate" bson:"rate" binding:"gte=0"`
	Quantity    float64 `json:"quantity" bson:"quantity" binding:"gt=0"`
	TaxRate     float64 `json:"taxRate" bson:"taxRate" binding:"gte=0,lte=100"`
	Amount      float64 `json:"amount" bson:"amount"`
}

type Payment struct {
	ID         string             `json:"id" bson:"id"`
	Amount     float64            `json:"amount" bson:"amount"`
	Method     string             `json:"method" bson:"method"`
	Reference  string             `json:"reference,omitempty" bson:"reference,omitempty"`
	ReceivedBy primitive.ObjectID `json:"receivedBy,omitempty" bson:"receivedBy,omitempty"`
	PaidAt     time.Time          `json:"paidAt" bson:"paidAt"`
}

type Bill struct {
	ID            primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Number        string              `json:"number" bson:"number"`
	PatientID     primitive.ObjectID  `json:"patientId" bson:"patientId"`
	BedID         *primitive.ObjectID `json:"bedId,omitempty" bson:"bedId,omitempty"`
	AppointmentID *primitive.ObjectID `json:"appointmentId,omitempty" bson:"appointmentId,omitempty"`
	Items         []BillItem          `json:"items" bson:"items"`
	Subtotal      float64             `json:"subtotal" bson:"subtotal"`
	Tax           float64             `json:"tax" bson:"tax"`
	Discount      float64             `json:"discount" bson:"discount"`
	TotalAmount   float64             `json:"totalAmount" bson:"totalAmount"`
	PaidAmount    float64             `json:"paidAmount" bson:"paidAmount"`
	Balance       float64             `json:"balance" bson:"balance"`
	Status        BillStatus          `json:"status" bson:"status"`
	DueDate       *time.Time          `json:"dueDate,omitempty" bson:"dueDate,omitempty"`
	Payments      []Payment           `json:"payments" bson:"payments"`
	Notes         string              `json:"notes,omitempty" bson:"notes,omitempty"`
	Version       int64               `json:"version" bson:"version"`
	Audit         `bson:",inline"`
}

type BillRequest struct {
	PatientID     string     `json:"patientId" binding:"required"`
	BedID         string     `json:"bedId"`
	AppointmentID string     `json:"appointmentId"`
	Items         []BillItem `json:"items" binding:"dive"`
	Discount      float64    `json:"discount" binding:"gte=0"`
	DueDate       string     `json:"dueDate"`
	Notes         string     `json:"notes"`
}

type BillUpdate struct {
	Items    []BillItem `json:"items" binding:"omitempty,dive"`
	Discount *float64   `json:"discount" binding:"omitempty,gte=0"`
	DueDate  *string    `json:"dueDate"`
	Notes    *string    `json:"notes"`
}

type PaymentRequest struct {
	Amount    float64 `json:"amount"`
	Method    string  `json:"method" binding:"required,oneof=cash card upi insurance bank_transfer"`
	Reference string  `json:"reference"`
}

type BillFilter struct {
	PatientID primitive.ObjectID
	Status    BillStatus
	From      *time.Time
	To        *time.Time
}

type StatusTotals struct {
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

type BillingSummary struct {
	From      *time.Time                  `json:"from,omitempty"`
	To        *time.Time                  `json:"to,omitempty"`
	Bills     int                         `json:"bills"`
	Billed    float64                     `json:"billed"`
	Collected float64                     `json:"collected"`
	Pending   float64                     `json:"outstanding"`
	ByStatus  map[BillStatus]StatusTotals `json:"byStatus"`
}

type BillQuery struct {
	PatientID string `form:"patientId"`
	Status    string `form:"status" binding:"omitempty,oneof=draft generated partial paid overdue cancelled refunded"`
	From      string `form:"from"`
	To        string `form:"to"`
}
