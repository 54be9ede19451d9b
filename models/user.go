package models

import (
	"time"

	"MediTrack/role"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Audit struct {
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	CreatedBy primitive.ObjectID `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
	UpdatedBy primitive.ObjectID `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"`
}

// Stamp sets the audit fields for a write made by actor at now.
func (a *Audit) Stamp(actor primitive.ObjectID, now time.Time) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
		a.CreatedBy = actor
	}
	a.UpdatedAt = now
	a.UpdatedBy = actor
}

type User struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Email          string             `json:"email" bson:"email"`
	PasswordHash   string             `json:"-" bson:"passwordHash"`
	Role           role.Role          `json:"role" bson:"role"`
	Specialization string             `json:"specialization,omitempty" bson:"specialization,omitempty"`
	Phone          string             `json:"phone,omitempty" bson:"phone,omitempty"`
	IsActive       bool               `json:"isActive" bson:"isActive"`
	IsBlocked      bool               `json:"isBlocked" bson:"isBlocked"`
	LoginAttempts  int                `json:"loginAttempts" bson:"loginAttempts"`
	Audit          `bson:",inline"`
}

type CreateUserRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required"`
	Role           string `json:"role" binding:"required,role"`
	Specialization string `json:"specialization"`
	Phone          string `json:"phone"`
}

type UpdateUserRequest struct {
	Name           *string `json:"name"`
	Phone          *string `json:"phone"`
	Specialization *string `json:"specialization"`
	Role           *string `json:"role" binding:"omitempty,role"`
	IsActive       *bool   `json:"isActive"`
	IsBlocked      *bool   `json:"isBlocked"`
}

type UserFilter struct {
	Role       role.Role
	ActiveOnly bool
}
