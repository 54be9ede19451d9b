package services

import (
	"context"
	"time"

	"MediTrack/models"
	"MediTrack/role"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store contracts. Implementations return apperror kinds: NotFound for a
// missing document, Conflict for a unique-key violation, Precondition when a
// conditional update finds the document in the wrong state.

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, f models.UserFilter) ([]models.User, error)
	Update(ctx context.Context, u *models.User) error
	CountByRole(ctx context.Context, r role.Role) (int64, error)
}

type PatientStore interface {
	Create(ctx context.Context, p *models.Patient) error
	Get(ctx context.Context, id primitive.ObjectID) (*models.Patient, error)
	List(ctx context.Context, f models.PatientFilter) ([]models.Patient, error)
	Update(ctx context.Context, p *models.Patient) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type AppointmentStore interface {
	// Create and Update report Conflict when another active appointment
	// holds the same doctor/date/time.
	Create(ctx context.Context, a *models.Appointment) error
	Get(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error)
	List(ctx context.Context, f models.AppointmentFilter) ([]models.Appointment, error)
	Update(ctx context.Context, a *models.Appointment) error
	// BookedTimes returns the times held by active appointments of the doctor within [day, day+24h).
	BookedTimes(ctx context.Context, doctorID primitive.ObjectID, day time.Time) ([]string, error)
	SlotTaken(ctx context.Context, doctorID primitive.ObjectID, day time.Time, at string, exclude primitive.ObjectID) (bool, error)
}

type PrescriptionStore interface {
	Create(ctx context.Context, p *models.Prescription) error
	Get(ctx context.Context, id primitive.ObjectID) (*models.Prescription, error)
	GetByAppointment(ctx context.Context, appointmentID primitive.ObjectID) (*models.Prescription, error)
	ListByPatient(ctx context.Context, patientID primitive.ObjectID) ([]models.Prescription, error)
	Update(ctx context.Context, p *models.Prescription) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type FollowUpStore interface {
	Create(ctx context.Context, f *models.FollowUp) error
	Get(ctx context.Context, id primitive.ObjectID) (*models.FollowUp, error)
	List(ctx context.Context, f models.FollowUpFilter) ([]models.FollowUp, error)
	Update(ctx context.Context, f *models.FollowUp) error
	MarkNotified(ctx context.Context, id primitive.ObjectID, at time.Time) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type WardStore interface {
	Create(ctx context.Context, w *models.Ward) error
	Get(ctx context.Context, id primitive.ObjectID) (*models.Ward, error)
	List(ctx context.Context) ([]models.Ward, error)
	// UpdateDetails rewrites name, type, floor and capacity. A capacity
	// below the current occupancy is a Precondition failure.
	UpdateDetails(ctx context.Context, w *models.Ward) error
	// AdjustOccupancy applies delta in one conditional update, keeping
	// 0 <= currentOccupancy <= capacity; a violated bound is a Precondition failure.
	AdjustOccupancy(ctx context.Context, id primitive.ObjectID, delta int) error
	SetOccupancy(ctx context.Context, id primitive.ObjectID, n int) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type BedStore interface {
	Create(ctx context.Context, b *models.Bed) error
	Get(ctx context.Context, id primitive.ObjectID) (*models.Bed, error)
	List(ctx context.Context, f models.BedFilter) ([]models.Bed, error)
	UpdateDetails(ctx context.Context, b *models.Bed) error
	// Occupy flips an available bed to occupied. Precondition when the bed
	// is not available, Conflict when the patient already holds a bed.
	Occupy(ctx context.Context, id, patientID primitive.ObjectID, at time.Time) error
	// Release flips an occupied bed back to available.
	Release(ctx context.Context, id primitive.ObjectID) error
	// SetStatus moves the bed from one status to another or fails with Precondition.
	SetStatus(ctx context.Context, id primitive.ObjectID, from, to models.BedStatus) error
	FindByPatient(ctx context.Context, patientID primitive.ObjectID) (*models.Bed, error)
	CountByWard(ctx context.Context, wardID primitive.ObjectID) (int64, error)
	OccupiedByWard(ctx context.Context) (map[primitive.ObjectID]int, error)
	// Delete removes a bed that is not occupied.
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type BillStore interface {
	Create(ctx context.Context, b *models.Bill) error
	Get(ctx context.Context, id primitive.ObjectID) (*models.Bill, error)
	List(ctx context.Context, f models.BillFilter) ([]models.Bill, error)
	// Save writes b if its version is unchanged since it was read and
	// bumps the version. A lost update is reported as Conflict.
	Save(ctx context.Context, b *models.Bill) error
	// OverdueCandidates lists unpaid bills whose due date is before now.
	OverdueCandidates(ctx context.Context, now time.Time) ([]models.Bill, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Clock lets tests pin the current time.
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }
