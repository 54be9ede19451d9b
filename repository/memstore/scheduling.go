package memstore

import (
	"context"
	"sort"
	"time"

	"MediTrack/apperror"
	"MediTrack/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Appointments struct{ table[models.Appointment] }

func NewAppointments() *Appointments { return &Appointments{newTable[models.Appointment]()} }

// held mirrors the unique partial index on active doctor/date/time.
func (s *Appointments) held(a *models.Appointment) bool {
	if !a.Active {
		return false
	}
	for id, other := range s.rows {
		if id != a.ID && other.Active && other.DoctorID == a.DoctorID &&
			other.Date.Equal(a.Date) && other.Time == a.Time {
			return true
		}
	}
	return false
}

func (s *Appointments) Create(_ context.Context, a *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ensureID(&a.ID)
	a.Active = a.Status != models.AppointmentCancelled
	if s.held(a) {
		return apperror.Conflict("slot already booked for this doctor")
	}
	s.rows[a.ID] = *a
	return nil
}

func (s *Appointments) Get(_ context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.rows[id]
	if !ok {
		return nil, apperror.NotFound("appointment")
	}
	return &a, nil
}

func (s *Appointments) List(_ context.Context, f models.AppointmentFilter) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Appointment{}
	for _, a := range s.rows {
		if !f.DoctorID.IsZero() && a.DoctorID != f.DoctorID {
			continue
		}
		if !f.PatientID.IsZero() && a.PatientID != f.PatientID {
			continue
		}
		if f.Date != nil && !sameDay(a.Date, *f.Date) {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (s *Appointments) Update(_ context.Context, a *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[a.ID]; !ok {
		return apperror.NotFound("appointment")
	}
	a.Active = a.Status != models.AppointmentCancelled
	if s.held(a) {
		return apperror.Conflict("slot already booked for this doctor")
	}
	s.rows[a.ID] = *a
	return nil
}

func (s *Appointments) BookedTimes(_ context.Context, doctorID primitive.ObjectID, day time.Time) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []string{}
	for _, a := range s.rows {
		if a.DoctorID == doctorID && a.Status != models.AppointmentCancelled && sameDay(a.Date, day) {
			out = append(out, a.Time)
		}
	}
	return out, nil
}

func (s *Appointments) SlotTaken(_ context.Context, doctorID primitive.ObjectID, day time.Time, at string, exclude primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, a := range s.rows {
		if id == exclude {
			continue
		}
		if a.DoctorID == doctorID && a.Time == at && a.Status != models.AppointmentCancelled && sameDay(a.Date, day) {
			return true, nil
		}
	}
	return false, nil
}

type Prescriptions struct{ table[models.Prescription] }

func NewPrescriptions() *Prescriptions { return &Prescriptions{newTable[models.Prescription]()} }

func (s *Prescriptions) Create(_ context.Context, p *models.Prescription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ensureID(&p.ID)
	for _, other := range s.rows {
		if other.AppointmentID == p.AppointmentID {
			return apperror.Conflict("a prescription already exists for this appointment")
		}
	}
	s.rows[p.ID] = *p
	return nil
}

func (s *Prescriptions) Get(_ context.Context, id primitive.ObjectID) (*models.Prescription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.rows[id]
	if !ok {
		return nil, apperror.NotFound("prescription")
	}
	return &p, nil
}

func (s *Prescriptions) GetByAppointment(_ context.Context, appointmentID primitive.ObjectID) (*models.Prescription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.rows {
		if p.AppointmentID == appointmentID {
			return &p, nil
		}
	}
	return nil, apperror.NotFound("prescription")
}

func (s *Prescriptions) ListByPatient(_ context.Context, patientID primitive.ObjectID) ([]models.Prescription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Prescription{}
	for _, p := range s.rows {
		if p.PatientID == patientID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Prescriptions) Update(_ context.Context, p *models.Prescription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[p.ID]; !ok {
		return apperror.NotFound("prescription")
	}
	s.rows[p.ID] = *p
	return nil
}

func (s *Prescriptions) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return apperror.NotFound("prescription")
	}
	delete(s.rows, id)
	return nil
}

type FollowUps struct{ table[models.FollowUp] }

func NewFollowUps() *FollowUps { return &FollowUps{newTable[models.FollowUp]()} }

func (s *FollowUps) Create(_ context.Context, f *models.FollowUp) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ensureID(&f.ID)
	s.rows[f.ID] = *f
	return nil
}

func (s *FollowUps) Get(_ context.Context, id primitive.ObjectID) (*models.FollowUp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.rows[id]
	if !ok {
		return nil, apperror.NotFound("follow-up")
	}
	return &f, nil
}

func (s *FollowUps) List(_ context.Context, f models.FollowUpFilter) ([]models.FollowUp, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.FollowUp{}
	for _, fu := range s.rows {
		if !f.DoctorID.IsZero() && fu.DoctorID != f.DoctorID {
			continue
		}
		if !f.PatientID.IsZero() && fu.PatientID != f.PatientID {
			continue
		}
		if f.PendingOnly && fu.Notified {
			continue
		}
		if f.DueBefore != nil && !fu.Date.Before(*f.DueBefore) {
			continue
		}
		out = append(out, fu)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *FollowUps) Update(_ context.Context, f *models.FollowUp) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[f.ID]; !ok {
		return apperror.NotFound("follow-up")
	}
	s.rows[f.ID] = *f
	return nil
}

func (s *FollowUps) MarkNotified(_ context.Context, id primitive.ObjectID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.rows[id]
	if !ok {
		return apperror.NotFound("follow-up")
	}
	f.Notified = true
	f.NotifiedAt = &at
	f.UpdatedAt = at
	s.rows[id] = f
	return nil
}

func (s *FollowUps) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return apperror.NotFound("follow-up")
	}
	delete(s.rows, id)
	return nil
}
