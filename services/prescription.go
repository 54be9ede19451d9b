package services

import (
	"context"
	"strings"

	"MediTrack/apperror"
	"MediTrack/models"

	"github.com/rs/zerolog/log"
)

type PrescriptionService struct {
	prescriptions PrescriptionStore
	appointments  AppointmentStore
	now           Clock
}

func NewPrescriptionService(prescriptions PrescriptionStore, appointments AppointmentStore) *PrescriptionService {
	return &PrescriptionService{prescriptions: prescriptions, appointments: appointments, now: systemClock}
}

func validateMedications(meds []models.Medication) error {
	if len(meds) == 0 {
		return apperror.Validation("at least one medication is required")
	}
	for i, m := range meds {
		if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.Dosage) == "" || strings.TrimSpace(m.Frequency) == "" {
			return apperror.Validation("medication %d: name, dosage and frequency are required", i+1)
		}
		if m.DurationDays < 0 {
			return apperror.Validation("medication %d: durationDays cannot be negative", i+1)
		}
	}
	return nil
}

// ownerCheck lets admins through and limits doctors to their own patients' records.
func ownerCheck(actor Actor, doctorID string) error {
	if actor.IsDoctor() && actor.ID.Hex() != doctorID {
		return apperror.Forbidden("only the treating doctor can change this prescription")
	}
	return nil
}

/*
* Load the appointment; only its doctor or an admin may prescribe
* Cancelled appointments cannot carry a prescription
* One prescription per appointment, enforced by the store
 */
func (s *PrescriptionService) Create(ctx context.Context, actor Actor, req models.PrescriptionRequest) (*models.Prescription, error) {
	apptID, err := ParseID(req.AppointmentID, "appointment")
	if err != nil {
		return nil, err
	}
	appt, err := s.appointments.Get(ctx, apptID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && appt.DoctorID != actor.ID {
		return nil, apperror.Forbidden("only the appointment's doctor can write its prescription")
	}
	if appt.Status == models.AppointmentCancelled {
		return nil, apperror.Precondition("cannot prescribe for a cancelled appointment")
	}
	if strings.TrimSpace(req.Diagnosis) == "" {
		return nil, apperror.Validation("diagnosis is required")
	}
	if err := validateMedications(req.Medications); err != nil {
		return nil, err
	}
	p := &models.Prescription{
		AppointmentID: appt.ID,
		PatientID:     appt.PatientID,
		DoctorID:      appt.DoctorID,
		Diagnosis:     strings.TrimSpace(req.Diagnosis),
		Medications:   req.Medications,
		Notes:         req.Notes,
	}
	p.Stamp(actor.ID, s.now())
	if err := s.prescriptions.Create(ctx, p); err != nil {
		if !apperror.Is(err, apperror.KindConflict) {
			log.Error().Err(err).Msg("Error from creating prescription")
		}
		return nil, err
	}
	return p, nil
}

func (s *PrescriptionService) Get(ctx context.Context, id string) (*models.Prescription, error) {
	pid, err := ParseID(id, "prescription")
	if err != nil {
		return nil, err
	}
	return s.prescriptions.Get(ctx, pid)
}

func (s *PrescriptionService) GetByAppointment(ctx context.Context, appointmentID string) (*models.Prescription, error) {
	id, err := ParseID(appointmentID, "appointment")
	if err != nil {
		return nil, err
	}
	return s.prescriptions.GetByAppointment(ctx, id)
}

func (s *PrescriptionService) ListByPatient(ctx context.Context, patientID string) ([]models.Prescription, error) {
	id, err := ParseID(patientID, "patient")
	if err != nil {
		return nil, err
	}
	out, err := s.prescriptions.ListByPatient(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("Error from listing prescriptions")
		return nil, err
	}
	return out, nil
}

func (s *PrescriptionService) Update(ctx context.Context, actor Actor, id string, in models.PrescriptionUpdate) (*models.Prescription, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ownerCheck(actor, p.DoctorID.Hex()); err != nil {
		return nil, err
	}
	if in.Diagnosis != nil {
		if strings.TrimSpace(*in.Diagnosis) == "" {
			return nil, apperror.Validation("diagnosis cannot be empty")
		}
		p.Diagnosis = strings.TrimSpace(*in.Diagnosis)
	}
	if in.Medications != nil {
		if err := validateMedications(in.Medications); err != nil {
			return nil, err
		}
		p.Medications = in.Medications
	}
	if in.Notes != nil {
		p.Notes = *in.Notes
	}
	p.Stamp(actor.ID, s.now())
	if err := s.prescriptions.Update(ctx, p); err != nil {
		log.Error().Err(err).Msg("Error from updating prescription")
		return nil, err
	}
	return p, nil
}

func (s *PrescriptionService) Delete(ctx context.Context, id string) error {
	pid, err := ParseID(id, "prescription")
	if err != nil {
		return err
	}
	return s.prescriptions.Delete(ctx, pid)
}
