package services

import (
	"context"
	"strings"

	"MediTrack/apperror"
	"MediTrack/models"

	"github.com/rs/zerolog/log"
)

type PatientService struct {
	patients PatientStore
	beds     BedStore
	now      Clock
}

func NewPatientService(patients PatientStore, beds BedStore) *PatientService {
	return &PatientService{patients: patients, beds: beds, now: systemClock}
}

func applyPatient(p *models.Patient, req models.PatientRequest) error {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Phone) == "" {
		return apperror.Validation("name and phone are required")
	}
	if req.Age < 0 || req.Age > 150 {
		return apperror.Validation("age must be between 0 and 150")
	}
	p.Name = strings.TrimSpace(req.Name)
	p.Age = req.Age
	p.Gender = req.Gender
	p.Phone = strings.TrimSpace(req.Phone)
	p.Email = strings.ToLower(strings.TrimSpace(req.Email))
	p.Address = req.Address
	p.BloodGroup = req.BloodGroup
	p.Condition = req.Condition
	return nil
}

func (s *PatientService) Create(ctx context.Context, actor Actor, req models.PatientRequest) (*models.Patient, error) {
	p := &models.Patient{}
	if err := applyPatient(p, req); err != nil {
		return nil, err
	}
	p.Stamp(actor.ID, s.now())
	if err := s.patients.Create(ctx, p); err != nil {
		log.Error().Err(err).Msg("Error from creating patient")
		return nil, err
	}
	return p, nil
}

func (s *PatientService) Get(ctx context.Context, id string) (*models.Patient, error) {
	return findPatient(ctx, s.patients, id)
}

func (s *PatientService) List(ctx context.Context, search string) ([]models.Patient, error) {
	patients, err := s.patients.List(ctx, models.PatientFilter{Search: strings.TrimSpace(search)})
	if err != nil {
		log.Error().Err(err).Msg("Error from listing patients")
		return nil, err
	}
	return patients, nil
}

func (s *PatientService) Update(ctx context.Context, actor Actor, id string, req models.PatientRequest) (*models.Patient, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyPatient(p, req); err != nil {
		return nil, err
	}
	p.Stamp(actor.ID, s.now())
	if err := s.patients.Update(ctx, p); err != nil {
		log.Error().Err(err).Msg("Error from updating patient")
		return nil, err
	}
	return p, nil
}

// Delete refuses while the patient still occupies a bed.
func (s *PatientService) Delete(ctx context.Context, id string) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	bed, err := s.beds.FindByPatient(ctx, p.ID)
	if err != nil {
		log.Error().Err(err).Msg("Error from FindByPatient")
		return err
	}
	if bed != nil {
		return apperror.Precondition("patient is admitted to bed %s, discharge first", bed.Number)
	}
	return s.patients.Delete(ctx, p.ID)
}
