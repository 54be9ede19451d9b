package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"MediTrack/apperror"
	"MediTrack/models"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

//go:generate mockgen -source=followup.go -destination=mock_mailer_test.go -package=services

// Mailer delivers a plain-text message to one recipient.
type Mailer interface {
	Send(to, subject, body string) error
}

type FollowUpService struct {
	followUps    FollowUpStore
	patients     PatientStore
	users        UserStore
	appointments AppointmentStore
	mailer       Mailer
	lead         time.Duration
	hospital     string
	now          Clock
}

func NewFollowUpService(followUps FollowUpStore, patients PatientStore, users UserStore, appointments AppointmentStore, mailer Mailer, lead time.Duration, hospital string) *FollowUpService {
	return &FollowUpService{
		followUps:    followUps,
		patients:     patients,
		users:        users,
		appointments: appointments,
		mailer:       mailer,
		lead:         lead,
		hospital:     hospital,
		now:          systemClock,
	}
}

func (s *FollowUpService) Create(ctx context.Context, actor Actor, req models.FollowUpRequest) (*models.FollowUp, error) {
	patient, err := findPatient(ctx, s.patients, req.PatientID)
	if err != nil {
		return nil, err
	}
	doctor, err := findDoctor(ctx, s.users, req.DoctorID)
	if err != nil {
		return nil, err
	}
	if actor.IsDoctor() && doctor.ID != actor.ID {
		return nil, apperror.Forbidden("doctors can only schedule their own follow-ups")
	}
	date, err := ParseDate(req.Date, "date")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, apperror.Validation("reason is required")
	}
	f := &models.FollowUp{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Date:      date,
		Reason:    strings.TrimSpace(req.Reason),
	}
	if f.AppointmentID, err = optionalID(req.AppointmentID, "appointment"); err != nil {
		return nil, err
	}
	if f.AppointmentID != nil {
		appt, err := s.appointments.Get(ctx, *f.AppointmentID)
		if err != nil {
			return nil, err
		}
		if appt.PatientID != patient.ID {
			return nil, apperror.Validation("appointment does not belong to this patient")
		}
	}
	f.Stamp(actor.ID, s.now())
	if err := s.followUps.Create(ctx, f); err != nil {
		log.Error().Err(err).Msg("Error from creating follow-up")
		return nil, err
	}
	return f, nil
}

func (s *FollowUpService) Get(ctx context.Context, id string) (*models.FollowUp, error) {
	fid, err := ParseID(id, "follow-up")
	if err != nil {
		return nil, err
	}
	return s.followUps.Get(ctx, fid)
}

func (s *FollowUpService) List(ctx context.Context, actor Actor, q models.FollowUpQuery) ([]models.FollowUp, error) {
	var f models.FollowUpFilter
	var err error
	if q.DoctorID != "" {
		if f.DoctorID, err = ParseID(q.DoctorID, "doctor"); err != nil {
			return nil, err
		}
	}
	if q.PatientID != "" {
		if f.PatientID, err = ParseID(q.PatientID, "patient"); err != nil {
			return nil, err
		}
	}
	f.PendingOnly = q.Pending
	if actor.IsDoctor() {
		f.DoctorID = actor.ID
	}
	out, err := s.followUps.List(ctx, f)
	if err != nil {
		log.Error().Err(err).Msg("Error from listing follow-ups")
		return nil, err
	}
	return out, nil
}

// Update resets the notified flag when the date or reason changes so the
// patient is reminded again.
func (s *FollowUpService) Update(ctx context.Context, actor Actor, id string, in models.FollowUpUpdate) (*models.FollowUp, error) {
	f, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.IsDoctor() && f.DoctorID != actor.ID {
		return nil, apperror.Forbidden("follow-up belongs to another doctor")
	}
	changed := false
	if in.Date != nil {
		date, err := ParseDate(*in.Date, "date")
		if err != nil {
			return nil, err
		}
		changed = changed || !date.Equal(f.Date)
		f.Date = date
	}
	if in.Reason != nil {
		if strings.TrimSpace(*in.Reason) == "" {
			return nil, apperror.Validation("reason cannot be empty")
		}
		changed = changed || strings.TrimSpace(*in.Reason) != f.Reason
		f.Reason = strings.TrimSpace(*in.Reason)
	}
	if changed {
		f.Notified = false
		f.NotifiedAt = nil
	}
	f.Stamp(actor.ID, s.now())
	if err := s.followUps.Update(ctx, f); err != nil {
		log.Error().Err(err).Msg("Error from updating follow-up")
		return nil, err
	}
	return f, nil
}

func (s *FollowUpService) MarkNotified(ctx context.Context, id string) (*models.FollowUp, error) {
	f, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.followUps.MarkNotified(ctx, f.ID, s.now()); err != nil {
		return nil, err
	}
	return s.followUps.Get(ctx, f.ID)
}

func (s *FollowUpService) Delete(ctx context.Context, id string) error {
	fid, err := ParseID(id, "follow-up")
	if err != nil {
		return err
	}
	return s.followUps.Delete(ctx, fid)
}

func reminderBody(hospital string, patient *models.Patient, doctor *models.User, f models.FollowUp) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", patient.Name)
	fmt.Fprintf(&b, "This is a reminder of your follow-up visit on %s", f.Date.Format("Monday, 02 Jan 2006"))
	if doctor != nil {
		fmt.Fprintf(&b, " with Dr. %s", doctor.Name)
	}
	fmt.Fprintf(&b, ".\nReason: %s\n\n%s\n", f.Reason, hospital)
	return b.String()
}

/*
* Find pending follow-ups dated before now+lead
* Mail each patient that has an email address and flag it notified
* A failed delivery is logged and retried on the next run
 */
func (s *FollowUpService) SendDueReminders(ctx context.Context) (int, error) {
	now := s.now()
	cutoff := now.Add(s.lead)
	due, err := s.followUps.List(ctx, models.FollowUpFilter{PendingOnly: true, DueBefore: &cutoff})
	if err != nil {
		log.Error().Err(err).Msg("Error from listing due follow-ups")
		return 0, err
	}
	doctors := map[primitive.ObjectID]*models.User{}
	sent := 0
	for _, f := range due {
		if f.Date.Before(truncateDay(now)) {
			continue
		}
		patient, err := s.patients.Get(ctx, f.PatientID)
		if err != nil {
			log.Warn().Err(err).Str("followUp", f.ID.Hex()).Msg("Error from fetching follow-up patient")
			continue
		}
		if patient.Email == "" {
			continue
		}
		doctor, ok := doctors[f.DoctorID]
		if !ok {
			doctor, _ = s.users.Get(ctx, f.DoctorID)
			doctors[f.DoctorID] = doctor
		}
		subject := fmt.Sprintf("%s: follow-up on %s", s.hospital, f.Date.Format(DateLayout))
		if err := s.mailer.Send(patient.Email, subject, reminderBody(s.hospital, patient, doctor, f)); err != nil {
			log.Warn().Err(err).Str("followUp", f.ID.Hex()).Msg("Error from sending follow-up reminder")
			continue
		}
		if err := s.followUps.MarkNotified(ctx, f.ID, now); err != nil {
			log.Error().Err(err).Str("followUp", f.ID.Hex()).Msg("Error from MarkNotified")
			continue
		}
		sent++
	}
	log.Info().Int("due", len(due)).Int("sent", sent).Msg("follow-up reminders processed")
	return sent, nil
}
