package services

import (
	"context"
	"time"

	"MediTrack/apperror"
	"MediTrack/cache"
	"MediTrack/models"
	"MediTrack/role"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// appointmentTransitions lists the status moves an update may make.
var appointmentTransitions = map[models.AppointmentStatus][]models.AppointmentStatus{
	models.AppointmentScheduled: {models.AppointmentCompleted, models.AppointmentCancelled},
	models.AppointmentCancelled: {models.AppointmentScheduled},
}

func canTransition(from, to models.AppointmentStatus) bool {
	for _, s := range appointmentTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

type AppointmentService struct {
	appointments AppointmentStore
	users        UserStore
	patients     PatientStore
	cache        cache.Cache
	cacheTTL     time.Duration
	policy       SlotPolicy
	now          Clock
}

func NewAppointmentService(appointments AppointmentStore, users UserStore, patients PatientStore, c cache.Cache, cacheTTL time.Duration, policy SlotPolicy) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		users:        users,
		patients:     patients,
		cache:        c,
		cacheTTL:     cacheTTL,
		policy:       policy,
		now:          systemClock,
	}
}

/*
* Resolve the id to a user whose role is doctor
* A malformed id, a missing user, a non doctor or a deactivated doctor are all "doctor not found"
 */
func findDoctor(ctx context.Context, users UserStore, raw string) (*models.User, error) {
	id, err := ParseID(raw, "doctor")
	if err != nil {
		return nil, err
	}
	u, err := users.Get(ctx, id)
	if apperror.Is(err, apperror.KindNotFound) || (err == nil && (u.Role != role.Doctor || !u.IsActive)) {
		return nil, apperror.NotFound("doctor")
	}
	if err != nil {
		log.Error().Err(err).Msg("Error from fetching doctor")
		return nil, err
	}
	return u, nil
}

func findPatient(ctx context.Context, patients PatientStore, raw string) (*models.Patient, error) {
	id, err := ParseID(raw, "patient")
	if err != nil {
		return nil, err
	}
	p, err := patients.Get(ctx, id)
	if err != nil {
		if !apperror.Is(err, apperror.KindNotFound) {
			log.Error().Err(err).Msg("Error from fetching patient")
		}
		return nil, err
	}
	return p, nil
}

// slotsGenTTL outlives any cached slot list so a reset counter cannot revive one.
const slotsGenTTL = 7 * 24 * time.Hour

// slotDay identifies one doctor's day in the slots cache.
type slotDay struct{ doctor, date string }

func daySlots(doctorID primitive.ObjectID, day time.Time) slotDay {
	return slotDay{doctor: doctorID.Hex(), date: day.Format(DateLayout)}
}

/*
* Bump the generation of each doctor/day after the store write
* Lists computed against the old generation are never read again
 */
func (s *AppointmentService) invalidate(ctx context.Context, days ...slotDay) {
	if s.cache == nil {
		return
	}
	for _, d := range days {
		key := cache.SlotsGenKey(d.doctor, d.date)
		if _, err := s.cache.Incr(ctx, key, slotsGenTTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Error from cache invalidation")
		}
	}
}

/*
* Check the doctor exists
* Serve from cache when possible, else subtract booked times from the catalog
 */
func (s *AppointmentService) AvailableSlots(ctx context.Context, doctorID, date string) (*models.AvailableSlots, error) {
	doctor, err := findDoctor(ctx, s.users, doctorID)
	if err != nil {
		return nil, err
	}
	day, err := ParseDate(date, "date")
	if err != nil {
		return nil, err
	}

	result := &models.AvailableSlots{DoctorID: doctor.ID, Date: day.Format(DateLayout)}
	useCache := s.cache != nil
	var key string
	if useCache {
		d := daySlots(doctor.ID, day)
		gen, err := s.cache.Count(ctx, cache.SlotsGenKey(d.doctor, d.date))
		if err != nil {
			log.Warn().Err(err).Str("doctor", d.doctor).Msg("Error from reading slots generation")
			useCache = false
		}
		key = cache.SlotsKey(d.doctor, d.date, gen)
	}
	if useCache {
		var cached []string
		hit, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Error from cache read")
		}
		if hit {
			result.Slots = cached
			return result, nil
		}
	}

	booked, err := s.appointments.BookedTimes(ctx, doctor.ID, day)
	if err != nil {
		log.Error().Err(err).Msg("Error from BookedTimes")
		return nil, err
	}
	result.Slots = FilterAvailable(s.policy.Catalog(), booked)

	if useCache {
		if err := s.cache.SetJSON(ctx, key, result.Slots, s.cacheTTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Error from cache write")
		}
	}
	return result, nil
}

/*
* Validate the request fields
* Check doctor and patient exist
* Check the slot is free, then insert; the store rejects a concurrent duplicate
 */
func (s *AppointmentService) Book(ctx context.Context, actor Actor, req models.BookingRequest) (*models.Appointment, error) {
	if req.DoctorID == "" || req.PatientID == "" || req.Date == "" || req.Time == "" {
		return nil, apperror.Validation("doctorId, patientId, date and time are required")
	}
	day, err := ParseDate(req.Date, "date")
	if err != nil {
		return nil, err
	}
	if !s.policy.Contains(req.Time) {
		return nil, apperror.Validation("time %q is not a bookable slot", req.Time)
	}

	doctor, err := findDoctor(ctx, s.users, req.DoctorID)
	if err != nil {
		return nil, err
	}
	patient, err := findPatient(ctx, s.patients, req.PatientID)
	if err != nil {
		return nil, err
	}

	taken, err := s.appointments.SlotTaken(ctx, doctor.ID, day, req.Time, primitive.NilObjectID)
	if err != nil {
		log.Error().Err(err).Msg("Error from SlotTaken")
		return nil, err
	}
	if taken {
		return nil, apperror.Conflict("slot %s on %s is already booked for this doctor", req.Time, req.Date)
	}

	appt := &models.Appointment{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Date:      day,
		Time:      req.Time,
		Reason:    req.Reason,
		Notes:     req.Notes,
	}
	appt.SetStatus(models.AppointmentScheduled)
	appt.Stamp(actor.ID, s.now())

	if err := s.appointments.Create(ctx, appt); err != nil {
		if !apperror.Is(err, apperror.KindConflict) {
			log.Error().Err(err).Msg("Error from creating appointment")
		}
		return nil, err
	}
	s.invalidate(ctx, daySlots(doctor.ID, day))
	log.Info().
		Str("appointment", appt.ID.Hex()).
		Str("doctor", doctor.ID.Hex()).
		Str("date", req.Date).
		Str("slot", req.Time).
		Msg("appointment booked")
	return appt, nil
}

// load fetches an appointment and checks a doctor is not reading someone else's.
func (s *AppointmentService) load(ctx context.Context, actor Actor, rawID string) (*models.Appointment, error) {
	id, err := ParseID(rawID, "appointment")
	if err != nil {
		return nil, err
	}
	appt, err := s.appointments.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.IsDoctor() && appt.DoctorID != actor.ID {
		return nil, apperror.Forbidden("appointment belongs to another doctor")
	}
	return appt, nil
}

func (s *AppointmentService) Get(ctx context.Context, actor Actor, id string) (*models.Appointment, error) {
	return s.load(ctx, actor, id)
}

func (s *AppointmentService) List(ctx context.Context, actor Actor, q models.AppointmentQuery) ([]models.Appointment, error) {
	var f models.AppointmentFilter
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
	if f.Date, err = optionalDate(q.Date, "date"); err != nil {
		return nil, err
	}
	f.Status = models.AppointmentStatus(q.Status)
	if actor.IsDoctor() {
		f.DoctorID = actor.ID
	}
	appts, err := s.appointments.List(ctx, f)
	if err != nil {
		log.Error().Err(err).Msg("Error from listing appointments")
		return nil, err
	}
	return appts, nil
}

/*
* Apply the status transition, then any move to a new date or time
* Re-check the slot only when the appointment moves or is reactivated, skipping itself
 */
func (s *AppointmentService) Update(ctx context.Context, actor Actor, id string, in models.AppointmentUpdate) (*models.Appointment, error) {
	appt, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	prev := *appt

	if in.Status != nil && *in.Status != appt.Status {
		if !canTransition(appt.Status, *in.Status) {
			return nil, apperror.Precondition("cannot change appointment from %s to %s", appt.Status, *in.Status)
		}
		appt.SetStatus(*in.Status)
	}
	if in.Date != nil {
		day, err := ParseDate(*in.Date, "date")
		if err != nil {
			return nil, err
		}
		appt.Date = day
	}
	if in.Time != nil {
		if !s.policy.Contains(*in.Time) {
			return nil, apperror.Validation("time %q is not a bookable slot", *in.Time)
		}
		appt.Time = *in.Time
	}

	moved := !appt.Date.Equal(prev.Date) || appt.Time != prev.Time
	if moved && (prev.Status != models.AppointmentScheduled || appt.Status != models.AppointmentScheduled) {
		return nil, apperror.Precondition("only scheduled appointments can be rescheduled")
	}
	reactivated := prev.Status == models.AppointmentCancelled && appt.Status == models.AppointmentScheduled
	if moved || reactivated {
		taken, err := s.appointments.SlotTaken(ctx, appt.DoctorID, appt.Date, appt.Time, appt.ID)
		if err != nil {
			log.Error().Err(err).Msg("Error from SlotTaken")
			return nil, err
		}
		if taken {
			return nil, apperror.Conflict("slot %s on %s is already booked for this doctor", appt.Time, appt.Date.Format(DateLayout))
		}
	}

	if in.Reason != nil {
		appt.Reason = *in.Reason
	}
	if in.Notes != nil {
		appt.Notes = *in.Notes
	}
	appt.Stamp(actor.ID, s.now())

	if err := s.appointments.Update(ctx, appt); err != nil {
		if !apperror.Is(err, apperror.KindConflict) {
			log.Error().Err(err).Msg("Error from updating appointment")
		}
		return nil, err
	}
	s.invalidate(ctx, daySlots(prev.DoctorID, prev.Date), daySlots(appt.DoctorID, appt.Date))
	return appt, nil
}

func (s *AppointmentService) Cancel(ctx context.Context, actor Actor, id string) (*models.Appointment, error) {
	cancelled := models.AppointmentCancelled
	return s.Update(ctx, actor, id, models.AppointmentUpdate{Status: &cancelled})
}
