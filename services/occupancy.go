package services

import (
	"context"
	"strings"

	"MediTrack/apperror"
	"MediTrack/models"

	"github.com/rs/zerolog/log"
)

type WardService struct {
	wards WardStore
	beds  BedStore
	now   Clock
}

func NewWardService(wards WardStore, beds BedStore) *WardService {
	return &WardService{wards: wards, beds: beds, now: systemClock}
}

func (s *WardService) Create(ctx context.Context, actor Actor, req models.WardRequest) (*models.Ward, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperror.Validation("ward name is required")
	}
	if req.Capacity <= 0 {
		return nil, apperror.Validation("capacity must be greater than zero")
	}
	w := &models.Ward{
		Name:     strings.TrimSpace(req.Name),
		Type:     req.Type,
		Floor:    req.Floor,
		Capacity: req.Capacity,
	}
	w.Stamp(actor.ID, s.now())
	if err := s.wards.Create(ctx, w); err != nil {
		if !apperror.Is(err, apperror.KindConflict) {
			log.Error().Err(err).Msg("Error from creating ward")
		}
		return nil, err
	}
	return w, nil
}

func (s *WardService) Get(ctx context.Context, id string) (*models.Ward, error) {
	wardID, err := ParseID(id, "ward")
	if err != nil {
		return nil, err
	}
	return s.wards.Get(ctx, wardID)
}

func (s *WardService) List(ctx context.Context) ([]models.Ward, error) {
	wards, err := s.wards.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Error from listing wards")
		return nil, err
	}
	return wards, nil
}

/*
* Capacity may not drop below the beds already in the ward
* The store also refuses a capacity below the live occupancy
 */
func (s *WardService) Update(ctx context.Context, actor Actor, id string, req models.WardRequest) (*models.Ward, error) {
	w, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Capacity <= 0 {
		return nil, apperror.Validation("capacity must be greater than zero")
	}
	beds, err := s.beds.CountByWard(ctx, w.ID)
	if err != nil {
		log.Error().Err(err).Msg("Error from CountByWard")
		return nil, err
	}
	if int64(req.Capacity) < beds {
		return nil, apperror.Precondition("ward has %d beds, capacity cannot be %d", beds, req.Capacity)
	}
	w.Name = strings.TrimSpace(req.Name)
	w.Type = req.Type
	w.Floor = req.Floor
	w.Capacity = req.Capacity
	w.Stamp(actor.ID, s.now())
	if err := s.wards.UpdateDetails(ctx, w); err != nil {
		return nil, err
	}
	return s.wards.Get(ctx, w.ID)
}

func (s *WardService) Delete(ctx context.Context, id string) error {
	w, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	n, err := s.beds.CountByWard(ctx, w.ID)
	if err != nil {
		log.Error().Err(err).Msg("Error from CountByWard")
		return err
	}
	if n > 0 {
		return apperror.Precondition("ward still has %d beds", n)
	}
	return s.wards.Delete(ctx, w.ID)
}

func rate(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return round2(float64(part) * 100 / float64(whole))
}

func (s *WardService) OccupancySummary(ctx context.Context) (*models.OccupancySummary, error) {
	wards, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	beds, err := s.beds.List(ctx, models.BedFilter{})
	if err != nil {
		log.Error().Err(err).Msg("Error from listing beds")
		return nil, err
	}
	byWard := make(map[string]*models.WardOccupancy, len(wards))
	out := &models.OccupancySummary{Wards: make([]models.WardOccupancy, 0, len(wards))}
	for _, w := range wards {
		out.Wards = append(out.Wards, models.WardOccupancy{
			WardID:   w.ID,
			Name:     w.Name,
			Type:     w.Type,
			Capacity: w.Capacity,
		})
	}
	for i := range out.Wards {
		byWard[out.Wards[i].WardID.Hex()] = &out.Wards[i]
	}
	for _, b := range beds {
		wo, ok := byWard[b.WardID.Hex()]
		if !ok {
			continue
		}
		out.TotalBeds++
		switch b.Status {
		case models.BedOccupied:
			wo.Occupied++
			out.TotalOccupied++
		case models.BedMaintenance:
			wo.Maintenance++
		default:
			wo.Available++
		}
	}
	for i := range out.Wards {
		out.Wards[i].Rate = rate(out.Wards[i].Occupied, out.Wards[i].Capacity)
	}
	out.Rate = rate(out.TotalOccupied, out.TotalBeds)
	return out, nil
}

type BedService struct {
	beds     BedStore
	wards    WardStore
	patients PatientStore
	now      Clock
}

func NewBedService(beds BedStore, wards WardStore, patients PatientStore) *BedService {
	return &BedService{beds: beds, wards: wards, patients: patients, now: systemClock}
}

func (s *BedService) Create(ctx context.Context, actor Actor, req models.BedRequest) (*models.Bed, error) {
	wardID, err := ParseID(req.WardID, "ward")
	if err != nil {
		return nil, err
	}
	ward, err := s.wards.Get(ctx, wardID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Number) == "" {
		return nil, apperror.Validation("bed number is required")
	}
	if req.DailyRate < 0 {
		return nil, apperror.Validation("dailyRate cannot be negative")
	}
	n, err := s.beds.CountByWard(ctx, ward.ID)
	if err != nil {
		log.Error().Err(err).Msg("Error from CountByWard")
		return nil, err
	}
	if n >= int64(ward.Capacity) {
		return nil, apperror.Precondition("ward %s already has %d of %d beds", ward.Name, n, ward.Capacity)
	}
	bed := &models.Bed{
		WardID:    ward.ID,
		Number:    strings.TrimSpace(req.Number),
		Status:    models.BedAvailable,
		DailyRate: req.DailyRate,
	}
	bed.Stamp(actor.ID, s.now())
	if err := s.beds.Create(ctx, bed); err != nil {
		if !apperror.Is(err, apperror.KindConflict) {
			log.Error().Err(err).Msg("Error from creating bed")
		}
		return nil, err
	}
	return bed, nil
}

func (s *BedService) Get(ctx context.Context, id string) (*models.Bed, error) {
	bedID, err := ParseID(id, "bed")
	if err != nil {
		return nil, err
	}
	return s.beds.Get(ctx, bedID)
}

func (s *BedService) List(ctx context.Context, q models.BedQuery) ([]models.Bed, error) {
	var f models.BedFilter
	if q.WardID != "" {
		wardID, err := ParseID(q.WardID, "ward")
		if err != nil {
			return nil, err
		}
		f.WardID = wardID
	}
	f.Status = models.BedStatus(q.Status)
	beds, err := s.beds.List(ctx, f)
	if err != nil {
		log.Error().Err(err).Msg("Error from listing beds")
		return nil, err
	}
	return beds, nil
}

func (s *BedService) Update(ctx context.Context, actor Actor, id string, in models.BedUpdate) (*models.Bed, error) {
	bed, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Number != nil {
		if strings.TrimSpace(*in.Number) == "" {
			return nil, apperror.Validation("bed number is required")
		}
		bed.Number = strings.TrimSpace(*in.Number)
	}
	if in.DailyRate != nil {
		if *in.DailyRate < 0 {
			return nil, apperror.Validation("dailyRate cannot be negative")
		}
		bed.DailyRate = *in.DailyRate
	}
	bed.Stamp(actor.ID, s.now())
	if err := s.beds.UpdateDetails(ctx, bed); err != nil {
		return nil, err
	}
	return bed, nil
}

func (s *BedService) Delete(ctx context.Context, id string) error {
	bedID, err := ParseID(id, "bed")
	if err != nil {
		return err
	}
	return s.beds.Delete(ctx, bedID)
}

/*
* The bed must exist and be available before anything is touched
* The patient must exist and hold no other bed
* Flip the bed, then bump the ward; a full ward puts the bed back
 */
func (s *BedService) Assign(ctx context.Context, actor Actor, bedID string, req models.AssignBedRequest) (*models.Bed, error) {
	bed, err := s.Get(ctx, bedID)
	if err != nil {
		return nil, err
	}
	if bed.Status != models.BedAvailable {
		return nil, apperror.Precondition("bed %s is %s", bed.Number, bed.Status)
	}
	patient, err := findPatient(ctx, s.patients, req.PatientID)
	if err != nil {
		return nil, err
	}
	current, err := s.beds.FindByPatient(ctx, patient.ID)
	if err != nil {
		log.Error().Err(err).Msg("Error from FindByPatient")
		return nil, err
	}
	if current != nil {
		return nil, apperror.Conflict("patient already occupies bed %s", current.Number)
	}

	if err := s.beds.Occupy(ctx, bed.ID, patient.ID, s.now()); err != nil {
		return nil, err
	}
	if err := s.wards.AdjustOccupancy(ctx, bed.WardID, 1); err != nil {
		if rerr := s.beds.Release(ctx, bed.ID); rerr != nil {
			log.Error().Err(rerr).Str("bed", bed.ID.Hex()).Msg("Error from releasing bed after failed occupancy update")
		}
		if !apperror.Is(err, apperror.KindPrecondition) {
			log.Error().Err(err).Msg("Error from AdjustOccupancy")
		}
		return nil, err
	}
	log.Info().Str("bed", bed.ID.Hex()).Str("patient", patient.ID.Hex()).Str("by", actor.ID.Hex()).Msg("bed assigned")
	return s.beds.Get(ctx, bed.ID)
}

/*
* Only an occupied bed can be discharged
* Release the bed, then decrement the ward
 */
func (s *BedService) Discharge(ctx context.Context, actor Actor, bedID string) (*models.Bed, error) {
	bed, err := s.Get(ctx, bedID)
	if err != nil {
		return nil, err
	}
	if bed.Status != models.BedOccupied || bed.PatientID == nil {
		return nil, apperror.Precondition("bed %s is not occupied", bed.Number)
	}
	if err := s.beds.Release(ctx, bed.ID); err != nil {
		return nil, err
	}
	if err := s.wards.AdjustOccupancy(ctx, bed.WardID, -1); err != nil {
		if apperror.Is(err, apperror.KindPrecondition) || apperror.Is(err, apperror.KindNotFound) {
			// counter drift; reconciled by the occupancy migration
			log.Warn().Err(err).Str("ward", bed.WardID.Hex()).Msg("ward occupancy out of step on discharge")
		} else {
			admitted := s.now()
			if bed.AdmittedAt != nil {
				admitted = *bed.AdmittedAt
			}
			if rerr := s.beds.Occupy(ctx, bed.ID, *bed.PatientID, admitted); rerr != nil {
				log.Error().Err(rerr).Str("bed", bed.ID.Hex()).Msg("Error from restoring bed after failed occupancy update")
			}
			log.Error().Err(err).Msg("Error from AdjustOccupancy")
			return nil, err
		}
	}
	log.Info().Str("bed", bed.ID.Hex()).Str("by", actor.ID.Hex()).Msg("patient discharged")
	return s.beds.Get(ctx, bed.ID)
}

func (s *BedService) SetMaintenance(ctx context.Context, actor Actor, bedID string, on bool) (*models.Bed, error) {
	bed, err := s.Get(ctx, bedID)
	if err != nil {
		return nil, err
	}
	from, to := models.BedAvailable, models.BedMaintenance
	if !on {
		from, to = models.BedMaintenance, models.BedAvailable
	}
	if bed.Status == to {
		return bed, nil
	}
	if bed.Status == models.BedOccupied {
		return nil, apperror.Precondition("bed %s is occupied", bed.Number)
	}
	if err := s.beds.SetStatus(ctx, bed.ID, from, to); err != nil {
		return nil, err
	}
	log.Info().Str("bed", bed.ID.Hex()).Bool("maintenance", on).Str("by", actor.ID.Hex()).Msg("bed maintenance changed")
	return s.beds.Get(ctx, bed.ID)
}
