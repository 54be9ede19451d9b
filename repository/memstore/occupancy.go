package memstore

import (
	"context"
	"sort"
	"time"

	"MediTrack/apperror"
	"MediTrack/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Wards struct{ table[models.Ward] }

func NewWards() *Wards { return &Wards{newTable[models.Ward]()} }

func (s *Wards) nameTaken(name string, self primitive.ObjectID) bool {
	for id, w := range s.rows {
		if id != self && w.Name == name {
			return true
		}
	}
	return false
}

func (s *Wards) Create(_ context.Context, w *models.Ward) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ensureID(&w.ID)
	if s.nameTaken(w.Name, w.ID) {
		return apperror.Conflict("ward name already in use")
	}
	s.rows[w.ID] = *w
	return nil
}

func (s *Wards) Get(_ context.Context, id primitive.ObjectID) (*models.Ward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.rows[id]
	if !ok {
		return nil, apperror.NotFound("ward")
	}
	return &w, nil
}

func (s *Wards) List(_ context.Context) ([]models.Ward, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Ward{}
	for _, w := range s.rows {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Wards) UpdateDetails(_ context.Context, w *models.Ward) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.rows[w.ID]
	if !ok {
		return apperror.NotFound("ward")
	}
	if s.nameTaken(w.Name, w.ID) {
		return apperror.Conflict("ward name already in use")
	}
	if cur.CurrentOccupancy > w.Capacity {
		return apperror.Precondition("capacity cannot be below current occupancy")
	}
	cur.Name, cur.Type, cur.Floor, cur.Capacity = w.Name, w.Type, w.Floor, w.Capacity
	cur.UpdatedAt, cur.UpdatedBy = w.UpdatedAt, w.UpdatedBy
	s.rows[w.ID] = cur
	return nil
}

func (s *Wards) AdjustOccupancy(_ context.Context, id primitive.ObjectID, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.rows[id]
	if !ok {
		return apperror.NotFound("ward")
	}
	next := w.CurrentOccupancy + delta
	if delta >= 0 && next > w.Capacity {
		return apperror.Precondition("ward is at full capacity")
	}
	if next < 0 {
		return apperror.Precondition("ward occupancy is already zero")
	}
	w.CurrentOccupancy = next
	s.rows[id] = w
	return nil
}

func (s *Wards) SetOccupancy(_ context.Context, id primitive.ObjectID, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.rows[id]
	if !ok {
		return apperror.NotFound("ward")
	}
	w.CurrentOccupancy = n
	s.rows[id] = w
	return nil
}

func (s *Wards) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return apperror.NotFound("ward")
	}
	delete(s.rows, id)
	return nil
}

type Beds struct{ table[models.Bed] }

func NewBeds() *Beds { return &Beds{newTable[models.Bed]()} }

func (s *Beds) numberTaken(b *models.Bed) bool {
	for id, other := range s.rows {
		if id != b.ID && other.WardID == b.WardID && other.Number == b.Number {
			return true
		}
	}
	return false
}

func (s *Beds) Create(_ context.Context, b *models.Bed) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ensureID(&b.ID)
	if b.Status == "" {
		b.Status = models.BedAvailable
	}
	if s.numberTaken(b) {
		return apperror.Conflict("bed number already used in this ward")
	}
	s.rows[b.ID] = *b
	return nil
}

func (s *Beds) Get(_ context.Context, id primitive.ObjectID) (*models.Bed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.rows[id]
	if !ok {
		return nil, apperror.NotFound("bed")
	}
	return &b, nil
}

func (s *Beds) List(_ context.Context, f models.BedFilter) ([]models.Bed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Bed{}
	for _, b := range s.rows {
		if !f.WardID.IsZero() && b.WardID != f.WardID {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (s *Beds) UpdateDetails(_ context.Context, b *models.Bed) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.rows[b.ID]
	if !ok {
		return apperror.NotFound("bed")
	}
	cur.Number, cur.DailyRate = b.Number, b.DailyRate
	if s.numberTaken(&cur) {
		return apperror.Conflict("bed number already used in this ward")
	}
	cur.UpdatedAt, cur.UpdatedBy = b.UpdatedAt, b.UpdatedBy
	s.rows[b.ID] = cur
	return nil
}

func (s *Beds) Occupy(_ context.Context, id, patientID primitive.ObjectID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.rows[id]
	if !ok {
		return apperror.NotFound("bed")
	}
	if b.Status != models.BedAvailable {
		return apperror.Precondition("bed is not available")
	}
	for _, other := range s.rows {
		if other.Status == models.BedOccupied && other.PatientID != nil && *other.PatientID == patientID {
			return apperror.Conflict("patient already occupies a bed")
		}
	}
	b.Status = models.BedOccupied
	b.PatientID = &patientID
	b.AdmittedAt = &at
	b.UpdatedAt = at
	s.rows[id] = b
	return nil
}

func (s *Beds) Release(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.rows[id]
	if !ok {
		return apperror.NotFound("bed")
	}
	if b.Status != models.BedOccupied {
		return apperror.Precondition("bed is not occupied")
	}
	b.Status = models.BedAvailable
	b.PatientID = nil
	b.AdmittedAt = nil
	s.rows[id] = b
	return nil
}

func (s *Beds) SetStatus(_ context.Context, id primitive.ObjectID, from, to models.BedStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.rows[id]
	if !ok {
		return apperror.NotFound("bed")
	}
	if b.Status != from {
		return apperror.Precondition("bed is not %s", from)
	}
	b.Status = to
	s.rows[id] = b
	return nil
}

func (s *Beds) FindByPatient(_ context.Context, patientID primitive.ObjectID) (*models.Bed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.rows {
		if b.Status == models.BedOccupied && b.PatientID != nil && *b.PatientID == patientID {
			return &b, nil
		}
	}
	return nil, nil
}

func (s *Beds) CountByWard(_ context.Context, wardID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, b := range s.rows {
		if b.WardID == wardID {
			n++
		}
	}
	return n, nil
}

func (s *Beds) OccupiedByWard(_ context.Context) (map[primitive.ObjectID]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[primitive.ObjectID]int)
	for _, b := range s.rows {
		if b.Status == models.BedOccupied {
			out[b.WardID]++
		}
	}
	return out, nil
}

func (s *Beds) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.rows[id]
	if !ok {
		return apperror.NotFound("bed")
	}
	if b.Status == models.BedOccupied {
		return apperror.Precondition("an occupied bed cannot be deleted")
	}
	delete(s.rows, id)
	return nil
}
