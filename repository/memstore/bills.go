package memstore

import (
	"context"
	"sort"
	"time"

	"MediTrack/apperror"
	"MediTrack/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Bills struct{ table[models.Bill] }

func NewBills() *Bills { return &Bills{newTable[models.Bill]()} }

// clone detaches the slices so callers cannot mutate stored rows.
func clone(b models.Bill) models.Bill {
	b.Items = append([]models.BillItem(nil), b.Items...)
	b.Payments = append([]models.Payment(nil), b.Payments...)
	return b
}

func (s *Bills) Create(_ context.Context, b *models.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ensureID(&b.ID)
	for _, other := range s.rows {
		if other.Number == b.Number {
			return apperror.Conflict("bill number already used")
		}
	}
	b.Version = 1
	s.rows[b.ID] = clone(*b)
	return nil
}

func (s *Bills) Get(_ context.Context, id primitive.ObjectID) (*models.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.rows[id]
	if !ok {
		return nil, apperror.NotFound("bill")
	}
	b = clone(b)
	return &b, nil
}

func (s *Bills) List(_ context.Context, f models.BillFilter) ([]models.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Bill{}
	for _, b := range s.rows {
		if !f.PatientID.IsZero() && b.PatientID != f.PatientID {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		if f.From != nil && b.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && !b.CreatedAt.Before(*f.To) {
			continue
		}
		out = append(out, clone(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Bills) Save(_ context.Context, b *models.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.rows[b.ID]
	if !ok {
		return apperror.NotFound("bill")
	}
	if cur.Version != b.Version {
		return apperror.Conflict("bill was modified concurrently, reload and retry")
	}
	b.Version++
	s.rows[b.ID] = clone(*b)
	return nil
}

func (s *Bills) OverdueCandidates(_ context.Context, now time.Time) ([]models.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Bill{}
	for _, b := range s.rows {
		if b.Status != models.BillDraft && b.Status != models.BillGenerated {
			continue
		}
		if b.PaidAmount > 0 || b.DueDate == nil || !b.DueDate.Before(now) {
			continue
		}
		out = append(out, clone(b))
	}
	return out, nil
}

func (s *Bills) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return apperror.NotFound("bill")
	}
	delete(s.rows, id)
	return nil
}
