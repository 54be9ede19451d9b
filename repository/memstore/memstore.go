// Package memstore holds in-memory stores with the same conflict and
// precondition behaviour as the mongo stores. Tests and local tooling use it.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"MediTrack/apperror"
	"MediTrack/models"
	"MediTrack/role"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type table[T any] struct {
	mu   sync.Mutex
	rows map[primitive.ObjectID]T
}

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[primitive.ObjectID]T)}
}

func ensureID(id *primitive.ObjectID) {
	if id.IsZero() {
		*id = primitive.NewObjectID()
	}
}

func sameDay(a, b time.Time) bool {
	return !a.Before(b) && a.Before(b.Add(24*time.Hour))
}

type Users struct{ table[models.User] }

func NewUsers() *Users { return &Users{newTable[models.User]()} }

func (s *Users) emailTaken(email string, self primitive.ObjectID) bool {
	for id, u := range s.rows {
		if id != self && u.Email == email {
			return true
		}
	}
	return false
}

func (s *Users) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ensureID(&u.ID)
	u.Email = strings.ToLower(u.Email)
	if s.emailTaken(u.Email, u.ID) {
		return apperror.Conflict("email already registered")
	}
	s.rows[u.ID] = *u
	return nil
}

func (s *Users) Get(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.rows[id]
	if !ok {
		return nil, apperror.NotFound("user")
	}
	return &u, nil
}

func (s *Users) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(email)
	for _, u := range s.rows {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperror.NotFound("user")
}

func (s *Users) List(_ context.Context, f models.UserFilter) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.User{}
	for _, u := range s.rows {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.ActiveOnly && !u.IsActive {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Users) Update(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[u.ID]; !ok {
		return apperror.NotFound("user")
	}
	if s.emailTaken(u.Email, u.ID) {
		return apperror.Conflict("email already registered")
	}
	s.rows[u.ID] = *u
	return nil
}

func (s *Users) CountByRole(_ context.Context, r role.Role) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, u := range s.rows {
		if u.Role == r {
			n++
		}
	}
	return n, nil
}

type Patients struct{ table[models.Patient] }

func NewPatients() *Patients { return &Patients{newTable[models.Patient]()} }

func (s *Patients) Create(_ context.Context, p *models.Patient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ensureID(&p.ID)
	s.rows[p.ID] = *p
	return nil
}

func (s *Patients) Get(_ context.Context, id primitive.ObjectID) (*models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.rows[id]
	if !ok {
		return nil, apperror.NotFound("patient")
	}
	return &p, nil
}

func (s *Patients) List(_ context.Context, f models.PatientFilter) ([]models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := strings.ToLower(f.Search)
	out := []models.Patient{}
	for _, p := range s.rows {
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(p.Phone, q) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Patients) Update(_ context.Context, p *models.Patient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[p.ID]; !ok {
		return apperror.NotFound("patient")
	}
	s.rows[p.ID] = *p
	return nil
}

func (s *Patients) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return apperror.NotFound("patient")
	}
	delete(s.rows, id)
	return nil
}
