package services

import (
	"context"
	"testing"
	"time"

	"MediTrack/cache"
	"MediTrack/models"
	"MediTrack/repository/memstore"
	"MediTrack/role"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var testNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

type fixture struct {
	ctx          context.Context
	users        *memstore.Users
	patients     *memstore.Patients
	appointments *memstore.Appointments
	rx           *memstore.Prescriptions
	wards        *memstore.Wards
	beds         *memstore.Beds
	bills        *memstore.Bills
	cache        *cache.Memory
	admin        Actor
	reception    Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return &fixture{
		ctx:          context.Background(),
		users:        memstore.NewUsers(),
		patients:     memstore.NewPatients(),
		appointments: memstore.NewAppointments(),
		rx:           memstore.NewPrescriptions(),
		wards:        memstore.NewWards(),
		beds:         memstore.NewBeds(),
		bills:        memstore.NewBills(),
		cache:        cache.NewMemory(),
		admin:        Actor{ID: primitive.NewObjectID(), Role: role.Admin},
		reception:    Actor{ID: primitive.NewObjectID(), Role: role.Receptionist},
	}
}

func (f *fixture) doctor(t *testing.T, name string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: name + "@meditrack.test", Role: role.Doctor, IsActive: true}
	require.NoError(t, f.users.Create(f.ctx, u))
	return u
}

func (f *fixture) patient(t *testing.T, name string) *models.Patient {
	t.Helper()
	p := &models.Patient{Name: name, Age: 40, Gender: "female", Phone: "9000000000", Email: name + "@mail.test"}
	require.NoError(t, f.patients.Create(f.ctx, p))
	return p
}

func (f *fixture) ward(t *testing.T, name string, capacity int) *models.Ward {
	t.Helper()
	w := &models.Ward{Name: name, Type: "general", Capacity: capacity}
	require.NoError(t, f.wards.Create(f.ctx, w))
	return w
}

func (f *fixture) bed(t *testing.T, ward *models.Ward, number string) *models.Bed {
	t.Helper()
	b := &models.Bed{WardID: ward.ID, Number: number, Status: models.BedAvailable, DailyRate: 1500}
	require.NoError(t, f.beds.Create(f.ctx, b))
	return b
}

func (f *fixture) appointmentService() *AppointmentService {
	s := NewAppointmentService(f.appointments, f.users, f.patients, f.cache, time.Minute, DefaultSlotPolicy())
	s.now = fixedClock
	return s
}

func (f *fixture) bedService() *BedService {
	s := NewBedService(f.beds, f.wards, f.patients)
	s.now = fixedClock
	return s
}

func (f *fixture) billService() *BillService {
	s := NewBillService(f.bills, f.patients, f.beds, f.appointments)
	s.now = fixedClock
	return s
}

func (f *fixture) prescriptionService() *PrescriptionService {
	s := NewPrescriptionService(f.rx, f.appointments)
	s.now = fixedClock
	return s
}

func (f *fixture) patientService() *PatientService {
	s := NewPatientService(f.patients, f.beds)
	s.now = fixedClock
	return s
}
