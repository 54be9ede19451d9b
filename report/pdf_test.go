package report

import (
	"bytes"
	"testing"
	"time"

	"MediTrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func fixedPDF() *PDF {
	r := NewPDF("City General Hospital")
	r.now = func() time.Time { return time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC) }
	return r
}

func TestBillPDF(t *testing.T) {
	due := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	bill := &models.Bill{
		Number: "INV-20260302-ABCDEF12",
		Items: []models.BillItem{
			{Description: "Consultation", Category: "consultation", Rate: 100, Quantity: 2, TaxRate: 10, Amount: 200},
		},
		Subtotal:    200,
		Tax:         20,
		TotalAmount: 220,
		PaidAmount:  50,
		Balance:     170,
		Status:      models.BillPartial,
		DueDate:     &due,
		Payments:    []models.Payment{{ID: "p1", Amount: 50, Method: "cash", PaidAt: due.AddDate(0, 0, -5)}},
		Notes:       "Follow up in two weeks",
	}
	out, err := fixedPDF().Bill(bill, &models.Patient{Name: "Asha Rao", Phone: "9999999999"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPrescriptionPDF(t *testing.T) {
	p := &models.Prescription{
		Diagnosis: "Seasonal flu",
		Medications: []models.Medication{
			{Name: "Paracetamol", Dosage: "500mg", Frequency: "TID", DurationDays: 5},
			{Name: "Cetirizine", Dosage: "10mg", Frequency: "OD"},
		},
	}
	out, err := fixedPDF().Prescription(p,
		&models.Patient{Name: "Asha Rao", Age: 34, Gender: "female"},
		&models.User{Name: "Meera Iyer", Specialization: "General Medicine"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestPatientSummaryPDF(t *testing.T) {
	admitted := time.Date(2026, 2, 27, 8, 0, 0, 0, time.UTC)
	pid := primitive.NewObjectID()
	s := &models.PatientSummary{
		Patient: &models.Patient{ID: pid, Name: "Asha Rao", Age: 34, Gender: "female", BloodGroup: "O+"},
		Bed:     &models.Bed{Number: "G-12", AdmittedAt: &admitted},
		Appointments: []models.Appointment{
			{Date: admitted, Time: "09:30", Status: models.AppointmentCompleted, Reason: "Fever"},
		},
		Bills:       []models.Bill{{Number: "INV-1", Status: models.BillPartial, TotalAmount: 220, Balance: 170}},
		Outstanding: 170,
	}
	out, err := fixedPDF().PatientSummary(s)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
