package services

import (
	"testing"

	"MediTrack/apperror"
	"MediTrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatientDelete_RefusedWhileAdmitted(t *testing.T) {
	f := newFixture(t)
	patient := f.patient(t, "asha")
	bed := f.bed(t, f.ward(t, "General A", 2), "A-1")
	beds := f.bedService()
	svc := f.patientService()

	_, err := beds.Assign(f.ctx, f.reception, bed.ID.Hex(), models.AssignBedRequest{PatientID: patient.ID.Hex()})
	require.NoError(t, err)

	err = svc.Delete(f.ctx, patient.ID.Hex())
	assert.True(t, apperror.Is(err, apperror.KindPrecondition))
	_, err = svc.Get(f.ctx, patient.ID.Hex())
	require.NoError(t, err)

	_, err = beds.Discharge(f.ctx, f.reception, bed.ID.Hex())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(f.ctx, patient.ID.Hex()))
	_, err = svc.Get(f.ctx, patient.ID.Hex())
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
