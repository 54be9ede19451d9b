package services

import (
	"testing"

	"MediTrack/apperror"
	"MediTrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssign_IncrementsWard(t *testing.T) {
	f := newFixture(t)
	svc := f.bedService()
	w := f.ward(t, "General A", 4)
	b := f.bed(t, w, "A-1")
	p := f.patient(t, "asha")

	bed, err := svc.Assign(f.ctx, f.reception, b.ID.Hex(), models.AssignBedRequest{PatientID: p.ID.Hex()})
	require.NoError(t, err)
	assert.Equal(t, models.BedOccupied, bed.Status)
	require.NotNil(t, bed.PatientID)
	assert.Equal(t, p.ID, *bed.PatientID)
	assert.Equal(t, testNow, *bed.AdmittedAt)

	ward, err := f.wards.Get(f.ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, ward.CurrentOccupancy)
}

func TestDischarge_RestoresWard(t *testing.T) {
	f := newFixture(t)
	svc := f.bedService()
	w := f.ward(t, "General A", 4)
	b := f.bed(t, w, "A-1")
	p := f.patient(t, "asha")

	_, err := svc.Assign(f.ctx, f.reception, b.ID.Hex(), models.AssignBedRequest{PatientID: p.ID.Hex()})
	require.NoError(t, err)

	bed, err := svc.Discharge(f.ctx, f.reception, b.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.BedAvailable, bed.Status)
	assert.Nil(t, bed.PatientID)
	assert.Nil(t, bed.AdmittedAt)

	ward, err := f.wards.Get(f.ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, ward.CurrentOccupancy)

	_, err = svc.Discharge(f.ctx, f.reception, b.ID.Hex())
	assert.True(t, apperror.Is(err, apperror.KindPrecondition))
}

func TestAssign_OccupiedBedLeavesWardUnchanged(t *testing.T) {
	f := newFixture(t)
	svc := f.bedService()
	w := f.ward(t, "General A", 4)
	b := f.bed(t, w, "A-1")
	p1, p2 := f.patient(t, "asha"), f.patient(t, "ravi")

	_, err := svc.Assign(f.ctx, f.reception, b.ID.Hex(), models.AssignBedRequest{PatientID: p1.ID.Hex()})
	require.NoError(t, err)

	_, err = svc.Assign(f.ctx, f.reception, b.ID.Hex(), models.AssignBedRequest{PatientID: p2.ID.Hex()})
	assert.True(t, apperror.Is(err, apperror.KindPrecondition))

	ward, err := f.wards.Get(f.ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, ward.CurrentOccupancy)
}

func TestAssign_PatientHoldsOneBed(t *testing.T) {
	f := newFixture(t)
	svc := f.bedService()
	w := f.ward(t, "General A", 4)
	b1, b2 := f.bed(t, w, "A-1"), f.bed(t, w, "A-2")
	p := f.patient(t, "asha")

	_, err := svc.Assign(f.ctx, f.reception, b1.ID.Hex(), models.AssignBedRequest{PatientID: p.ID.Hex()})
	require.NoError(t, err)
	_, err = svc.Assign(f.ctx, f.reception, b2.ID.Hex(), models.AssignBedRequest{PatientID: p.ID.Hex()})
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	bed, err := f.beds.Get(f.ctx, b2.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BedAvailable, bed.Status)
}

func TestAssign_FullWardPutsBedBack(t *testing.T) {
	f := newFixture(t)
	svc := f.bedService()
	w := f.ward(t, "ICU", 1)
	b := f.bed(t, w, "I-1")
	p := f.patient(t, "asha")
	require.NoError(t, f.wards.SetOccupancy(f.ctx, w.ID, 1))

	_, err := svc.Assign(f.ctx, f.reception, b.ID.Hex(), models.AssignBedRequest{PatientID: p.ID.Hex()})
	assert.True(t, apperror.Is(err, apperror.KindPrecondition))

	bed, err := f.beds.Get(f.ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BedAvailable, bed.Status)
	assert.Nil(t, bed.PatientID)
}

func TestAssign_UnknownBedOrPatient(t *testing.T) {
	f := newFixture(t)
	svc := f.bedService()
	w := f.ward(t, "General A", 4)
	b := f.bed(t, w, "A-1")

	_, err := svc.Assign(f.ctx, f.reception, "nope", models.AssignBedRequest{PatientID: f.patient(t, "asha").ID.Hex()})
	assert.EqualError(t, err, "bed not found")

	_, err = svc.Assign(f.ctx, f.reception, b.ID.Hex(), models.AssignBedRequest{PatientID: "nope"})
	assert.EqualError(t, err, "patient not found")

	ward, err := f.wards.Get(f.ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, ward.CurrentOccupancy)
}

func TestMaintenance(t *testing.T) {
	f := newFixture(t)
	svc := f.bedService()
	w := f.ward(t, "General A", 4)
	b := f.bed(t, w, "A-1")

	bed, err := svc.SetMaintenance(f.ctx, f.admin, b.ID.Hex(), true)
	require.NoError(t, err)
	assert.Equal(t, models.BedMaintenance, bed.Status)

	_, err = svc.Assign(f.ctx, f.reception, b.ID.Hex(), models.AssignBedRequest{PatientID: f.patient(t, "asha").ID.Hex()})
	assert.True(t, apperror.Is(err, apperror.KindPrecondition))

	bed, err = svc.SetMaintenance(f.ctx, f.admin, b.ID.Hex(), false)
	require.NoError(t, err)
	assert.Equal(t, models.BedAvailable, bed.Status)
}

func TestBedCreate_RespectsCapacity(t *testing.T) {
	f := newFixture(t)
	svc := f.bedService()
	w := f.ward(t, "Private", 1)

	_, err := svc.Create(f.ctx, f.admin, models.BedRequest{WardID: w.ID.Hex(), Number: "P-1"})
	require.NoError(t, err)
	_, err = svc.Create(f.ctx, f.admin, models.BedRequest{WardID: w.ID.Hex(), Number: "P-2"})
	assert.True(t, apperror.Is(err, apperror.KindPrecondition))
}

func TestOccupancySummary(t *testing.T) {
	f := newFixture(t)
	beds := f.bedService()
	wards := NewWardService(f.wards, f.beds)
	w := f.ward(t, "General A", 4)
	b1 := f.bed(t, w, "A-1")
	f.bed(t, w, "A-2")
	_, err := beds.Assign(f.ctx, f.reception, b1.ID.Hex(), models.AssignBedRequest{PatientID: f.patient(t, "asha").ID.Hex()})
	require.NoError(t, err)

	sum, err := wards.OccupancySummary(f.ctx)
	require.NoError(t, err)
	require.Len(t, sum.Wards, 1)
	assert.Equal(t, 1, sum.Wards[0].Occupied)
	assert.Equal(t, 1, sum.Wards[0].Available)
	assert.Equal(t, 25.0, sum.Wards[0].Rate)
	assert.Equal(t, 2, sum.TotalBeds)
	assert.Equal(t, 50.0, sum.Rate)

	err = wards.Delete(f.ctx, w.ID.Hex())
	assert.True(t, apperror.Is(err, apperror.KindPrecondition))
}
