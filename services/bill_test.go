package services

import (
	"testing"
	"time"

	"MediTrack/apperror"
	"MediTrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func consultation() []models.BillItem {
	return []models.BillItem{{Description: "Consultation", Category: "consultation", Rate: 100, Quantity: 2, TaxRate: 10}}
}

func TestBillCreate_TotalsAndStatus(t *testing.T) {
	f := newFixture(t)
	svc := f.billService()
	p := f.patient(t, "asha")

	bill, err := svc.Create(f.ctx, f.reception, models.BillRequest{PatientID: p.ID.Hex(), Items: consultation(), Discount: 20})
	require.NoError(t, err)
	assert.Equal(t, 200.0, bill.Subtotal)
	assert.Equal(t, 20.0, bill.Tax)
	assert.Equal(t, 200.0, bill.TotalAmount)
	assert.Equal(t, 200.0, bill.Balance)
	assert.Equal(t, models.BillGenerated, bill.Status)
	assert.Regexp(t, `^INV-20260302-[0-9A-F]{8}$`, bill.Number)

	empty, err := svc.Create(f.ctx, f.reception, models.BillRequest{PatientID: p.ID.Hex()})
	require.NoError(t, err)
	assert.Equal(t, models.BillDraft, empty.Status)
}

func TestBillCreate_Rejections(t *testing.T) {
	f := newFixture(t)
	svc := f.billService()
	p := f.patient(t, "asha")

	_, err := svc.Create(f.ctx, f.reception, models.BillRequest{PatientID: p.ID.Hex(), Items: consultation(), Discount: 500})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	bad := consultation()
	bad[0].Quantity = 0
	_, err = svc.Create(f.ctx, f.reception, models.BillRequest{PatientID: p.ID.Hex(), Items: bad})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = svc.Create(f.ctx, f.reception, models.BillRequest{PatientID: "ffffffffffffffffffffffff", Items: consultation()})
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestBillCreate_AddsBedStay(t *testing.T) {
	f := newFixture(t)
	svc := f.billService()
	p := f.patient(t, "asha")
	w := f.ward(t, "General A", 2)
	b := f.bed(t, w, "A-1")
	require.NoError(t, f.beds.Occupy(f.ctx, b.ID, p.ID, testNow.Add(-50*time.Hour)))

	bill, err := svc.Create(f.ctx, f.reception, models.BillRequest{PatientID: p.ID.Hex(), BedID: b.ID.Hex()})
	require.NoError(t, err)
	require.Len(t, bill.Items, 1)
	assert.Equal(t, 3.0, bill.Items[0].Quantity)
	assert.Equal(t, 4500.0, bill.TotalAmount)
}

func TestRecordPayment_PartialThenPaid(t *testing.T) {
	f := newFixture(t)
	svc := f.billService()
	p := f.patient(t, "asha")
	bill, err := svc.Create(f.ctx, f.reception, models.BillRequest{PatientID: p.ID.Hex(), Items: consultation()})
	require.NoError(t, err)

	bill, err = svc.RecordPayment(f.ctx, f.reception, bill.ID.Hex(), models.PaymentRequest{Amount: 100, Method: "cash"})
	require.NoError(t, err)
	assert.Equal(t, models.BillPartial, bill.Status)
	assert.Equal(t, 120.0, bill.Balance)
	require.Len(t, bill.Payments, 1)
	assert.NotEmpty(t, bill.Payments[0].ID)

	_, err = svc.RecordPayment(f.ctx, f.reception, bill.ID.Hex(), models.PaymentRequest{Amount: 500, Method: "card"})
	assert.True(t, apperror.Is(err, apperror.KindPrecondition))

	bill, err = svc.RecordPayment(f.ctx, f.reception, bill.ID.Hex(), models.PaymentRequest{Amount: 120, Method: "upi"})
	require.NoError(t, err)
	assert.Equal(t, models.BillPaid, bill.Status)
	assert.Equal(t, 0.0, bill.Balance)

	_, err = svc.Cancel(f.ctx, f.reception, bill.ID.Hex())
	assert.True(t, apperror.Is(err, apperror.KindPrecondition))

	bill, err = svc.Refund(f.ctx, f.admin, bill.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.BillRefunded, bill.Status)

	_, err = svc.RecordPayment(f.ctx, f.reception, bill.ID.Hex(), models.PaymentRequest{Amount: 1, Method: "cash"})
	assert.True(t, apperror.Is(err, apperror.KindPrecondition))
}

func TestBillSave_StaleVersionConflicts(t *testing.T) {
	f := newFixture(t)
	svc := f.billService()
	p := f.patient(t, "asha")
	bill, err := svc.Create(f.ctx, f.reception, models.BillRequest{PatientID: p.ID.Hex(), Items: consultation()})
	require.NoError(t, err)

	stale, err := f.bills.Get(f.ctx, bill.ID)
	require.NoError(t, err)
	_, err = svc.RecordPayment(f.ctx, f.reception, bill.ID.Hex(), models.PaymentRequest{Amount: 50, Method: "cash"})
	require.NoError(t, err)

	stale.Notes = "late edit"
	err = f.bills.Save(f.ctx, stale)
	assert.True(t, apperror.Is(err, apperror.KindConflict))
}

func TestRefreshOverdue(t *testing.T) {
	f := newFixture(t)
	svc := f.billService()
	p := f.patient(t, "asha")
	_, err := svc.Create(f.ctx, f.reception, models.BillRequest{PatientID: p.ID.Hex(), Items: consultation(), DueDate: "2026-03-01"})
	require.NoError(t, err)
	_, err = svc.Create(f.ctx, f.reception, models.BillRequest{PatientID: p.ID.Hex(), Items: consultation(), DueDate: "2026-03-09"})
	require.NoError(t, err)

	n, err := svc.RefreshOverdue(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "creation already derived overdue")

	bills, err := svc.List(f.ctx, models.BillQuery{Status: string(models.BillOverdue)})
	require.NoError(t, err)
	assert.Len(t, bills, 1)

	svc.now = func() time.Time { return testNow.AddDate(0, 0, 10) }
	n, err = svc.RefreshOverdue(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestBillingSummary(t *testing.T) {
	f := newFixture(t)
	svc := f.billService()
	p := f.patient(t, "asha")

	paid, err := svc.Create(f.ctx, f.reception, models.BillRequest{PatientID: p.ID.Hex(), Items: consultation()})
	require.NoError(t, err)
	_, err = svc.RecordPayment(f.ctx, f.reception, paid.ID.Hex(), models.PaymentRequest{Amount: 220, Method: "cash"})
	require.NoError(t, err)
	_, err = svc.Create(f.ctx, f.reception, models.BillRequest{PatientID: p.ID.Hex(), Items: consultation()})
	require.NoError(t, err)
	dropped, err := svc.Create(f.ctx, f.reception, models.BillRequest{PatientID: p.ID.Hex(), Items: consultation()})
	require.NoError(t, err)
	_, err = svc.Cancel(f.ctx, f.reception, dropped.ID.Hex())
	require.NoError(t, err)

	sum, err := svc.Summary(f.ctx, models.BillQuery{From: "2026-03-02", To: "2026-03-02"})
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Bills)
	assert.Equal(t, 440.0, sum.Billed)
	assert.Equal(t, 220.0, sum.Collected)
	assert.Equal(t, 220.0, sum.Pending)
	assert.Equal(t, 1, sum.ByStatus[models.BillCancelled].Count)

	require.NoError(t, svc.Delete(f.ctx, dropped.ID.Hex()))
	err = svc.Delete(f.ctx, paid.ID.Hex())
	assert.True(t, apperror.Is(err, apperror.KindPrecondition))
}
