package services

import (
	"testing"
	"time"

	"MediTrack/apperror"
	"MediTrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var billNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func consultBill() *models.Bill {
	return &models.Bill{
		Status: models.BillDraft,
		Items:  []models.BillItem{{Description: "consultation", Rate: 100, Quantity: 2, TaxRate: 10}},
	}
}

func TestRecompute_Totals(t *testing.T) {
	b := consultBill()
	assert.True(t, Recompute(b, billNow))

	assert.Equal(t, 200.0, b.Items[0].Amount)
	assert.Equal(t, 200.0, b.Subtotal)
	assert.Equal(t, 20.0, b.Tax)
	assert.Equal(t, 220.0, b.TotalAmount)
	assert.Equal(t, 220.0, b.Balance)
	assert.Equal(t, models.BillGenerated, b.Status)
}

func TestRecompute_Idempotent(t *testing.T) {
	b := consultBill()
	b.Discount = 15.5
	Recompute(b, billNow)
	before := *b

	assert.False(t, Recompute(b, billNow))
	assert.Equal(t, before, *b)
}

func TestApplyPayment_FullAndExcess(t *testing.T) {
	b := consultBill()
	Recompute(b, billNow)

	err := ApplyPayment(b, models.Payment{Amount: 300}, billNow)
	assert.True(t, apperror.Is(err, apperror.KindPrecondition))
	assert.Empty(t, b.Payments)

	require.NoError(t, ApplyPayment(b, models.Payment{Amount: 220}, billNow))
	assert.Equal(t, models.BillPaid, b.Status)
	assert.Equal(t, 0.0, b.Balance)
	assert.Len(t, b.Payments, 1)
	assert.Equal(t, billNow, b.Payments[0].PaidAt)
}

func TestApplyPayment_Partial(t *testing.T) {
	b := consultBill()
	Recompute(b, billNow)

	require.NoError(t, ApplyPayment(b, models.Payment{Amount: 20}, billNow))
	assert.Equal(t, models.BillPartial, b.Status)
	assert.Equal(t, 200.0, b.Balance)

	require.NoError(t, ApplyPayment(b, models.Payment{Amount: 200}, billNow))
	assert.Equal(t, models.BillPaid, b.Status)
}

func TestApplyPayment_Rejections(t *testing.T) {
	b := consultBill()
	Recompute(b, billNow)

	assert.True(t, apperror.Is(ApplyPayment(b, models.Payment{Amount: 0}, billNow), apperror.KindValidation))
	assert.True(t, apperror.Is(ApplyPayment(b, models.Payment{Amount: -5}, billNow), apperror.KindValidation))

	b.Status = models.BillCancelled
	assert.True(t, apperror.Is(ApplyPayment(b, models.Payment{Amount: 10}, billNow), apperror.KindPrecondition))
}

func TestDeriveStatus_Table(t *testing.T) {
	past := billNow.Add(-24 * time.Hour)
	future := billNow.Add(24 * time.Hour)

	cases := []struct {
		name     string
		current  models.BillStatus
		balance  float64
		paid     float64
		due      *time.Time
		hasItems bool
		want     models.BillStatus
	}{
		{"settled", models.BillGenerated, 0, 220, nil, true, models.BillPaid},
		{"overpaid rounding", models.BillPartial, -0.01, 220, nil, true, models.BillPaid},
		{"partial beats overdue", models.BillGenerated, 100, 120, &past, true, models.BillPartial},
		{"overdue", models.BillGenerated, 220, 0, &past, true, models.BillOverdue},
		{"not yet due", models.BillGenerated, 220, 0, &future, true, models.BillGenerated},
		{"draft with items", models.BillDraft, 220, 0, nil, true, models.BillGenerated},
		{"empty draft", models.BillDraft, 0, 0, nil, false, models.BillDraft},
		{"cancelled absorbs", models.BillCancelled, 0, 0, &past, true, models.BillCancelled},
		{"refunded absorbs", models.BillRefunded, 220, 0, &past, true, models.BillRefunded},
		{"overdue stays when unchanged", models.BillOverdue, 220, 0, &past, true, models.BillOverdue},
		{"overdue with new due date", models.BillOverdue, 220, 0, &future, true, models.BillGenerated},
		{"overdue with due date cleared", models.BillOverdue, 220, 0, nil, true, models.BillGenerated},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveStatus(tc.current, tc.balance, tc.paid, tc.due, tc.hasItems, billNow)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRecompute_DiscountAndOverdue(t *testing.T) {
	due := billNow.Add(-time.Hour)
	b := &models.Bill{
		Status:   models.BillGenerated,
		Discount: 10,
		DueDate:  &due,
		Items: []models.BillItem{
			{Description: "room", Rate: 1500, Quantity: 3, TaxRate: 12},
			{Description: "lab", Rate: 249.99, Quantity: 1, TaxRate: 0},
		},
	}
	Recompute(b, billNow)
	assert.Equal(t, 4749.99, b.Subtotal)
	assert.Equal(t, 540.0, b.Tax)
	assert.Equal(t, 5279.99, b.TotalAmount)
	assert.Equal(t, models.BillOverdue, b.Status)
}
