package services

import (
	"math"
	"time"

	"MediTrack/apperror"
	"MediTrack/models"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func ItemAmount(rate, quantity float64) float64 {
	return round2(rate * quantity)
}

// Recompute refreshes the derived money fields and the status of b and
// reports whether anything changed. Running it twice changes nothing.
func Recompute(b *models.Bill, now time.Time) bool {
	changed := false
	set := func(dst *float64, v float64) {
		if *dst != v {
			*dst = v
			changed = true
		}
	}

	var subtotal, tax float64
	for i := range b.Items {
		item := &b.Items[i]
		set(&item.Amount, ItemAmount(item.Rate, item.Quantity))
		subtotal += item.Amount
		tax += item.Amount * item.TaxRate / 100
	}
	set(&b.Subtotal, round2(subtotal))
	set(&b.Tax, round2(tax))
	set(&b.TotalAmount, round2(b.Subtotal+b.Tax-b.Discount))
	set(&b.Balance, round2(b.TotalAmount-b.PaidAmount))

	if !b.Status.Absorbing() {
		next := DeriveStatus(b.Status, b.Balance, b.PaidAmount, b.DueDate, len(b.Items) > 0, now)
		if next != b.Status {
			b.Status = next
			changed = true
		}
	}
	return changed
}

type statusInput struct {
	current  models.BillStatus
	balance  float64
	paid     float64
	dueDate  *time.Time
	hasItems bool
	now      time.Time
}

type statusRule struct {
	when func(in statusInput) bool
	then func(in statusInput) models.BillStatus
}

func to(s models.BillStatus) func(statusInput) models.BillStatus {
	return func(statusInput) models.BillStatus { return s }
}

// statusRules is evaluated top to bottom; the first matching rule wins.
var statusRules = []statusRule{
	{
		when: func(in statusInput) bool { return in.current.Absorbing() },
		then: func(in statusInput) models.BillStatus { return in.current },
	},
	{
		// an empty draft has nothing to settle, so a zero balance does not make it paid
		when: func(in statusInput) bool { return in.current == models.BillDraft && !in.hasItems },
		then: to(models.BillDraft),
	},
	{
		when: func(in statusInput) bool { return in.balance <= 0 },
		then: to(models.BillPaid),
	},
	{
		when: func(in statusInput) bool { return in.paid > 0 },
		then: to(models.BillPartial),
	},
	{
		when: func(in statusInput) bool { return in.dueDate != nil && in.dueDate.Before(in.now) },
		then: to(models.BillOverdue),
	},
	{
		when: func(in statusInput) bool { return in.current == models.BillDraft && in.hasItems },
		then: to(models.BillGenerated),
	},
	{
		// due date moved or cleared; an overdue bill that is no longer late reverts
		// to generated instead of keeping the stale status
		when: func(in statusInput) bool { return in.current == models.BillOverdue },
		then: to(models.BillGenerated),
	},
}

func DeriveStatus(current models.BillStatus, balance, paid float64, dueDate *time.Time, hasItems bool, now time.Time) models.BillStatus {
	in := statusInput{current: current, balance: balance, paid: paid, dueDate: dueDate, hasItems: hasItems, now: now}
	for _, rule := range statusRules {
		if rule.when(in) {
			return rule.then(in)
		}
	}
	return current
}

// ApplyPayment appends p to b and recomputes it.
func ApplyPayment(b *models.Bill, p models.Payment, now time.Time) error {
	if p.Amount <= 0 {
		return apperror.Validation("payment amount must be greater than zero")
	}
	if b.Status.Absorbing() {
		return apperror.Precondition("cannot record a payment on a %s bill", b.Status)
	}
	remaining := round2(b.TotalAmount - b.PaidAmount)
	if round2(p.Amount) > remaining {
		return apperror.Precondition("payment of %.2f exceeds the remaining balance of %.2f", p.Amount, remaining)
	}
	if p.PaidAt.IsZero() {
		p.PaidAt = now
	}
	b.Payments = append(b.Payments, p)
	b.PaidAmount = round2(b.PaidAmount + p.Amount)
	Recompute(b, now)
	return nil
}
