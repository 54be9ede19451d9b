package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"MediTrack/apperror"
	"MediTrack/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type BillService struct {
	bills        BillStore
	patients     PatientStore
	beds         BedStore
	appointments AppointmentStore
	now          Clock
}

func NewBillService(bills BillStore, patients PatientStore, beds BedStore, appointments AppointmentStore) *BillService {
	return &BillService{
		bills:        bills,
		patients:     patients,
		beds:         beds,
		appointments: appointments,
		now:          systemClock,
	}
}

func newBillNumber(now time.Time) string {
	return "INV-" + now.Format("20060102") + "-" + strings.ToUpper(uuid.NewString()[:8])
}

func validateItems(items []models.BillItem) error {
	for i, item := range items {
		if strings.TrimSpace(item.Description) == "" {
			return apperror.Validation("item %d: description is required", i+1)
		}
		if item.Quantity <= 0 {
			return apperror.Validation("item %d: quantity must be greater than zero", i+1)
		}
		if item.Rate < 0 {
			return apperror.Validation("item %d: rate cannot be negative", i+1)
		}
		if item.TaxRate < 0 || item.TaxRate > 100 {
			return apperror.Validation("item %d: taxRate must be between 0 and 100", i+1)
		}
	}
	return nil
}

// checkTotals rejects discounts larger than the bill and totals below what was already paid.
func checkTotals(b *models.Bill) error {
	if b.Discount < 0 {
		return apperror.Validation("discount cannot be negative")
	}
	if b.Discount > round2(b.Subtotal+b.Tax) {
		return apperror.Validation("discount of %.2f exceeds the billed amount of %.2f", b.Discount, b.Subtotal+b.Tax)
	}
	if b.TotalAmount < b.PaidAmount {
		return apperror.Precondition("total of %.2f would fall below the %.2f already paid", b.TotalAmount, b.PaidAmount)
	}
	return nil
}

/*
* Bed stay charge: whole days since admission, at least one
 */
func stayItem(bed *models.Bed, now time.Time) models.BillItem {
	days := 1.0
	if bed.AdmittedAt != nil {
		if d := math.Ceil(now.Sub(*bed.AdmittedAt).Hours() / 24); d > 1 {
			days = d
		}
	}
	return models.BillItem{
		Description: fmt.Sprintf("Bed %s stay", bed.Number),
		Category:    "room",
		Rate:        bed.DailyRate,
		Quantity:    days,
	}
}

/*
* Check the patient and any linked bed or appointment
* Add the stay charge when the patient currently occupies the linked bed
* Recompute totals and status, then insert
 */
func (s *BillService) Create(ctx context.Context, actor Actor, req models.BillRequest) (*models.Bill, error) {
	patient, err := findPatient(ctx, s.patients, req.PatientID)
	if err != nil {
		return nil, err
	}
	if err := validateItems(req.Items); err != nil {
		return nil, err
	}
	now := s.now()
	bill := &models.Bill{
		PatientID: patient.ID,
		Items:     append([]models.BillItem{}, req.Items...),
		Discount:  req.Discount,
		Status:    models.BillDraft,
		Payments:  []models.Payment{},
		Notes:     req.Notes,
	}

	if bill.BedID, err = optionalID(req.BedID, "bed"); err != nil {
		return nil, err
	}
	if bill.BedID != nil {
		bed, err := s.beds.Get(ctx, *bill.BedID)
		if err != nil {
			return nil, err
		}
		if bed.Status == models.BedOccupied && bed.PatientID != nil && *bed.PatientID == patient.ID {
			bill.Items = append(bill.Items, stayItem(bed, now))
		}
	}

	if bill.AppointmentID, err = optionalID(req.AppointmentID, "appointment"); err != nil {
		return nil, err
	}
	if bill.AppointmentID != nil {
		appt, err := s.appointments.Get(ctx, *bill.AppointmentID)
		if err != nil {
			return nil, err
		}
		if appt.PatientID != patient.ID {
			return nil, apperror.Validation("appointment does not belong to this patient")
		}
	}

	if bill.DueDate, err = optionalDate(req.DueDate, "dueDate"); err != nil {
		return nil, err
	}

	Recompute(bill, now)
	if err := checkTotals(bill); err != nil {
		return nil, err
	}
	bill.Number = newBillNumber(now)
	bill.Stamp(actor.ID, now)

	if err := s.bills.Create(ctx, bill); err != nil {
		log.Error().Err(err).Msg("Error from creating bill")
		return nil, err
	}
	log.Info().Str("bill", bill.Number).Float64("total", bill.TotalAmount).Msg("bill created")
	return bill, nil
}

func (s *BillService) Get(ctx context.Context, id string) (*models.Bill, error) {
	billID, err := ParseID(id, "bill")
	if err != nil {
		return nil, err
	}
	return s.bills.Get(ctx, billID)
}

func (s *BillService) List(ctx context.Context, q models.BillQuery) ([]models.Bill, error) {
	var f models.BillFilter
	var err error
	if q.PatientID != "" {
		if f.PatientID, err = ParseID(q.PatientID, "patient"); err != nil {
			return nil, err
		}
	}
	f.Status = models.BillStatus(q.Status)
	if f.From, err = optionalDate(q.From, "from"); err != nil {
		return nil, err
	}
	if f.To, err = optionalDate(q.To, "to"); err != nil {
		return nil, err
	}
	if f.To != nil {
		end := f.To.Add(24 * time.Hour)
		f.To = &end
	}
	bills, err := s.bills.List(ctx, f)
	if err != nil {
		log.Error().Err(err).Msg("Error from listing bills")
		return nil, err
	}
	return bills, nil
}

func (s *BillService) save(ctx context.Context, actor Actor, b *models.Bill, now time.Time) error {
	b.Stamp(actor.ID, now)
	if err := s.bills.Save(ctx, b); err != nil {
		if !apperror.Is(err, apperror.KindConflict) {
			log.Error().Err(err).Msg("Error from saving bill")
		}
		return err
	}
	return nil
}

func (s *BillService) Update(ctx context.Context, actor Actor, id string, in models.BillUpdate) (*models.Bill, error) {
	bill, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill.Status.Absorbing() {
		return nil, apperror.Precondition("a %s bill cannot be edited", bill.Status)
	}
	if in.Items != nil {
		if err := validateItems(in.Items); err != nil {
			return nil, err
		}
		bill.Items = append([]models.BillItem{}, in.Items...)
	}
	if in.Discount != nil {
		bill.Discount = *in.Discount
	}
	if in.DueDate != nil {
		if bill.DueDate, err = optionalDate(*in.DueDate, "dueDate"); err != nil {
			return nil, err
		}
	}
	if in.Notes != nil {
		bill.Notes = *in.Notes
	}

	now := s.now()
	Recompute(bill, now)
	if err := checkTotals(bill); err != nil {
		return nil, err
	}
	if err := s.save(ctx, actor, bill, now); err != nil {
		return nil, err
	}
	return bill, nil
}

/*
* Validate the payment against the remaining balance
* Append it, recompute and save with the version read
 */
func (s *BillService) RecordPayment(ctx context.Context, actor Actor, id string, req models.PaymentRequest) (*models.Bill, error) {
	bill, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	payment := models.Payment{
		ID:         uuid.NewString(),
		Amount:     round2(req.Amount),
		Method:     req.Method,
		Reference:  req.Reference,
		ReceivedBy: actor.ID,
		PaidAt:     now,
	}
	if err := ApplyPayment(bill, payment, now); err != nil {
		return nil, err
	}
	if err := s.save(ctx, actor, bill, now); err != nil {
		return nil, err
	}
	log.Info().
		Str("bill", bill.Number).
		Float64("amount", payment.Amount).
		Str("status", string(bill.Status)).
		Msg("payment recorded")
	return bill, nil
}

func (s *BillService) Cancel(ctx context.Context, actor Actor, id string) (*models.Bill, error) {
	bill, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill.Status.Absorbing() {
		return nil, apperror.Precondition("bill is already %s", bill.Status)
	}
	if len(bill.Payments) > 0 {
		return nil, apperror.Precondition("a bill with payments must be refunded, not cancelled")
	}
	bill.Status = models.BillCancelled
	if err := s.save(ctx, actor, bill, s.now()); err != nil {
		return nil, err
	}
	return bill, nil
}

func (s *BillService) Refund(ctx context.Context, actor Actor, id string) (*models.Bill, error) {
	bill, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill.Status.Absorbing() {
		return nil, apperror.Precondition("bill is already %s", bill.Status)
	}
	if len(bill.Payments) == 0 {
		return nil, apperror.Precondition("a bill without payments cannot be refunded")
	}
	bill.Status = models.BillRefunded
	if err := s.save(ctx, actor, bill, s.now()); err != nil {
		return nil, err
	}
	return bill, nil
}

func (s *BillService) Delete(ctx context.Context, id string) error {
	bill, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if bill.Status != models.BillDraft && bill.Status != models.BillCancelled {
		return apperror.Precondition("only draft or cancelled bills can be deleted")
	}
	return s.bills.Delete(ctx, bill.ID)
}

/*
* Recompute every unpaid bill past its due date
* A bill changed concurrently is skipped and picked up on the next run
 */
func (s *BillService) RefreshOverdue(ctx context.Context) (int, error) {
	now := s.now()
	bills, err := s.bills.OverdueCandidates(ctx, now)
	if err != nil {
		log.Error().Err(err).Msg("Error from OverdueCandidates")
		return 0, err
	}
	updated := 0
	for i := range bills {
		b := &bills[i]
		if !Recompute(b, now) {
			continue
		}
		b.UpdatedAt = now
		if err := s.bills.Save(ctx, b); err != nil {
			log.Warn().Err(err).Str("bill", b.Number).Msg("Error from saving overdue bill")
			continue
		}
		updated++
	}
	return updated, nil
}

func (s *BillService) Summary(ctx context.Context, q models.BillQuery) (*models.BillingSummary, error) {
	bills, err := s.List(ctx, q)
	if err != nil {
		return nil, err
	}
	sum := &models.BillingSummary{ByStatus: map[models.BillStatus]models.StatusTotals{}}
	sum.From, _ = optionalDate(q.From, "from")
	sum.To, _ = optionalDate(q.To, "to")
	for _, b := range bills {
		t := sum.ByStatus[b.Status]
		t.Count++
		t.Amount = round2(t.Amount + b.TotalAmount)
		sum.ByStatus[b.Status] = t
		sum.Bills++
		if b.Status == models.BillCancelled {
			continue
		}
		sum.Billed = round2(sum.Billed + b.TotalAmount)
		sum.Collected = round2(sum.Collected + b.PaidAmount)
		if b.Status != models.BillRefunded && b.Balance > 0 {
			sum.Pending = round2(sum.Pending + b.Balance)
		}
	}
	return sum, nil
}
