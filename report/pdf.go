package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"MediTrack/models"

	"github.com/jung-kurt/gofpdf"
)

const dateLayout = "02 Jan 2006"

// PDF renders hospital documents with gofpdf.
type PDF struct {
	hospital string
	now      func() time.Time
}

func NewPDF(hospital string) *PDF {
	return &PDF{hospital: hospital, now: time.Now}
}

func (r *PDF) newDoc(title string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetTitle(title, true)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Generated %s - page %d", r.now().UTC().Format("02 Jan 2006 15:04 MST"), pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 70, 127)
	pdf.CellFormat(0, 10, r.hospital, "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, title, "1", 1, "C", false, 0, "")
	pdf.Ln(2)
	return pdf
}

func detail(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(45, 8, label, "1", 0, "", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 8, value, "1", 1, "", false, 0, "")
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(230, 236, 245)
	pdf.CellFormat(0, 8, title, "1", 1, "L", true, 0, "")
}

var numeric = map[string]bool{"Rate": true, "Qty": true, "Tax %": true, "Amount": true, "Amount due": true}

func table(pdf *gofpdf.Fpdf, widths []float64, header []string, rows [][]string) {
	pdf.SetFont("Arial", "B", 9)
	for i, h := range header {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for _, row := range rows {
		for i, cell := range row {
			align := "L"
			if numeric[header[i]] {
				align = "R"
			}
			pdf.CellFormat(widths[i], 7, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *PDF) Bill(b *models.Bill, patient *models.Patient) ([]byte, error) {
	pdf := r.newDoc("Invoice " + b.Number)

	detail(pdf, "Patient", patient.Name)
	detail(pdf, "Phone", patient.Phone)
	detail(pdf, "Issued", b.CreatedAt.Format(dateLayout))
	if b.DueDate != nil {
		detail(pdf, "Due", b.DueDate.Format(dateLayout))
	}
	detail(pdf, "Status", strings.ToUpper(string(b.Status)))

	section(pdf, "Items")
	rows := make([][]string, 0, len(b.Items))
	for _, it := range b.Items {
		rows = append(rows, []string{it.Description, money(it.Rate), fmt.Sprintf("%g", it.Quantity), fmt.Sprintf("%g", it.TaxRate), money(it.Amount)})
	}
	table(pdf, []float64{90, 25, 20, 20, 35}, []string{"Description", "Rate", "Qty", "Tax %", "Amount"}, rows)

	section(pdf, "Totals")
	detail(pdf, "Subtotal", money(b.Subtotal))
	detail(pdf, "Tax", money(b.Tax))
	detail(pdf, "Discount", money(b.Discount))
	detail(pdf, "Total", money(b.TotalAmount))
	detail(pdf, "Paid", money(b.PaidAmount))
	detail(pdf, "Balance", money(b.Balance))

	if len(b.Payments) > 0 {
		section(pdf, "Payments")
		rows = rows[:0]
		for _, p := range b.Payments {
			rows = append(rows, []string{p.PaidAt.Format(dateLayout), p.Method, p.Reference, money(p.Amount)})
		}
		table(pdf, []float64{40, 40, 75, 35}, []string{"Date", "Method", "Reference", "Amount"}, rows)
	}

	if b.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(0, 5, b.Notes, "", "L", false)
	}
	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 8, "This is a computer generated invoice", "", 1, "R", false, 0, "")
	return output(pdf)
}

func (r *PDF) Prescription(p *models.Prescription, patient *models.Patient, doctor *models.User) ([]byte, error) {
	pdf := r.newDoc("Prescription")

	detail(pdf, "Patient", fmt.Sprintf("%s (%d, %s)", patient.Name, patient.Age, patient.Gender))
	detail(pdf, "Doctor", "Dr. "+doctor.Name)
	if doctor.Specialization != "" {
		detail(pdf, "Specialization", doctor.Specialization)
	}
	detail(pdf, "Date", p.CreatedAt.Format(dateLayout))
	detail(pdf, "Diagnosis", p.Diagnosis)

	section(pdf, "Medications")
	rows := make([][]string, 0, len(p.Medications))
	for _, m := range p.Medications {
		days := "-"
		if m.DurationDays > 0 {
			days = fmt.Sprintf("%d", m.DurationDays)
		}
		rows = append(rows, []string{m.Name, m.Dosage, m.Frequency, days, m.Instructions})
	}
	table(pdf, []float64{50, 30, 35, 15, 60}, []string{"Medicine", "Dosage", "Frequency", "Days", "Instructions"}, rows)

	if p.Notes != "" {
		section(pdf, "Notes")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, p.Notes, "1", "L", false)
	}
	return output(pdf)
}

func (r *PDF) PatientSummary(s *models.PatientSummary) ([]byte, error) {
	pdf := r.newDoc("Patient Summary")
	p := s.Patient

	detail(pdf, "Name", p.Name)
	detail(pdf, "Age / Gender", fmt.Sprintf("%d / %s", p.Age, p.Gender))
	detail(pdf, "Phone", p.Phone)
	if p.BloodGroup != "" {
		detail(pdf, "Blood group", p.BloodGroup)
	}
	if p.Condition != "" {
		detail(pdf, "Condition", p.Condition)
	}
	if s.Bed != nil && s.Bed.AdmittedAt != nil {
		detail(pdf, "Admitted", fmt.Sprintf("bed %s since %s", s.Bed.Number, s.Bed.AdmittedAt.Format(dateLayout)))
	}

	section(pdf, fmt.Sprintf("Appointments (%d)", len(s.Appointments)))
	rows := make([][]string, 0, len(s.Appointments))
	for _, a := range s.Appointments {
		rows = append(rows, []string{a.Date.Format(dateLayout), a.Time, string(a.Status), a.Reason})
	}
	table(pdf, []float64{35, 20, 30, 105}, []string{"Date", "Time", "Status", "Reason"}, rows)

	section(pdf, fmt.Sprintf("Prescriptions (%d)", len(s.Prescriptions)))
	rows = rows[:0]
	for _, pr := range s.Prescriptions {
		names := make([]string, 0, len(pr.Medications))
		for _, m := range pr.Medications {
			names = append(names, m.Name)
		}
		rows = append(rows, []string{pr.CreatedAt.Format(dateLayout), pr.Diagnosis, strings.Join(names, ", ")})
	}
	table(pdf, []float64{35, 60, 95}, []string{"Date", "Diagnosis", "Medicines"}, rows)

	section(pdf, fmt.Sprintf("Bills (%d)", len(s.Bills)))
	rows = rows[:0]
	for _, b := range s.Bills {
		rows = append(rows, []string{b.Number, string(b.Status), money(b.TotalAmount), money(b.Balance)})
	}
	table(pdf, []float64{70, 40, 40, 40}, []string{"Number", "Status", "Amount", "Amount due"}, rows)

	pdf.Ln(4)
	detail(pdf, "Outstanding", money(s.Outstanding))
	return output(pdf)
}
