package services

import (
	"context"
	"fmt"

	"MediTrack/models"

	"github.com/rs/zerolog/log"
)

// DocumentRenderer turns finished numbers into a printable document.
type DocumentRenderer interface {
	Bill(b *models.Bill, patient *models.Patient) ([]byte, error)
	Prescription(p *models.Prescription, patient *models.Patient, doctor *models.User) ([]byte, error)
	PatientSummary(s *models.PatientSummary) ([]byte, error)
}

// Document is a rendered file ready to be served.
type Document struct {
	Name    string
	Content []byte
}

type ReportService struct {
	bills         BillStore
	patients      PatientStore
	prescriptions PrescriptionStore
	appointments  AppointmentStore
	users         UserStore
	beds          BedStore
	renderer      DocumentRenderer
}

func NewReportService(bills BillStore, patients PatientStore, prescriptions PrescriptionStore, appointments AppointmentStore, users UserStore, beds BedStore, renderer DocumentRenderer) *ReportService {
	return &ReportService{
		bills:         bills,
		patients:      patients,
		prescriptions: prescriptions,
		appointments:  appointments,
		users:         users,
		beds:          beds,
		renderer:      renderer,
	}
}

func (s *ReportService) BillPDF(ctx context.Context, id string) (*Document, error) {
	billID, err := ParseID(id, "bill")
	if err != nil {
		return nil, err
	}
	bill, err := s.bills.Get(ctx, billID)
	if err != nil {
		return nil, err
	}
	patient, err := s.patients.Get(ctx, bill.PatientID)
	if err != nil {
		return nil, err
	}
	content, err := s.renderer.Bill(bill, patient)
	if err != nil {
		log.Error().Err(err).Msg("Error from rendering bill")
		return nil, err
	}
	return &Document{Name: fmt.Sprintf("bill_%s.pdf", bill.Number), Content: content}, nil
}

func (s *ReportService) PrescriptionPDF(ctx context.Context, id string) (*Document, error) {
	pid, err := ParseID(id, "prescription")
	if err != nil {
		return nil, err
	}
	p, err := s.prescriptions.Get(ctx, pid)
	if err != nil {
		return nil, err
	}
	patient, err := s.patients.Get(ctx, p.PatientID)
	if err != nil {
		return nil, err
	}
	doctor, err := s.users.Get(ctx, p.DoctorID)
	if err != nil {
		return nil, err
	}
	content, err := s.renderer.Prescription(p, patient, doctor)
	if err != nil {
		log.Error().Err(err).Msg("Error from rendering prescription")
		return nil, err
	}
	return &Document{Name: fmt.Sprintf("prescription_%s.pdf", p.ID.Hex()), Content: content}, nil
}

/*
* Gather the patient's appointments, prescriptions, bills and current bed
* Outstanding sums the balance of bills that still expect payment
 */
func (s *ReportService) PatientSummary(ctx context.Context, actor Actor, id string) (*models.PatientSummary, error) {
	patient, err := findPatient(ctx, s.patients, id)
	if err != nil {
		return nil, err
	}
	filter := models.AppointmentFilter{PatientID: patient.ID}
	if actor.IsDoctor() {
		filter.DoctorID = actor.ID
	}
	appts, err := s.appointments.List(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("Error from listing appointments")
		return nil, err
	}
	prescriptions, err := s.prescriptions.ListByPatient(ctx, patient.ID)
	if err != nil {
		log.Error().Err(err).Msg("Error from listing prescriptions")
		return nil, err
	}
	bills, err := s.bills.List(ctx, models.BillFilter{PatientID: patient.ID})
	if err != nil {
		log.Error().Err(err).Msg("Error from listing bills")
		return nil, err
	}
	bed, err := s.beds.FindByPatient(ctx, patient.ID)
	if err != nil {
		log.Error().Err(err).Msg("Error from FindByPatient")
		return nil, err
	}

	sum := &models.PatientSummary{
		Patient:       patient,
		Bed:           bed,
		Appointments:  appts,
		Prescriptions: prescriptions,
		Bills:         bills,
	}
	for _, b := range bills {
		if !b.Status.Absorbing() && b.Balance > 0 {
			sum.Outstanding = round2(sum.Outstanding + b.Balance)
		}
	}
	return sum, nil
}

func (s *ReportService) PatientSummaryPDF(ctx context.Context, actor Actor, id string) (*Document, error) {
	sum, err := s.PatientSummary(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	content, err := s.renderer.PatientSummary(sum)
	if err != nil {
		log.Error().Err(err).Msg("Error from rendering patient summary")
		return nil, err
	}
	return &Document{Name: fmt.Sprintf("patient_%s.pdf", sum.Patient.ID.Hex()), Content: content}, nil
}
