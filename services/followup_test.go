package services

import (
	"errors"
	"testing"
	"time"

	"MediTrack/apperror"
	"MediTrack/models"
	"MediTrack/repository/memstore"
	"MediTrack/role"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newFollowUpService(f *fixture, followUps *memstore.FollowUps, mailer Mailer) *FollowUpService {
	s := NewFollowUpService(followUps, f.patients, f.users, f.appointments, mailer, 24*time.Hour, "MediTrack Hospital")
	s.now = fixedClock
	return s
}

func TestSendDueReminders(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	mailer := NewMockMailer(ctrl)
	followUps := memstore.NewFollowUps()
	svc := newFollowUpService(f, followUps, mailer)

	doc := f.doctor(t, "house")
	asha := f.patient(t, "asha")
	noMail := &models.Patient{Name: "ravi", Gender: "male", Phone: "9111111111"}
	require.NoError(t, f.patients.Create(f.ctx, noMail))

	tomorrow, err := svc.Create(f.ctx, f.admin, models.FollowUpRequest{PatientID: asha.ID.Hex(), DoctorID: doc.ID.Hex(), Date: "2026-03-03", Reason: "wound check"})
	require.NoError(t, err)
	_, err = svc.Create(f.ctx, f.admin, models.FollowUpRequest{PatientID: noMail.ID.Hex(), DoctorID: doc.ID.Hex(), Date: "2026-03-03", Reason: "review"})
	require.NoError(t, err)
	_, err = svc.Create(f.ctx, f.admin, models.FollowUpRequest{PatientID: asha.ID.Hex(), DoctorID: doc.ID.Hex(), Date: "2026-03-20", Reason: "later"})
	require.NoError(t, err)

	mailer.EXPECT().
		Send(asha.Email, "MediTrack Hospital: follow-up on 2026-03-03", gomock.Any()).
		DoAndReturn(func(_, _, body string) error {
			assert.Contains(t, body, "Dr. house")
			assert.Contains(t, body, "wound check")
			return nil
		})

	sent, err := svc.SendDueReminders(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	got, err := svc.Get(f.ctx, tomorrow.ID.Hex())
	require.NoError(t, err)
	assert.True(t, got.Notified)

	// already notified, nothing to send
	sent, err = svc.SendDueReminders(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
}

func TestSendDueReminders_FailedDeliveryRetried(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	mailer := NewMockMailer(ctrl)
	followUps := memstore.NewFollowUps()
	svc := newFollowUpService(f, followUps, mailer)

	doc := f.doctor(t, "house")
	asha := f.patient(t, "asha")
	fu, err := svc.Create(f.ctx, f.admin, models.FollowUpRequest{PatientID: asha.ID.Hex(), DoctorID: doc.ID.Hex(), Date: "2026-03-02", Reason: "dressing"})
	require.NoError(t, err)

	gomock.InOrder(
		mailer.EXPECT().Send(asha.Email, gomock.Any(), gomock.Any()).Return(errors.New("smtp down")),
		mailer.EXPECT().Send(asha.Email, gomock.Any(), gomock.Any()).Return(nil),
	)

	sent, err := svc.SendDueReminders(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)

	sent, err = svc.SendDueReminders(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	got, err := svc.Get(f.ctx, fu.ID.Hex())
	require.NoError(t, err)
	assert.True(t, got.Notified)
}

func TestFollowUpUpdate_ResetsNotified(t *testing.T) {
	f := newFixture(t)
	followUps := memstore.NewFollowUps()
	svc := newFollowUpService(f, followUps, nil)
	doc := f.doctor(t, "house")
	asha := f.patient(t, "asha")

	fu, err := svc.Create(f.ctx, f.admin, models.FollowUpRequest{PatientID: asha.ID.Hex(), DoctorID: doc.ID.Hex(), Date: "2026-03-05", Reason: "review"})
	require.NoError(t, err)
	fu, err = svc.MarkNotified(f.ctx, fu.ID.Hex())
	require.NoError(t, err)
	require.True(t, fu.Notified)

	date := "2026-03-09"
	fu, err = svc.Update(f.ctx, f.admin, fu.ID.Hex(), models.FollowUpUpdate{Date: &date})
	require.NoError(t, err)
	assert.False(t, fu.Notified)
	assert.Nil(t, fu.NotifiedAt)

	other := Actor{ID: f.doctor(t, "wilson").ID, Role: role.Doctor}
	_, err = svc.Update(f.ctx, other, fu.ID.Hex(), models.FollowUpUpdate{Date: &date})
	assert.True(t, apperror.Is(err, apperror.KindForbidden))
}
