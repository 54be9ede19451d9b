package main

import (
	"context"
	"sync"
	"time"

	"MediTrack/authorization"
	"MediTrack/cache"
	"MediTrack/config"
	"MediTrack/controllers"
	"MediTrack/jobs"
	"MediTrack/middleware"
	"MediTrack/migrations"
	"MediTrack/notify"
	"MediTrack/report"
	"MediTrack/repository"
	"MediTrack/routes"
	"MediTrack/services"

	db "github.com/KanapuramVaishnavi/Core/config/db"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// app builds the stores and services once Core has opened the Mongo connection.
type app struct {
	cfg  *config.Config
	once sync.Once

	issuer *authorization.Issuer
	ctl    *controllers.Controller
}

func newApp(cfg *config.Config) *app {
	return &app{cfg: cfg, issuer: authorization.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)}
}

func (a *app) newCache() cache.Cache {
	if !a.cfg.CacheEnabled {
		return cache.NewMemory()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	rc, err := cache.NewRedis(ctx, a.cfg.RedisAddr, a.cfg.RedisPassword, a.cfg.RedisDB)
	if err != nil {
		log.Warn().Err(err).Str("addr", a.cfg.RedisAddr).Msg("redis unavailable, using in-process cache")
		return cache.NewMemory()
	}
	return rc
}

func (a *app) newMailer() services.Mailer {
	if !a.cfg.MailEnabled() {
		return notify.LogMailer{}
	}
	return notify.NewSMTP(a.cfg.SMTPHost, a.cfg.SMTPPort, a.cfg.SMTPUser, a.cfg.SMTPPassword, a.cfg.MailFrom)
}

func (a *app) build() {
	a.once.Do(func() {
		cfg := a.cfg
		users := repository.NewUsers(db.OpenCollections(repository.UsersCollection))
		patients := repository.NewPatients(db.OpenCollections(repository.PatientsCollection))
		appointments := repository.NewAppointments(db.OpenCollections(repository.AppointmentsCollection))
		prescriptions := repository.NewPrescriptions(db.OpenCollections(repository.PrescriptionsCollection))
		followUps := repository.NewFollowUps(db.OpenCollections(repository.FollowUpsCollection))
		wards := repository.NewWards(db.OpenCollections(repository.WardsCollection))
		beds := repository.NewBeds(db.OpenCollections(repository.BedsCollection))
		bills := repository.NewBills(db.OpenCollections(repository.BillsCollection))

		policy := services.SlotPolicy{
			OpenHour:        cfg.ClinicOpenHour,
			CloseHour:       cfg.ClinicCloseHour,
			IntervalMinutes: cfg.SlotMinutes,
		}
		c := a.newCache()

		a.ctl = &controllers.Controller{
			Auth:          services.NewAuthService(users, c, a.issuer, cfg.MaxLoginAttempts),
			Users:         services.NewUserService(users),
			Patients:      services.NewPatientService(patients, beds),
			Appointments:  services.NewAppointmentService(appointments, users, patients, c, cfg.CacheTTL, policy),
			Prescriptions: services.NewPrescriptionService(prescriptions, appointments),
			FollowUps:     services.NewFollowUpService(followUps, patients, users, appointments, a.newMailer(), cfg.FollowUpLead, cfg.HospitalName),
			Wards:         services.NewWardService(wards, beds),
			Beds:          services.NewBedService(beds, wards, patients),
			Bills:         services.NewBillService(bills, patients, beds, appointments),
			Reports:       services.NewReportService(bills, patients, prescriptions, appointments, users, beds, report.NewPDF(cfg.HospitalName)),
			Verbose:       cfg.IsDev(),
		}
	})
}

func (a *app) mount(r *gin.Engine) {
	a.build()
	if err := controllers.RegisterValidators(); err != nil {
		log.Fatal().Err(err).Msg("Error from registering validators")
	}
	r.Use(
		middleware.RequestID(),
		middleware.Logger(log.Logger),
		middleware.Recovery(log.Logger),
		cors.New(cors.Config{
			AllowOrigins:     a.cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader, "Content-Disposition"},
			AllowCredentials: !containsWildcard(a.cfg.CORSOrigins),
		}),
	)
	routes.Routes(r, a.ctl, a.issuer)
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

func (a *app) startJobs() {
	a.build()
	_, err := jobs.StartScheduler(jobs.Schedule{
		FollowUpReminders: a.cfg.FollowUpReminderCron,
		OverdueSweep:      a.cfg.OverdueSweepCron,
	}, a.ctl.FollowUps, a.ctl.Bills)
	if err != nil {
		log.Error().Err(err).Msg("Error from starting scheduler")
	}
}

func (a *app) migrate() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := migrations.Run(ctx, db.DB, a.cfg); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
