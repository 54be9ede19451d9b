package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

type Config struct {
	Env       string
	JWTSecret string
	JWTTTL    time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheEnabled  bool
	CacheTTL      time.Duration

	ClinicOpenHour  int
	ClinicCloseHour int
	SlotMinutes     int

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string

	FollowUpReminderCron string
	OverdueSweepCron     string
	FollowUpLead         time.Duration

	AdminName     string
	AdminEmail    string
	AdminPassword string

	CORSOrigins      []string
	MaxLoginAttempts int
	HospitalName     string
}

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ENV", "production")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_ENABLED", true)
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("CLINIC_OPEN_HOUR", 9)
	v.SetDefault("CLINIC_CLOSE_HOUR", 17)
	v.SetDefault("SLOT_MINUTES", 30)
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("FOLLOWUP_REMINDER_CRON", "0 8 * * *")
	v.SetDefault("OVERDUE_SWEEP_CRON", "5 0 * * *")
	v.SetDefault("FOLLOWUP_LEAD", "24h")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("MAX_LOGIN_ATTEMPTS", 3)
	v.SetDefault("HOSPITAL_NAME", "MediTrack Hospital")

	for _, key := range []string{
		"JWT_SECRET", "REDIS_PASSWORD", "SMTP_HOST", "SMTP_USER", "SMTP_PASSWORD", "MAIL_FROM",
		"ADMIN_NAME", "ADMIN_EMAIL", "ADMIN_PASSWORD",
	} {
		_ = v.BindEnv(key)
	}

	cfg := &Config{
		Env:                  v.GetString("ENV"),
		JWTSecret:            v.GetString("JWT_SECRET"),
		JWTTTL:               v.GetDuration("JWT_TTL"),
		RedisAddr:            v.GetString("REDIS_ADDR"),
		RedisPassword:        v.GetString("REDIS_PASSWORD"),
		RedisDB:              v.GetInt("REDIS_DB"),
		CacheEnabled:         v.GetBool("CACHE_ENABLED"),
		CacheTTL:             v.GetDuration("CACHE_TTL"),
		ClinicOpenHour:       v.GetInt("CLINIC_OPEN_HOUR"),
		ClinicCloseHour:      v.GetInt("CLINIC_CLOSE_HOUR"),
		SlotMinutes:          v.GetInt("SLOT_MINUTES"),
		SMTPHost:             v.GetString("SMTP_HOST"),
		SMTPPort:             v.GetInt("SMTP_PORT"),
		SMTPUser:             v.GetString("SMTP_USER"),
		SMTPPassword:         v.GetString("SMTP_PASSWORD"),
		MailFrom:             v.GetString("MAIL_FROM"),
		FollowUpReminderCron: v.GetString("FOLLOWUP_REMINDER_CRON"),
		OverdueSweepCron:     v.GetString("OVERDUE_SWEEP_CRON"),
		FollowUpLead:         v.GetDuration("FOLLOWUP_LEAD"),
		AdminName:            v.GetString("ADMIN_NAME"),
		AdminEmail:           v.GetString("ADMIN_EMAIL"),
		AdminPassword:        v.GetString("ADMIN_PASSWORD"),
		MaxLoginAttempts:     v.GetInt("MAX_LOGIN_ATTEMPTS"),
		HospitalName:         v.GetString("HOSPITAL_NAME"),
	}

	for _, origin := range strings.Split(v.GetString("CORS_ORIGINS"), ",") {
		if o := strings.TrimSpace(origin); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	if cfg.JWTSecret == "" && cfg.IsDev() {
		cfg.JWTSecret = "meditrack-dev-secret"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when ENV=%q", c.Env)
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	if c.ClinicOpenHour < 0 || c.ClinicOpenHour > 24 || c.ClinicCloseHour < 0 || c.ClinicCloseHour > 24 {
		return fmt.Errorf("clinic hours must be within 0..24")
	}
	if c.ClinicOpenHour >= c.ClinicCloseHour {
		return fmt.Errorf("CLINIC_OPEN_HOUR (%d) must be before CLINIC_CLOSE_HOUR (%d)", c.ClinicOpenHour, c.ClinicCloseHour)
	}
	if c.SlotMinutes <= 0 {
		return fmt.Errorf("SLOT_MINUTES must be positive")
	}
	if c.MaxLoginAttempts <= 0 {
		return fmt.Errorf("MAX_LOGIN_ATTEMPTS must be positive")
	}
	if _, err := cron.ParseStandard(c.FollowUpReminderCron); err != nil {
		return fmt.Errorf("FOLLOWUP_REMINDER_CRON: %w", err)
	}
	if _, err := cron.ParseStandard(c.OverdueSweepCron); err != nil {
		return fmt.Errorf("OVERDUE_SWEEP_CRON: %w", err)
	}
	return nil
}

// MailEnabled is false until an SMTP host is configured.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != ""
}
