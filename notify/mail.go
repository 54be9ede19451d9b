package notify

import (
	"fmt"

	"github.com/go-gomail/gomail"
	"github.com/rs/zerolog/log"
)

// SMTP sends plain-text mail through one relay.
type SMTP struct {
	from   string
	dialer *gomail.Dialer
}

func NewSMTP(host string, port int, user, password, from string) *SMTP {
	if from == "" {
		from = user
	}
	return &SMTP{from: from, dialer: gomail.NewDialer(host, port, user, password)}
}

func (s *SMTP) message(to, subject, body string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return m
}

func (s *SMTP) Send(to, subject, body string) error {
	if err := s.dialer.DialAndSend(s.message(to, subject, body)); err != nil {
		log.Error().Err(err).Str("to", to).Msg("Error from DialAndSend")
		return fmt.Errorf("error sending email: %w", err)
	}
	return nil
}

// LogMailer stands in when no SMTP host is configured.
type LogMailer struct{}

func (LogMailer) Send(to, subject, body string) error {
	log.Info().Str("to", to).Str("subject", subject).Int("bytes", len(body)).Msg("mail not sent: SMTP disabled")
	return nil
}
