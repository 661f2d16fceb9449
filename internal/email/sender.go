package email

import (
	"fmt"

	"github.com/magala-news-api/internal/config"
	"github.com/magala-news-api/internal/email/templates"
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// Mailer sends transactional mail. Implementations must be safe for
// concurrent use.
type Mailer interface {
	SendVerification(to, name, link string) error
	SendPasswordReset(to, name, link string) error
}

// Sender delivers mail over SMTP via gomail. When no SMTP host is
// configured, sends are logged and dropped so local development works
// without a mail server.
type Sender struct {
	cfg *config.SMTPConfig
	log zerolog.Logger
}

// NewSender creates a new SMTP sender
func NewSender(cfg *config.SMTPConfig, log zerolog.Logger) *Sender {
	return &Sender{
		cfg: cfg,
		log: log.With().Str("component", "email").Logger(),
	}
}

// SendVerification sends the email verification message
func (s *Sender) SendVerification(to, name, link string) error {
	body, err := templates.RenderVerification(templates.VerificationData{Name: name, VerifyURL: link})
	if err != nil {
		return fmt.Errorf("render verification: %w", err)
	}
	return s.send(to, "Verify your email address", body)
}

// SendPasswordReset sends the password reset message
func (s *Sender) SendPasswordReset(to, name, link string) error {
	body, err := templates.RenderPasswordReset(templates.PasswordResetData{Name: name, ResetURL: link})
	if err != nil {
		return fmt.Errorf("render password reset: %w", err)
	}
	return s.send(to, "Reset your password", body)
}

func (s *Sender) send(to, subject, body string) error {
	if !s.cfg.Enabled() {
		s.log.Info().Str("to", to).Str("subject", subject).Msg("SMTP not configured, dropping email")
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	dialer := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}

	s.log.Info().Str("to", to).Str("subject", subject).Msg("Email sent")
	return nil
}
