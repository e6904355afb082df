// Package notify delivers alert notifications over SMTP. Without
// credentials it degrades to a logging no-op so the alerting pipeline is
// fully exercisable in development.
package notify

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

// placeholderUser is the sample address shipped in .env.example; treat it
// the same as no credentials at all.
const placeholderUser = "admin@sector7.com"

type Config struct {
	SMTPHost   string
	SMTPPort   int
	User       string
	Password   string
	AdminEmail string
}

// Configured reports whether real transport credentials are present.
func (c Config) Configured() bool {
	return c.User != "" && c.Password != "" && c.User != placeholderUser
}

type Mailer struct {
	cfg    Config
	logger *log.Logger
	send   func(m *gomail.Message) error
}

func NewMailer(cfg Config, logger *log.Logger) *Mailer {
	if cfg.SMTPPort == 0 {
		cfg.SMTPPort = 587
	}
	m := &Mailer{cfg: cfg, logger: logger}
	m.send = func(msg *gomail.Message) error {
		d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.User, cfg.Password)
		return d.DialAndSend(msg)
	}
	return m
}

// Send delivers one alert message. In mock mode the message is logged and
// reported as delivered; transport errors are only possible once real
// credentials are configured.
func (m *Mailer) Send(subject, body string) error {
	if !m.cfg.Configured() {
		m.logger.Printf("[MOCK EMAIL] to=%s subject=%q", m.recipient(), subject)
		m.logger.Printf("[MOCK EMAIL] body:\n%s", body)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.User)
	msg.SetHeader("To", m.recipient())
	msg.SetHeader("Subject", fmt.Sprintf("[SYSTEM ALERT] %s", subject))
	msg.SetBody("text/plain", body)

	if err := m.send(msg); err != nil {
		return fmt.Errorf("send alert email: %w", err)
	}
	m.logger.Printf("alert email sent: %s", subject)
	return nil
}

func (m *Mailer) recipient() string {
	if m.cfg.AdminEmail != "" {
		return m.cfg.AdminEmail
	}
	return "Admin"
}
