package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/zeon-projects/beach-cleanup-api/pkg/config"
)

// Sender dispatches a single email message.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

// Mailer wraps an SMTP dialer configured from the mail account settings.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// New returns a Mailer. Connectivity is verified once with a throwaway
// dial so a bad mail account fails at startup, not on the first send.
func New(cfg config.SMTPConfig) (*Mailer, error) {
	if cfg.Username == "" {
		return nil, fmt.Errorf("mailer: missing EMAIL_USERNAME")
	}

	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)

	closer, err := dialer.Dial()
	if err != nil {
		return nil, fmt.Errorf("mailer: verify connection: %w", err)
	}
	_ = closer.Close()

	return &Mailer{dialer: dialer, from: cfg.From}, nil
}

// Send delivers a single HTML email. One attempt, no retries.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("mailer: send to %s: %w", to, err)
	}
	return nil
}
