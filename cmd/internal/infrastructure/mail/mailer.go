package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Sender dispatches account emails. Failures are the caller's problem to
// log, never to roll back on.
type Sender interface {
	SendVerificationEmail(to, confirmLink string) error
}

type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(host string, port int, username, password, from string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *Mailer) SendVerificationEmail(to, confirmLink string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Confirm your email address")
	msg.SetBody("text/plain", fmt.Sprintf(
		"Welcome to Bookshelf!\n\nPlease confirm your email address by opening the link below:\n\n%s\n\nIf you did not sign up, you can ignore this message.",
		confirmLink,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}
