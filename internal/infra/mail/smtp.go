// internal/infra/mail/smtp.go
package mail

import (
	"context"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"

	"iss_overhead_notifier/internal/domain/notification"
)

const (
	DefaultHost    = "smtp.gmail.com"
	SubmissionPort = 587
)

// sender is the part of *gomail.Client the notifier uses.
type sender interface {
	DialAndSendWithContext(ctx context.Context, msgs ...*gomail.Msg) error
}

// SMTPNotifier mails the alert from the configured address to itself over an
// authenticated STARTTLS submission session.
type SMTPNotifier struct {
	address string
	client  sender
}

func NewSMTPNotifier(host, address, password string) (*SMTPNotifier, error) {
	if host == "" {
		host = DefaultHost
	}
	c, err := gomail.NewClient(host,
		gomail.WithPort(SubmissionPort),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(address),
		gomail.WithPassword(password),
		gomail.WithTimeout(30*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}
	return &SMTPNotifier{address: address, client: c}, nil
}

// Notify implements notification.Notifier. Each call opens a new session and
// sends exactly one message.
func (n *SMTPNotifier) Notify(ctx context.Context, alert notification.Alert) error {
	msg, err := n.message(alert)
	if err != nil {
		return err
	}
	if err := n.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send alert email: %w", err)
	}
	return nil
}

func (n *SMTPNotifier) message(alert notification.Alert) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(n.address); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(n.address); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(alert.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, alert.Body)
	return msg, nil
}
