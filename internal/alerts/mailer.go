// Package alerts watches the request log for operational anomalies and
// notifies operators by email.
package alerts

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer delivers one alert message.
type Mailer interface {
	Send(ctx context.Context, subject, body string, to []string) error
}

// SMTPMailer sends mail over SMTP with STARTTLS and plain auth, which covers
// the usual app-password setups.
type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// NewSMTPMailer constructs a mailer.
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{Host: host, Port: port, Username: username, Password: password, From: from}
}

func (m *SMTPMailer) Send(ctx context.Context, subject, body string, to []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.Host == "" || m.From == "" {
		return fmt.Errorf("smtp mailer is not configured")
	}
	if len(to) == 0 {
		return fmt.Errorf("no alert recipients configured")
	}

	msg := strings.Join([]string{
		"From: " + m.From,
		"To: " + strings.Join(to, ", "),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.Host, m.Port)
	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
	return smtp.SendMail(addr, auth, m.From, to, []byte(msg))
}
