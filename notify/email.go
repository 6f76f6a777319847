package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"
)

type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Subject  string
}

// Dialer is satisfied by *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailSink mails the order text to the store inbox.
type EmailSink struct {
	cfg    EmailConfig
	dialer Dialer
}

func NewEmailSink(cfg EmailConfig) *EmailSink {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &EmailSink{cfg: cfg, dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)}
}

// WithDialer swaps the SMTP dialer, mostly for tests.
func (e *EmailSink) WithDialer(d Dialer) *EmailSink {
	e.dialer = d
	return e
}

func (e *EmailSink) Send(ctx context.Context, destination, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if destination == "" {
		return "", errors.New("no order email recipient configured")
	}
	subject := e.cfg.Subject
	if subject == "" {
		subject = "New order"
	}
	if n := orderLine(text); n != "" {
		subject += " " + n
	}

	m := gomail.NewMessage()
	m.SetHeader("From", e.cfg.From)
	m.SetHeader("To", destination)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", "<pre>"+html.EscapeString(text)+"</pre>")

	if err := e.dialer.DialAndSend(m); err != nil {
		return "", fmt.Errorf("failed to send email: %v", err)
	}
	return "mailto:" + destination, nil
}

// orderLine pulls "#NUMBER" out of the "*Order:*" line.
func orderLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if i := strings.Index(line, "#"); i >= 0 && strings.Contains(line, "Order:") {
			return strings.TrimSpace(line[i:])
		}
	}
	return ""
}
