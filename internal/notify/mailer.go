package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
)

type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
}

func NewSMTPMailer(host, port, username, password string) (*SMTPMailer, error) {
	if host == "" {
		return nil, fmt.Errorf("SMTP_HOST not set")
	}
	if port == "" {
		return nil, fmt.Errorf("SMTP_PORT not set")
	}
	return &SMTPMailer{host, port, username, password}, nil
}

func (s *SMTPMailer) Send(_ context.Context, m Message) error {
	addr := s.host + ":" + s.port
	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}
	if err := smtp.SendMail(addr, auth, m.From, []string{m.To}, renderMIME(m)); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}

func renderMIME(m Message) []byte {
	return []byte(
		"From: " + m.From + "\r\n" +
			"To: " + m.To + "\r\n" +
			"Subject: " + m.Subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/plain; charset=UTF-8\r\n" +
			"\r\n" +
			m.Body,
	)
}

// LogMailer writes messages to the log instead of sending them.
type LogMailer struct{ Log *slog.Logger }

func (l LogMailer) Send(_ context.Context, m Message) error {
	l.Log.Info("email", "from", m.From, "to", m.To, "subject", m.Subject, "body", m.Body)
	return nil
}
