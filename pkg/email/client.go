// Package email sends plain-text mail over SMTP.
package email

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"support-desk-go/internal/config"
)

// Sender delivers one email message.
type Sender interface {
	Send(to, subject, body string) error
}

type smtpSender struct {
	cfg config.EmailConfig
}

// NewSender creates an SMTP-backed sender from the email configuration.
func NewSender(cfg config.EmailConfig) Sender {
	return &smtpSender{cfg: cfg}
}

func (s *smtpSender) Send(to, subject, body string) error {
	if s.cfg.Host == "" {
		return errors.New("smtp host not configured")
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", s.cfg.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
