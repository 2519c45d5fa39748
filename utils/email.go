package utils

import (
	"fmt"
	"net/smtp"

	"todo-web/config"
)

// EmailSender delivers a single plain-text message. Satisfied by Mailer
// in production and by fakes in tests.
type EmailSender interface {
	Send(to, subject, body string) error
}

// Mailer sends mail over SMTP with PLAIN auth.
type Mailer struct {
	cfg config.SMTP
}

// NewMailer builds a Mailer from SMTP settings.
func NewMailer(cfg config.SMTP) *Mailer {
	return &Mailer{cfg: cfg}
}

// Send delivers the message synchronously.
func (m *Mailer) Send(to, subject, body string) error {
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		m.cfg.From, to, subject, body,
	))

	return smtp.SendMail(
		m.cfg.Host+":"+m.cfg.Port,
		auth,
		m.cfg.From,
		[]string{to},
		msg,
	)
}
