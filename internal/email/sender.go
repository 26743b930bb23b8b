package email

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"estatehub_backend/internal/config"
)

// Sender delivers one message synchronously. The async path lives in
// Dispatcher; services hold the Sender only through it.
type Sender interface {
	Send(msg *Message) error
	SendTemplate(to []string, subject, templateName string, data TemplateData) error
}

type smtpSender struct {
	dialer    *gomail.Dialer
	from      string
	fromName  string
	templates *Templates
}

func NewSMTPSender(cfg *config.Config, templates *Templates) Sender {
	return &smtpSender{
		dialer: gomail.NewDialer(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUsername,
			cfg.Email.SMTPPassword,
		),
		from:      cfg.Email.FromEmail,
		fromName:  cfg.Email.FromName,
		templates: templates,
	}
}

func (s *smtpSender) Send(msg *Message) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	if msg.HTML {
		m.SetBody("text/html", msg.Body)
	} else {
		m.SetBody("text/plain", msg.Body)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send email to %v: %w", msg.To, err)
	}
	return nil
}

func (s *smtpSender) SendTemplate(to []string, subject, templateName string, data TemplateData) error {
	body, err := s.templates.Render(templateName, data)
	if err != nil {
		return err
	}
	return s.Send(&Message{To: to, Subject: subject, Body: body, HTML: true})
}

// NoopSender swallows messages. Used when SMTP is not configured so signup
// still works in development.
type NoopSender struct{}

func (NoopSender) Send(*Message) error { return nil }

func (NoopSender) SendTemplate([]string, string, string, TemplateData) error { return nil }
