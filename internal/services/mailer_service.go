package services

import (
	"review-backend/internal/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Mailer is the delivery contract for confirmation codes. Transports
// decide their own failure policy; callers only see an error.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
	logger *logrus.Logger
}

// NewSMTPMailer builds a gomail-backed Mailer from config.
func NewSMTPMailer(cfg config.SMTPConfig, logger *logrus.Logger) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: logger,
	}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.WithError(err).WithField("to", to).Error("Failed to send mail")
		return err
	}

	m.logger.WithField("to", to).Info("Mail sent")
	return nil
}

type logMailer struct {
	logger *logrus.Logger
}

// NewLogMailer returns a Mailer that only logs, for environments
// without an SMTP host configured.
func NewLogMailer(logger *logrus.Logger) Mailer {
	return &logMailer{logger: logger}
}

func (m *logMailer) Send(to, subject, body string) error {
	m.logger.WithFields(logrus.Fields{
		"to":      to,
		"subject": subject,
		"body":    body,
	}).Info("SMTP not configured, logging mail instead")
	return nil
}
