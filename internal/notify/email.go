package notify

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/Dan9191/finance-dashboard/internal/config"
	"github.com/Dan9191/finance-dashboard/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// EmailSender handles sending alert emails via SMTP
type EmailSender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email, addr string, auth smtp.Auth) error
}

// NewEmailSender creates a new email sender
func NewEmailSender(cfg *config.Config, logger *logrus.Logger) *EmailSender {
	return &EmailSender{
		cfg:    cfg,
		logger: logger,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

func (s *EmailSender) compose(alert models.Alert) *email.Email {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{s.cfg.AlertEmail}
	e.Subject = subject(alert)

	body := "Hola,\n\n" + alert.Message + "\n"
	if days, ok := alert.Data["days_until"]; ok {
		body += fmt.Sprintf("Días restantes: %v\n", days)
	}
	body += "\nFinance Dashboard"
	e.Text = []byte(body)
	return e
}

// Notify sends the alert by email
func (s *EmailSender) Notify(_ context.Context, alert models.Alert) error {
	e := s.compose(alert)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := s.send(e, addr, auth); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", s.cfg.AlertEmail, err)
	}

	s.logger.Infof("Email sent to %s: %s", s.cfg.AlertEmail, e.Subject)
	return nil
}
