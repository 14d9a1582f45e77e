package notify

import (
	"log/slog"
	"time"

	"github.com/shanehull/keyinfo/internal/types"

	gomail "gopkg.in/mail.v2"
)

// EmailConfig holds SMTP configuration for sending emails.
type EmailConfig struct {
	SMTPServer string
	SMTPPort   int
	SMTPUser   string
	SMTPPass   string
	FromEmail  string
	ToEmail    string
}

// Enabled reports whether enough is configured to send mail.
func (c EmailConfig) Enabled() bool {
	return c.SMTPServer != "" && c.SMTPUser != "" && c.SMTPPass != "" && c.ToEmail != ""
}

// From returns the sender address, falling back to the SMTP user.
func (c EmailConfig) From() string {
	if c.FromEmail != "" {
		return c.FromEmail
	}
	return c.SMTPUser
}

// EmailSender delivers messages via SMTP.
type EmailSender struct {
	cfg    EmailConfig
	logger *slog.Logger
	dial   func(m ...*gomail.Message) error
}

// NewEmailSender creates a sender with the given SMTP configuration.
func NewEmailSender(cfg EmailConfig, logger *slog.Logger) *EmailSender {
	dialer := gomail.NewDialer(cfg.SMTPServer, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	dialer.Timeout = 10 * time.Second

	return &EmailSender{cfg: cfg, logger: logger, dial: dialer.DialAndSend}
}

// Message builds the MIME message for a rendered notification.
func (s *EmailSender) Message(msg *RenderedMessage) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From())
	m.SetHeader("To", s.cfg.ToEmail)
	m.SetHeader("Subject", msg.Subject)

	if msg.HTML != "" && msg.Text != "" {
		m.SetBody("text/plain", msg.Text)
		m.AddAlternative("text/html", msg.HTML)
	} else if msg.HTML != "" {
		m.SetBody("text/html", msg.HTML)
	} else {
		m.SetBody("text/plain", msg.Text)
	}
	return m
}

// Send delivers an email with HTML body and plain text fallback.
func (s *EmailSender) Send(msg *RenderedMessage) error {
	if !s.cfg.Enabled() {
		return nil
	}

	if err := s.dial(s.Message(msg)); err != nil {
		s.logger.Error("failed to send email", "to", s.cfg.ToEmail, "subject", msg.Subject, "err", err)
		return err
	}

	s.logger.Info("email sent", "subject", msg.Subject)
	return nil
}

// EmailMatches renders and sends one email per match. Failures are logged
// and the remaining matches are still sent; the number sent is returned.
func EmailMatches(matches []types.Match, renderer *HTMLEmailRenderer, sender *EmailSender) int {
	if !sender.cfg.Enabled() {
		return 0
	}
	sender.logger.Info("emailing matches", "smtp", sender.cfg.SMTPServer, "port", sender.cfg.SMTPPort, "count", len(matches))

	sent := 0
	for _, m := range matches {
		msg, err := renderer.Render(NewNotificationData(m))
		if err != nil {
			sender.logger.Error("failed to render email", "ticker", m.Ticker, "err", err)
			continue
		}
		if err := sender.Send(msg); err != nil {
			continue
		}
		sent++
	}
	return sent
}
