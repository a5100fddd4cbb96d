package email

import (
	"fmt"

	"nibash_backend/internal/config"

	"gopkg.in/gomail.v2"
)

type GomailProvider struct {
	dialer    *gomail.Dialer
	fromEmail string
	fromName  string
}

// NewProviderFromConfig builds an SMTP-backed provider, or returns nil when
// no SMTP host is configured.
func NewProviderFromConfig(cfg *config.Config) Provider {
	if cfg.Email.SMTPHost == "" {
		return nil
	}

	port := cfg.Email.SMTPPort
	if port == 0 {
		port = 587
	}

	return &GomailProvider{
		dialer:    gomail.NewDialer(cfg.Email.SMTPHost, port, cfg.Email.SMTPUser, cfg.Email.SMTPPassword),
		fromEmail: cfg.Email.FromEmail,
		fromName:  cfg.Email.FromName,
	}
}

func (p *GomailProvider) Send(to []string, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.fromEmail, p.fromName)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	return p.dialer.DialAndSend(m)
}

func (p *GomailProvider) SendWelcome(to, fullName string) error {
	body := fmt.Sprintf(
		"<h2>Welcome to Nibash, %s!</h2><p>Your account has been created. You can now book home services from verified professionals.</p>",
		fullName,
	)
	return p.Send([]string{to}, "Welcome to Nibash", body)
}

func (p *GomailProvider) SendStatusUpdate(to, fullName, status string) error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your Nibash account status is now <strong>%s</strong>.</p>",
		fullName, status,
	)
	return p.Send([]string{to}, "Your Nibash account status", body)
}

func (p *GomailProvider) SendPaymentConfirmation(to, tranID string, amount float64, currency string) error {
	body := fmt.Sprintf(
		"<p>We have received your payment of <strong>%.2f %s</strong>.</p><p>Transaction ID: %s</p>",
		amount, currency, tranID,
	)
	return p.Send([]string{to}, "Payment received", body)
}

func (p *GomailProvider) Close() error {
	return nil
}
