package email

// Provider sends transactional mail. Services hold a nil Provider when SMTP
// is not configured and skip sending.
type Provider interface {
	Send(to []string, subject, htmlBody string) error
	SendWelcome(to, fullName string) error
	SendStatusUpdate(to, fullName, status string) error
	SendPaymentConfirmation(to, tranID string, amount float64, currency string) error
	Close() error
}
