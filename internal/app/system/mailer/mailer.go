// internal/app/system/mailer/mailer.go

// Package mailer sends transactional email through SendGrid. The
// mailer is optional: with no API key configured it becomes a no-op
// and checkout proceeds without confirmation mail.
package mailer

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// Mailer sends storefront email.
type Mailer struct {
	client   *sendgrid.Client
	from     string
	fromName string
	log      *zap.Logger
}

// New builds a Mailer. An empty apiKey yields a disabled mailer whose
// sends succeed silently.
func New(apiKey, from, fromName string, logger *zap.Logger) *Mailer {
	m := &Mailer{from: from, fromName: fromName, log: logger}
	if apiKey == "" {
		logger.Info("mailer disabled (no SendGrid API key configured)")
		return m
	}
	m.client = sendgrid.NewSendClient(apiKey)
	return m
}

// Enabled reports whether the mailer will actually send.
func (m *Mailer) Enabled() bool {
	return m.client != nil
}

// SendOrderConfirmation emails the customer a summary of a completed
// checkout. Failures are returned for logging only; checkout never
// rolls back because of email.
func (m *Mailer) SendOrderConfirmation(toEmail, customerName, orderNumber string, total float64) error {
	if !m.Enabled() {
		return nil
	}

	subject := fmt.Sprintf("Order %s confirmed", orderNumber)
	plain := fmt.Sprintf(
		"Hi %s,\n\nThank you for your purchase! Order %s has been placed successfully.\nTotal: $%.2f\n\nThank you for shopping with us.",
		customerName, orderNumber, total,
	)
	html := fmt.Sprintf(
		"<strong>Hi %s,</strong><br><br>Thank you for your purchase! Order <strong>%s</strong> has been placed successfully.<br>Total: <strong>$%.2f</strong><br><br>Thank you for shopping with us.",
		customerName, orderNumber, total,
	)

	msg := mail.NewSingleEmail(
		mail.NewEmail(m.fromName, m.from),
		subject,
		mail.NewEmail(customerName, toEmail),
		plain,
		html,
	)

	resp, err := m.client.Send(msg)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
	}

	m.log.Info("order confirmation sent",
		zap.String("order_number", orderNumber),
		zap.String("to", toEmail))
	return nil
}
