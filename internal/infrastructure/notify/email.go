// Package notify implements the invoice delivery channels.
package notify

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	appbilling "github.com/clinicore/clinic-api/internal/application/billing"
	"github.com/clinicore/clinic-api/internal/domain/entity"
	"github.com/clinicore/clinic-api/pkg/config"
	"github.com/clinicore/clinic-api/pkg/money"
)

var _ appbilling.NotificationChannel = (*EmailChannel)(nil)

// EmailChannel delivers the invoice as a PDF attachment over SMTP.
type EmailChannel struct {
	cfg config.SMTPConfig
}

// NewEmailChannel constructs the channel from the SMTP settings.
func NewEmailChannel(cfg config.SMTPConfig) *EmailChannel {
	return &EmailChannel{cfg: cfg}
}

// Name identifies the channel in audit records.
func (c *EmailChannel) Name() string { return entity.ChannelEmail }

// Recipient returns the patient's email, or "" when none is on file or the
// channel is not configured.
func (c *EmailChannel) Recipient(patient *entity.Patient) string {
	if c.cfg.Host == "" {
		return ""
	}
	return patient.Email
}

// Send mails the invoice with the PDF attached.
func (c *EmailChannel) Send(ctx context.Context, recipient string, inv *appbilling.OutgoingInvoice) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", c.cfg.From)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", fmt.Sprintf("Your invoice %s", inv.Bill.Number))
	msg.SetBody("text/plain", fmt.Sprintf(
		"Dear %s,\n\nPlease find attached invoice %s for a total of $%s.\n\nThank you.",
		inv.Patient.FullName(), inv.Bill.Number, money.Display(inv.Bill.TotalCents),
	))
	msg.Attach(inv.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(inv.PDF)
		return err
	}))

	dialer := gomail.NewDialer(c.cfg.Host, c.cfg.Port, c.cfg.User, c.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("email: send invoice: %w", err)
	}
	return nil
}
