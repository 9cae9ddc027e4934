package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	appbilling "github.com/clinicore/clinic-api/internal/application/billing"
	"github.com/clinicore/clinic-api/internal/domain/entity"
	"github.com/clinicore/clinic-api/pkg/config"
	"github.com/clinicore/clinic-api/pkg/money"
)

var _ appbilling.NotificationChannel = (*SMSChannel)(nil)

// SMSChannel delivers a short invoice summary through an HTTP SMS gateway.
// The PDF itself cannot travel over SMS; the message carries number and total.
type SMSChannel struct {
	cfg    config.SMSConfig
	client *http.Client
}

// NewSMSChannel constructs the channel from the gateway settings.
func NewSMSChannel(cfg config.SMSConfig) *SMSChannel {
	return &SMSChannel{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Name identifies the channel in audit records.
func (c *SMSChannel) Name() string { return entity.ChannelSMS }

// Recipient returns the patient's phone, or "" when none is on file or the
// gateway is not configured.
func (c *SMSChannel) Recipient(patient *entity.Patient) string {
	if c.cfg.GatewayURL == "" {
		return ""
	}
	return patient.Phone
}

type smsPayload struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Message string `json:"message"`
}

// Send posts the summary message to the gateway. Any non-2xx reply is a failure.
func (c *SMSChannel) Send(ctx context.Context, recipient string, inv *appbilling.OutgoingInvoice) error {
	payload := smsPayload{
		To:   recipient,
		From: c.cfg.Sender,
		Message: fmt.Sprintf("Invoice %s: total due $%s. Contact the clinic for details.",
			inv.Bill.Number, money.Display(inv.Bill.TotalCents)),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("sms: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.GatewayURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("sms: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms: gateway request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sms: gateway returned %s", resp.Status)
	}
	return nil
}
