package entity

import "time"

// Delivery channels for invoice notifications.
const (
	ChannelSMS   = "sms"
	ChannelEmail = "email"
)

// NotificationAttempt is the audit record of one invoice delivery attempt,
// persisted for success and failure alike.
type NotificationAttempt struct {
	ID          string
	BillID      string
	Channel     string
	Recipient   string
	Success     bool
	ErrorDetail string
	AttemptedAt time.Time
}
