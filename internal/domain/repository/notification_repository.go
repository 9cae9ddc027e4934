package repository

import "github.com/clinicore/clinic-api/internal/domain/entity"

// NotificationRepository audit log of invoice delivery attempts.
type NotificationRepository interface {
	CreateAttempt(attempt *entity.NotificationAttempt) error
	ListByBill(billID string) ([]*entity.NotificationAttempt, error)
}
