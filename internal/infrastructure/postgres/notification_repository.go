package postgres

import (
	"context"
	"fmt"

	"github.com/clinicore/clinic-api/internal/domain/entity"
	"github.com/clinicore/clinic-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo audit log of invoice delivery attempts over PostgreSQL.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository constructs the persistence adapter for delivery attempts.
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// CreateAttempt persists one delivery attempt, success or failure.
func (r *NotificationRepo) CreateAttempt(attempt *entity.NotificationAttempt) error {
	query := `
		INSERT INTO notification_attempts (id, bill_id, channel, recipient, success, error_detail, attempted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		attempt.ID, attempt.BillID, attempt.Channel, attempt.Recipient,
		attempt.Success, attempt.ErrorDetail, attempt.AttemptedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification attempt: %w", err)
	}
	return nil
}

// ListByBill fetches a bill's delivery attempts in chronological order.
func (r *NotificationRepo) ListByBill(billID string) ([]*entity.NotificationAttempt, error) {
	query := `
		SELECT id, bill_id, channel, recipient, success, error_detail, attempted_at
		FROM notification_attempts WHERE bill_id = $1 ORDER BY attempted_at`
	rows, err := r.q.Query(context.Background(), query, billID)
	if err != nil {
		return nil, fmt.Errorf("list notification attempts: %w", err)
	}
	defer rows.Close()
	var list []*entity.NotificationAttempt
	for rows.Next() {
		var a entity.NotificationAttempt
		if err := rows.Scan(&a.ID, &a.BillID, &a.Channel, &a.Recipient, &a.Success, &a.ErrorDetail, &a.AttemptedAt); err != nil {
			return nil, fmt.Errorf("scan notification attempt: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
