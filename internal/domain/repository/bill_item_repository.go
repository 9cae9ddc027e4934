package repository

import "github.com/clinicore/clinic-api/internal/domain/entity"

// BillItemRepository persistence port for bill line items.
// ListByBill returns creation order (single snapshot read).
type BillItemRepository interface {
	Create(item *entity.BillItem) error
	GetByID(id string) (*entity.BillItem, error) // nil, nil when absent
	ListByBill(billID string) ([]*entity.BillItem, error)
	Delete(id string) error
}
