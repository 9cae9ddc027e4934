package repository

import (
	"time"

	"github.com/clinicore/clinic-api/internal/domain/entity"
)

// ExpenseRepository persistence port for operating expenses.
type ExpenseRepository interface {
	Create(expense *entity.Expense) error
	List(from, to time.Time, limit, offset int) ([]*entity.Expense, error)
	Delete(id string) error
}
