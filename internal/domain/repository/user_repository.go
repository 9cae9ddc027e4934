package repository

import "github.com/clinicore/clinic-api/internal/domain/entity"

// UserRepository persistence port for staff accounts.
type UserRepository interface {
	Create(user *entity.User) error
	FindByEmail(email string) (*entity.User, error) // nil, nil when absent
}
