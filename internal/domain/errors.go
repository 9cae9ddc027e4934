package domain

import (
	"errors"
	"fmt"
)

// Domain errors (no external dependencies).
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicate         = errors.New("duplicate resource")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("access denied")
	ErrConflict          = errors.New("conflict with current state")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNoContactMethod   = errors.New("no contact method available")
	ErrTooManyAttempts   = errors.New("too many attempts")
	ErrUpstream          = errors.New("upstream service failed")
)

// InsufficientStockError reports a rejected stock reservation together with
// the quantity that was actually available, so callers can decide to skip the
// item or surface the shortfall.
type InsufficientStockError struct {
	ProductID string
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// Unwrap lets errors.Is(err, ErrInsufficientStock) match.
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
