package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinic-api/internal/application/dto"
	"github.com/clinicore/clinic-api/internal/domain"
	"github.com/clinicore/clinic-api/internal/domain/entity"
	"github.com/clinicore/clinic-api/internal/domain/repository"
	"github.com/clinicore/clinic-api/pkg/money"
)

// ExpenseUseCase records operating costs for the dashboard.
type ExpenseUseCase struct {
	expenseRepo repository.ExpenseRepository
}

// NewExpenseUseCase constructs the use case.
func NewExpenseUseCase(expenseRepo repository.ExpenseRepository) *ExpenseUseCase {
	return &ExpenseUseCase{expenseRepo: expenseRepo}
}

// Create records an expense. IncurredOn defaults to today.
func (uc *ExpenseUseCase) Create(ctx context.Context, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	in.Category = strings.TrimSpace(in.Category)
	if in.Category == "" {
		return nil, domain.ErrInvalidInput
	}
	amountCents, err := money.FromMajor(in.Amount)
	if err != nil || amountCents <= 0 {
		return nil, domain.ErrInvalidInput
	}

	incurredOn := time.Now()
	if in.IncurredOn != "" {
		incurredOn, err = time.Parse(dateLayout, in.IncurredOn)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
	}

	e := &entity.Expense{
		ID:          uuid.New().String(),
		Category:    in.Category,
		Description: in.Description,
		AmountCents: amountCents,
		IncurredOn:  incurredOn,
		CreatedAt:   time.Now(),
	}
	if err := uc.expenseRepo.Create(e); err != nil {
		return nil, err
	}
	return toExpenseResponse(e), nil
}

// List returns expenses in a date range; zero times mean no bound.
func (uc *ExpenseUseCase) List(ctx context.Context, from, to time.Time, page dto.PageRequest) ([]dto.ExpenseResponse, error) {
	page.DefaultPage()
	expenses, err := uc.expenseRepo.List(from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, *toExpenseResponse(e))
	}
	return out, nil
}

// Delete removes an expense entry.
func (uc *ExpenseUseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.expenseRepo.Delete(id)
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:          e.ID,
		Category:    e.Category,
		Description: e.Description,
		AmountCents: e.AmountCents,
		Amount:      money.FormatMajor(e.AmountCents),
		IncurredOn:  e.IncurredOn.Format(dateLayout),
		CreatedAt:   e.CreatedAt,
	}
}
