// Package analytics serves the revenue dashboard.
package analytics

import (
	"context"
	"time"

	"github.com/clinicore/clinic-api/internal/application/dto"
	"github.com/clinicore/clinic-api/internal/domain"
	"github.com/clinicore/clinic-api/internal/domain/repository"
	"github.com/clinicore/clinic-api/pkg/money"
)

// DashboardUseCase reads aggregate figures. All math happens in SQL; this
// layer only shapes the response.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase constructs the use case.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// Summary returns the aggregate figures between from and to (inclusive).
// Zero times default to the current calendar month.
func (uc *DashboardUseCase) Summary(ctx context.Context, from, to time.Time) (*dto.DashboardSummaryResponse, error) {
	if from.IsZero() || to.IsZero() {
		now := time.Now()
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		to = from.AddDate(0, 1, 0).Add(-time.Nanosecond)
	}
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}

	s, err := uc.analyticsRepo.GetRevenueSummary(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardSummaryResponse{
		PaidCents:        s.PaidCents,
		OutstandingCents: s.OutstandingCents,
		ExpenseCents:     s.ExpenseCents,
		NetCents:         s.NetCents,
		Paid:             money.FormatMajor(s.PaidCents),
		Outstanding:      money.FormatMajor(s.OutstandingCents),
		Expenses:         money.FormatMajor(s.ExpenseCents),
		Net:              money.FormatMajor(s.NetCents),
		BillCount:        s.BillCount,
		PatientCount:     s.PatientCount,
		LowStockCount:    s.LowStockCount,
	}, nil
}

// MonthlyRevenue returns the twelve month buckets of a year for the chart.
func (uc *DashboardUseCase) MonthlyRevenue(ctx context.Context, year int) ([]dto.MonthlyRevenueResponse, error) {
	if year < 2000 || year > 2100 {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.analyticsRepo.GetMonthlyRevenue(ctx, year)
	if err != nil {
		return nil, err
	}

	// dense 12-bucket series, months without data stay zero
	out := make([]dto.MonthlyRevenueResponse, 12)
	for i := range out {
		out[i].Month = i + 1
	}
	for _, r := range rows {
		if r.Month < 1 || r.Month > 12 {
			continue
		}
		out[r.Month-1] = dto.MonthlyRevenueResponse{
			Month:        r.Month,
			PaidCents:    r.PaidCents,
			BilledCents:  r.BilledCents,
			ExpenseCents: r.ExpenseCents,
		}
	}
	return out, nil
}
