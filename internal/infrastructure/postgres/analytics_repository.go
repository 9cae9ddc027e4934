package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicore/clinic-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo read-only aggregate queries for the revenue dashboard.
// Cancelled bills are excluded from every figure.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository constructs the analytics adapter.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetRevenueSummary aggregates billing, expense and inventory figures between
// from and to (inclusive).
func (r *AnalyticsRepo) GetRevenueSummary(ctx context.Context, from, to time.Time) (*repository.RevenueSummary, error) {
	var s repository.RevenueSummary

	billQuery := `
		SELECT
			COALESCE(SUM(total_cents) FILTER (WHERE status = 'paid'), 0),
			COALESCE(SUM(total_cents) FILTER (WHERE status IN ('pending', 'overdue')), 0),
			COUNT(*) FILTER (WHERE status <> 'cancelled')
		FROM bills WHERE created_at >= $1 AND created_at <= $2`
	if err := r.q.QueryRow(ctx, billQuery, from, to).Scan(&s.PaidCents, &s.OutstandingCents, &s.BillCount); err != nil {
		return nil, fmt.Errorf("revenue summary: bills: %w", err)
	}

	expenseQuery := `
		SELECT COALESCE(SUM(amount_cents), 0)
		FROM expenses WHERE incurred_on >= $1::date AND incurred_on <= $2::date`
	if err := r.q.QueryRow(ctx, expenseQuery, from, to).Scan(&s.ExpenseCents); err != nil {
		return nil, fmt.Errorf("revenue summary: expenses: %w", err)
	}

	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&s.PatientCount); err != nil {
		return nil, fmt.Errorf("revenue summary: patients: %w", err)
	}
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE stock_quantity <= min_stock`).Scan(&s.LowStockCount); err != nil {
		return nil, fmt.Errorf("revenue summary: low stock: %w", err)
	}

	s.NetCents = s.PaidCents - s.ExpenseCents
	return &s, nil
}

// GetMonthlyRevenue aggregates per-month billed, paid and expense totals of a year.
func (r *AnalyticsRepo) GetMonthlyRevenue(ctx context.Context, year int) ([]repository.MonthlyRevenue, error) {
	query := `
		WITH bill_months AS (
			SELECT EXTRACT(MONTH FROM created_at)::int AS month,
			       COALESCE(SUM(total_cents) FILTER (WHERE status = 'paid'), 0) AS paid_cents,
			       COALESCE(SUM(total_cents) FILTER (WHERE status <> 'cancelled'), 0) AS billed_cents
			FROM bills WHERE EXTRACT(YEAR FROM created_at) = $1
			GROUP BY 1
		), expense_months AS (
			SELECT EXTRACT(MONTH FROM incurred_on)::int AS month,
			       COALESCE(SUM(amount_cents), 0) AS expense_cents
			FROM expenses WHERE EXTRACT(YEAR FROM incurred_on) = $1
			GROUP BY 1
		)
		SELECT COALESCE(b.month, e.month),
		       COALESCE(b.paid_cents, 0), COALESCE(b.billed_cents, 0), COALESCE(e.expense_cents, 0)
		FROM bill_months b
		FULL OUTER JOIN expense_months e USING (month)
		ORDER BY 1`
	rows, err := r.q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("monthly revenue: %w", err)
	}
	defer rows.Close()

	var list []repository.MonthlyRevenue
	for rows.Next() {
		var m repository.MonthlyRevenue
		if err := rows.Scan(&m.Month, &m.PaidCents, &m.BilledCents, &m.ExpenseCents); err != nil {
			return nil, fmt.Errorf("scan monthly revenue: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
