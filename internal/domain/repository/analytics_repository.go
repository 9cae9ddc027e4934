package repository

import (
	"context"
	"time"
)

// RevenueSummary aggregate figures for the dashboard over a date range.
type RevenueSummary struct {
	PaidCents        int64 // total of paid bills
	OutstandingCents int64 // total of pending + overdue bills
	ExpenseCents     int64
	NetCents         int64 // paid - expenses
	BillCount        int64
	PatientCount     int64
	LowStockCount    int64
}

// MonthlyRevenue one month bucket of billed revenue.
type MonthlyRevenue struct {
	Month        int // 1..12
	PaidCents    int64
	BilledCents  int64
	ExpenseCents int64
}

// AnalyticsRepository read-only aggregate queries for the revenue dashboard.
type AnalyticsRepository interface {
	GetRevenueSummary(ctx context.Context, from, to time.Time) (*RevenueSummary, error)
	GetMonthlyRevenue(ctx context.Context, year int) ([]MonthlyRevenue, error)
}
