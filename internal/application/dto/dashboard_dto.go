package dto

// DashboardSummaryResponse aggregate figures for the dashboard range.
type DashboardSummaryResponse struct {
	PaidCents        int64  `json:"paid_cents"`
	OutstandingCents int64  `json:"outstanding_cents"`
	ExpenseCents     int64  `json:"expense_cents"`
	NetCents         int64  `json:"net_cents"`
	Paid             string `json:"paid"`
	Outstanding      string `json:"outstanding"`
	Expenses         string `json:"expenses"`
	Net              string `json:"net"`
	BillCount        int64  `json:"bill_count"`
	PatientCount     int64  `json:"patient_count"`
	LowStockCount    int64  `json:"low_stock_count"`
}

// MonthlyRevenueResponse one month bucket in the revenue chart.
type MonthlyRevenueResponse struct {
	Month        int   `json:"month"`
	PaidCents    int64 `json:"paid_cents"`
	BilledCents  int64 `json:"billed_cents"`
	ExpenseCents int64 `json:"expense_cents"`
}
