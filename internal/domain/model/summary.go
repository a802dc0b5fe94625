package model

// DashboardSummary aggregates the merchant KPIs shown on the dashboard.
// Sales figures are in major units of Currency; invoice totals are grouped
// by effective status, so overdue amounts are not double counted as pending.
type DashboardSummary struct {
	TotalAttributedSales float64
	Currency             string
	TotalOrders          int
	AverageOrderValue    float64
	PendingAmount        float64
	OverdueAmount        float64
	PaidAmount           float64
}
